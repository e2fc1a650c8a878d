package id

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestID(t *testing.T) {
	Convey("ID 生成与校验", t, func() {
		Convey("New 生成合法 UUID", func() {
			id := New()
			So(IsValid(id), ShouldBeTrue)
			So(len(id), ShouldEqual, 36)
		})

		Convey("Short 生成 8 位短 ID", func() {
			So(len(Short()), ShouldEqual, 8)
		})

		Convey("IsValid 拒绝非法输入", func() {
			So(IsValid("not-a-uuid"), ShouldBeFalse)
			So(IsValid(""), ShouldBeFalse)
		})
	})
}
