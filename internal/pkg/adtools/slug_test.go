package adtools

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSlugify(t *testing.T) {
	Convey("Slugify 能把实体名转成文件系统安全的 slug", t, func() {
		Convey("空格转下划线并小写", func() {
			So(Slugify("Night Market"), ShouldEqual, "night_market")
		})

		Convey("括号与撇号等标点被丢弃", func() {
			So(Slugify("Maya (Protagonist)"), ShouldEqual, "maya_protagonist")
			So(Slugify("Chef's Kitchen"), ShouldEqual, "chefs_kitchen")
		})

		Convey("连字符与空白折叠为单个下划线", func() {
			So(Slugify("Smart Glasses - Heads-Up Display"), ShouldEqual, "smart_glasses_heads_up_display")
			So(Slugify("a  \t b"), ShouldEqual, "a_b")
		})

		Convey("模型名中的点号保留", func() {
			So(Slugify("claude-sonnet-4.5"), ShouldEqual, "claude_sonnet_4.5")
		})

		Convey("首尾空白修剪干净", func() {
			So(Slugify("  The Fox  "), ShouldEqual, "the_fox")
		})

		Convey("非拉丁字符被丢弃", func() {
			So(Slugify("夜市 Vendor Stall"), ShouldEqual, "vendor_stall")
		})
	})
}
