package adtools

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestAdStyleDescription(t *testing.T) {
	Convey("AdStyleDescription 返回风格说明", t, func() {
		Convey("已知风格返回具体说明", func() {
			So(AdStyleDescription("Humor - Hilarious"), ShouldContainSubstring, "funny")
			So(AdStyleDescription("Reversal - Mind-blowing"), ShouldContainSubstring, "twist")
		})

		Convey("未知风格给通用描述", func() {
			So(AdStyleDescription("Unlisted Style"), ShouldContainSubstring, "compelling advertising")
		})
	})
}

func TestKnownAdStyles(t *testing.T) {
	Convey("KnownAdStyles 覆盖五大类十五种风格", t, func() {
		styles := KnownAdStyles()
		So(len(styles), ShouldEqual, 15)

		families := map[string]int{}
		for _, s := range styles {
			for _, f := range []string{"Humor", "Sentiment", "Achievement", "Adventure", "Reversal"} {
				if len(s) >= len(f) && s[:len(f)] == f {
					families[f]++
				}
			}
		}
		So(len(families), ShouldEqual, 5)
		for _, n := range families {
			So(n, ShouldEqual, 3)
		}
	})
}
