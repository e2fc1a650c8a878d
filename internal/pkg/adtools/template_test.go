package adtools

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestApplyTemplate(t *testing.T) {
	Convey("ApplyTemplate 能替换两种写法的占位符", t, func() {
		vars := map[string]string{
			"BRAND_NAME": "Northwind",
			"AD_STYLE":   "Adventure - Epic",
		}

		Convey("双花括号写法", func() {
			got := ApplyTemplate("Brand: {{BRAND_NAME}}, style: {{AD_STYLE}}", vars)
			So(got, ShouldEqual, "Brand: Northwind, style: Adventure - Epic")
		})

		Convey("单花括号写法", func() {
			got := ApplyTemplate("Brand: {BRAND_NAME}", vars)
			So(got, ShouldEqual, "Brand: Northwind")
		})

		Convey("没有对应变量的占位符原样保留", func() {
			got := ApplyTemplate("{{BRAND_NAME}} / {{UNKNOWN}}", vars)
			So(got, ShouldEqual, "Northwind / {{UNKNOWN}}")
		})
	})
}

func TestExtractConceptTitle(t *testing.T) {
	Convey("ExtractConceptTitle 从概念文本提取标题行", t, func() {
		Convey("标准标题行", func() {
			content := "**CONCEPT TITLE**: The World Comes Into Focus\n\nLOGLINE: ..."
			So(ExtractConceptTitle(content), ShouldEqual, "The World Comes Into Focus")
		})

		Convey("标题行前后有空白", func() {
			content := "some preamble\n  **CONCEPT TITLE**:   Spaced Out  \nrest"
			So(ExtractConceptTitle(content), ShouldEqual, "Spaced Out")
		})

		Convey("没有标题行返回空串", func() {
			So(ExtractConceptTitle("just a plain concept"), ShouldBeEmpty)
		})
	})
}

func TestConceptSlugFromTitle(t *testing.T) {
	Convey("ConceptSlugFromTitle 把标题转成文件名片段", t, func() {
		So(ConceptSlugFromTitle("Northwind", "The World Comes Into Focus"),
			ShouldEqual, "northwind_the_world_comes_into_focus")

		Convey("连字符转下划线，其余符号丢弃", func() {
			So(ConceptSlugFromTitle("Northwind", "Mud-Caked & Proud!"),
				ShouldEqual, "northwind_mud_caked__proud")
		})
	})
}
