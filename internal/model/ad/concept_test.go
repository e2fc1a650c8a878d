package ad

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEvaluationDocument_Best(t *testing.T) {
	Convey("EvaluationDocument.Best 取全文档最高分创意", t, func() {
		Convey("跨风格分组比较", func() {
			doc := &EvaluationDocument{
				Evaluations: []StyleEvaluation{
					{
						AdStyle: "Humor - Playful",
						Evaluations: []ConceptEvaluation{
							{Score: 72, Model: "claude_sonnet_4.5", File: "a.txt"},
							{Score: 65, Model: "gpt_5.1", File: "b.txt"},
						},
					},
					{
						AdStyle: "Adventure - Epic",
						Evaluations: []ConceptEvaluation{
							{Score: 88, Model: "claude_sonnet_4.5", File: "c.txt"},
						},
					},
				},
			}

			best, err := doc.Best()
			So(err, ShouldBeNil)
			So(best.Score, ShouldEqual, 88)
			So(best.File, ShouldEqual, "c.txt")
		})

		Convey("空文档报错", func() {
			doc := &EvaluationDocument{}
			_, err := doc.Best()
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "no concepts")
		})
	})
}

func TestBrandConfig(t *testing.T) {
	Convey("BrandConfig 品牌配置读取", t, func() {
		brand := BrandConfig{
			"BRAND_NAME":   "Northwind",
			"PRODUCT_NAME": "Ridge Runner 2",
			"TAGLINE":      "",
		}

		Convey("Get 取键值，空值与缺失都回落默认", func() {
			So(brand.Get("PRODUCT_NAME", "fallback"), ShouldEqual, "Ridge Runner 2")
			So(brand.Get("TAGLINE", "fallback"), ShouldEqual, "fallback")
			So(brand.Get("NO_SUCH_KEY", "fallback"), ShouldEqual, "fallback")
		})

		Convey("BrandName 缺失时为 unknown", func() {
			So(brand.BrandName(), ShouldEqual, "Northwind")
			So(BrandConfig{}.BrandName(), ShouldEqual, "unknown")
		})
	})
}

func TestLoadBrandConfig(t *testing.T) {
	Convey("LoadBrandConfig 从磁盘读取品牌配置", t, func() {
		dir := t.TempDir()

		Convey("合法配置读取成功", func() {
			path := filepath.Join(dir, "brand.json")
			content := `{"BRAND_NAME": "Northwind", "PRODUCT_NAME": "Ridge Runner 2"}`
			So(os.WriteFile(path, []byte(content), 0o644), ShouldBeNil)

			brand, err := LoadBrandConfig(path)
			So(err, ShouldBeNil)
			So(brand.BrandName(), ShouldEqual, "Northwind")
		})

		Convey("缺失 BRAND_NAME 报错", func() {
			path := filepath.Join(dir, "nameless.json")
			So(os.WriteFile(path, []byte(`{"PRODUCT_NAME": "X"}`), 0o644), ShouldBeNil)

			_, err := LoadBrandConfig(path)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "BRAND_NAME")
		})

		Convey("文件不存在报错", func() {
			_, err := LoadBrandConfig(filepath.Join(dir, "missing.json"))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestImageManifest(t *testing.T) {
	Convey("ImageManifest 成功行过滤与失败计数", t, func() {
		m := &ImageManifest{Elements: []ReferenceImage{
			{ElementName: "Maya", Status: StatusSuccess},
			{ElementName: "Vendor", Status: StatusFailed, Error: "quota"},
			{ElementName: "Market", Status: StatusSuccess},
		}}

		So(len(m.Successful()), ShouldEqual, 2)
		So(m.FailedCount(), ShouldEqual, 1)
	})
}
