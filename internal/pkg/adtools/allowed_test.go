package adtools

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"pomelo/internal/model/ad"
)

func TestNamesAlike(t *testing.T) {
	Convey("namesAlike 宽松判断两个名字是否指同一实体", t, func() {
		Convey("全等", func() {
			So(namesAlike("Smart Glasses", "Smart Glasses"), ShouldBeTrue)
		})

		Convey("小写去空格后全等", func() {
			So(namesAlike("Smart  Glasses", "smart glasses"), ShouldBeTrue)
		})

		Convey("去括号基名互相包含", func() {
			So(namesAlike("Maya (Protagonist)", "Maya (the Protagonist)"), ShouldBeTrue)
			So(namesAlike("Golden Hour Rooftop", "Golden Hour Rooftop (Sunset)"), ShouldBeTrue)
		})

		Convey("不相干的名字不算同一实体", func() {
			So(namesAlike("Night Market", "Harbor Pier"), ShouldBeFalse)
		})
	})
}

func TestDisplayNameMap(t *testing.T) {
	Convey("DisplayNameMap 建立宇宙名到清单展示名的映射", t, func() {
		universe := &ad.UniverseRecord{
			Characters: []ad.Entity{
				{Name: "Maya", ScenesUsed: []int{1, 2}},
			},
			Universe: ad.Universe{
				Locations: []ad.Entity{
					{Name: "Golden Hour Rooftop", ScenesUsed: []int{1, 3}},
				},
			},
		}
		manifest := &ad.ImageManifest{Elements: []ad.ReferenceImage{
			{ElementName: "Maya (Protagonist)", ElementType: ad.ElementCharacter, Status: ad.StatusSuccess},
			{ElementName: "Golden Hour Rooftop (Sunset)", ElementType: ad.ElementLocation, Status: ad.StatusSuccess},
		}}

		Convey("微调过的名字映射到清单里的写法", func() {
			mapping := DisplayNameMap(universe, manifest)
			So(mapping["Maya"], ShouldEqual, "Maya (Protagonist)")
			So(mapping["Golden Hour Rooftop"], ShouldEqual, "Golden Hour Rooftop (Sunset)")
		})

		Convey("清单为空时映射为空", func() {
			So(DisplayNameMap(universe, nil), ShouldBeEmpty)
		})
	})
}

func TestAllowedNames(t *testing.T) {
	Convey("AllowedNames 生成某一类实体的可用名单", t, func() {
		entities := []ad.Entity{
			{Name: "Maya"},
			{Name: "Courier"},
		}

		Convey("有映射时替换为清单展示名", func() {
			names := AllowedNames(entities, map[string]string{"Maya": "Maya (Protagonist)"})
			So(names, ShouldResemble, []string{"Maya (Protagonist)", "Courier"})
		})

		Convey("没有映射时保留宇宙名", func() {
			names := AllowedNames(entities, map[string]string{})
			So(names, ShouldResemble, []string{"Maya", "Courier"})
		})
	})
}
