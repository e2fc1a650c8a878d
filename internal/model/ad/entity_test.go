package ad

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEntity_UnmarshalJSON(t *testing.T) {
	Convey("Entity 解码兼容单版本与多版本两种输入形态", t, func() {
		Convey("单版本形态直接映射", func() {
			data := `{
				"name": "Smart Glasses",
				"scenes_used": [3, 1],
				"description": "slim black frame",
				"image_generation_prompt": "product shot of slim black smart glasses"
			}`

			var e Entity
			So(json.Unmarshal([]byte(data), &e), ShouldBeNil)
			So(e.Name, ShouldEqual, "Smart Glasses")
			So(e.ScenesUsed, ShouldResemble, []int{1, 3})
			So(e.Description, ShouldEqual, "slim black frame")
			So(e.CollapsedFrom, ShouldBeEmpty)
		})

		Convey("多版本形态折叠为规范形态", func() {
			data := `{
				"name": "Chef Marco",
				"scenes_used": [1],
				"description": "top-level desc",
				"image_generation_prompt": "top-level prompt",
				"has_multiple_versions": true,
				"versions": [
					{
						"version_name": "Chef Marco - Flour Dusted",
						"scenes_used": [2, 3],
						"description": "whites dusted with flour",
						"image_generation_prompt": "flour dusted prompt",
						"is_original": false
					},
					{
						"version_name": "Chef Marco - Clean Whites",
						"scenes_used": [4],
						"description": "spotless chef whites",
						"image_generation_prompt": "clean whites prompt",
						"is_original": true
					}
				]
			}`

			var e Entity
			So(json.Unmarshal([]byte(data), &e), ShouldBeNil)

			Convey("取 is_original 版本作为规范形态", func() {
				So(e.Description, ShouldEqual, "spotless chef whites")
				So(e.ImageGenerationPrompt, ShouldEqual, "clean whites prompt")
			})

			Convey("scenes_used 取各版本并集并排序", func() {
				So(e.ScenesUsed, ShouldResemble, []int{1, 2, 3, 4})
			})

			Convey("被折叠的版本名留痕", func() {
				So(e.CollapsedFrom, ShouldResemble, []string{"Chef Marco - Flour Dusted", "Chef Marco - Clean Whites"})
			})
		})

		Convey("没有 is_original 标记时取第一个版本", func() {
			data := `{
				"name": "Courier Bag",
				"versions": [
					{"version_name": "Courier Bag - New", "scenes_used": [1, 2], "description": "pristine canvas", "image_generation_prompt": "new bag"},
					{"version_name": "Courier Bag - Worn", "scenes_used": [4], "description": "scuffed canvas", "image_generation_prompt": "worn bag"}
				]
			}`

			var e Entity
			So(json.Unmarshal([]byte(data), &e), ShouldBeNil)
			So(e.Description, ShouldEqual, "pristine canvas")
			So(e.ScenesUsed, ShouldResemble, []int{1, 2, 4})
		})

		Convey("缺失 name 报错", func() {
			var e Entity
			err := json.Unmarshal([]byte(`{"scenes_used": [1, 2]}`), &e)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "missing name")
		})
	})
}

func TestEntity_SceneMembership(t *testing.T) {
	Convey("Entity 场景归属判断", t, func() {
		e := Entity{Name: "Maya", ScenesUsed: []int{1, 3}}

		So(e.UsedInScene(1), ShouldBeTrue)
		So(e.UsedInScene(2), ShouldBeFalse)
		So(e.Recurring(), ShouldBeTrue)

		Convey("只出现一幕不算跨场景", func() {
			single := Entity{Name: "Taxi", ScenesUsed: []int{2}}
			So(single.Recurring(), ShouldBeFalse)
		})
	})
}

func TestParseUniverseRecord(t *testing.T) {
	Convey("ParseUniverseRecord 解析宇宙记录", t, func() {
		Convey("完整记录按类别分区", func() {
			data := `{
				"universe": {
					"locations": [
						{"name": "Night Market", "scenes_used": [1, 3], "description": "lantern-lit alley", "image_generation_prompt": "night market alley"}
					],
					"props": [
						{"name": "Smart Glasses", "scenes_used": [1, 2, 3], "description": "slim frame", "image_generation_prompt": "smart glasses"}
					]
				},
				"characters": [
					{"name": "Maya", "scenes_used": [1, 2, 3], "description": "commuter", "image_generation_prompt": "portrait of maya"},
					{"name": "Vendor", "scenes_used": [2, 3], "description": "stall keeper", "image_generation_prompt": "portrait of vendor"}
				]
			}`

			rec, err := ParseUniverseRecord([]byte(data))
			So(err, ShouldBeNil)
			So(rec.TotalEntities(), ShouldEqual, 4)
			So(len(rec.EntitiesOf(ElementCharacter)), ShouldEqual, 2)
			So(len(rec.EntitiesOf(ElementProp)), ShouldEqual, 1)
			So(len(rec.EntitiesOf(ElementLocation)), ShouldEqual, 1)
		})

		Convey("坏 JSON 报错", func() {
			_, err := ParseUniverseRecord([]byte(`{"characters": [`))
			So(err, ShouldNotBeNil)
		})
	})
}
