package ad

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"pomelo/internal/model/ad"
	"pomelo/internal/pkg/adtools"
)

func TestDropTransient(t *testing.T) {
	Convey("宇宙记录落盘前剔除出场不足两幕的实体", t, func() {
		Convey("从带围栏和尾随逗号的原始响应一路到过滤后的记录", func() {
			raw := "```json\n" + `{
				"universe": {
					"locations": [
						{"name": "Night Market", "scenes_used": [1, 3], "description": "alley", "image_generation_prompt": "alley"},
						{"name": "Taxi Interior", "scenes_used": [2], "description": "cab", "image_generation_prompt": "cab"},
					],
					"props": [
						{"name": "Smart Glasses", "scenes_used": [1, 2, 3], "description": "frame", "image_generation_prompt": "frame"}
					]
				},
				"characters": [
					{"name": "Maya", "scenes_used": [1, 2, 3], "description": "commuter", "image_generation_prompt": "maya"},
					{"name": "Passerby", "scenes_used": [2], "description": "extra", "image_generation_prompt": "extra"}
				]
			}` + "\n```"

			jsonData, err := adtools.ExtractJSON(raw)
			So(err, ShouldBeNil)
			rec, err := ad.ParseUniverseRecord(jsonData)
			So(err, ShouldBeNil)
			So(rec.TotalEntities(), ShouldEqual, 5)

			dropTransient(rec)

			So(rec.TotalEntities(), ShouldEqual, 3)
			So(len(rec.Characters), ShouldEqual, 1)
			So(rec.Characters[0].Name, ShouldEqual, "Maya")
			So(len(rec.Universe.Locations), ShouldEqual, 1)
			So(rec.Universe.Locations[0].Name, ShouldEqual, "Night Market")

			Convey("留下的实体全部跨两幕以上", func() {
				for _, et := range []ad.ElementType{ad.ElementCharacter, ad.ElementProp, ad.ElementLocation} {
					for _, e := range rec.EntitiesOf(et) {
						So(len(e.ScenesUsed), ShouldBeGreaterThanOrEqualTo, 2)
					}
				}
			})
		})
	})
}

func TestSaveRawResponse(t *testing.T) {
	Convey("解析失败时原始响应落盘", t, func() {
		s := &pipelineService{}
		dir := t.TempDir()
		artifact := filepath.Join(dir, "demo_universe_characters.json")
		cause := errors.New("unexpected end of JSON input")

		err := s.saveRawResponse(artifact, "not json at all", cause)
		So(err, ShouldNotBeNil)
		So(errors.Is(err, cause), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "_raw_response.txt")

		data, readErr := os.ReadFile(filepath.Join(dir, "demo_universe_characters_raw_response.txt"))
		So(readErr, ShouldBeNil)
		So(string(data), ShouldEqual, "not json at all")
	})
}
