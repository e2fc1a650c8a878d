package adtools

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"pomelo/internal/model/ad"
)

func testBrand() ad.BrandConfig {
	return ad.BrandConfig{
		"BRAND_NAME":          "Northwind",
		"PRODUCT_DESCRIPTION": "trail-running shoes built for mud and rain",
		"TAGLINE":             "Own the uphill",
		"TARGET_AUDIENCE":     "trail runners aged 25-40",
		"CREATIVE_DIRECTION":  "muddy golden-hour realism",
	}
}

func TestBuildScenePromptsPrompt(t *testing.T) {
	Convey("分镜导演提示词的变量全部落位", t, func() {
		in := &ScenePromptInput{
			RevisedScript:     "five scene narrative body",
			UniverseJSON:      `{"characters": []}`,
			Brand:             testBrand(),
			AllowedCharacters: []string{"Chef (Protagonist)", "Street Vendor"},
			AllowedLocations:  []string{"Night Market"},
			SceneCount:        5,
			SceneDuration:     6,
			Resolution:        "720p",
			AspectRatio:       "16:9",
		}

		prompt := BuildScenePromptsPrompt(in)
		So(prompt, ShouldContainSubstring, "Brand: Northwind")
		So(prompt, ShouldContainSubstring, "five scene narrative body")
		So(prompt, ShouldContainSubstring, "- Chef (Protagonist)")
		So(prompt, ShouldContainSubstring, "- Street Vendor")
		So(prompt, ShouldContainSubstring, "- Night Market")
		So(prompt, ShouldContainSubstring, "Scene Duration: 6 seconds")
		So(prompt, ShouldContainSubstring, "Resolution: 720p")
		So(prompt, ShouldNotContainSubstring, "%!")

		Convey("空名单渲染为 (none)，提示模型别编名字", func() {
			So(prompt, ShouldContainSubstring, "- (none)")
		})
	})
}

func TestBuildUniversePrompt(t *testing.T) {
	Convey("宇宙抽取提示词的变量全部落位", t, func() {
		prompt := BuildUniversePrompt("the revised script", testBrand(), 5)

		So(prompt, ShouldContainSubstring, "5-scene ad concept")
		So(prompt, ShouldContainSubstring, "Brand: Northwind")
		So(prompt, ShouldContainSubstring, "the revised script")
		So(prompt, ShouldContainSubstring, "hyper-realistic")
		So(prompt, ShouldContainSubstring, "scenes_used")
		So(prompt, ShouldContainSubstring, "**JSON SCHEMA**")
		So(prompt, ShouldContainSubstring, "Output ONLY the JSON object")
		So(prompt, ShouldNotContainSubstring, "%!")
	})
}

func TestBuildJudgePrompt(t *testing.T) {
	Convey("评审提示词的变量全部落位", t, func() {
		prompt := BuildJudgePrompt("Humor - Hilarious", "Northwind", "the concept body")

		So(prompt, ShouldContainSubstring, "**BRAND**: Northwind")
		So(prompt, ShouldContainSubstring, "**AD STYLE**: Humor - Hilarious")
		So(prompt, ShouldContainSubstring, "laugh out loud")
		So(prompt, ShouldContainSubstring, "the concept body")
		So(prompt, ShouldNotContainSubstring, "%!")
	})
}

func TestBuildRevisePrompt(t *testing.T) {
	Convey("剧本修订提示词的变量全部落位", t, func() {
		prompt := BuildRevisePrompt("original concept body", testBrand(), 30, 5)

		So(prompt, ShouldContainSubstring, "rendered in 30 seconds")
		So(prompt, ShouldContainSubstring, "approximately 6 seconds per scene")
		So(prompt, ShouldContainSubstring, "original concept body")
		So(prompt, ShouldContainSubstring, "**STANDOUT ELEMENTS:**")
		So(prompt, ShouldNotContainSubstring, "%!")
	})
}

func TestBuildExpandPrompt(t *testing.T) {
	Convey("概念扩写提示词的变量全部落位", t, func() {
		prompt := BuildExpandPrompt("a two sentence idea", testBrand(), 5, 6)

		So(prompt, ShouldContainSubstring, "30-second video advertisement (5 scenes, approximately 6 seconds each)")
		So(prompt, ShouldContainSubstring, "a two sentence idea")
		So(prompt, ShouldContainSubstring, "**CONCEPT TITLE**")
		So(prompt, ShouldContainSubstring, "(0:00-0:06)")
		So(prompt, ShouldContainSubstring, "**WHY IT WORKS:**")
		So(prompt, ShouldNotContainSubstring, "%!")
	})
}

func TestBuildFeedbackRevisePrompt(t *testing.T) {
	Convey("反馈修订提示词的变量全部落位", t, func() {
		verdict := &ad.JudgeVerdict{
			Score:      72,
			Strengths:  []string{"strong emotional hook"},
			Weaknesses: []string{"weak brand integration"},
		}
		prompt := BuildFeedbackRevisePrompt("the original concept", verdict, testBrand(), 5, 6)

		So(prompt, ShouldContainSubstring, "scored the following ad concept 72/100")
		So(prompt, ShouldContainSubstring, "- strong emotional hook")
		So(prompt, ShouldContainSubstring, "- weak brand integration")
		So(prompt, ShouldContainSubstring, "the original concept")
		So(prompt, ShouldContainSubstring, "30-second total duration")
		So(prompt, ShouldNotContainSubstring, "%!")
	})
}
