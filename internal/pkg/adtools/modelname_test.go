package adtools

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSplitModelID(t *testing.T) {
	Convey("SplitModelID 拆分 provider/model 形式的模型 ID", t, func() {
		Convey("常规双段 ID", func() {
			provider, model := SplitModelID("anthropic/claude-sonnet-4-5-20250929")
			So(provider, ShouldEqual, "anthropic")
			So(model, ShouldEqual, "claude-sonnet-4-5-20250929")
		})

		Convey("多段 ID 只在第一个斜杠处拆分", func() {
			provider, model := SplitModelID("replicate/google/veo-3-fast")
			So(provider, ShouldEqual, "replicate")
			So(model, ShouldEqual, "google/veo-3-fast")
		})

		Convey("无斜杠时 provider 为空", func() {
			provider, model := SplitModelID("gpt-4o")
			So(provider, ShouldBeEmpty)
			So(model, ShouldEqual, "gpt-4o")
		})
	})
}

func TestCleanModelName(t *testing.T) {
	Convey("CleanModelName 生成产物文件名用的模型短名", t, func() {
		Convey("常见模型走映射表", func() {
			So(CleanModelName("claude-sonnet-4-5-20250929"), ShouldEqual, "claude_sonnet_4.5")
			So(CleanModelName("claude-haiku-4-5-20251001"), ShouldEqual, "claude_haiku_4.5")
			So(CleanModelName("gpt-5.1"), ShouldEqual, "gpt_5.1")
			So(CleanModelName("gpt-4o-2024-11-20"), ShouldEqual, "gpt_4o")
		})

		Convey("未命中映射表时 slug 化", func() {
			So(CleanModelName("gemini-2.5-flash"), ShouldEqual, "gemini_2.5_flash")
		})

		Convey("日期戳被剥掉", func() {
			So(CleanModelName("deepseek-v3-20250324"), ShouldEqual, "deepseek_v3")
			So(CleanModelName("o3-mini-2025-01-31"), ShouldEqual, "o3_mini")
		})
	})
}

func TestJudgeShortName(t *testing.T) {
	Convey("JudgeShortName 生成评审产物文件名用的短名", t, func() {
		So(JudgeShortName("anthropic/claude-sonnet-4-5-20250929"), ShouldEqual, "claude_4.5")
		So(JudgeShortName("openai/gpt-5.1"), ShouldEqual, "gpt_5.1")

		Convey("其余模型取末段再压缩", func() {
			So(JudgeShortName("openrouter/x-ai/grok-4"), ShouldEqual, "grok_4")
		})
	})
}

func TestModelSuffix(t *testing.T) {
	Convey("ModelSuffix 生成片段文件名后缀", t, func() {
		So(ModelSuffix("replicate/google/veo-3-fast"), ShouldEqual, "veo_3_fast")
		So(ModelSuffix("replicate/openai/sora-2"), ShouldEqual, "sora_2")

		Convey("无斜杠的裸模型名同样适用", func() {
			So(ModelSuffix("veo-3.1"), ShouldEqual, "veo_3.1")
		})
	})
}
