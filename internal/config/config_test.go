package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func validConfig() *Config {
	return &Config{
		Models: ModelsConfig{
			LLMModel:   "anthropic/claude-sonnet-4-5-20250929",
			ImageModel: "replicate/google/nano-banana",
			VideoModel: "replicate/google/veo-3-fast",
		},
		Video: VideoConfig{
			DurationSeconds: 30,
			Resolution:      "720p",
			AspectRatio:     "16:9",
		},
		Workers: WorkersConfig{Concepts: 4, Judges: 4, Images: 5, Frames: 5},
	}
}

func TestConfig_Validate(t *testing.T) {
	Convey("Config.Validate 验证配置有效性", t, func() {
		Convey("合法配置通过", func() {
			So(validConfig().Validate(), ShouldBeNil)
		})

		Convey("成片时长必须为正", func() {
			cfg := validConfig()
			cfg.Video.DurationSeconds = 0
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("分辨率只认 480p/720p/1080p", func() {
			cfg := validConfig()
			cfg.Video.Resolution = "2160p"
			err := cfg.Validate()
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "resolution")
		})

		Convey("并发度限制在 [1,16]", func() {
			cfg := validConfig()
			cfg.Workers.Images = 0
			So(cfg.Validate(), ShouldNotBeNil)

			cfg = validConfig()
			cfg.Workers.Judges = 17
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("三个阶段模型缺一不可", func() {
			cfg := validConfig()
			cfg.Models.VideoModel = ""
			err := cfg.Validate()
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "video_model")
		})
	})
}
