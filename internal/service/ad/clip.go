package ad

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"pomelo/internal/model/ad"
	"pomelo/internal/pkg/adtools"
)

// GenerateClips 逐场景生成视频片段。视频接口按分钟计费且并发配额极低，
// 这里刻意串行。已存在的片段默认保留，force 为 true 时重新生成。
// 返回当前可用片段数与总场景数。
func (s *pipelineService) GenerateClips(ctx context.Context, scenesPath, firstFramesDir, outputDir string, force bool) (int, int, error) {
	if s.video == nil {
		return 0, 0, fmt.Errorf("video provider is required, check models.video_model and credentials")
	}

	scenesData, err := os.ReadFile(scenesPath)
	if err != nil {
		return 0, 0, fmt.Errorf("read scene prompts: %w", err)
	}
	set, err := ad.ParseScenePromptSet(scenesData)
	if err != nil {
		return 0, 0, err
	}

	concept := strings.TrimSuffix(stem(scenesPath), "_scene_prompts")
	videoModel := s.cfg.Models.VideoModel
	suffix := adtools.ModelSuffix(videoModel)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return 0, 0, fmt.Errorf("create clips dir: %w", err)
	}

	log.Info().Str("concept", concept).Str("model", videoModel).Ints("scenes", set.SceneNumbers()).Msg("开始生成视频片段")

	available := 0
	for i := range set.Scenes {
		scene := &set.Scenes[i]
		clipPath := filepath.Join(outputDir, fmt.Sprintf("%s_p%d_%s.mp4", concept, scene.SceneNumber, suffix))

		// 1. 已有片段直接复用，避免重复计费
		if fileExists(clipPath) && !force {
			log.Info().Int("scene", scene.SceneNumber).Str("file", clipPath).Msg("片段已存在，跳过")
			available++
			continue
		}

		// 2. 首帧是图生视频的必要输入，缺失时跳过该场景
		framePath := filepath.Join(firstFramesDir, fmt.Sprintf("%s_p%d_first_frame.png", concept, scene.SceneNumber))
		if !fileExists(framePath) {
			log.Warn().Int("scene", scene.SceneNumber).Str("frame", framePath).Msg("首帧缺失，跳过片段生成")
			continue
		}

		// 3. 时长吸附到模型支持的档位
		duration := adtools.SnapDuration(videoModel, scene.DurationSeconds)
		if duration != scene.DurationSeconds {
			log.Info().
				Int("scene", scene.SceneNumber).
				Int("requested", scene.DurationSeconds).
				Int("snapped", duration).
				Msg("时长吸附到模型支持档位")
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return available, len(set.Scenes), err
		}
		result, err := s.video.GenerateVideo(ctx, &adtools.VideoRequest{
			Prompt:          scene.ClipPrompt(),
			DurationSeconds: duration,
			Resolution:      s.cfg.Video.Resolution,
			AspectRatio:     s.cfg.Video.AspectRatio,
			FirstFrame:      framePath,
		})
		if err != nil {
			log.Error().Err(err).Int("scene", scene.SceneNumber).Msg("片段生成失败")
			continue
		}
		if err := os.WriteFile(clipPath, result.Data, 0o644); err != nil {
			log.Error().Err(err).Int("scene", scene.SceneNumber).Msg("片段落盘失败")
			continue
		}
		available++
		log.Info().Int("scene", scene.SceneNumber).Int("duration", duration).Str("file", clipPath).Msg("片段已生成")
	}

	log.Info().Int("available", available).Int("total", len(set.Scenes)).Msg("视频片段生成完成")
	return available, len(set.Scenes), nil
}
