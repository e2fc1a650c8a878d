package ad

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"pomelo/internal/model/ad"
	"pomelo/internal/pkg/adtools"
)

// GenerateFirstFrames 为每个分镜并发生成首帧图
// 返回成功帧数与总场景数；单场景失败记日志后继续
func (s *pipelineService) GenerateFirstFrames(ctx context.Context, scenesPath, universePath, imagesDir, outputDir string) (int, int, error) {
	if s.image == nil {
		return 0, 0, fmt.Errorf("image provider is required, check models.image_model and credentials")
	}

	scenesData, err := os.ReadFile(scenesPath)
	if err != nil {
		return 0, 0, fmt.Errorf("read scene prompts: %w", err)
	}
	set, err := ad.ParseScenePromptSet(scenesData)
	if err != nil {
		return 0, 0, err
	}
	universeData, err := os.ReadFile(universePath)
	if err != nil {
		return 0, 0, fmt.Errorf("read universe: %w", err)
	}
	record, err := ad.ParseUniverseRecord(universeData)
	if err != nil {
		return 0, 0, err
	}

	// 1. 清单缺失时用空清单，首帧退化为纯提示词生成
	manifest := &ad.ImageManifest{}
	manifestPath := filepath.Join(imagesDir, "image_generation_summary.json")
	if fileExists(manifestPath) {
		manifest, err = ad.LoadImageManifest(manifestPath)
		if err != nil {
			return 0, 0, err
		}
	} else {
		log.Warn().Str("path", manifestPath).Msg("参考图清单缺失，首帧仅凭提示词生成")
	}
	resolver := adtools.NewResolver(record, manifest)

	concept := strings.TrimSuffix(stem(scenesPath), "_scene_prompts")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return 0, 0, fmt.Errorf("create first frames dir: %w", err)
	}
	style := s.brand.Get("CREATIVE_DIRECTION", "")

	log.Info().Str("concept", concept).Int("scenes", len(set.Scenes)).Msg("开始生成首帧")

	// 2. 并发生成，按场景序号写入固定位置
	done := make([]bool, len(set.Scenes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerLimit(s.cfg.Workers.Frames))
	for i := range set.Scenes {
		g.Go(func() error {
			done[i] = s.generateFirstFrame(gctx, &set.Scenes[i], resolver, style, concept, outputDir)
			return nil
		})
	}
	_ = g.Wait()

	produced := 0
	for _, ok := range done {
		if ok {
			produced++
		}
	}
	log.Info().Int("produced", produced).Int("total", len(set.Scenes)).Msg("首帧生成完成")
	return produced, len(set.Scenes), nil
}

// generateFirstFrame 生成单个分镜的首帧，成功返回 true
func (s *pipelineService) generateFirstFrame(ctx context.Context, scene *ad.Scene, resolver *adtools.Resolver, style, concept, outputDir string) bool {
	refs, misses := resolver.ResolveScene(scene)
	if len(misses) > 0 {
		log.Warn().
			Int("scene", scene.SceneNumber).
			Strs("misses", misses).
			Msg("部分元素名未命中参考图")
	}
	selected, _ := adtools.SelectReferences(refs, adtools.MaxSceneReferences)
	assembled := adtools.AssembleScenePrompt(scene.SceneNumber, scene.FirstFrameImagePrompt, style, selected)

	if err := s.limiter.Wait(ctx); err != nil {
		log.Error().Err(err).Int("scene", scene.SceneNumber).Msg("首帧生成中止")
		return false
	}
	result, err := s.image.GenerateImage(ctx, &adtools.ImageRequest{
		Prompt:          assembled.Text,
		Size:            adtools.ImageSize(s.cfg.Video.Resolution),
		AspectRatio:     s.cfg.Video.AspectRatio,
		ReferenceImages: assembled.RefPaths,
	})
	if err != nil {
		log.Error().Err(err).Int("scene", scene.SceneNumber).Msg("首帧生成失败")
		return false
	}

	framePath := filepath.Join(outputDir, fmt.Sprintf("%s_p%d_first_frame.png", concept, scene.SceneNumber))
	if err := os.WriteFile(framePath, result.Data, 0o644); err != nil {
		log.Error().Err(err).Int("scene", scene.SceneNumber).Msg("首帧落盘失败")
		return false
	}
	log.Info().Int("scene", scene.SceneNumber).Int("refs", len(assembled.RefPaths)).Str("file", framePath).Msg("首帧已生成")
	return true
}
