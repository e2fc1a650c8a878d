package ad

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"pomelo/internal/model/ad"
	"pomelo/internal/pkg/adtools"
)

// refTask 单个实体的参考图生成任务
type refTask struct {
	entity ad.Entity
	etype  ad.ElementType
}

// GenerateReferenceImages 为宇宙实体并发生成 canonical 参考图
// 单实体失败写进清单行，不影响其他实体；清单落盘为 image_generation_summary.json
func (s *pipelineService) GenerateReferenceImages(ctx context.Context, universePath, outputDir string) (*ad.ImageManifest, string, error) {
	if s.image == nil {
		return nil, "", fmt.Errorf("image provider is required, check models.image_model and credentials")
	}

	data, err := os.ReadFile(universePath)
	if err != nil {
		return nil, "", fmt.Errorf("read universe: %w", err)
	}
	record, err := ad.ParseUniverseRecord(data)
	if err != nil {
		return nil, "", err
	}

	scriptID := strings.TrimSuffix(stem(universePath), "_universe_characters")

	// 1. 收集出场两幕以上的实体；宇宙抽取已过滤，这里再挡一道手工改过的文件
	var tasks []refTask
	for _, group := range []struct {
		etype    ad.ElementType
		entities []ad.Entity
	}{
		{ad.ElementCharacter, record.Characters},
		{ad.ElementLocation, record.Universe.Locations},
		{ad.ElementProp, record.Universe.Props},
	} {
		for _, e := range group.entities {
			if !e.Recurring() {
				log.Info().
					Str("type", string(group.etype)).
					Str("name", e.Name).
					Msg("出场不足两幕，跳过参考图")
				continue
			}
			tasks = append(tasks, refTask{entity: e, etype: group.etype})
		}
	}

	log.Info().Str("script", scriptID).Int("elements", len(tasks)).Msg("开始生成参考图")

	// 2. 并发生成，结果按任务序号写入固定位置
	rows := make([]ad.ReferenceImage, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerLimit(s.cfg.Workers.Images))
	for i, task := range tasks {
		g.Go(func() error {
			rows[i] = s.generateElementImage(gctx, task.entity, task.etype, outputDir)
			return nil
		})
	}
	_ = g.Wait()

	// 3. 落盘图片清单
	manifest := &ad.ImageManifest{
		ScriptID:    scriptID,
		Model:       s.cfg.Models.ImageModel,
		GeneratedAt: time.Now(),
		Elements:    rows,
	}
	manifestPath := filepath.Join(outputDir, "image_generation_summary.json")
	if err := writeJSON(manifestPath, manifest); err != nil {
		return nil, "", err
	}

	log.Info().
		Int("successful", len(manifest.Successful())).
		Int("failed", manifest.FailedCount()).
		Str("manifest", manifestPath).
		Msg("参考图生成完成")
	return manifest, manifestPath, nil
}

// generateElementImage 为单个实体生成 canonical 参考图，返回清单行
func (s *pipelineService) generateElementImage(ctx context.Context, e ad.Entity, etype ad.ElementType, outputDir string) ad.ReferenceImage {
	slug := adtools.Slugify(e.Name)
	row := ad.ReferenceImage{
		ElementName: e.Name,
		ElementType: etype,
		Slug:        slug,
	}

	if e.ImageGenerationPrompt == "" {
		row.Status = ad.StatusFailed
		row.Error = "missing image_generation_prompt"
		log.Warn().Str("name", e.Name).Msg("实体缺少参考图提示词，跳过")
		return row
	}

	if err := s.limiter.Wait(ctx); err != nil {
		row.Status = ad.StatusFailed
		row.Error = err.Error()
		return row
	}

	result, err := s.image.GenerateImage(ctx, &adtools.ImageRequest{
		Prompt:      e.ImageGenerationPrompt,
		Size:        adtools.ImageSize(s.cfg.Video.Resolution),
		AspectRatio: s.cfg.Video.AspectRatio,
	})
	if err != nil {
		row.Status = ad.StatusFailed
		row.Error = err.Error()
		log.Error().Err(err).Str("name", e.Name).Msg("参考图生成失败")
		return row
	}

	ext := adtools.ImageExtension(result.Data)
	path := filepath.Join(outputDir, elementDir(etype), slug, slug+"_canonical."+ext)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		row.Status = ad.StatusFailed
		row.Error = err.Error()
		return row
	}
	if err := os.WriteFile(path, result.Data, 0o644); err != nil {
		row.Status = ad.StatusFailed
		row.Error = err.Error()
		return row
	}

	row.Status = ad.StatusSuccess
	row.Filepath = path
	row.URL = result.SourceURL
	log.Info().Str("name", e.Name).Str("file", path).Msg("参考图已生成")
	return row
}

// elementDir 实体类别对应的输出目录名（复数形式）
func elementDir(t ad.ElementType) string {
	switch t {
	case ad.ElementCharacter:
		return "characters"
	case ad.ElementLocation:
		return "locations"
	default:
		return "props"
	}
}
