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

// GenerateScenePrompts 由修订剧本和宇宙记录生成逐场景导演提示
// 有参考图清单时，允许名单换成清单里的元素名，保证后续解析能命中参考图
func (s *pipelineService) GenerateScenePrompts(ctx context.Context, revisedPath, universePath, manifestPath, outputDir string) (*ad.ScenePromptSet, string, error) {
	script, err := os.ReadFile(revisedPath)
	if err != nil {
		return nil, "", fmt.Errorf("read revised script: %w", err)
	}
	universeJSON, err := os.ReadFile(universePath)
	if err != nil {
		return nil, "", fmt.Errorf("read universe: %w", err)
	}
	record, err := ad.ParseUniverseRecord(universeJSON)
	if err != nil {
		return nil, "", err
	}

	// 1. 清单可缺省；缺省时允许名单直接用宇宙名
	var manifest *ad.ImageManifest
	if manifestPath != "" && fileExists(manifestPath) {
		manifest, err = ad.LoadImageManifest(manifestPath)
		if err != nil {
			return nil, "", err
		}
	}
	nameMap := adtools.DisplayNameMap(record, manifest)

	// 2. 组装提示词
	prompt := adtools.BuildScenePromptsPrompt(&adtools.ScenePromptInput{
		RevisedScript:     string(script),
		UniverseJSON:      string(universeJSON),
		Brand:             s.brand,
		AllowedCharacters: adtools.AllowedNames(record.Characters, nameMap),
		AllowedLocations:  adtools.AllowedNames(record.Universe.Locations, nameMap),
		AllowedProps:      adtools.AllowedNames(record.Universe.Props, nameMap),
		SceneCount:        defaultSceneCount,
		SceneDuration:     s.sceneDuration(),
		Resolution:        s.cfg.Video.Resolution,
		AspectRatio:       s.cfg.Video.AspectRatio,
	})

	// 3. 调用模型，解析失败时保留原始响应便于排查
	concept := strings.TrimSuffix(stem(revisedPath), "_revised")
	outPath := filepath.Join(outputDir, concept+"_scene_prompts.json")

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, "", err
	}
	raw, response, err := adtools.GenerateJSON(ctx, s.ai.Model(s.cfg.Models.LLMModel), "", prompt)
	if err != nil {
		if response == "" {
			return nil, "", fmt.Errorf("scene prompts call: %w", err)
		}
		return nil, "", s.saveRawResponse(outPath, response, err)
	}
	set, err := ad.ParseScenePromptSet(raw)
	if err != nil {
		return nil, "", s.saveRawResponse(outPath, response, err)
	}

	if err := writeJSON(outPath, set); err != nil {
		return nil, "", err
	}
	log.Info().Int("scenes", len(set.Scenes)).Str("file", outPath).Msg("分镜提示已生成")
	return set, outPath, nil
}
