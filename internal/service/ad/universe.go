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

// ExtractUniverse 从修订剧本抽取宇宙实体（角色/道具/场地）
// 响应解析失败时原文落盘为 *_raw_response.txt 再报错；
// 解析成功后丢弃出场不足两幕的实体，单场景元素由首帧提示词自己描述
func (s *pipelineService) ExtractUniverse(ctx context.Context, revisedPath, outputDir string) (*ad.UniverseRecord, string, error) {
	data, err := os.ReadFile(revisedPath)
	if err != nil {
		return nil, "", fmt.Errorf("read revised script: %w", err)
	}

	prompt := adtools.BuildUniversePrompt(string(data), s.brand, defaultSceneCount)

	conceptName := strings.TrimSuffix(stem(revisedPath), "_revised")
	outPath := filepath.Join(outputDir, conceptName+"_universe_characters.json")

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, "", err
	}
	jsonData, response, err := adtools.GenerateJSON(ctx, s.ai.Model(s.cfg.Models.LLMModel), "", prompt)
	if err != nil {
		if response == "" {
			return nil, "", fmt.Errorf("extract universe: %w", err)
		}
		return nil, "", s.saveRawResponse(outPath, response, err)
	}
	record, err := ad.ParseUniverseRecord(jsonData)
	if err != nil {
		return nil, "", s.saveRawResponse(outPath, response, err)
	}

	dropTransient(record)

	if err := writeJSON(outPath, record); err != nil {
		return nil, "", err
	}

	log.Info().
		Int("characters", len(record.Characters)).
		Int("locations", len(record.Universe.Locations)).
		Int("props", len(record.Universe.Props)).
		Str("file", outPath).
		Msg("宇宙实体已抽取")
	return record, outPath, nil
}

// saveRawResponse 把无法解析的模型响应原样落盘，返回带落盘位置的错误
func (s *pipelineService) saveRawResponse(artifactPath, response string, cause error) error {
	rawPath := strings.TrimSuffix(artifactPath, filepath.Ext(artifactPath)) + "_raw_response.txt"
	if err := writeText(rawPath, response); err != nil {
		log.Error().Err(err).Str("file", rawPath).Msg("原始响应落盘失败")
		return fmt.Errorf("parse model response: %w", cause)
	}
	return fmt.Errorf("parse model response (raw saved to %s): %w", rawPath, cause)
}

// dropTransient 丢弃出场不足两幕的实体
// 参考图只为跨场景一致性服务，只出现一次的元素不需要
func dropTransient(u *ad.UniverseRecord) {
	u.Characters = keepRecurring(u.Characters, ad.ElementCharacter)
	u.Universe.Locations = keepRecurring(u.Universe.Locations, ad.ElementLocation)
	u.Universe.Props = keepRecurring(u.Universe.Props, ad.ElementProp)
}

func keepRecurring(entities []ad.Entity, t ad.ElementType) []ad.Entity {
	kept := entities[:0]
	for _, e := range entities {
		if e.Recurring() {
			kept = append(kept, e)
			continue
		}
		log.Info().
			Str("type", string(t)).
			Str("name", e.Name).
			Ints("scenes", e.ScenesUsed).
			Msg("出场不足两幕，从宇宙记录中剔除")
	}
	return kept
}
