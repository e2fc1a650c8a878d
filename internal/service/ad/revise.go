package ad

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"pomelo/internal/pkg/adtools"
)

// ReviseScript 对创意做保证渲染时长的微调
// 只简化撑不进单场景时长的描述，不动故事主线；概念名取创意文件名主干
func (s *pipelineService) ReviseScript(ctx context.Context, conceptPath, outputDir string) (string, error) {
	data, err := os.ReadFile(conceptPath)
	if err != nil {
		return "", fmt.Errorf("read concept: %w", err)
	}

	prompt := adtools.BuildRevisePrompt(string(data), s.brand, s.cfg.Video.DurationSeconds, defaultSceneCount)

	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}
	revised, err := s.ai.Model(s.cfg.Models.LLMModel).Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("revise script: %w", err)
	}

	outPath := filepath.Join(outputDir, stem(conceptPath)+"_revised.txt")
	if err := writeText(outPath, revised); err != nil {
		return "", err
	}

	log.Info().Str("file", outPath).Msg("修订剧本已生成")
	return outPath, nil
}
