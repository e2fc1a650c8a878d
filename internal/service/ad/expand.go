package ad

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"pomelo/internal/model/ad"
	"pomelo/internal/pkg/adtools"
)

// ExpandConcept 把两三句的高层创意扩写成完整分镜叙事，
// 再用单条评审打分，最后按评审反馈修订。三步共用同一个文本模型
func (s *pipelineService) ExpandConcept(ctx context.Context, conceptText string) (*ExpandResult, error) {
	brandName := s.brand.BrandName()
	brandSlug := adtools.Slugify(brandName)
	modelID := s.cfg.Models.LLMModel
	sceneDuration := s.sceneDuration()
	batchDir := filepath.Join(s.cfg.Output.BaseOutputDir, brandSlug+"_"+batchTimestamp())

	log.Info().Str("brand", brandName).Str("model", modelID).Msg("开始扩写创意")

	// 1. 扩写
	prompt := adtools.BuildExpandPrompt(conceptText, s.brand, defaultSceneCount, sceneDuration)
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	expanded, err := s.ai.Model(modelID).GenerateWithSystem(ctx, adtools.ExpandSystemMessage, prompt)
	if err != nil {
		return nil, fmt.Errorf("expand concept call: %w", err)
	}

	conceptName := brandSlug + "_expanded_concept"
	if title := adtools.ExtractConceptTitle(expanded); title != "" {
		conceptName = adtools.ConceptSlugFromTitle(brandName, title)
	}

	expandedPath := filepath.Join(batchDir, conceptName+"_expanded.txt")
	if err := writeText(expandedPath, expanded); err != nil {
		return nil, err
	}
	meta := &ad.ExpandMetadata{
		ConceptName:     conceptName,
		BrandName:       brandName,
		Timestamp:       time.Now(),
		LLMModel:        modelID,
		SceneCount:      defaultSceneCount,
		SceneDuration:   sceneDuration,
		OriginalConcept: conceptText,
		ExpandedFile:    expandedPath,
	}
	if err := writeJSON(filepath.Join(batchDir, conceptName+"_metadata.json"), meta); err != nil {
		return nil, err
	}
	log.Info().Str("concept", conceptName).Str("file", expandedPath).Msg("创意扩写完成")

	// 2. 同一个模型做单条评审
	adStyle := s.brand.Get("PRODUCT_NAME", brandName) + " Advertisement"
	verdict, err := s.judgeConcept(ctx, modelID, adStyle, brandName, expanded)
	if err != nil {
		return nil, err
	}
	eval := &ad.ExpandEvaluation{
		JudgeVerdict: *verdict,
		BrandName:    brandName,
		ConceptName:  conceptName,
		JudgeModel:   modelID,
		Timestamp:    time.Now(),
		ConceptFile:  expandedPath,
	}
	evalPath := filepath.Join(batchDir, conceptName+"_evaluation.json")
	if err := writeJSON(evalPath, eval); err != nil {
		return nil, err
	}
	log.Info().Int("score", verdict.Score).Str("file", evalPath).Msg("扩写创意评审完成")

	// 3. 按评审的强弱项修订
	revisePrompt := adtools.BuildFeedbackRevisePrompt(expanded, verdict, s.brand, defaultSceneCount, sceneDuration)
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	revised, err := s.ai.Model(modelID).GenerateWithSystem(ctx, adtools.ExpandSystemMessage, revisePrompt)
	if err != nil {
		return nil, fmt.Errorf("revise expanded concept call: %w", err)
	}
	revisedPath := filepath.Join(batchDir, conceptName+"_revised.txt")
	if err := writeText(revisedPath, revised); err != nil {
		return nil, err
	}
	revMeta := &ad.RevisionMetadata{
		ConceptName:         conceptName,
		BrandName:           brandName,
		Timestamp:           time.Now(),
		LLMModel:            modelID,
		OriginalFile:        expandedPath,
		EvaluationFile:      evalPath,
		RevisedFile:         revisedPath,
		OriginalScore:       verdict.Score,
		WeaknessesAddressed: verdict.Weaknesses,
		StrengthsMaintained: verdict.Strengths,
	}
	if err := writeJSON(filepath.Join(batchDir, conceptName+"_revision_metadata.json"), revMeta); err != nil {
		return nil, err
	}
	log.Info().Str("file", revisedPath).Msg("扩写创意修订完成")

	return &ExpandResult{
		ConceptName:    conceptName,
		BatchDir:       batchDir,
		ExpandedFile:   expandedPath,
		EvaluationFile: evalPath,
		RevisedFile:    revisedPath,
		Score:          verdict.Score,
	}, nil
}
