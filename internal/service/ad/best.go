package ad

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"pomelo/internal/model/ad"
	"pomelo/internal/pkg/adtools"
)

// ExtractBestConcept 从评审文档抽取全场最高分创意并落盘记录
// evaluationPath 为空时定位评审目录下当前品牌最新的评审文件。
// 记录写在评审文件旁边，文件名由评审文件名去掉 "_evaluation" 推导
func (s *pipelineService) ExtractBestConcept(evaluationPath string) (*ad.BestConceptRecord, string, error) {
	if evaluationPath == "" {
		var err error
		evaluationPath, err = s.latestEvaluation()
		if err != nil {
			return nil, "", err
		}
		log.Info().Str("evaluation", evaluationPath).Msg("未指定评审文件，使用最近一次评审")
	}

	doc, err := ad.LoadEvaluationDocument(evaluationPath)
	if err != nil {
		return nil, "", err
	}

	best, err := doc.Best()
	if err != nil {
		return nil, "", fmt.Errorf("extract best from %s: %w", evaluationPath, err)
	}

	// 回查最高分条目所在的风格组
	var adStyle string
	for gi := range doc.Evaluations {
		for ei := range doc.Evaluations[gi].Evaluations {
			if &doc.Evaluations[gi].Evaluations[ei] == best {
				adStyle = doc.Evaluations[gi].AdStyle
			}
		}
	}

	record := &ad.BestConceptRecord{
		EvaluationFile: evaluationPath,
		ExtractedAt:    time.Now(),
		BestConcept:    *best,
		AdStyle:        adStyle,
		BrandName:      doc.Summary.Brand,
	}

	outStem := strings.Replace(stem(evaluationPath), "_evaluation", "", 1)
	outPath := filepath.Join(filepath.Dir(evaluationPath), outStem+"_best_concept.json")
	if err := writeJSON(outPath, record); err != nil {
		return nil, "", err
	}

	log.Info().
		Int("score", best.Score).
		Str("style", adStyle).
		Str("model", best.Model).
		Str("concept", best.File).
		Msg("最高分创意已抽取")
	return record, outPath, nil
}

// latestEvaluation 定位评审目录下当前品牌最新的评审 JSON
func (s *pipelineService) latestEvaluation() (string, error) {
	brandSlug := adtools.Slugify(s.brand.BrandName())
	return latestFileMatching(s.cfg.Evaluation.OutputDir, brandSlug+"_evaluation_*.json")
}
