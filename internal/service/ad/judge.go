package ad

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"pomelo/internal/model/ad"
	"pomelo/internal/pkg/adtools"
)

// JudgeBatch 评审一个批次的全部创意
// summaryPath 为空时定位结果目录下最新批次的汇总文件。
// 按风格分组，组内并发评审后按分数降序排列；单条失败只记日志，不中断批次
func (s *pipelineService) JudgeBatch(ctx context.Context, summaryPath string) (string, string, error) {
	if summaryPath == "" {
		var err error
		summaryPath, err = s.latestBatchSummary()
		if err != nil {
			return "", "", err
		}
		log.Info().Str("summary", summaryPath).Msg("未指定批次汇总，评审最近一批")
	}

	summary, err := ad.LoadBatchSummary(summaryPath)
	if err != nil {
		return "", "", err
	}
	brandName := summary.BrandName
	if brandName == "" {
		brandName = s.brand.BrandName()
	}
	judgeModel := s.judgeModelID()

	// 1. 成功的结果按风格分组，保持批次中的出现顺序
	var styleOrder []string
	groups := make(map[string][]ad.ConceptResult)
	for _, r := range summary.Results {
		if r.Status != ad.TaskSuccess {
			continue
		}
		if _, ok := groups[r.AdStyle]; !ok {
			styleOrder = append(styleOrder, r.AdStyle)
		}
		groups[r.AdStyle] = append(groups[r.AdStyle], r)
	}
	if len(styleOrder) == 0 {
		return "", "", fmt.Errorf("batch summary %s contains no successful concepts", summaryPath)
	}

	log.Info().
		Str("brand", brandName).
		Str("judge", judgeModel).
		Int("styles", len(styleOrder)).
		Msg("开始评审创意批次")

	// 2. 逐风格组评审
	var styleEvals []ad.StyleEvaluation
	for _, style := range styleOrder {
		results := groups[style]
		evals := make([]*ad.ConceptEvaluation, len(results))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workerLimit(s.cfg.Workers.Judges))
		for i, r := range results {
			g.Go(func() error {
				eval, err := s.judgeOne(gctx, judgeModel, style, brandName, r)
				if err != nil {
					log.Error().Err(err).
						Str("style", style).
						Str("model", r.Model).
						Str("template", r.Template).
						Msg("单条创意评审失败")
					return nil
				}
				evals[i] = eval
				return nil
			})
		}
		_ = g.Wait()

		kept := make([]ad.ConceptEvaluation, 0, len(evals))
		for _, e := range evals {
			if e != nil {
				kept = append(kept, *e)
			}
		}
		sort.SliceStable(kept, func(i, j int) bool { return kept[i].Score > kept[j].Score })

		styleEvals = append(styleEvals, ad.StyleEvaluation{
			AdStyle:     style,
			BrandName:   brandName,
			JudgeModel:  judgeModel,
			Timestamp:   time.Now(),
			Evaluations: kept,
		})
		log.Info().
			Str("style", style).
			Int("judged", len(kept)).
			Int("total", len(results)).
			Msg("风格组评审完成")
	}

	// 3. 落盘评审 JSON 与打分 CSV
	doc := &ad.EvaluationDocument{
		Summary: ad.EvaluationSummary{
			Brand:                brandName,
			JudgeModel:           judgeModel,
			Timestamp:            time.Now(),
			TotalStylesEvaluated: len(styleEvals),
		},
		Evaluations: styleEvals,
	}

	ts := batchTimestamp()
	short := adtools.JudgeShortName(judgeModel)
	brandLower := adtools.Slugify(brandName)
	jsonPath := filepath.Join(s.cfg.Evaluation.OutputDir,
		fmt.Sprintf("%s_evaluation_%s_%s.json", brandLower, short, ts))
	if err := writeJSON(jsonPath, doc); err != nil {
		return "", "", err
	}
	csvPath := filepath.Join(s.cfg.Evaluation.OutputDir,
		fmt.Sprintf("%s_scores_%s_%s.csv", brandLower, short, ts))
	if err := writeScoresCSV(csvPath, doc); err != nil {
		return "", "", err
	}

	log.Info().Str("json", jsonPath).Str("csv", csvPath).Msg("评审完成")
	return jsonPath, csvPath, nil
}

// judgeOne 读创意文件并评审，补充模型/模板/文件元数据
func (s *pipelineService) judgeOne(ctx context.Context, judgeModel, style, brandName string, r ad.ConceptResult) (*ad.ConceptEvaluation, error) {
	data, err := os.ReadFile(r.File)
	if err != nil {
		return nil, fmt.Errorf("read concept: %w", err)
	}

	verdict, err := s.judgeConcept(ctx, judgeModel, style, brandName, string(data))
	if err != nil {
		return nil, err
	}

	return &ad.ConceptEvaluation{
		Score:       verdict.Score,
		Explanation: verdict.Explanation,
		Strengths:   verdict.Strengths,
		Weaknesses:  verdict.Weaknesses,
		Model:       r.Model,
		Template:    r.Template,
		Provider:    r.Provider,
		File:        r.File,
	}, nil
}

// judgeConcept 单条创意评审：固定系统角色 + 六项评分标准，强制 JSON 输出
func (s *pipelineService) judgeConcept(ctx context.Context, modelID, adStyle, brandName, conceptContent string) (*ad.JudgeVerdict, error) {
	prompt := adtools.BuildJudgePrompt(adStyle, brandName, conceptContent)

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	data, _, err := adtools.GenerateJSON(ctx, s.ai.Model(modelID), adtools.JudgeSystemMessage, prompt)
	if err != nil {
		return nil, fmt.Errorf("judge concept: %w", err)
	}
	var verdict ad.JudgeVerdict
	if err := json.Unmarshal(data, &verdict); err != nil {
		return nil, fmt.Errorf("decode judge verdict: %w", err)
	}
	return &verdict, nil
}

// latestBatchSummary 定位结果目录下当前品牌最新批次的汇总 JSON
func (s *pipelineService) latestBatchSummary() (string, error) {
	brandSlug := adtools.Slugify(s.brand.BrandName())
	batchDir, err := latestDirWithPrefix(s.cfg.Output.ResultsDir, brandSlug+"_")
	if err != nil {
		return "", err
	}
	return latestFileMatching(batchDir, "*_batch_summary_*.json")
}

// judgeModelID 评审模型 ID，未配置时退回通用文本模型
func (s *pipelineService) judgeModelID() string {
	if s.cfg.Evaluation.JudgeModel != "" {
		return s.cfg.Evaluation.JudgeModel
	}
	return s.cfg.Models.LLMModel
}

// writeScoresCSV 落盘排名表，组内名次按分数降序从 1 起
func writeScoresCSV(path string, doc *ad.EvaluationDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"Brand", "Ad Style", "Model", "Template", "Score", "Rank", "Strengths", "Weaknesses", "Explanation"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, group := range doc.Evaluations {
		for rank, e := range group.Evaluations {
			record := []string{
				doc.Summary.Brand,
				group.AdStyle,
				e.Model,
				e.Template,
				strconv.Itoa(e.Score),
				strconv.Itoa(rank + 1),
				strings.Join(e.Strengths, ", "),
				strings.Join(e.Weaknesses, ", "),
				e.Explanation,
			}
			if err := w.Write(record); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}
	w.Flush()
	return w.Error()
}
