package ad

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"pomelo/internal/model/ad"
	"pomelo/internal/pkg/adtools"
)

// conceptTask 单条创意生成任务：一个 风格×模板×模型 组合
type conceptTask struct {
	adStyle      string
	templateName string
	templateText string
	modelID      string
}

// GenerateConcepts 按 风格×模板×模型 组合批量生成创意
// 任务在带上限的并发池执行，单任务失败写进结果行，不中断批次
func (s *pipelineService) GenerateConcepts(ctx context.Context) (*ad.BatchSummary, string, error) {
	cc := s.cfg.Concepts
	if len(cc.AdStyles) == 0 || len(cc.Templates) == 0 || len(cc.Models) == 0 {
		return nil, "", fmt.Errorf("concepts config requires ad_styles, templates and models")
	}

	known := make(map[string]bool)
	for _, style := range adtools.KnownAdStyles() {
		known[style] = true
	}
	for _, style := range cc.AdStyles {
		if !known[style] {
			log.Warn().Str("style", style).Msg("风格不在已知清单，评审将使用通用风格描述")
		}
	}

	// 1. 加载全部模板文件
	templates := make(map[string]string, len(cc.Templates))
	for _, name := range cc.Templates {
		data, err := os.ReadFile(filepath.Join(cc.TemplateDir, name))
		if err != nil {
			return nil, "", fmt.Errorf("read template: %w", err)
		}
		templates[name] = string(data)
	}

	// 2. 建批次目录：创意与提示词分根目录、同批次名
	brandName := s.brand.BrandName()
	brandSlug := adtools.Slugify(brandName)
	ts := batchTimestamp()
	batchFolder := brandSlug + "_" + ts
	resultsDir := filepath.Join(s.cfg.Output.ResultsDir, batchFolder)
	promptsDir := filepath.Join(s.cfg.Output.PromptsDir, batchFolder)
	for _, dir := range []string{resultsDir, promptsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, "", fmt.Errorf("create batch dir: %w", err)
		}
	}

	// 3. 展开任务组合
	var tasks []conceptTask
	for _, style := range cc.AdStyles {
		for _, tmpl := range cc.Templates {
			for _, modelID := range cc.Models {
				tasks = append(tasks, conceptTask{
					adStyle:      style,
					templateName: stem(tmpl),
					templateText: templates[tmpl],
					modelID:      modelID,
				})
			}
		}
	}

	log.Info().
		Str("brand", brandName).
		Str("batch", batchFolder).
		Int("tasks", len(tasks)).
		Msg("开始批量生成创意")

	// 4. 并发执行，结果按任务序号写入固定位置，收集顺序与完成顺序无关
	results := make([]ad.ConceptResult, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerLimit(s.cfg.Workers.Concepts))
	for i, task := range tasks {
		g.Go(func() error {
			results[i] = s.runConceptTask(gctx, task, brandSlug, resultsDir, promptsDir)
			return nil
		})
	}
	_ = g.Wait()

	// 5. 落盘批次汇总
	summary := &ad.BatchSummary{
		BrandName:         brandName,
		BatchFolder:       batchFolder,
		CreativeDirection: cc.CreativeDirection,
		Timestamp:         time.Now(),
		TotalRuns:         len(tasks),
		Results:           results,
	}
	for _, r := range results {
		if r.Status == ad.TaskSuccess {
			summary.Successful++
		} else {
			summary.Failed++
		}
	}

	summaryPath := filepath.Join(resultsDir, fmt.Sprintf("%s_batch_summary_%s.json", brandSlug, ts))
	if err := writeJSON(summaryPath, summary); err != nil {
		return nil, "", err
	}

	log.Info().
		Int("successful", summary.Successful).
		Int("failed", summary.Failed).
		Str("summary", summaryPath).
		Msg("创意批量生成完成")
	return summary, summaryPath, nil
}

// runConceptTask 执行单条创意生成任务，返回结果行
func (s *pipelineService) runConceptTask(ctx context.Context, task conceptTask, brandSlug, resultsDir, promptsDir string) ad.ConceptResult {
	provider, model := adtools.SplitModelID(task.modelID)
	result := ad.ConceptResult{
		AdStyle:  task.adStyle,
		Template: task.templateName,
		Provider: provider,
		Model:    model,
	}

	// 变量表：品牌键值加上本次任务的风格与创意方向
	vars := make(map[string]string, len(s.brand)+2)
	for k, v := range s.brand {
		vars[k] = v
	}
	vars["AD_STYLE"] = task.adStyle
	vars["CREATIVE_DIRECTION"] = s.cfg.Concepts.CreativeDirection

	prompt := adtools.ApplyTemplate(task.templateText, vars)

	nameStem := fmt.Sprintf("%s_%s_%s_%s",
		brandSlug, adtools.Slugify(task.adStyle), task.templateName, adtools.CleanModelName(model))
	promptPath := filepath.Join(promptsDir, nameStem+"_prompt.txt")
	if err := writeText(promptPath, prompt); err != nil {
		result.Status = ad.TaskError
		result.Error = err.Error()
		return result
	}
	result.PromptFile = promptPath

	if err := s.limiter.Wait(ctx); err != nil {
		result.Status = ad.TaskError
		result.Error = err.Error()
		return result
	}

	content, err := s.ai.Model(task.modelID).Generate(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Str("style", task.adStyle).Str("model", task.modelID).Msg("创意生成失败")
		result.Status = ad.TaskError
		result.Error = err.Error()
		return result
	}

	conceptPath := filepath.Join(resultsDir, nameStem+".txt")
	if err := writeText(conceptPath, content); err != nil {
		result.Status = ad.TaskError
		result.Error = err.Error()
		return result
	}

	result.Status = ad.TaskSuccess
	result.File = conceptPath
	log.Info().
		Str("style", task.adStyle).
		Str("model", model).
		Str("file", filepath.Base(conceptPath)).
		Msg("创意已生成")
	return result
}

// workerLimit 并发池上限，未配置时默认 4
func workerLimit(n int) int {
	if n <= 0 {
		return 4
	}
	return n
}
