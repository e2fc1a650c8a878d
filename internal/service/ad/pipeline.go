package ad

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"pomelo/internal/model/ad"
	"pomelo/internal/pkg/adtools"
	"pomelo/internal/pkg/id"
	"pomelo/internal/pkg/storage"
)

// Run 端到端执行流水线：创意批量、评审、最佳创意、修订、宇宙抽取、
// 参考图、分镜提示、首帧、片段、成片，最后落盘运行摘要并镜像产物
// 跳过开关只决定是否复用磁盘上的既有产物，产物路径约定不变
func (s *pipelineService) Run(ctx context.Context) (*ad.RunSummary, error) {
	brandName := s.brand.BrandName()
	brandSlug := adtools.Slugify(brandName)

	run := &ad.RunSummary{
		RunID:     id.Short(),
		BrandName: brandName,
		StartedAt: time.Now(),
	}
	log.Info().Str("run_id", run.RunID).Str("brand", brandName).Msg("流水线启动")

	// 1. 解析评审文件：显式指定、复用最近一次、或全新评审
	var batchFolder, evaluationPath string
	if startFrom := s.cfg.Pipeline.StartFrom; startFrom != "" {
		if !fileExists(startFrom) {
			return nil, fmt.Errorf("start_from evaluation not found: %s", startFrom)
		}
		evaluationPath = startFrom
		// 从评审续跑时没有既有批次目录，铸一个新的
		batchFolder = brandSlug + "_" + batchTimestamp()
		log.Info().Str("evaluation", startFrom).Msg("从既有评审结果续跑")
	} else {
		var summaryPath string
		if s.cfg.Pipeline.SkipConceptGeneration {
			var err error
			summaryPath, err = s.latestBatchSummary()
			if err != nil {
				return nil, err
			}
			batchFolder = filepath.Base(filepath.Dir(summaryPath))
			log.Info().Str("summary", summaryPath).Msg("复用最近一批创意")
		} else {
			_, path, err := s.GenerateConcepts(ctx)
			if err != nil {
				return nil, err
			}
			summaryPath = path
			batchFolder = filepath.Base(filepath.Dir(path))
		}

		if s.cfg.Pipeline.SkipEvaluation {
			path, err := s.latestEvaluation()
			if err != nil {
				return nil, err
			}
			evaluationPath = path
			log.Info().Str("evaluation", path).Msg("复用最近一次评审")
		} else {
			path, _, err := s.JudgeBatch(ctx, summaryPath)
			if err != nil {
				return nil, err
			}
			evaluationPath = path
		}
	}
	run.BatchFolder = batchFolder
	run.Evaluation = evaluationPath

	// 2. 抽取最高分创意，其源文件必须还在原处
	best, bestPath, err := s.ExtractBestConcept(evaluationPath)
	if err != nil {
		return nil, err
	}
	run.BestConcept = bestPath

	conceptPath := best.BestConcept.File
	if conceptPath == "" || !fileExists(conceptPath) {
		return nil, fmt.Errorf("best concept file not found: %q", conceptPath)
	}
	conceptName := stem(conceptPath)
	run.ConceptName = conceptName
	scriptDir := filepath.Join(s.cfg.Output.BaseOutputDir, batchFolder, conceptName)

	// 3. 修订剧本
	revisedPath, err := s.ReviseScript(ctx, conceptPath, scriptDir)
	if err != nil {
		return nil, err
	}
	run.RevisedScript = revisedPath

	// 4. 宇宙与实体抽取
	_, universePath, err := s.ExtractUniverse(ctx, revisedPath, scriptDir)
	if err != nil {
		return nil, err
	}
	run.Universe = universePath

	// 5. 参考图，目录已存在且配置跳过时整体复用
	universeImagesDir := filepath.Join(s.cfg.Output.UniverseImagesDir, conceptName)
	manifestPath := filepath.Join(universeImagesDir, "image_generation_summary.json")
	if s.cfg.Advanced.SkipImageGeneration && dirExists(universeImagesDir) {
		log.Info().Str("dir", universeImagesDir).Msg("复用既有参考图")
	} else {
		_, manifestPath, err = s.GenerateReferenceImages(ctx, universePath, universeImagesDir)
		if err != nil {
			return nil, err
		}
	}
	if fileExists(manifestPath) {
		run.ImageManifest = manifestPath
	} else {
		manifestPath = ""
	}

	// 6. 分镜提示，既有文件默认复用
	scenesPath := filepath.Join(scriptDir, conceptName+"_scene_prompts.json")
	if !s.cfg.Advanced.RegenerateScenePrompts && fileExists(scenesPath) {
		log.Info().Str("file", scenesPath).Msg("复用既有分镜提示")
	} else {
		_, scenesPath, err = s.GenerateScenePrompts(ctx, revisedPath, universePath, manifestPath, scriptDir)
		if err != nil {
			return nil, err
		}
	}
	run.ScenePrompts = scenesPath

	// 阶段产物清单，供人工检查与单阶段重跑定位输入
	scriptSummary := &ad.ScriptSummary{
		SourceEvaluation: evaluationPath,
		SourceConcept:    conceptPath,
		BestScore:        best.BestConcept.Score,
		Model:            best.BestConcept.Model,
		Template:         best.BestConcept.Template,
		DurationSeconds:  s.cfg.Video.DurationSeconds,
		OutputFiles: ad.ScriptOutputs{
			RevisedScript:      revisedPath,
			UniverseCharacters: universePath,
			ScenePrompts:       scenesPath,
		},
		GeneratedAt: time.Now(),
	}
	if err := writeJSON(filepath.Join(scriptDir, conceptName+"_summary.json"), scriptSummary); err != nil {
		return nil, err
	}

	// 7. 首帧，目录已存在且配置跳过时整体复用
	firstFramesDir := filepath.Join(s.cfg.Output.FirstFramesDir, batchFolder, conceptName)
	if s.cfg.Advanced.SkipFirstFrames && dirExists(firstFramesDir) {
		log.Info().Str("dir", firstFramesDir).Msg("复用既有首帧")
	} else {
		produced, total, err := s.GenerateFirstFrames(ctx, scenesPath, universePath, universeImagesDir, firstFramesDir)
		if err != nil {
			return nil, err
		}
		if produced < total {
			log.Warn().Int("produced", produced).Int("total", total).Msg("部分首帧缺失，对应场景不会有片段")
		}
	}
	run.FirstFramesDir = firstFramesDir

	// 8. 视频片段；跳过时直接拿目录里既有的片段去拼接
	clipsDir := filepath.Join(s.cfg.Output.VideoOutputsDir, batchFolder, conceptName)
	if s.cfg.Advanced.SkipVideoClips {
		log.Info().Str("dir", clipsDir).Msg("跳过片段生成，直接拼接既有片段")
	} else {
		available, total, err := s.GenerateClips(ctx, scenesPath, firstFramesDir, clipsDir, s.cfg.Advanced.RegenerateScenePrompts)
		if err != nil {
			return nil, err
		}
		if available < total {
			log.Warn().Int("available", available).Int("total", total).Msg("部分片段缺失，成片将降级拼接")
		}
	}
	run.ClipsDir = clipsDir

	// 9. 成片
	finalPath, err := s.MergeClips(ctx, scenesPath, clipsDir, "")
	if err != nil {
		return nil, err
	}
	run.FinalVideo = finalPath

	// 10. 运行摘要落盘，关键产物镜像到远端存储
	run.FinishedAt = time.Now()
	runSummaryPath := filepath.Join(clipsDir, conceptName+"_run_summary.json")
	if err := writeJSON(runSummaryPath, run); err != nil {
		return nil, err
	}
	s.mirrorArtifacts(ctx, run, runSummaryPath)

	log.Info().
		Str("run_id", run.RunID).
		Str("final", finalPath).
		Dur("elapsed", run.FinishedAt.Sub(run.StartedAt)).
		Msg("流水线完成")
	return run, nil
}

// mirrorArtifacts 把成片、参考图清单、分镜提示与运行摘要镜像到远端存储
// 镜像失败只告警，本地产物已经是完整结果
func (s *pipelineService) mirrorArtifacts(ctx context.Context, run *ad.RunSummary, runSummaryPath string) {
	if s.store == nil {
		return
	}
	for _, path := range []string{run.FinalVideo, run.ImageManifest, run.ScenePrompts, runSummaryPath} {
		if path == "" || !fileExists(path) {
			continue
		}
		f, err := os.Open(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("产物镜像读取失败")
			continue
		}
		key := fmt.Sprintf("runs/%s/%s", run.RunID, filepath.Base(path))
		url, err := s.store.Upload(ctx, key, f, storage.ContentTypeByName(path))
		f.Close()
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("产物镜像上传失败")
			continue
		}
		log.Info().Str("key", key).Str("url", url).Msg("产物已镜像到远端存储")
	}
}
