package ad

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"pomelo/internal/ai"
	"pomelo/internal/config"
	"pomelo/internal/model/ad"
	"pomelo/internal/pkg/adtools"
	"pomelo/internal/pkg/ffmpeg"
	"pomelo/internal/pkg/storage"
	"pomelo/internal/pkg/storagefactory"
)

// 默认分镜数：创意模板、宇宙抽取和场景提示词都按 5 幕结构生成
const defaultSceneCount = 5

// PipelineService 广告视频流水线服务接口
// 每个阶段读上一阶段落盘的产物、写自己的产物，因此都可以单独调用
type PipelineService interface {
	// ExpandConcept 把两三句话的高层创意扩写成完整分镜叙事
	// 链路为 扩写 → 评审 → 按反馈修订，全程用同一个文本模型
	ExpandConcept(ctx context.Context, conceptText string) (*ExpandResult, error)

	// GenerateConcepts 按 风格×模板×模型 组合批量生成创意
	// 返回批次汇总与汇总文件路径
	GenerateConcepts(ctx context.Context) (*ad.BatchSummary, string, error)

	// JudgeBatch 评审批次内全部创意，返回评审 JSON 与打分 CSV 路径
	// summaryPath 为空时取最近一批的汇总文件
	JudgeBatch(ctx context.Context, summaryPath string) (string, string, error)

	// ExtractBestConcept 从评审文档抽取最高分创意并落盘
	// evaluationPath 为空时取最近一次评审
	ExtractBestConcept(evaluationPath string) (*ad.BestConceptRecord, string, error)

	// ReviseScript 对创意做保证渲染时长的微调，产出修订剧本
	ReviseScript(ctx context.Context, conceptPath, outputDir string) (string, error)

	// ExtractUniverse 从修订剧本抽取宇宙实体（角色/道具/场地）
	ExtractUniverse(ctx context.Context, revisedPath, outputDir string) (*ad.UniverseRecord, string, error)

	// GenerateReferenceImages 为宇宙实体并发生成标准参考图
	// 返回图片清单与清单文件路径
	GenerateReferenceImages(ctx context.Context, universePath, outputDir string) (*ad.ImageManifest, string, error)

	// GenerateScenePrompts 生成分场景视频提示词
	// manifestPath 可为空，为空时 ALLOWED 名单直接用宇宙名
	GenerateScenePrompts(ctx context.Context, revisedPath, universePath, manifestPath, outputDir string) (*ad.ScenePromptSet, string, error)

	// GenerateFirstFrames 为每个场景并发生成首帧图
	// 返回成功数与场景总数，单场景失败只记日志
	GenerateFirstFrames(ctx context.Context, scenesPath, universePath, imagesDir, outputDir string) (int, int, error)

	// GenerateClips 逐场景生成视频片段（视频后端限速严格，串行执行）
	// 返回成功数与场景总数
	GenerateClips(ctx context.Context, scenesPath, firstFramesDir, outputDir string, force bool) (int, int, error)

	// MergeClips 按场景顺序合并片段为成片
	// outPath 为空时按片段目录与视频模型推导成片路径
	MergeClips(ctx context.Context, scenesPath, clipsDir, outPath string) (string, error)

	// Run 按运行配置串起全部阶段，返回带所有产物路径的运行汇总
	Run(ctx context.Context) (*ad.RunSummary, error)

	// Close 释放底层客户端资源
	Close() error
}

// ExpandResult 概念扩写链路的产物
type ExpandResult struct {
	ConceptName    string `json:"concept_name"`
	BatchDir       string `json:"batch_dir"`
	ExpandedFile   string `json:"expanded_file"`
	EvaluationFile string `json:"evaluation_file"`
	RevisedFile    string `json:"revised_file"`
	Score          int    `json:"score"`
}

// pipelineService 流水线服务实现
type pipelineService struct {
	cfg     *config.Config
	brand   ad.BrandConfig
	ai      *ai.Client
	image   adtools.ImageProvider
	video   adtools.VideoProvider
	ffmpeg  *ffmpeg.Client
	store   storage.Storage
	limiter *rate.Limiter
}

// NewPipelineService 创建流水线服务
// 图片/视频后端允许缺失凭证，构造时只告警，走到对应阶段才报错，
// 纯文本阶段和合并阶段不受影响
func NewPipelineService(ctx context.Context, cfg *config.Config) (PipelineService, error) {
	brand, err := ad.LoadBrandConfig(cfg.Concepts.BrandConfig)
	if err != nil {
		return nil, fmt.Errorf("加载品牌配置失败: %w", err)
	}

	aiClient, err := ai.NewClient(&cfg.AI, cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("初始化 AI 客户端失败: %w", err)
	}

	imageProvider, err := newImageProvider(cfg, cfg.Models.ImageModel)
	if err != nil {
		log.Warn().Err(err).Str("model", cfg.Models.ImageModel).Msg("图片生成后端未就绪，参考图/首帧阶段将不可用")
		imageProvider = nil
	}

	videoProvider, err := newVideoProvider(cfg, cfg.Models.VideoModel)
	if err != nil {
		log.Warn().Err(err).Str("model", cfg.Models.VideoModel).Msg("视频生成后端未就绪，片段生成阶段将不可用")
		videoProvider = nil
	}

	var store storage.Storage
	if cfg.Storage.Type != "" {
		store, err = storagefactory.NewStorage(ctx, &cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("初始化存储失败: %w", err)
		}
	}

	interval := cfg.Workers.RateInterval
	if interval <= 0 {
		interval = time.Second
	}

	return &pipelineService{
		cfg:     cfg,
		brand:   brand,
		ai:      aiClient,
		image:   imageProvider,
		video:   videoProvider,
		ffmpeg:  ffmpeg.NewClient(),
		store:   store,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}, nil
}

// Close 释放 AI 客户端持有的缓存等资源
func (s *pipelineService) Close() error {
	return s.ai.Close()
}

// sceneDuration 单场景时长（秒）
func (s *pipelineService) sceneDuration() int {
	return adtools.SceneDuration(s.cfg.Video.DurationSeconds, defaultSceneCount)
}
