package config

import (
	"errors"
	"fmt"
	"time"
)

// Config 应用配置根结构
type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	AI         AIConfig         `mapstructure:"ai"`
	Models     ModelsConfig     `mapstructure:"models"`
	Video      VideoConfig      `mapstructure:"video"`
	Workers    WorkersConfig    `mapstructure:"workers"`
	Output     OutputConfig     `mapstructure:"output"`
	Pipeline   PipelineConfig   `mapstructure:"pipeline"`
	Advanced   AdvancedConfig   `mapstructure:"advanced"`
	Concepts   ConceptsConfig   `mapstructure:"concepts"`
	Evaluation EvaluationConfig `mapstructure:"evaluation"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Cache      CacheConfig      `mapstructure:"cache"`
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// AIConfig 按 provider 划分的 AI 服务配置
type AIConfig struct {
	OpenAI     ProviderConfig  `mapstructure:"openai"`
	Anthropic  ProviderConfig  `mapstructure:"anthropic"`
	OpenRouter ProviderConfig  `mapstructure:"openrouter"`
	Ark        ArkConfig       `mapstructure:"ark"`
	Gemini     ProviderConfig  `mapstructure:"gemini"`
	Replicate  ReplicateConfig `mapstructure:"replicate"`
	Options    AIOptionsConfig `mapstructure:"options"`
}

// ProviderConfig 单个 LLM provider 的凭证
type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// ArkConfig 火山方舟配置（chat 与图像/视频共用）
type ArkConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// ReplicateConfig Replicate 配置
type ReplicateConfig struct {
	APIToken string `mapstructure:"api_token"`
}

// AIOptionsConfig AI 模型参数
type AIOptionsConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	TopP        float64 `mapstructure:"top_p"`
}

// ModelsConfig 各阶段使用的模型 ID，统一 "provider/model" 形式
type ModelsConfig struct {
	LLMModel   string `mapstructure:"llm_model"`
	ImageModel string `mapstructure:"image_model"`
	VideoModel string `mapstructure:"video_model"`
}

// VideoConfig 成片参数
type VideoConfig struct {
	DurationSeconds int    `mapstructure:"duration_seconds"`
	Resolution      string `mapstructure:"resolution"`
	AspectRatio     string `mapstructure:"aspect_ratio"`
}

// WorkersConfig 各阶段并发度与限速
type WorkersConfig struct {
	Concepts     int           `mapstructure:"concepts"`
	Judges       int           `mapstructure:"judges"`
	Images       int           `mapstructure:"images"`
	Frames       int           `mapstructure:"frames"`
	RateInterval time.Duration `mapstructure:"rate_interval"`
}

// OutputConfig 各阶段产物根目录
type OutputConfig struct {
	ResultsDir        string `mapstructure:"results_dir"`
	PromptsDir        string `mapstructure:"prompts_dir"`
	BaseOutputDir     string `mapstructure:"base_output_dir"`
	UniverseImagesDir string `mapstructure:"universe_images_dir"`
	FirstFramesDir    string `mapstructure:"first_frames_dir"`
	VideoOutputsDir   string `mapstructure:"video_outputs_dir"`
}

// PipelineConfig 流水线跳过/续跑开关
type PipelineConfig struct {
	StartFrom             string `mapstructure:"start_from"`
	SkipConceptGeneration bool   `mapstructure:"skip_concept_generation"`
	SkipEvaluation        bool   `mapstructure:"skip_evaluation"`
}

// AdvancedConfig 媒体生成阶段开关
type AdvancedConfig struct {
	SkipImageGeneration    bool `mapstructure:"skip_image_generation"`
	SkipFirstFrames        bool `mapstructure:"skip_first_frames"`
	SkipVideoClips         bool `mapstructure:"skip_video_clips"`
	RegenerateScenePrompts bool `mapstructure:"regenerate_scene_prompts"`
}

// ConceptsConfig 创意批量生成配置
type ConceptsConfig struct {
	BrandConfig       string   `mapstructure:"brand_config"`
	TemplateDir       string   `mapstructure:"template_dir"`
	AdStyles          []string `mapstructure:"ad_styles"`
	Templates         []string `mapstructure:"templates"`
	Models            []string `mapstructure:"models"`
	CreativeDirection string   `mapstructure:"creative_direction"`
}

// EvaluationConfig 评审配置
type EvaluationConfig struct {
	JudgeModel string `mapstructure:"judge_model"`
	OutputDir  string `mapstructure:"output_dir"`
}

// StorageConfig 产物镜像存储配置
type StorageConfig struct {
	Type  string       `mapstructure:"type"` // local, oss, gcs
	Local *LocalConfig `mapstructure:"local,omitempty"`
	OSS   *OSSConfig   `mapstructure:"oss,omitempty"`
	GCS   *GCSConfig   `mapstructure:"gcs,omitempty"`
}

// LocalConfig 本地文件系统配置
type LocalConfig struct {
	BasePath      string `mapstructure:"base_path"`
	BaseURL       string `mapstructure:"base_url"`
	PresignExpiry int    `mapstructure:"presign_expiry"`
}

// OSSConfig 阿里云OSS配置
type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	PresignExpiry   int    `mapstructure:"presign_expiry"`
}

// GCSConfig Google Cloud Storage 配置
type GCSConfig struct {
	Bucket        string `mapstructure:"bucket"`
	Prefix        string `mapstructure:"prefix"`
	PresignExpiry int    `mapstructure:"presign_expiry"`
}

// CacheConfig LLM 响应缓存配置
type CacheConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

var validResolutions = map[string]bool{"480p": true, "720p": true, "1080p": true}

// Validate 验证配置有效性
func (c *Config) Validate() error {
	if c.Video.DurationSeconds <= 0 {
		return errors.New("video.duration_seconds must be positive")
	}
	if !validResolutions[c.Video.Resolution] {
		return fmt.Errorf("unsupported video.resolution %q, must be 480p/720p/1080p", c.Video.Resolution)
	}
	for name, n := range map[string]int{
		"workers.concepts": c.Workers.Concepts,
		"workers.judges":   c.Workers.Judges,
		"workers.images":   c.Workers.Images,
		"workers.frames":   c.Workers.Frames,
	} {
		if n < 1 || n > 16 {
			return fmt.Errorf("%s out of range [1,16]: %d", name, n)
		}
	}
	if c.Models.LLMModel == "" || c.Models.ImageModel == "" || c.Models.VideoModel == "" {
		return errors.New("models.llm_model, models.image_model and models.video_model are required")
	}
	return nil
}
