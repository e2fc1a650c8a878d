package ad

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// 批量任务结果状态
const (
	TaskSuccess = "SUCCESS"
	TaskError   = "ERROR"
)

// ConceptResult 单条创意生成任务的结果行
type ConceptResult struct {
	AdStyle    string `json:"ad_style"`
	Template   string `json:"template"`
	Provider   string `json:"provider"`
	Model      string `json:"model"`
	Status     string `json:"status"`
	File       string `json:"file,omitempty"`
	PromptFile string `json:"prompt_file,omitempty"`
	Error      string `json:"error,omitempty"`
}

// BatchSummary 一次创意批量生成的汇总
type BatchSummary struct {
	BrandName         string          `json:"brand_name"`
	BatchFolder       string          `json:"batch_folder"`
	CreativeDirection string          `json:"creative_direction,omitempty"`
	Timestamp         time.Time       `json:"timestamp"`
	TotalRuns         int             `json:"total_runs"`
	Successful        int             `json:"successful"`
	Failed            int             `json:"failed"`
	Results           []ConceptResult `json:"results"`
}

// LoadBatchSummary 从磁盘读取批量汇总
func LoadBatchSummary(path string) (*BatchSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch summary: %w", err)
	}
	var s BatchSummary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse batch summary %s: %w", path, err)
	}
	return &s, nil
}

// JudgeVerdict 评审模型的原始输出结构
// 只含评分字段，批次信息由调用方补充到 ConceptEvaluation
type JudgeVerdict struct {
	Score       int      `json:"score" jsonschema:"minimum=0,maximum=100" jsonschema_description:"Overall score from 0 to 100"`
	Explanation string   `json:"explanation" jsonschema_description:"Brief 2-3 sentence explanation of the score"`
	Strengths   []string `json:"strengths" jsonschema_description:"3-5 specific strengths"`
	Weaknesses  []string `json:"weaknesses" jsonschema_description:"3-5 specific weaknesses"`
}

// ConceptEvaluation 单条创意的评审结果
type ConceptEvaluation struct {
	Score       int      `json:"score"`
	Explanation string   `json:"explanation"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Model       string   `json:"model,omitempty"`
	Template    string   `json:"template,omitempty"`
	Provider    string   `json:"provider,omitempty"`
	File        string   `json:"file,omitempty"`
}

// StyleEvaluation 同一广告风格下全部创意的评审分组（按分数降序）
type StyleEvaluation struct {
	AdStyle     string              `json:"ad_style"`
	BrandName   string              `json:"brand_name"`
	JudgeModel  string              `json:"judge_model"`
	Timestamp   time.Time           `json:"timestamp"`
	Evaluations []ConceptEvaluation `json:"evaluations"`
}

// EvaluationSummary 评审文档头
type EvaluationSummary struct {
	Brand                string    `json:"brand"`
	JudgeModel           string    `json:"judge_model"`
	Timestamp            time.Time `json:"timestamp"`
	TotalStylesEvaluated int       `json:"total_styles_evaluated"`
}

// EvaluationDocument 评审阶段的持久化产物
type EvaluationDocument struct {
	Summary     EvaluationSummary `json:"summary"`
	Evaluations []StyleEvaluation `json:"evaluations"`
}

// LoadEvaluationDocument 从磁盘读取评审文档
func LoadEvaluationDocument(path string) (*EvaluationDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read evaluation: %w", err)
	}
	var doc EvaluationDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse evaluation %s: %w", path, err)
	}
	return &doc, nil
}

// Best 返回全文档最高分的评审条目；无条目时报错
func (d *EvaluationDocument) Best() (*ConceptEvaluation, error) {
	var best *ConceptEvaluation
	for gi := range d.Evaluations {
		for ei := range d.Evaluations[gi].Evaluations {
			e := &d.Evaluations[gi].Evaluations[ei]
			if best == nil || e.Score > best.Score {
				best = e
			}
		}
	}
	if best == nil {
		return nil, fmt.Errorf("evaluation document contains no concepts")
	}
	return best, nil
}

// BestConceptRecord 最优创意抽取产物
type BestConceptRecord struct {
	EvaluationFile string            `json:"evaluation_file"`
	ExtractedAt    time.Time         `json:"extracted_at"`
	BestConcept    ConceptEvaluation `json:"best_concept"`
	AdStyle        string            `json:"ad_style,omitempty"`
	BrandName      string            `json:"brand_name,omitempty"`
}

// ScriptOutputs 剧本阶段产物路径
type ScriptOutputs struct {
	RevisedScript      string `json:"revised_script"`
	UniverseCharacters string `json:"universe_characters"`
	ScenePrompts       string `json:"scene_prompts"`
}

// ScriptSummary 剧本阶段汇总
type ScriptSummary struct {
	SourceEvaluation string        `json:"source_evaluation"`
	SourceConcept    string        `json:"source_concept"`
	BestScore        int           `json:"best_score"`
	Model            string        `json:"model"`
	Template         string        `json:"template"`
	DurationSeconds  int           `json:"duration_seconds"`
	OutputFiles      ScriptOutputs `json:"output_files"`
	GeneratedAt      time.Time     `json:"generated_at"`
}

// RunSummary 整条流水线的最终汇总
type RunSummary struct {
	RunID          string    `json:"run_id"`
	BrandName      string    `json:"brand_name"`
	BatchFolder    string    `json:"batch_folder"`
	ConceptName    string    `json:"concept_name"`
	Evaluation     string    `json:"evaluation,omitempty"`
	BestConcept    string    `json:"best_concept,omitempty"`
	RevisedScript  string    `json:"revised_script,omitempty"`
	Universe       string    `json:"universe,omitempty"`
	ImageManifest  string    `json:"image_manifest,omitempty"`
	ScenePrompts   string    `json:"scene_prompts,omitempty"`
	FirstFramesDir string    `json:"first_frames_dir,omitempty"`
	ClipsDir       string    `json:"clips_dir,omitempty"`
	FinalVideo     string    `json:"final_video,omitempty"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
}

// ExpandMetadata 概念扩写阶段的元数据
type ExpandMetadata struct {
	ConceptName     string    `json:"concept_name"`
	BrandName       string    `json:"brand_name"`
	Timestamp       time.Time `json:"timestamp"`
	LLMModel        string    `json:"llm_model"`
	SceneCount      int       `json:"scene_count"`
	SceneDuration   int       `json:"scene_duration_seconds"`
	OriginalConcept string    `json:"original_concept"`
	ExpandedFile    string    `json:"expanded_file"`
}

// ExpandEvaluation 扩写概念的单条评审产物，评分字段平铺在顶层
type ExpandEvaluation struct {
	JudgeVerdict
	BrandName   string    `json:"brand_name"`
	ConceptName string    `json:"concept_name"`
	JudgeModel  string    `json:"judge_model"`
	Timestamp   time.Time `json:"timestamp"`
	ConceptFile string    `json:"concept_file"`
}

// RevisionMetadata 反馈修订阶段的元数据
type RevisionMetadata struct {
	ConceptName         string    `json:"concept_name"`
	BrandName           string    `json:"brand_name"`
	Timestamp           time.Time `json:"timestamp"`
	LLMModel            string    `json:"llm_model"`
	OriginalFile        string    `json:"original_file"`
	EvaluationFile      string    `json:"evaluation_file"`
	RevisedFile         string    `json:"revised_file"`
	OriginalScore       int       `json:"original_score"`
	WeaknessesAddressed []string  `json:"weaknesses_addressed"`
	StrengthsMaintained []string  `json:"strengths_maintained"`
}

// BrandConfig 品牌配置：扁平 KEY→文本 映射，用于模板变量替换
type BrandConfig map[string]string

// LoadBrandConfig 读取品牌配置 JSON
func LoadBrandConfig(path string) (BrandConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read brand config: %w", err)
	}
	var cfg BrandConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse brand config %s: %w", path, err)
	}
	if cfg["BRAND_NAME"] == "" {
		return nil, fmt.Errorf("brand config %s missing BRAND_NAME", path)
	}
	return cfg, nil
}

// Get 取键值，缺失返回默认值
func (b BrandConfig) Get(key, def string) string {
	if v, ok := b[key]; ok && v != "" {
		return v
	}
	return def
}

// BrandName 品牌名
func (b BrandConfig) BrandName() string {
	return b.Get("BRAND_NAME", "unknown")
}
