package component

import (
	"context"
	"fmt"
	"strings"

	arkext "github.com/cloudwego/eino-ext/components/model/ark"
	claudeext "github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"pomelo/internal/config"
)

// 各 Provider 的默认接入点
const (
	defaultArkBaseURL        = "https://ark.cn-beijing.volces.com/api/v3"
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
)

// NewChatModel 创建 ChatModel
// 支持多种 Provider: openai, openrouter, anthropic, ark
// modelName 为去掉 provider 前缀后的模型名，如 "gpt-5.1"、"claude-sonnet-4-5"
func NewChatModel(ctx context.Context, cfg *config.AIConfig, provider, modelName string) (model.ChatModel, error) {
	if modelName == "" {
		return nil, fmt.Errorf("model name is empty for provider %q", provider)
	}

	switch provider {
	case "openai", "":
		return newOpenAIChatModel(ctx, cfg, modelName)
	case "openrouter":
		return newOpenRouterChatModel(ctx, cfg, modelName)
	case "anthropic", "claude":
		return newClaudeChatModel(ctx, cfg, modelName)
	case "ark", "volcengine":
		return newArkChatModel(ctx, cfg, modelName)
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", provider)
	}
}

// newOpenAIChatModel 创建 OpenAI ChatModel
func newOpenAIChatModel(ctx context.Context, cfg *config.AIConfig, modelName string) (model.ChatModel, error) {
	modelCfg := &openai.ChatModelConfig{
		Model:  modelName,
		APIKey: cfg.OpenAI.APIKey,
	}

	// Base URL (用于代理或兼容 API)
	if cfg.OpenAI.BaseURL != "" {
		modelCfg.BaseURL = cfg.OpenAI.BaseURL
	}

	applyOpenAIOptions(modelCfg, cfg, modelName)

	return openai.NewChatModel(ctx, modelCfg)
}

// newOpenRouterChatModel 创建 OpenRouter ChatModel
// OpenRouter 暴露 OpenAI 兼容接口，modelName 形如 "google/gemini-2.5-pro"
func newOpenRouterChatModel(ctx context.Context, cfg *config.AIConfig, modelName string) (model.ChatModel, error) {
	baseURL := cfg.OpenRouter.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	modelCfg := &openai.ChatModelConfig{
		Model:   modelName,
		APIKey:  cfg.OpenRouter.APIKey,
		BaseURL: baseURL,
	}

	applyOpenAIOptions(modelCfg, cfg, modelName)

	return openai.NewChatModel(ctx, modelCfg)
}

// newClaudeChatModel 创建 Anthropic ChatModel
// Claude 接口要求显式 MaxTokens
func newClaudeChatModel(ctx context.Context, cfg *config.AIConfig, modelName string) (model.ChatModel, error) {
	maxTokens := cfg.Options.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	modelCfg := &claudeext.Config{
		APIKey:    cfg.Anthropic.APIKey,
		Model:     modelName,
		MaxTokens: maxTokens,
	}

	if cfg.Options.Temperature > 0 {
		temp := float32(cfg.Options.Temperature)
		modelCfg.Temperature = &temp
	}
	if cfg.Options.TopP > 0 {
		topP := float32(cfg.Options.TopP)
		modelCfg.TopP = &topP
	}

	return claudeext.NewChatModel(ctx, modelCfg)
}

// newArkChatModel 创建火山方舟 ChatModel（使用 eino-ext 模块）
func newArkChatModel(ctx context.Context, cfg *config.AIConfig, modelName string) (model.ChatModel, error) {
	baseURL := cfg.Ark.BaseURL
	if baseURL == "" {
		baseURL = defaultArkBaseURL
	}

	modelCfg := &arkext.ChatModelConfig{
		Model:   modelName,
		APIKey:  cfg.Ark.APIKey,
		BaseURL: baseURL,
	}

	// 模型参数
	if cfg.Options.Temperature > 0 {
		temp := float32(cfg.Options.Temperature)
		modelCfg.Temperature = &temp
	}
	if cfg.Options.MaxTokens > 0 {
		modelCfg.MaxTokens = &cfg.Options.MaxTokens
	}
	if cfg.Options.TopP > 0 {
		topP := float32(cfg.Options.TopP)
		modelCfg.TopP = &topP
	}

	return arkext.NewChatModel(ctx, modelCfg)
}

// applyOpenAIOptions 按模型特性设置采样参数
// 推理类模型 (gpt-5 / o 系列) 只接受 temperature=1，且不接受 max_tokens
func applyOpenAIOptions(modelCfg *openai.ChatModelConfig, cfg *config.AIConfig, modelName string) {
	if isReasoningModel(modelName) {
		temp := float32(1)
		modelCfg.Temperature = &temp
		return
	}

	if cfg.Options.Temperature > 0 {
		temp := float32(cfg.Options.Temperature)
		modelCfg.Temperature = &temp
	}
	if cfg.Options.MaxTokens > 0 {
		modelCfg.MaxTokens = &cfg.Options.MaxTokens
	}
	if cfg.Options.TopP > 0 {
		topP := float32(cfg.Options.TopP)
		modelCfg.TopP = &topP
	}
}

// isReasoningModel 判断是否为推理类模型
func isReasoningModel(modelName string) bool {
	name := strings.ToLower(modelName)
	return strings.HasPrefix(name, "gpt-5") ||
		strings.HasPrefix(name, "o1") ||
		strings.HasPrefix(name, "o3") ||
		strings.HasPrefix(name, "o4")
}
