package ai

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	"pomelo/internal/ai/component"
	"pomelo/internal/config"
	"pomelo/internal/pkg/adtools"
	"pomelo/internal/pkg/cache"
)

// Client AI 能力层客户端
// 职责: 封装 LLM 文本生成，按模型 ID 复用 ChatModel 实例并缓存响应
type Client struct {
	cfg   *config.AIConfig
	cache *cache.MemoryCache // 响应缓存，键为模型与提示词的哈希

	mu     sync.Mutex
	models map[string]model.ChatModel
}

// NewClient 创建 AI 客户端
func NewClient(cfg *config.AIConfig, cacheCfg config.CacheConfig) (*Client, error) {
	if cfg.OpenAI.APIKey == "" && cfg.OpenRouter.APIKey == "" &&
		cfg.Anthropic.APIKey == "" && cfg.Ark.APIKey == "" {
		log.Warn().Msg("no AI API key configured, LLM calls will fail until one is set")
	}

	return &Client{
		cfg:    cfg,
		cache:  cache.NewMemoryCache(cacheCfg),
		models: make(map[string]model.ChatModel),
	}, nil
}

// Generate 单轮文本生成
// modelID 形如 "openai/gpt-5.1"，斜杠前为 provider，无斜杠时默认 openai
func (c *Client) Generate(ctx context.Context, modelID, prompt string) (string, error) {
	return c.GenerateWithSystem(ctx, modelID, "", prompt)
}

// GenerateWithSystem 带系统消息的单轮文本生成
// 相同模型与提示词的结果在 TTL 内直接返回缓存
func (c *Client) GenerateWithSystem(ctx context.Context, modelID, system, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt is empty")
	}

	key := cache.ResponseCacheKey(modelID, system, prompt)
	if cached, ok := c.cache.GetString(key); ok {
		log.Debug().Str("model", modelID).Msg("LLM response served from cache")
		return cached, nil
	}

	chatModel, err := c.chatModel(ctx, modelID)
	if err != nil {
		return "", err
	}

	messages := make([]*schema.Message, 0, 2)
	if system != "" {
		messages = append(messages, schema.SystemMessage(system))
	}
	messages = append(messages, schema.UserMessage(prompt))

	start := time.Now()
	resp, err := chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("model %s generate failed: %w", modelID, err)
	}
	if resp == nil || resp.Content == "" {
		return "", fmt.Errorf("model %s returned empty content", modelID)
	}

	// 优先取服务端统计的用量，拿不到再用 tiktoken 估算
	promptTokens, completionTokens := tokenUsage(resp, modelID, system+prompt)

	log.Info().
		Str("model", modelID).
		Int("prompt_tokens", promptTokens).
		Int("completion_tokens", completionTokens).
		Dur("elapsed", time.Since(start)).
		Msg("LLM generation finished")

	c.cache.Set(key, resp.Content, 0)
	return resp.Content, nil
}

// chatModel 取模型实例，同一 modelID 进程内复用
func (c *Client) chatModel(ctx context.Context, modelID string) (model.ChatModel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cm, ok := c.models[modelID]; ok {
		return cm, nil
	}

	provider, modelName := adtools.SplitModelID(modelID)
	cm, err := component.NewChatModel(ctx, c.cfg, provider, modelName)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model for %s: %w", modelID, err)
	}

	c.models[modelID] = cm
	return cm, nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	// 清理资源
	c.cache.Flush()
	return nil
}

// ModelClient 绑定到具体模型的生成器
// 各流水线阶段拿到它之后不再关心 provider 细节
type ModelClient struct {
	client  *Client
	modelID string
}

// Model 返回绑定 modelID 的生成器
func (c *Client) Model(modelID string) *ModelClient {
	return &ModelClient{client: c, modelID: modelID}
}

// Generate 单轮文本生成
func (m *ModelClient) Generate(ctx context.Context, prompt string) (string, error) {
	return m.client.Generate(ctx, m.modelID, prompt)
}

// GenerateWithSystem 带系统消息的单轮文本生成
func (m *ModelClient) GenerateWithSystem(ctx context.Context, system, prompt string) (string, error) {
	return m.client.GenerateWithSystem(ctx, m.modelID, system, prompt)
}

// ModelID 返回绑定的模型标识
func (m *ModelClient) ModelID() string {
	return m.modelID
}

// tokenUsage 提取 token 使用量
func tokenUsage(resp *schema.Message, modelID, input string) (promptTokens, completionTokens int) {
	if resp.ResponseMeta != nil && resp.ResponseMeta.Usage != nil {
		return resp.ResponseMeta.Usage.PromptTokens, resp.ResponseMeta.Usage.CompletionTokens
	}
	_, modelName := adtools.SplitModelID(modelID)
	return CountTokens(modelName, input), CountTokens(modelName, resp.Content)
}
