package ad

import (
	"fmt"

	"pomelo/internal/config"
	"pomelo/internal/pkg/adtools"
	"pomelo/internal/pkg/adtools/providers"
	"pomelo/internal/pkg/ark"
	"pomelo/internal/pkg/replicate"
)

// newImageProvider 按模型 ID 前缀选择图片生成后端
// "replicate/{owner}/{name}" 把斜杠后的剩余部分整体作为托管模型名
func newImageProvider(cfg *config.Config, modelID string) (adtools.ImageProvider, error) {
	if modelID == "" {
		return nil, fmt.Errorf("image model is required")
	}

	provider, model := adtools.SplitModelID(modelID)
	switch provider {
	case "replicate":
		client, err := replicate.NewClient(&replicate.Config{APIToken: cfg.AI.Replicate.APIToken})
		if err != nil {
			return nil, fmt.Errorf("create replicate client: %w", err)
		}
		return providers.NewReplicateImageProvider(client, model)
	case "gemini":
		return providers.NewGeminiImageProvider(&providers.GeminiImageConfig{
			APIKey: cfg.AI.Gemini.APIKey,
			Model:  model,
		})
	case "openai":
		return providers.NewOpenAIImageProvider(&providers.OpenAIImageConfig{
			APIKey:  cfg.AI.OpenAI.APIKey,
			BaseURL: cfg.AI.OpenAI.BaseURL,
			Model:   model,
		})
	case "ark":
		return providers.NewArkImageProvider(&ark.ArkImageConfig{
			APIKey:  cfg.AI.Ark.APIKey,
			BaseURL: cfg.AI.Ark.BaseURL,
			Model:   model,
		})
	default:
		return nil, fmt.Errorf("unsupported image provider: %s", provider)
	}
}

// newVideoProvider 按模型 ID 前缀选择视频生成后端
// Veo/Sora 系列走 Replicate，Seedance 系列走 Ark
func newVideoProvider(cfg *config.Config, modelID string) (adtools.VideoProvider, error) {
	if modelID == "" {
		return nil, fmt.Errorf("video model is required")
	}

	provider, model := adtools.SplitModelID(modelID)
	switch provider {
	case "replicate":
		client, err := replicate.NewClient(&replicate.Config{APIToken: cfg.AI.Replicate.APIToken})
		if err != nil {
			return nil, fmt.Errorf("create replicate client: %w", err)
		}
		return providers.NewReplicateVideoProvider(client, model)
	case "ark":
		return providers.NewArkVideoProvider(&ark.ArkVideoConfig{
			APIKey:  cfg.AI.Ark.APIKey,
			BaseURL: cfg.AI.Ark.BaseURL,
			Model:   model,
		})
	default:
		return nil, fmt.Errorf("unsupported video provider: %s", provider)
	}
}
