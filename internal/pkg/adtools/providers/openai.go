package providers

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog/log"

	"pomelo/internal/pkg/adtools"
)

// OpenAIImageConfig OpenAI 图片生成配置
type OpenAIImageConfig struct {
	APIKey  string // API Key（必需）
	BaseURL string // API 基础 URL（可选）
	Model   string // 模型名称（可选，默认: gpt-image-1）
}

// OpenAIImageProvider OpenAI 图片生成提供者
// 适配层，调用 openai-go 的 Images API
type OpenAIImageProvider struct {
	client openai.Client
	model  string
}

// NewOpenAIImageProvider 创建 OpenAI 图片生成提供者
func NewOpenAIImageProvider(cfg *OpenAIImageConfig) (adtools.ImageProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-image-1"
	}

	return &OpenAIImageProvider{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// GenerateImage 生成图片
// Images API 不接受参考图输入，带参考图的请求应改走 gemini 或 replicate
func (p *OpenAIImageProvider) GenerateImage(ctx context.Context, req *adtools.ImageRequest) (*adtools.MediaResult, error) {
	if len(req.ReferenceImages) > 0 {
		return nil, fmt.Errorf("openai image provider does not support reference images, use gemini or replicate")
	}

	params := openai.ImageGenerateParams{
		Prompt: req.Prompt,
		Model:  openai.ImageModel(p.model),
		Size:   openai.ImageGenerateParamsSize(openaiImageSize(req.AspectRatio)),
	}

	resp, err := p.client.Images.Generate(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("OpenAI generate image: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no image data in response")
	}

	first := resp.Data[0]

	if first.B64JSON != "" {
		data, err := base64.StdEncoding.DecodeString(first.B64JSON)
		if err != nil {
			return nil, fmt.Errorf("decode base64 image data: %w", err)
		}
		log.Info().Int("size", len(data)).Msg("OpenAI 图片生成成功")
		return &adtools.MediaResult{
			Data:     data,
			MIMEType: adtools.ImageMIME(data),
		}, nil
	}

	if first.URL != "" {
		data, err := downloadFile(ctx, first.URL)
		if err != nil {
			return nil, fmt.Errorf("download generated image: %w", err)
		}
		log.Info().Int("size", len(data)).Msg("OpenAI 图片生成成功")
		return &adtools.MediaResult{
			Data:      data,
			SourceURL: first.URL,
			MIMEType:  adtools.ImageMIME(data),
		}, nil
	}

	return nil, fmt.Errorf("image response has neither b64_json nor url")
}

// openaiImageSize 将宽高比映射为 Images API 接受的像素尺寸
func openaiImageSize(aspectRatio string) string {
	switch aspectRatio {
	case "16:9":
		return "1536x1024"
	case "9:16":
		return "1024x1536"
	default:
		return "1024x1024"
	}
}
