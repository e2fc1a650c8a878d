package providers

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"pomelo/internal/pkg/adtools"
)

// GeminiImageConfig Gemini 图片生成配置
type GeminiImageConfig struct {
	APIKey string // API Key（必需）
	Model  string // 模型名称（可选，默认: gemini-2.5-flash-image）
}

// GeminiImageProvider Gemini 图片生成提供者
// 参考图以 inline data 形式随提示词一起传入，是角色一致性场景的首选
type GeminiImageProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiImageProvider 创建 Gemini 图片生成提供者
func NewGeminiImageProvider(cfg *GeminiImageConfig) (adtools.ImageProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash-image"
	}

	return &GeminiImageProvider{
		client: client,
		model:  model,
	}, nil
}

// GenerateImage 生成图片
// 提示词与参考图拼成多 part 请求，从响应里取第一段 inline 图片数据
func (p *GeminiImageProvider) GenerateImage(ctx context.Context, req *adtools.ImageRequest) (*adtools.MediaResult, error) {
	parts := []*genai.Part{{Text: req.Prompt}}

	for _, refPath := range req.ReferenceImages {
		data, err := os.ReadFile(refPath)
		if err != nil {
			return nil, fmt.Errorf("read reference image %s: %w", refPath, err)
		}
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{
			MIMEType: adtools.ImageMIME(data),
			Data:     data,
		}})
	}

	contents := []*genai.Content{
		{
			Role:  genai.RoleUser,
			Parts: parts,
		},
	}

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("Gemini generate image: %w", err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no candidates in response")
	}

	for _, part := range result.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			log.Info().
				Int("size", len(part.InlineData.Data)).
				Int("reference_count", len(req.ReferenceImages)).
				Msg("Gemini 图片生成成功")
			return &adtools.MediaResult{
				Data:     part.InlineData.Data,
				MIMEType: part.InlineData.MIMEType,
			}, nil
		}
	}

	return nil, fmt.Errorf("no image data in response")
}
