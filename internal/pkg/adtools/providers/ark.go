package providers

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"pomelo/internal/pkg/adtools"
	"pomelo/internal/pkg/ark"
)

// ArkImageProvider Ark 图片生成提供者
// 适配层，调用 ark.ArkImageClient（使用官方 Go SDK）
type ArkImageProvider struct {
	client *ark.ArkImageClient
}

// NewArkImageProvider 创建 Ark 图片生成提供者
func NewArkImageProvider(cfg *ark.ArkImageConfig) (adtools.ImageProvider, error) {
	client, err := ark.NewArkImageClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create Ark Image client: %w", err)
	}

	return &ArkImageProvider{
		client: client,
	}, nil
}

// GenerateImage 生成图片
// 调用 ark.ArkImageClient.GenerateImage
func (p *ArkImageProvider) GenerateImage(ctx context.Context, req *adtools.ImageRequest) (*adtools.MediaResult, error) {
	if len(req.ReferenceImages) > 0 {
		return nil, fmt.Errorf("ark image provider does not support reference images, use gemini or replicate")
	}

	imageData, err := p.client.GenerateImage(ctx, req.Prompt, req.Size, false)
	if err != nil {
		return nil, fmt.Errorf("Ark generate image: %w", err)
	}

	log.Info().
		Int("size", len(imageData)).
		Msg("Ark 图片生成成功")

	return &adtools.MediaResult{
		Data:     imageData,
		MIMEType: adtools.ImageMIME(imageData),
	}, nil
}

// ArkVideoProvider Ark 视频生成提供者
// 适配层，调用 ark.ArkVideoClient
type ArkVideoProvider struct {
	client *ark.ArkVideoClient
}

// NewArkVideoProvider 创建 Ark 视频生成提供者
func NewArkVideoProvider(cfg *ark.ArkVideoConfig) (adtools.VideoProvider, error) {
	client, err := ark.NewArkVideoClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create Ark Video client: %w", err)
	}

	return &ArkVideoProvider{
		client: client,
	}, nil
}

// GenerateVideo 生成视频片段
// 调用 ark.ArkVideoClient.GenerateVideo，首帧图编码为 data URL 传入
func (p *ArkVideoProvider) GenerateVideo(ctx context.Context, req *adtools.VideoRequest) (*adtools.MediaResult, error) {
	task := &ark.VideoTask{
		Prompt:          req.Prompt,
		DurationSeconds: req.DurationSeconds,
		Ratio:           req.AspectRatio,
		Resolution:      req.Resolution,
	}

	if req.FirstFrame != "" {
		data, err := os.ReadFile(req.FirstFrame)
		if err != nil {
			return nil, fmt.Errorf("read first frame %s: %w", req.FirstFrame, err)
		}
		task.FirstFrameURL = ark.ConvertImageToDataURL(data, adtools.ImageMIME(data))
	}

	videoData, videoURL, err := p.client.GenerateVideo(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("Ark generate video: %w", err)
	}

	log.Info().
		Int("duration", req.DurationSeconds).
		Int("size", len(videoData)).
		Msg("Ark 视频生成成功")

	return &adtools.MediaResult{
		Data:      videoData,
		SourceURL: videoURL,
		MIMEType:  "video/mp4",
	}, nil
}
