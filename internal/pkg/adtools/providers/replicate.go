package providers

import (
	"context"
	"fmt"
	"strings"

	replicatego "github.com/replicate/replicate-go"
	"github.com/rs/zerolog/log"

	"pomelo/internal/pkg/adtools"
	"pomelo/internal/pkg/replicate"
)

// ReplicateImageProvider Replicate 图片生成提供者
// 适配层，调用 replicate.Client 跑托管的图片模型（nano-banana、seedream 等）
type ReplicateImageProvider struct {
	client *replicate.Client
	model  string // "owner/name" 形式
}

// NewReplicateImageProvider 创建 Replicate 图片生成提供者
func NewReplicateImageProvider(client *replicate.Client, model string) (adtools.ImageProvider, error) {
	if client == nil {
		return nil, fmt.Errorf("replicate client is required")
	}
	if model == "" {
		return nil, fmt.Errorf("replicate image model is required")
	}

	return &ReplicateImageProvider{
		client: client,
		model:  model,
	}, nil
}

// GenerateImage 生成图片
// 参考图编码为 data URI 列表传入 image_input
func (p *ReplicateImageProvider) GenerateImage(ctx context.Context, req *adtools.ImageRequest) (*adtools.MediaResult, error) {
	input := replicatego.PredictionInput{
		"prompt":        req.Prompt,
		"output_format": "png",
	}
	if req.AspectRatio != "" {
		input["aspect_ratio"] = req.AspectRatio
	}
	if len(req.ReferenceImages) > 0 {
		uris, err := filesToDataURIs(req.ReferenceImages)
		if err != nil {
			return nil, err
		}
		input["image_input"] = uris
	}

	output, err := p.client.RunModel(ctx, p.model, input)
	if err != nil {
		return nil, fmt.Errorf("Replicate generate image: %w", err)
	}

	url, err := replicate.FirstURL(output)
	if err != nil {
		return nil, fmt.Errorf("Replicate image output: %w", err)
	}

	data, err := p.client.Download(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("download generated image: %w", err)
	}

	log.Info().
		Str("model", p.model).
		Int("size", len(data)).
		Int("reference_count", len(req.ReferenceImages)).
		Msg("Replicate 图片生成成功")

	return &adtools.MediaResult{
		Data:      data,
		SourceURL: url,
		MIMEType:  adtools.ImageMIME(data),
	}, nil
}

// ReplicateVideoProvider Replicate 视频生成提供者
// 适配层，按模型家族（Veo / Sora）组装各自的参数
type ReplicateVideoProvider struct {
	client *replicate.Client
	model  string // "owner/name" 形式
}

// NewReplicateVideoProvider 创建 Replicate 视频生成提供者
func NewReplicateVideoProvider(client *replicate.Client, model string) (adtools.VideoProvider, error) {
	if client == nil {
		return nil, fmt.Errorf("replicate client is required")
	}
	if model == "" {
		return nil, fmt.Errorf("replicate video model is required")
	}

	return &ReplicateVideoProvider{
		client: client,
		model:  model,
	}, nil
}

// GenerateVideo 生成视频片段
func (p *ReplicateVideoProvider) GenerateVideo(ctx context.Context, req *adtools.VideoRequest) (*adtools.MediaResult, error) {
	input, err := p.buildInput(req)
	if err != nil {
		return nil, err
	}

	output, err := p.client.RunModel(ctx, p.model, input)
	if err != nil {
		return nil, fmt.Errorf("Replicate generate video: %w", err)
	}

	url, err := replicate.FirstURL(output)
	if err != nil {
		return nil, fmt.Errorf("Replicate video output: %w", err)
	}

	data, err := p.client.Download(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("download generated video: %w", err)
	}

	log.Info().
		Str("model", p.model).
		Int("duration", req.DurationSeconds).
		Int("size", len(data)).
		Msg("Replicate 视频生成成功")

	return &adtools.MediaResult{
		Data:      data,
		SourceURL: url,
		MIMEType:  "video/mp4",
	}, nil
}

// buildInput 按模型家族组装预测输入
// Veo 接受 duration/resolution/aspect_ratio 加 image 首帧与 reference_images，
// Sora 用 seconds 与 size，首帧叫 input_reference
func (p *ReplicateVideoProvider) buildInput(req *adtools.VideoRequest) (replicatego.PredictionInput, error) {
	name := strings.ToLower(p.model)

	switch {
	case strings.Contains(name, "veo"):
		input := replicatego.PredictionInput{
			"prompt":   req.Prompt,
			"duration": req.DurationSeconds,
		}
		if req.Resolution != "" {
			input["resolution"] = req.Resolution
		}
		if req.AspectRatio != "" {
			input["aspect_ratio"] = req.AspectRatio
		}
		if req.FirstFrame != "" {
			uri, err := fileToDataURI(req.FirstFrame)
			if err != nil {
				return nil, err
			}
			input["image"] = uri
		}
		if len(req.ReferenceImages) > 0 {
			uris, err := filesToDataURIs(req.ReferenceImages)
			if err != nil {
				return nil, err
			}
			input["reference_images"] = uris
		}
		return input, nil

	case strings.Contains(name, "sora"):
		input := replicatego.PredictionInput{
			"prompt":  req.Prompt,
			"seconds": req.DurationSeconds,
			"size":    adtools.VideoFrameSize(req.Resolution, req.AspectRatio),
		}
		if req.FirstFrame != "" {
			uri, err := fileToDataURI(req.FirstFrame)
			if err != nil {
				return nil, err
			}
			input["input_reference"] = uri
		}
		return input, nil

	default:
		input := replicatego.PredictionInput{
			"prompt":   req.Prompt,
			"duration": req.DurationSeconds,
		}
		if req.AspectRatio != "" {
			input["aspect_ratio"] = req.AspectRatio
		}
		if req.FirstFrame != "" {
			uri, err := fileToDataURI(req.FirstFrame)
			if err != nil {
				return nil, err
			}
			input["image"] = uri
		}
		return input, nil
	}
}
