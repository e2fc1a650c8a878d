package adtools

import (
	"context"
	"fmt"
)

// LLMProvider 定义了调用大模型的接口
// 具体的「如何调用大模型」由调用方通过实现此接口注入，方便单测和替换实现
type LLMProvider interface {
	// Generate 根据提示词生成文本
	//
	// Args:
	//   - ctx: 上下文
	//   - prompt: 提示词
	//
	// Returns:
	//   - text: 生成的文本
	//   - err: 错误信息
	Generate(ctx context.Context, prompt string) (string, error)

	// GenerateWithSystem 带系统消息生成文本
	// 评审等场景需要固定的系统角色设定
	GenerateWithSystem(ctx context.Context, system, prompt string) (string, error)
}

// GenerateJSON 调用模型并把响应解析为 JSON 字节
// system 为空时走普通单轮生成。raw 为模型原始响应，
// 解析失败时调用方可将其落盘排查
func GenerateJSON(ctx context.Context, llm LLMProvider, system, prompt string) (data []byte, raw string, err error) {
	if llm == nil {
		return nil, "", fmt.Errorf("llm provider is required")
	}

	if system != "" {
		raw, err = llm.GenerateWithSystem(ctx, system, prompt)
	} else {
		raw, err = llm.Generate(ctx, prompt)
	}
	if err != nil {
		return nil, "", err
	}

	data, err = ExtractJSON(raw)
	if err != nil {
		return nil, raw, err
	}
	return data, raw, nil
}

// ImageProvider 图片生成提供者接口
// 统一抽象 Ark、OpenAI、Gemini、Replicate 等图片生成方式
type ImageProvider interface {
	// GenerateImage 生成图片
	// Args:
	//   - ctx: 上下文
	//   - req: 生成请求（提示词、尺寸、参考图）
	// Returns:
	//   - result: 图片数据，Data 一定非空
	//   - error: 错误信息
	GenerateImage(ctx context.Context, req *ImageRequest) (*MediaResult, error)
}

// VideoProvider 视频生成提供者接口
// 统一抽象 Ark（即梦/Seedance）与 Replicate（Veo/Sora）两类后端
type VideoProvider interface {
	// GenerateVideo 生成视频片段（同步等待后端任务完成）
	// Args:
	//   - ctx: 上下文
	//   - req: 生成请求（提示词、时长、分辨率、首帧图）
	// Returns:
	//   - result: 视频数据，Data 一定非空
	//   - error: 错误信息
	GenerateVideo(ctx context.Context, req *VideoRequest) (*MediaResult, error)
}

// ImageRequest 图片生成请求
type ImageRequest struct {
	Prompt          string   // 图片描述文本
	Size            string   // 分辨率档位，如 "1K"、"2K"
	AspectRatio     string   // 宽高比，如 "16:9"
	ReferenceImages []string // 参考图本地路径，可为空
}

// VideoRequest 视频生成请求
type VideoRequest struct {
	Prompt          string   // 视频描述文本
	DurationSeconds int      // 片段时长（秒），由调用方先对齐到模型支持的档位
	Resolution      string   // 分辨率，如 "480p"、"720p"、"1080p"
	AspectRatio     string   // 宽高比，如 "16:9"、"9:16"
	FirstFrame      string   // 首帧图本地路径，可为空
	ReferenceImages []string // 参考图本地路径，可为空
}

// MediaResult 媒体生成结果
// 后端返回 URL 时由 provider 负责下载，调用方只处理字节
type MediaResult struct {
	Data      []byte `json:"-"`          // 媒体二进制数据
	SourceURL string `json:"source_url"` // 后端返回的原始地址，可为空
	MIMEType  string `json:"mime_type"`  // 媒体类型，可为空
}
