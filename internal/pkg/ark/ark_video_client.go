package ark

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ArkVideoConfig Ark 视频生成配置
type ArkVideoConfig struct {
	APIKey  string // API Key（必需）
	BaseURL string // API 基础 URL（可选，默认: https://ark.cn-beijing.volces.com/api/v3）
	Model   string // 模型名称（可选，默认: doubao-seedance-1-0-pro-250528）
}

// VideoTask 视频生成任务参数
type VideoTask struct {
	Prompt          string // 视频描述（必需）
	FirstFrameURL   string // 首帧图 data URL，可为空（为空时走 text-to-video）
	DurationSeconds int    // 时长（秒），Seedance 支持 5/10
	Ratio           string // 视频比例，如 "16:9"、"9:16"，默认 "16:9"
	Resolution      string // 分辨率，如 "480p"、"720p"、"1080p"，可为空
}

// ArkVideoClient Ark 视频生成客户端
// 用于调用火山引擎的 Ark 内容生成 API（text-to-video / image-to-video）
// 参考 Python SDK: volcenginesdkarkruntime.Ark().content_generation.tasks.create()
type ArkVideoClient struct {
	model   string
	baseURL string
	apiKey  string
}

// NewArkVideoClient 创建 Ark 视频生成客户端
func NewArkVideoClient(config *ArkVideoConfig) (*ArkVideoClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("ark api key is required")
	}

	modelName := config.Model
	if modelName == "" {
		modelName = "doubao-seedance-1-0-pro-250528"
	}
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://ark.cn-beijing.volces.com/api/v3"
	}

	return &ArkVideoClient{
		model:   modelName,
		baseURL: baseURL,
		apiKey:  config.APIKey,
	}, nil
}

// GenerateVideo 生成视频（同步等待）
// 对应 Python: client.content_generation.tasks.create() + 轮询等待
//
// 实现流程：
// 1. 调用 tasks.create() 提交任务（异步 API，返回 task_id）
// 2. 在函数内部轮询 tasks.get(task_id) 直到任务完成
// 3. 下载视频数据并返回
//
// Returns:
//   - []byte: 视频数据
//   - string: 后端返回的视频地址
//   - error: 错误信息
func (c *ArkVideoClient) GenerateVideo(ctx context.Context, task *VideoTask) ([]byte, string, error) {
	if task.Prompt == "" {
		return nil, "", fmt.Errorf("video prompt is required")
	}

	// Seedance 任务时长上限 12 秒
	duration := task.DurationSeconds
	if duration > 12 {
		log.Warn().Int("original", duration).Msg("视频时长超过限制，已调整为 12 秒")
		duration = 12
	}
	if duration <= 0 {
		duration = 5
	}

	ratio := task.Ratio
	if ratio == "" {
		ratio = "16:9"
	}

	// 1. 提交任务（异步 API，只返回 task_id）
	taskID, err := c.createVideoTask(ctx, task.Prompt, task.FirstFrameURL, duration, ratio, task.Resolution)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create video task: %w", err)
	}

	log.Info().Str("task_id", taskID).Msg("视频生成任务提交成功")

	// 2. 同步轮询等待任务完成（在函数内部，阻塞等待）
	maxWaitTime := 30 * time.Minute
	pollInterval := 5 * time.Second
	startTime := time.Now()

	for {
		// 检查超时
		if time.Since(startTime) > maxWaitTime {
			return nil, "", fmt.Errorf("video generation timeout after %v", maxWaitTime)
		}

		// 查询任务状态
		status, videoURL, err := c.getTaskStatus(ctx, taskID)
		if err != nil {
			return nil, "", fmt.Errorf("failed to get task status: %w", err)
		}

		if status == "succeeded" || status == "completed" {
			// 3. 下载视频数据
			if videoURL == "" {
				return nil, "", fmt.Errorf("video URL is empty")
			}
			videoData, err := c.downloadVideo(ctx, videoURL)
			if err != nil {
				return nil, "", fmt.Errorf("failed to download video: %w", err)
			}
			log.Info().Str("task_id", taskID).Int("size", len(videoData)).Msg("视频生成成功并下载完成")
			return videoData, videoURL, nil
		} else if status == "failed" {
			return nil, "", fmt.Errorf("video generation task failed: task_id=%s", taskID)
		}

		// 等待一段时间后继续轮询
		log.Debug().Str("task_id", taskID).Str("status", status).Msg("视频生成中，继续等待...")
		select {
		case <-ctx.Done():
			return nil, "", ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// createVideoTask 创建视频生成任务
// 使用 HTTP 请求直接调用 Ark API（Go SDK 没有 content_generation.tasks 的封装）
// 参考官方文档: https://www.volcengine.com/docs/82379/1520757
func (c *ArkVideoClient) createVideoTask(ctx context.Context, prompt, imageDataURL string, duration int, ratio, resolution string) (string, error) {
	content := []map[string]interface{}{
		{
			"type": "text",
			"text": prompt,
		},
	}
	if imageDataURL != "" {
		content = append(content, map[string]interface{}{
			"type": "image_url",
			"image_url": map[string]interface{}{
				"url": imageDataURL,
			},
		})
	}

	requestBody := map[string]interface{}{
		"model":     c.model,
		"content":   content,
		"ratio":     ratio,
		"duration":  duration,
		"watermark": false,
	}
	if resolution != "" {
		requestBody["resolution"] = resolution
	}

	// 序列化请求体
	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("marshal request body: %w", err)
	}

	// 创建视频生成任务 API 路径: POST {base}/contents/generations/tasks
	baseURL := strings.TrimSuffix(c.baseURL, "/")
	apiURL := fmt.Sprintf("%s/contents/generations/tasks", baseURL)

	log.Debug().
		Str("api_url", apiURL).
		Str("model", c.model).
		Int("duration", duration).
		Str("ratio", ratio).
		Str("resolution", resolution).
		Bool("with_first_frame", imageDataURL != "").
		Msg("创建视频生成任务")

	// 创建 HTTP 请求
	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	// 首帧图走 base64，请求体可能很大，放宽超时
	client := &http.Client{Timeout: 10 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error().
			Int("status_code", resp.StatusCode).
			Str("url", apiURL).
			Str("response_body", string(body)).
			Msg("API 请求失败")
		return "", fmt.Errorf("API request failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	// 解析响应
	var apiResp struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if apiResp.ID == "" {
		return "", fmt.Errorf("task ID is empty in response")
	}

	return apiResp.ID, nil
}

// getTaskStatus 查询任务状态
// 参考官方文档: https://www.volcengine.com/docs/82379/1521309
func (c *ArkVideoClient) getTaskStatus(ctx context.Context, taskID string) (status string, videoURL string, err error) {
	baseURL := strings.TrimSuffix(c.baseURL, "/")
	apiURL := fmt.Sprintf("%s/contents/generations/tasks/%s", baseURL, taskID)

	// 创建 HTTP 请求
	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return "", "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	// 发送请求
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error().
			Int("status_code", resp.StatusCode).
			Str("url", apiURL).
			Str("task_id", taskID).
			Str("response_body", string(body)).
			Msg("查询任务状态失败")
		return "", "", fmt.Errorf("API request failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	// 解析响应
	var apiResp struct {
		Status  string `json:"status"`
		Content struct {
			VideoURL string `json:"video_url"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", "", fmt.Errorf("decode response: %w", err)
	}

	return apiResp.Status, apiResp.Content.VideoURL, nil
}

// downloadVideo 下载视频
func (c *ArkVideoClient) downloadVideo(ctx context.Context, videoURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", videoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	client := &http.Client{
		Timeout: 5 * time.Minute,
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download video: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download video: status code %d", resp.StatusCode)
	}

	videoData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read video data: %w", err)
	}

	return videoData, nil
}

// ConvertImageToDataURL 将图片数据转换为 data URL
func ConvertImageToDataURL(imageData []byte, mimeType string) string {
	base64Data := base64.StdEncoding.EncodeToString(imageData)
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64Data)
}
