package replicate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	replicatego "github.com/replicate/replicate-go"
	"github.com/rs/zerolog/log"
)

// Config Replicate 客户端配置
type Config struct {
	APIToken string // API Token（必需）
}

// Client Replicate 客户端封装
// 用于调用 Replicate 上托管的图片/视频模型（Veo、Sora、Seedream 等）
// 提交预测任务后在函数内部阻塞等待完成
type Client struct {
	rc *replicatego.Client
}

// NewClient 创建 Replicate 客户端
func NewClient(cfg *Config) (*Client, error) {
	if cfg.APIToken == "" {
		return nil, fmt.Errorf("replicate api token is required")
	}

	rc, err := replicatego.NewClient(replicatego.WithToken(cfg.APIToken))
	if err != nil {
		return nil, fmt.Errorf("create replicate client: %w", err)
	}

	return &Client{rc: rc}, nil
}

// RunModel 提交预测任务并阻塞等待完成
// modelID 形如 "google/veo-3.1"、"openai/sora-2"
//
// Returns:
//   - output: 预测输出，通常是产物 URL 或 URL 列表
//   - err: 错误信息
func (c *Client) RunModel(ctx context.Context, modelID string, input replicatego.PredictionInput) (any, error) {
	owner, name, ok := strings.Cut(modelID, "/")
	if !ok || owner == "" || name == "" {
		return nil, fmt.Errorf("invalid replicate model id: %s", modelID)
	}

	prediction, err := c.rc.CreatePredictionWithModel(ctx, owner, name, input, nil, false)
	if err != nil {
		return nil, fmt.Errorf("create prediction for %s: %w", modelID, err)
	}

	log.Info().
		Str("model", modelID).
		Str("prediction_id", prediction.ID).
		Msg("Replicate 预测任务已提交")

	start := time.Now()
	if err := c.rc.Wait(ctx, prediction); err != nil {
		return nil, fmt.Errorf("wait prediction %s: %w", prediction.ID, err)
	}

	if prediction.Status != replicatego.Succeeded {
		return nil, fmt.Errorf("prediction %s ended with status %s: %v",
			prediction.ID, prediction.Status, prediction.Error)
	}

	log.Info().
		Str("model", modelID).
		Str("prediction_id", prediction.ID).
		Dur("elapsed", time.Since(start)).
		Msg("Replicate 预测任务完成")

	return prediction.Output, nil
}

// Download 下载预测产物
func (c *Client) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpClient := &http.Client{Timeout: 5 * time.Minute}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download prediction output: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download prediction output: status code %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read prediction output: %w", err)
	}

	return data, nil
}

// FirstURL 从预测输出中取第一个产物地址
// Replicate 的输出可能是单个 URL、URL 列表或带 url 字段的对象
func FirstURL(output any) (string, error) {
	switch v := output.(type) {
	case string:
		if v != "" {
			return v, nil
		}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				return s, nil
			}
		}
	case map[string]any:
		if s, ok := v["url"].(string); ok && s != "" {
			return s, nil
		}
	}
	return "", fmt.Errorf("no output url in prediction result")
}
