package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Client FFmpeg 客户端
// 用于封装 FFmpeg 命令调用
type Client struct {
	ffmpegPath  string // FFmpeg 可执行文件路径（默认: ffmpeg）
	ffprobePath string // FFprobe 可执行文件路径（默认: ffprobe）
}

// NewClient 创建 FFmpeg 客户端
func NewClient() *Client {
	ffmpegPath := os.Getenv("FFMPEG_PATH")
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}

	ffprobePath := os.Getenv("FFPROBE_PATH")
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}

	return &Client{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
	}
}

// VideoInfo 视频信息
type VideoInfo struct {
	Width    int     // 宽度
	Height   int     // 高度
	FPS      float64 // 帧率
	Duration float64 // 时长（秒）
}

// probeResult ffprobe -of json 的输出结构
type probeResult struct {
	Streams []struct {
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		RFrameRate string `json:"r_frame_rate"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// GetVideoInfo 获取视频信息
func (c *Client) GetVideoInfo(ctx context.Context, videoPath string) (*VideoInfo, error) {
	// ffprobe -v error -select_streams v:0 -show_entries stream=width,height,r_frame_rate -show_entries format=duration -of json video.mp4
	cmd := exec.CommandContext(ctx, c.ffprobePath,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,r_frame_rate",
		"-show_entries", "format=duration",
		"-of", "json",
		videoPath,
	)

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probed probeResult
	if err := json.Unmarshal(output, &probed); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}

	var info VideoInfo
	if len(probed.Streams) > 0 {
		s := probed.Streams[0]
		info.Width = s.Width
		info.Height = s.Height
		// r_frame_rate 格式: "30000/1001"
		if num, den, ok := strings.Cut(s.RFrameRate, "/"); ok {
			n, errN := strconv.ParseFloat(num, 64)
			d, errD := strconv.ParseFloat(den, 64)
			if errN == nil && errD == nil && d > 0 {
				info.FPS = n / d
			}
		}
	}
	if probed.Format.Duration != "" {
		if dur, err := strconv.ParseFloat(probed.Format.Duration, 64); err == nil {
			info.Duration = dur
		}
	}

	return &info, nil
}

// GetVideoDuration 获取视频时长（秒）
func (c *Client) GetVideoDuration(ctx context.Context, videoPath string) (float64, error) {
	info, err := c.GetVideoInfo(ctx, videoPath)
	if err != nil {
		return 0, err
	}
	return info.Duration, nil
}

// ConcatVideos 按给定顺序无损合并多个视频文件
// 使用 concat demuxer 加 -c copy，不重新编码，clip 列表写入临时清单文件，
// 合并结束后无论成败都删除清单
func (c *Client) ConcatVideos(ctx context.Context, videoPaths []string, outputPath string) error {
	if len(videoPaths) == 0 {
		return fmt.Errorf("no videos to concat")
	}

	tempDir := filepath.Dir(outputPath)
	concatListFile := filepath.Join(tempDir, fmt.Sprintf("concat_list_%d.txt", time.Now().Unix()))

	file, err := os.Create(concatListFile)
	if err != nil {
		return fmt.Errorf("create concat list file: %w", err)
	}
	defer os.Remove(concatListFile)

	// concat demuxer 要求绝对路径，避免相对清单文件所在目录解析
	for _, videoPath := range videoPaths {
		absPath, err := filepath.Abs(videoPath)
		if err != nil {
			file.Close()
			return fmt.Errorf("get absolute path: %w", err)
		}
		if _, err := fmt.Fprintf(file, "file '%s'\n", absPath); err != nil {
			file.Close()
			return fmt.Errorf("write concat list file: %w", err)
		}
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close concat list file: %w", err)
	}

	// ffmpeg -f concat -safe 0 -i concat_list.txt -c copy output.mp4
	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", concatListFile,
		"-c", "copy", // 使用 copy 避免重新编码
		outputPath,
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.ffmpegPath, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg concat failed: %w: %s", err, stderr.String())
	}

	log.Info().
		Int("count", len(videoPaths)).
		Str("output", outputPath).
		Msg("视频合并成功")

	return nil
}
