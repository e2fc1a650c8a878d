package adtools

import (
	"fmt"
	"strings"
)

// 各视频模型族支持的片段时长档位（秒）
var durationSets = []struct {
	family  string
	choices []int
}{
	{"veo", []int{4, 6, 8}},
	{"sora", []int{4, 8, 12}},
	{"seedance", []int{5, 10}},
}

// SnapDuration 把目标时长吸附到模型支持的最近档位，距离相同取较小档。
// 未识别的模型族原样返回。
func SnapDuration(videoModel string, seconds int) int {
	model := strings.ToLower(videoModel)
	for _, set := range durationSets {
		if !strings.Contains(model, set.family) {
			continue
		}
		best := set.choices[0]
		for _, c := range set.choices[1:] {
			if abs(c-seconds) < abs(best-seconds) {
				best = c
			}
		}
		return best
	}
	return seconds
}

// SceneDuration 按场景数均分计算单场目标时长
func SceneDuration(totalSeconds, sceneCount int) int {
	if sceneCount <= 0 {
		sceneCount = 5
	}
	return totalSeconds / sceneCount
}

// ImageSize 把成片分辨率映射为图像生成尺寸档位
func ImageSize(resolution string) string {
	switch resolution {
	case "480p":
		return "1K"
	case "720p", "1080p":
		return "2K"
	}
	return "2K"
}

// VideoFrameSize 把分辨率+纵横比映射为 "WxH"。分辨率指短边。
func VideoFrameSize(resolution, aspectRatio string) string {
	short := map[string]int{"480p": 480, "720p": 720, "1080p": 1080}
	s, ok := short[resolution]
	if !ok {
		s = 720
	}
	long := s * 16 / 9
	if aspectRatio == "9:16" {
		return fmt.Sprintf("%dx%d", s, long)
	}
	return fmt.Sprintf("%dx%d", long, s)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
