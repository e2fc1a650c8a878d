package ad

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"pomelo/internal/model/ad"
	"pomelo/internal/pkg/adtools"
)

// MergeClips 按场景顺序拼接片段为成片
// 缺失片段告警后跳过，成片由剩余片段拼成；一个片段都没有才报错
func (s *pipelineService) MergeClips(ctx context.Context, scenesPath, clipsDir, outPath string) (string, error) {
	scenesData, err := os.ReadFile(scenesPath)
	if err != nil {
		return "", fmt.Errorf("read scene prompts: %w", err)
	}
	set, err := ad.ParseScenePromptSet(scenesData)
	if err != nil {
		return "", err
	}

	concept := strings.TrimSuffix(stem(scenesPath), "_scene_prompts")
	suffix := adtools.ModelSuffix(s.cfg.Models.VideoModel)

	// 1. 按场景编号收集片段
	clips, missing := collectClips(clipsDir, concept, suffix, set.SceneNumbers())
	for _, n := range missing {
		log.Warn().Int("scene", n).Msg("片段缺失，成片将跳过该场景")
	}
	if len(clips) == 0 {
		return "", fmt.Errorf("no clips found under %s for concept %s", clipsDir, concept)
	}

	// 2. 逐片段探测时长，提前暴露损坏文件
	var total float64
	for _, clip := range clips {
		d, err := s.ffmpeg.GetVideoDuration(ctx, clip)
		if err != nil {
			log.Warn().Err(err).Str("file", clip).Msg("片段时长探测失败")
			continue
		}
		total += d
		log.Info().Str("file", filepath.Base(clip)).Float64("duration", d).Msg("片段就绪")
	}

	if outPath == "" {
		outPath = filepath.Join(clipsDir, fmt.Sprintf("%s_final_%s.mp4", concept, suffix))
	}
	if err := s.ffmpeg.ConcatVideos(ctx, clips, outPath); err != nil {
		return "", fmt.Errorf("concat clips: %w", err)
	}

	log.Info().
		Int("clips", len(clips)).
		Int("scenes", len(set.Scenes)).
		Float64("duration", total).
		Str("file", outPath).
		Msg("成片拼接完成")
	return outPath, nil
}

// collectClips 按场景编号升序定位片段文件，带模型后缀的命名优先。
// 返回找到的片段路径与缺失的场景编号，不触碰文件内容
func collectClips(clipsDir, concept, suffix string, sceneNumbers []int) (clips []string, missing []int) {
	for _, n := range sceneNumbers {
		candidates := []string{
			filepath.Join(clipsDir, fmt.Sprintf("%s_p%d_%s.mp4", concept, n, suffix)),
			filepath.Join(clipsDir, fmt.Sprintf("%s_p%d.mp4", concept, n)),
		}
		found := ""
		for _, c := range candidates {
			if fileExists(c) {
				found = c
				break
			}
		}
		if found == "" {
			missing = append(missing, n)
			continue
		}
		clips = append(clips, found)
	}
	return clips, missing
}
