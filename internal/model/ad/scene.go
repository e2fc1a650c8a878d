package ad

import (
	"encoding/json"
	"fmt"
	"sort"
)

// SceneElements 场景引用的实体名列表，名字可能带 " - 版本名" 后缀
type SceneElements struct {
	Characters []string `json:"characters"`
	Locations  []string `json:"locations"`
	Props      []string `json:"props"`
}

// Scene 单个分镜的生成指令
type Scene struct {
	SceneNumber           int           `json:"scene_number"`
	DurationSeconds       int           `json:"duration_seconds"`
	VideoPrompt           string        `json:"video_prompt"`
	AudioBackground       string        `json:"audio_background"`
	AudioDialogue         *string       `json:"audio_dialogue"`
	FirstFrameImagePrompt string        `json:"first_frame_image_prompt"`
	ElementsUsed          SceneElements `json:"elements_used"`
}

// ClipPrompt 拼出发给视频模型的完整提示词。
// 背景音乐与台词段落附在画面描述之后，台词自带说话人前缀。
func (s *Scene) ClipPrompt() string {
	prompt := s.VideoPrompt
	if s.AudioBackground != "" {
		prompt += "\n\nBackground Music: " + s.AudioBackground
	}
	if s.AudioDialogue != nil && *s.AudioDialogue != "" {
		prompt += "\n\n" + *s.AudioDialogue
	}
	return prompt
}

// ScenePromptSet 分镜提示阶段的持久化产物
type ScenePromptSet struct {
	Scenes []Scene `json:"scenes"`
}

// ParseScenePromptSet 解析并校验分镜集合：按 scene_number 升序重排，
// 编号必须从 1 起连续且不重复。
func ParseScenePromptSet(data []byte) (*ScenePromptSet, error) {
	var set ScenePromptSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse scene prompts: %w", err)
	}
	if len(set.Scenes) == 0 {
		return nil, fmt.Errorf("scene prompts contain no scenes")
	}

	sort.Slice(set.Scenes, func(i, j int) bool {
		return set.Scenes[i].SceneNumber < set.Scenes[j].SceneNumber
	})
	for i, s := range set.Scenes {
		if s.SceneNumber != i+1 {
			return nil, fmt.Errorf("scene numbers must be contiguous from 1, got %d at position %d", s.SceneNumber, i)
		}
	}
	return &set, nil
}

// SceneNumbers 升序场景编号
func (s *ScenePromptSet) SceneNumbers() []int {
	nums := make([]int, 0, len(s.Scenes))
	for _, sc := range s.Scenes {
		nums = append(nums, sc.SceneNumber)
	}
	return nums
}
