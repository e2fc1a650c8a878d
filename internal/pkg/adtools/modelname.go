package adtools

import (
	"regexp"
	"strings"
)

// 常见模型 ID 的文件名映射；未命中时回落到 slug 并去掉日期戳
var modelNameTable = []struct {
	contains string
	clean    string
}{
	{"claude-sonnet-4-5", "claude_sonnet_4.5"},
	{"claude-opus-4", "claude_opus_4"},
	{"claude-haiku-4-5", "claude_haiku_4.5"},
	{"gpt-5.1", "gpt_5.1"},
	{"gpt-4o", "gpt_4o"},
}

var (
	dateStampRe  = regexp.MustCompile(`_\d{8}`)
	dateDashedRe = regexp.MustCompile(`_\d{4}_\d{2}_\d{2}`)
)

// SplitModelID 拆分 "provider/model" 形式的模型 ID。
// 无斜杠时 provider 为空，由调用方决定默认值。
func SplitModelID(id string) (provider, model string) {
	if i := strings.Index(id, "/"); i >= 0 {
		return id[:i], id[i+1:]
	}
	return "", id
}

// CleanModelName 生成用于产物文件名的模型短名
func CleanModelName(model string) string {
	for _, m := range modelNameTable {
		if strings.Contains(model, m.contains) {
			return m.clean
		}
	}
	s := Slugify(model)
	s = dateStampRe.ReplaceAllString(s, "")
	s = dateDashedRe.ReplaceAllString(s, "")
	return strings.Trim(s, "_")
}

// JudgeShortName 评审产物文件名用的短名：取模型 ID 最后一段再压缩
func JudgeShortName(judgeModel string) string {
	parts := strings.Split(judgeModel, "/")
	name := parts[len(parts)-1]
	switch {
	case strings.Contains(name, "claude-sonnet-4-5"):
		return "claude_4.5"
	case strings.Contains(name, "gpt-5.1"):
		return "gpt_5.1"
	}
	return CleanModelName(name)
}

// ModelSuffix 视频片段文件名后缀：模型 ID 最后一段，连字符换下划线
func ModelSuffix(videoModel string) string {
	parts := strings.Split(videoModel, "/")
	return strings.ReplaceAll(parts[len(parts)-1], "-", "_")
}
