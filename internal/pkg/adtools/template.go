package adtools

import (
	"strings"
)

// ApplyTemplate 用变量表替换模板中的占位符
// 同时支持 {{KEY}} 与 {KEY} 两种写法
func ApplyTemplate(template string, vars map[string]string) string {
	out := template
	for key, value := range vars {
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
		out = strings.ReplaceAll(out, "{"+key+"}", value)
	}
	return out
}

// ExtractConceptTitle 从概念文本中提取标题行
// 标题行形如 "**CONCEPT TITLE**: The World Comes Into Focus"，没有时返回空串
func ExtractConceptTitle(content string) string {
	const marker = "**CONCEPT TITLE**:"
	for _, line := range strings.Split(content, "\n") {
		if idx := strings.Index(line, marker); idx >= 0 {
			return strings.TrimSpace(line[idx+len(marker):])
		}
	}
	return ""
}

// ConceptSlugFromTitle 标题转文件名片段：小写，空格连字符换下划线，去掉其余符号
func ConceptSlugFromTitle(brandName, title string) string {
	name := strings.ToLower(brandName) + "_" + strings.ToLower(title)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")

	var b strings.Builder
	for _, r := range name {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
