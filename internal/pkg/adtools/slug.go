package adtools

import (
	"regexp"
	"strings"
)

var (
	slugDropRe = regexp.MustCompile(`[^a-z0-9_\s.-]`)
	slugJoinRe = regexp.MustCompile(`[-\s]+`)
	slugRunsRe = regexp.MustCompile(`_+`)
)

// Slugify 把实体名/品牌名转成文件系统安全的 slug。
// 小写，丢弃除点和连字符外的标点，空白与连字符折叠为下划线。
// 点保留是为了 "claude_sonnet_4.5" 这类模型名。
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = slugDropRe.ReplaceAllString(s, "")
	s = slugJoinRe.ReplaceAllString(s, "_")
	s = slugRunsRe.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}
