package adtools

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrJSONUnparseable 修复后仍无法解析时返回，调用方需先落盘原始响应再失败
var ErrJSONUnparseable = errors.New("json response unparseable after repair")

var (
	fenceRe        = regexp.MustCompile("(?s)^\\s*```(?:json)?\\s*\\n(.*?)\\n\\s*```\\s*$")
	lineCommentRe  = regexp.MustCompile(`(?m)^\s*//.*$`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	trailingComma  = regexp.MustCompile(`,\s*([}\]])`)
	missingComma   = regexp.MustCompile(`"(\s*\n\s*)"`)
	missingBrace   = regexp.MustCompile(`}(\s*\n\s*){`)
)

// CleanJSONResponse 剥离 markdown 代码围栏并裁掉 JSON 前后的说明文字
func CleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)

	if m := fenceRe.FindStringSubmatch(content); len(m) > 1 {
		content = strings.TrimSpace(m[1])
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	// oracle 常在 JSON 前后附带解说，截取最外层大括号
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}

// RepairJSON 对常见坏形态做尽力修复：注释、尾随逗号、相邻字段/对象间缺逗号
func RepairJSON(content string) string {
	content = blockCommentRe.ReplaceAllString(content, "")
	content = lineCommentRe.ReplaceAllString(content, "")
	content = trailingComma.ReplaceAllString(content, "$1")
	content = missingComma.ReplaceAllString(content, `",$1"`)
	content = missingBrace.ReplaceAllString(content, "},$1{")
	return content
}

// ExtractJSON 从 oracle 文本响应中提取可解析的 JSON 字节：
// 先严格解析，失败后走一次修复，再失败返回 ErrJSONUnparseable。
func ExtractJSON(content string) ([]byte, error) {
	cleaned := CleanJSONResponse(content)
	if json.Valid([]byte(cleaned)) {
		return []byte(cleaned), nil
	}

	repaired := RepairJSON(cleaned)
	if json.Valid([]byte(repaired)) {
		return []byte(repaired), nil
	}

	var probe any
	err := json.Unmarshal([]byte(repaired), &probe)
	return nil, fmt.Errorf("%w: %v", ErrJSONUnparseable, err)
}
