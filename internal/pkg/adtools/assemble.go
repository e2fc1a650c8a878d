package adtools

import (
	"fmt"
	"strings"
)

// AssembledPrompt 组装完成的自包含生成指令与参考图路径（与指令中编号同序）
type AssembledPrompt struct {
	Text     string
	RefPaths []string
}

// AssembleScenePrompt 组装单个场景的媒体生成提示词。
// 每个场景独立可解释：风格逐场景重述，参考图逐条给出用法指令，
// 原样使用或以其为底图按场景描述修改。
func AssembleScenePrompt(sceneNumber int, narrative, style string, refs []ResolvedRef) AssembledPrompt {
	var b strings.Builder

	fmt.Fprintf(&b, "Scene %d.\n", sceneNumber)
	if style != "" {
		fmt.Fprintf(&b, "Visual style, restated in full for this scene: %s\n", style)
	}

	paths := make([]string, 0, len(refs))
	if len(refs) > 0 {
		b.WriteString("\nReference images attached, numbered in order:\n")
		for i, ref := range refs {
			usage := "use exactly as shown, keep the appearance unchanged"
			if ref.UseAsBase {
				usage = "use as the base appearance and modify it per the scene description"
			}
			fmt.Fprintf(&b, "%d. %s (%s): %s.\n", i+1, ref.Image.ElementName, ref.Image.ElementType, usage)
			paths = append(paths, ref.Image.Filepath)
		}
	}

	b.WriteString("\n")
	b.WriteString(strings.TrimSpace(narrative))
	b.WriteString("\n")

	return AssembledPrompt{Text: b.String(), RefPaths: paths}
}
