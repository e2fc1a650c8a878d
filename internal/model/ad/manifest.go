package ad

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// ReferenceImage 图像清单中的一行：一个实体对应的唯一规范参考图
type ReferenceImage struct {
	ElementName string      `json:"element_name"`
	ElementType ElementType `json:"element_type"`
	Slug        string      `json:"slug"`
	Filepath    string      `json:"filepath,omitempty"`
	URL         string      `json:"url,omitempty"`
	Status      string      `json:"status"`
	Error       string      `json:"error,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// ImageManifest 参考图生成阶段的权威产物，下游解析按名字 join 只认它
type ImageManifest struct {
	ScriptID    string           `json:"script_id"`
	Model       string           `json:"model"`
	GeneratedAt time.Time        `json:"generated_at"`
	Elements    []ReferenceImage `json:"elements"`
}

// Successful 只返回成功生成的行
func (m *ImageManifest) Successful() []ReferenceImage {
	out := make([]ReferenceImage, 0, len(m.Elements))
	for _, e := range m.Elements {
		if e.Status == StatusSuccess {
			out = append(out, e)
		}
	}
	return out
}

// FailedCount 失败行数
func (m *ImageManifest) FailedCount() int {
	n := 0
	for _, e := range m.Elements {
		if e.Status != StatusSuccess {
			n++
		}
	}
	return n
}

// LoadImageManifest 从磁盘读取清单
func LoadImageManifest(path string) (*ImageManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image manifest: %w", err)
	}
	var m ImageManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse image manifest %s: %w", path, err)
	}
	return &m, nil
}
