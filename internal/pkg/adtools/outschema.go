package adtools

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaOf 反射出类型 T 的 JSON Schema
// 关闭 additionalProperties 并内联所有引用，方便直接嵌入提示词
func SchemaOf[T any]() *jsonschema.Schema {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return r.Reflect(v)
}

// SchemaJSON 渲染类型 T 的 JSON Schema 文本
func SchemaJSON[T any]() (string, error) {
	data, err := json.MarshalIndent(SchemaOf[T](), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal json schema: %w", err)
	}
	return string(data), nil
}
