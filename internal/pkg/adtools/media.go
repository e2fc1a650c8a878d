package adtools

import (
	"github.com/h2non/filetype"
)

// ImageMIME 嗅探图片字节的 MIME 类型，识别失败时按 png 处理
func ImageMIME(data []byte) string {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return "image/png"
	}
	return kind.MIME.Value
}

// ImageExtension 嗅探图片字节的文件扩展名（不带点），识别失败时按 png 处理
func ImageExtension(data []byte) string {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return "png"
	}
	return kind.Extension
}
