package ai

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// fallbackEncoding 取不到模型专属编码器时使用
const fallbackEncoding = "o200k_base"

var (
	encodersMu sync.Mutex
	encoders   = map[string]*tiktoken.Tiktoken{}
)

// CountTokens 估算文本的 token 数量
// 优先使用模型对应的编码器，编码器不可用时退化为按 4 字符 1 token 估算
func CountTokens(modelName, text string) int {
	if text == "" {
		return 0
	}

	enc := encoderFor(modelName)
	if enc == nil {
		return len(text) / 4
	}
	return len(enc.Encode(text, nil, nil))
}

// encoderFor 返回模型对应的编码器，带进程内缓存
// tiktoken 初始化需要加载 BPE 词表，重复构建开销不小
func encoderFor(modelName string) *tiktoken.Tiktoken {
	encodersMu.Lock()
	defer encodersMu.Unlock()

	if enc, ok := encoders[modelName]; ok {
		return enc
	}

	enc, err := tiktoken.EncodingForModel(modelName)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
	}
	if err != nil {
		enc = nil
	}
	encoders[modelName] = enc
	return enc
}
