package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"pomelo/internal/config"
)

// MemoryCache 进程内缓存封装
type MemoryCache struct {
	c *gocache.Cache
}

// NewMemoryCache 创建内存缓存，TTL 与清理周期未配置时用默认值
func NewMemoryCache(cfg config.CacheConfig) *MemoryCache {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = ResponseCacheTTL
	}
	cleanup := cfg.CleanupInterval
	if cleanup <= 0 {
		cleanup = 10 * time.Minute
	}
	return &MemoryCache{c: gocache.New(ttl, cleanup)}
}

// Set 设置缓存，ttl 为零时用默认过期时间
func (m *MemoryCache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		m.c.SetDefault(key, value)
		return
	}
	m.c.Set(key, value, ttl)
}

// Get 获取缓存
func (m *MemoryCache) Get(key string) (any, bool) {
	return m.c.Get(key)
}

// GetString 获取字符串缓存，类型不符视为未命中
func (m *MemoryCache) GetString(key string) (string, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Delete 删除缓存
func (m *MemoryCache) Delete(key string) {
	m.c.Delete(key)
}

// Exists 检查 key 是否存在
func (m *MemoryCache) Exists(key string) bool {
	_, ok := m.c.Get(key)
	return ok
}

// Flush 清空全部缓存
func (m *MemoryCache) Flush() {
	m.c.Flush()
}

// 常用 key 模式
const (
	ResponseCacheKeyPrefix = "llmresp:"
	ResponseCacheTTL       = 30 * time.Minute
)

// ResponseCacheKey 生成 LLM 响应缓存 key，提示词可能很长，哈希后使用
func ResponseCacheKey(modelID, system, prompt string) string {
	h := sha256.New()
	h.Write([]byte(modelID))
	h.Write([]byte{0})
	h.Write([]byte(system))
	h.Write([]byte{0})
	h.Write([]byte(prompt))
	return ResponseCacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}
