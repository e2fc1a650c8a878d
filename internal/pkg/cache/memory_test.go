package cache

import (
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"pomelo/internal/config"
)

func TestMemoryCache(t *testing.T) {
	Convey("MemoryCache 基本读写", t, func() {
		c := NewMemoryCache(config.CacheConfig{TTL: time.Minute, CleanupInterval: time.Minute})

		Convey("Set 后 Get 命中", func() {
			c.Set("k", "v", 0)
			v, ok := c.Get("k")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, "v")
			So(c.Exists("k"), ShouldBeTrue)
		})

		Convey("GetString 对非字符串值视为未命中", func() {
			c.Set("n", 42, 0)
			_, ok := c.GetString("n")
			So(ok, ShouldBeFalse)

			c.Set("s", "text", 0)
			s, ok := c.GetString("s")
			So(ok, ShouldBeTrue)
			So(s, ShouldEqual, "text")
		})

		Convey("Delete 后未命中", func() {
			c.Set("k", "v", 0)
			c.Delete("k")
			So(c.Exists("k"), ShouldBeFalse)
		})

		Convey("短 TTL 到期后未命中", func() {
			c.Set("fleeting", "v", time.Millisecond)
			time.Sleep(5 * time.Millisecond)
			So(c.Exists("fleeting"), ShouldBeFalse)
		})

		Convey("零值配置回落到默认 TTL", func() {
			d := NewMemoryCache(config.CacheConfig{})
			d.Set("k", "v", 0)
			So(d.Exists("k"), ShouldBeTrue)
		})
	})
}

func TestResponseCacheKey(t *testing.T) {
	Convey("ResponseCacheKey 对相同输入生成稳定 key", t, func() {
		k1 := ResponseCacheKey("anthropic/claude-sonnet-4-5", "system", "prompt")
		k2 := ResponseCacheKey("anthropic/claude-sonnet-4-5", "system", "prompt")
		So(k1, ShouldEqual, k2)
		So(strings.HasPrefix(k1, ResponseCacheKeyPrefix), ShouldBeTrue)

		Convey("模型、系统消息、提示词任一变化 key 都变化", func() {
			So(ResponseCacheKey("other/model", "system", "prompt"), ShouldNotEqual, k1)
			So(ResponseCacheKey("anthropic/claude-sonnet-4-5", "other", "prompt"), ShouldNotEqual, k1)
			So(ResponseCacheKey("anthropic/claude-sonnet-4-5", "system", "other"), ShouldNotEqual, k1)
		})

		Convey("字段边界有分隔，拼接歧义不会撞 key", func() {
			So(ResponseCacheKey("m", "ab", "c"), ShouldNotEqual, ResponseCacheKey("m", "a", "bc"))
		})
	})
}
