package adtools

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"pomelo/internal/model/ad"
)

// RefCandidate 把清单行与宇宙实体按名字 join 后的候选
type RefCandidate struct {
	Entity *ad.Entity
	Image  ad.ReferenceImage
}

// ResolvedRef 一次成功解析的结果
type ResolvedRef struct {
	Entity  *ad.Entity
	Image   ad.ReferenceImage
	RawName string
	Tier    int
	// UseAsBase 原始名带 " - 版本名" 后缀、按基础名命中时为 true，
	// 提示下游把参考图当作底图修改而非原样使用
	UseAsBase bool
}

// Resolver 按类别分区的名字解析器。
// 清单是权威 join 键：候选集只来自成功生成参考图的清单行。
type Resolver struct {
	byType map[ad.ElementType][]RefCandidate
}

// NewResolver 用清单行反向 join 宇宙实体构建解析器。
// join 不到实体的清单行与没有参考图的实体都会告警并排除。
func NewResolver(u *ad.UniverseRecord, m *ad.ImageManifest) *Resolver {
	r := &Resolver{byType: make(map[ad.ElementType][]RefCandidate)}
	joined := make(map[string]bool)

	for _, img := range m.Successful() {
		entities := u.EntitiesOf(img.ElementType)
		var matched *ad.Entity
		for tier := 1; tier <= 4 && matched == nil; tier++ {
			for i := range entities {
				if matchesAtTier(img.ElementName, entities[i].Name, entities[i].Name, tier) {
					matched = &entities[i]
					break
				}
			}
		}
		if matched == nil {
			log.Warn().
				Str("element", img.ElementName).
				Str("type", string(img.ElementType)).
				Msg("清单行在宇宙记录中无对应实体，跳过")
			continue
		}
		joined[string(img.ElementType)+"/"+matched.Name] = true
		r.byType[img.ElementType] = append(r.byType[img.ElementType], RefCandidate{Entity: matched, Image: img})
	}

	for _, t := range []ad.ElementType{ad.ElementCharacter, ad.ElementProp, ad.ElementLocation} {
		for _, e := range u.EntitiesOf(t) {
			if !joined[string(t)+"/"+e.Name] {
				log.Warn().
					Str("entity", e.Name).
					Str("type", string(t)).
					Msg("实体缺少参考图，场景将降级渲染")
			}
		}
	}
	return r
}

// Resolve 把场景里的自由文本名字解析成参考图。
// 带版本后缀的名字先整体匹配，再退回基础名匹配；全部落空返回 false（软失败）。
func (r *Resolver) Resolve(t ad.ElementType, raw string) (*ResolvedRef, bool) {
	candidates := r.byType[t]
	if len(candidates) == 0 {
		return nil, false
	}

	queries := []string{raw}
	base, hadSuffix := stripVersionSuffix(raw)
	if hadSuffix {
		queries = append(queries, base)
	}

	for qi, query := range queries {
		for tier := 1; tier <= 4; tier++ {
			for _, cand := range candidates {
				if matchesAtTier(query, cand.Entity.Name, cand.Image.ElementName, tier) {
					return &ResolvedRef{
						Entity:    cand.Entity,
						Image:     cand.Image,
						RawName:   raw,
						Tier:      tier,
						UseAsBase: qi > 0,
					}, true
				}
			}
		}
	}
	return nil, false
}

// ResolveScene 解析一个场景的全部元素引用，按 角色→道具→场地 的优先序分组返回。
// 解析不到的名字计入 misses；同一实体的重复引用只保留首个。
func (r *Resolver) ResolveScene(scene *ad.Scene) (resolved []ResolvedRef, misses []string) {
	seen := make(map[string]bool)
	groups := []struct {
		t     ad.ElementType
		names []string
	}{
		{ad.ElementCharacter, scene.ElementsUsed.Characters},
		{ad.ElementProp, scene.ElementsUsed.Props},
		{ad.ElementLocation, scene.ElementsUsed.Locations},
	}

	for _, g := range groups {
		for _, raw := range g.names {
			ref, ok := r.Resolve(g.t, raw)
			if !ok {
				log.Warn().
					Int("scene", scene.SceneNumber).
					Str("name", raw).
					Str("type", string(g.t)).
					Msg("元素名无法解析，放弃该参考图")
				misses = append(misses, raw)
				continue
			}
			key := string(g.t) + "/" + ref.Entity.Name
			if seen[key] {
				continue
			}
			seen[key] = true
			if !ref.Entity.UsedInScene(scene.SceneNumber) {
				log.Debug().
					Int("scene", scene.SceneNumber).
					Str("entity", ref.Entity.Name).
					Ints("scenes_used", ref.Entity.ScenesUsed).
					Msg("实体 scenes_used 未包含当前场景")
			}
			resolved = append(resolved, *ref)
		}
	}
	return resolved, misses
}

var parenSuffixRe = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// stripParenthetical 去掉一个尾部 " (...)" 注解
func stripParenthetical(s string) string {
	return strings.TrimSpace(parenSuffixRe.ReplaceAllString(s, ""))
}

// stripVersionSuffix 去掉 " - 版本名" 后缀，返回基础名与是否存在后缀
func stripVersionSuffix(s string) (string, bool) {
	if i := strings.LastIndex(s, " - "); i > 0 {
		return strings.TrimSpace(s[:i]), true
	}
	return s, false
}

// normalizeWords 小写分词，超过 3 字符的词去一个尾部 s（朴素单复数折叠）
func normalizeWords(s string) []string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		if len(w) > 3 && strings.HasSuffix(w, "s") {
			words[i] = w[:len(w)-1]
		}
	}
	return words
}

func wordMultiset(words []string) map[string]int {
	m := make(map[string]int, len(words))
	for _, w := range words {
		m[w]++
	}
	return m
}

func multisetEqual(a, b map[string]int) bool {
	if len(a) != len(b) {
		return false
	}
	for w, n := range a {
		if b[w] != n {
			return false
		}
	}
	return true
}

func wordSet(words []string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

func intersectCount(a, b map[string]bool) int {
	n := 0
	for w := range a {
		if b[w] {
			n++
		}
	}
	return n
}

// matchesAtTier 四级匹配阶梯。2~4 级先试清单名再试宇宙名（清单是权威键）。
//  1. 双侧严格相等（区分大小写）
//  2. 去尾部括号注解后忽略大小写相等
//  3. 规范化词多重集相等
//  4. 词集交集 >=2，或较小集 <=2 词且被完整包含。
//     三词以上的名字只共享一个词绝不算命中。
func matchesAtTier(query, universeName, manifestName string, tier int) bool {
	names := []string{manifestName}
	if universeName != manifestName {
		names = append(names, universeName)
	}

	switch tier {
	case 1:
		return query == universeName && query == manifestName

	case 2:
		q := strings.ToLower(stripParenthetical(query))
		for _, n := range names {
			if q == strings.ToLower(stripParenthetical(n)) {
				return true
			}
		}

	case 3:
		q := wordMultiset(normalizeWords(query))
		for _, n := range names {
			if multisetEqual(q, wordMultiset(normalizeWords(n))) {
				return true
			}
		}

	case 4:
		q := wordSet(normalizeWords(query))
		if len(q) == 0 {
			return false
		}
		for _, n := range names {
			c := wordSet(normalizeWords(n))
			if len(c) == 0 {
				continue
			}
			inter := intersectCount(q, c)
			if inter >= 2 {
				return true
			}
			smaller := len(q)
			if len(c) < smaller {
				smaller = len(c)
			}
			if smaller <= 2 && inter == smaller {
				return true
			}
		}
	}
	return false
}
