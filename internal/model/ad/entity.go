package ad

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ElementType 实体类别：角色 / 道具 / 场地
type ElementType string

const (
	ElementCharacter ElementType = "character"
	ElementProp      ElementType = "prop"
	ElementLocation  ElementType = "location"
)

// Entity 需要跨场景视觉一致性的实体。
// 运行期只有单一规范形态；旧的多版本（versions 数组）输入在解码时折叠。
type Entity struct {
	Name                  string `json:"name"`
	ScenesUsed            []int  `json:"scenes_used"`
	Description           string `json:"description"`
	ImageGenerationPrompt string `json:"image_generation_prompt"`

	// CollapsedFrom 记录被折叠的版本名（仅当输入为多版本形态时非空）
	CollapsedFrom []string `json:"-"`
}

// entityWire 解码用中间结构，兼容单版本与多版本两种输入形态
type entityWire struct {
	Name                  string        `json:"name"`
	ScenesUsed            []int         `json:"scenes_used"`
	Description           string        `json:"description"`
	ImageGenerationPrompt string        `json:"image_generation_prompt"`
	HasMultipleVersions   bool          `json:"has_multiple_versions"`
	Versions              []versionWire `json:"versions"`
}

type versionWire struct {
	VersionName           string `json:"version_name"`
	ScenesUsed            []int  `json:"scenes_used"`
	Description           string `json:"description"`
	ImageGenerationPrompt string `json:"image_generation_prompt"`
	IsOriginal            bool   `json:"is_original"`
}

// UnmarshalJSON 在解析边界完成多版本折叠：
// 取 is_original 的版本（缺省取第一个）作为规范形态，scenes_used 取各版本并集。
func (e *Entity) UnmarshalJSON(data []byte) error {
	var w entityWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Name == "" {
		return fmt.Errorf("entity missing name")
	}

	e.Name = w.Name
	e.ScenesUsed = w.ScenesUsed
	e.Description = w.Description
	e.ImageGenerationPrompt = w.ImageGenerationPrompt
	e.CollapsedFrom = nil

	if len(w.Versions) > 0 {
		canonical := w.Versions[0]
		for _, v := range w.Versions {
			if v.IsOriginal {
				canonical = v
				break
			}
		}
		e.Description = canonical.Description
		e.ImageGenerationPrompt = canonical.ImageGenerationPrompt

		seen := map[int]bool{}
		for _, s := range w.ScenesUsed {
			seen[s] = true
		}
		for _, v := range w.Versions {
			e.CollapsedFrom = append(e.CollapsedFrom, v.VersionName)
			for _, s := range v.ScenesUsed {
				seen[s] = true
			}
		}
		e.ScenesUsed = e.ScenesUsed[:0]
		for s := range seen {
			e.ScenesUsed = append(e.ScenesUsed, s)
		}
	}

	sort.Ints(e.ScenesUsed)
	return nil
}

// UsedInScene 实体是否出现在指定场景
func (e *Entity) UsedInScene(n int) bool {
	for _, s := range e.ScenesUsed {
		if s == n {
			return true
		}
	}
	return false
}

// Recurring 实体是否跨 2 个及以上场景出现
func (e *Entity) Recurring() bool {
	return len(e.ScenesUsed) >= 2
}

// Universe 道具与场地两个分区
type Universe struct {
	Locations []Entity `json:"locations"`
	Props     []Entity `json:"props"`
}

// UniverseRecord 宇宙抽取阶段的持久化产物
type UniverseRecord struct {
	Universe   Universe `json:"universe"`
	Characters []Entity `json:"characters"`
}

// EntitiesOf 按类别返回实体切片
func (u *UniverseRecord) EntitiesOf(t ElementType) []Entity {
	switch t {
	case ElementCharacter:
		return u.Characters
	case ElementProp:
		return u.Universe.Props
	case ElementLocation:
		return u.Universe.Locations
	}
	return nil
}

// TotalEntities 所有类别实体总数
func (u *UniverseRecord) TotalEntities() int {
	return len(u.Characters) + len(u.Universe.Props) + len(u.Universe.Locations)
}

// ParseUniverseRecord 把 oracle 输出（已做过围栏剥离与修复）解析为强类型记录
func ParseUniverseRecord(data []byte) (*UniverseRecord, error) {
	var rec UniverseRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse universe record: %w", err)
	}
	return &rec, nil
}
