package adtools

import (
	"github.com/rs/zerolog/log"

	"pomelo/internal/model/ad"
)

// MaxSceneReferences 单个场景最多可附带的参考图数（外部 API 硬限制）
const MaxSceneReferences = 5

// SelectReferences 参考图超额时按类别优先级截断：角色 > 道具 > 场地，
// 类内保持原有顺序。返回选中与被裁掉的两组。
func SelectReferences(refs []ResolvedRef, max int) (selected, dropped []ResolvedRef) {
	if max <= 0 {
		max = MaxSceneReferences
	}
	if len(refs) <= max {
		return refs, nil
	}

	var chars, props, locs []ResolvedRef
	for _, r := range refs {
		switch r.Image.ElementType {
		case ad.ElementCharacter:
			chars = append(chars, r)
		case ad.ElementProp:
			props = append(props, r)
		default:
			locs = append(locs, r)
		}
	}

	ordered := make([]ResolvedRef, 0, len(refs))
	ordered = append(ordered, chars...)
	ordered = append(ordered, props...)
	ordered = append(ordered, locs...)

	selected = ordered[:max]
	dropped = ordered[max:]
	for _, d := range dropped {
		log.Warn().
			Str("entity", d.Entity.Name).
			Str("type", string(d.Image.ElementType)).
			Int("limit", max).
			Msg("参考图超出上限，按优先级裁掉")
	}
	return selected, dropped
}
