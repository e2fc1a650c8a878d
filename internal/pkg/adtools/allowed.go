package adtools

import (
	"strings"

	"pomelo/internal/model/ad"
)

// DisplayNameMap 建立宇宙实体名到图片清单展示名的映射
// 参考图生成阶段可能微调过实体名（单复数、括号标注），场景提示词里的
// ALLOWED 名单必须用清单里的名字，否则名字解析不回参考图
func DisplayNameMap(u *ad.UniverseRecord, m *ad.ImageManifest) map[string]string {
	mapping := make(map[string]string)
	if u == nil || m == nil {
		return mapping
	}

	for _, img := range m.Elements {
		for _, e := range u.EntitiesOf(img.ElementType) {
			if namesAlike(e.Name, img.ElementName) {
				mapping[e.Name] = img.ElementName
			}
		}
	}
	return mapping
}

// namesAlike 宽松判断宇宙名和清单名是否指同一实体
// 依次尝试：全等、小写去空格全等、去括号基名互相包含
func namesAlike(universeName, manifestName string) bool {
	if universeName == manifestName {
		return true
	}

	lu := strings.ToLower(universeName)
	lm := strings.ToLower(manifestName)
	if strings.ReplaceAll(lu, " ", "") == strings.ReplaceAll(lm, " ", "") {
		return true
	}

	baseU := strings.ToLower(strings.TrimSpace(strings.SplitN(universeName, "(", 2)[0]))
	if baseU != "" && strings.Contains(lm, baseU) {
		return true
	}
	baseM := strings.ToLower(strings.TrimSpace(strings.SplitN(manifestName, "(", 2)[0]))
	if baseM != "" && strings.Contains(lu, baseM) {
		return true
	}
	return false
}

// AllowedNames 生成某一类实体的 ALLOWED 名单
// 有映射时替换为清单展示名，没有映射时保留宇宙名
func AllowedNames(entities []ad.Entity, displayNames map[string]string) []string {
	names := make([]string, 0, len(entities))
	for _, e := range entities {
		name := e.Name
		if mapped, ok := displayNames[name]; ok {
			name = mapped
		}
		names = append(names, name)
	}
	return names
}
