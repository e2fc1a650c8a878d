package adtools

import (
	"fmt"

	"pomelo/internal/model/ad"
)

// BuildRevisePrompt 构建剧本修订提示词
// 只做保证渲染时长的微调，不改故事主线，结尾补 STANDOUT ELEMENTS 段
func BuildRevisePrompt(conceptContent string, brand ad.BrandConfig, durationSeconds, sceneCount int) string {
	if sceneCount <= 0 {
		sceneCount = 5
	}
	perScene := durationSeconds / sceneCount

	return fmt.Sprintf(`You are a video production expert. Review this %d-scene ad concept and make MINOR edits ONLY if needed to ensure it can be rendered in %d seconds (approximately %d seconds per scene, ±3 seconds).

**BRAND CONTEXT:**
- Brand: %s
- Product: %s
- Tagline: %s

**ORIGINAL CONCEPT:**
%s

**INSTRUCTIONS:**
1. Keep the core story, characters, and narrative arc EXACTLY the same
2. Only make MINOR edits if scenes are too complex or too long for %d seconds each
3. Simplify descriptions ONLY if absolutely necessary for timing
4. Maintain all key story beats and brand integration
5. If no changes needed, return the original concept as-is

**OUTPUT FORMAT:**
Return the revised %d-scene concept in the EXACT same format as the input, with only minor timing/clarity adjustments if needed.

If no changes are needed, return the original concept unchanged.

After the %d scenes, add a section "**STANDOUT ELEMENTS:**" with 1-2 sentences describing what is particularly standout, memorable, or compelling about this concept.`,
		sceneCount, durationSeconds, perScene,
		brand.Get("BRAND_NAME", "N/A"),
		brand.Get("PRODUCT_DESCRIPTION", "N/A"),
		brand.Get("TAGLINE", "N/A"),
		conceptContent,
		perScene,
		sceneCount,
		sceneCount,
	)
}
