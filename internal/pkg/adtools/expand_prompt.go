package adtools

import (
	"fmt"
	"strings"

	"pomelo/internal/model/ad"
)

// ExpandSystemMessage 概念扩写阶段的系统角色设定
const ExpandSystemMessage = "You are an elite creative director specializing in short-form video advertising."

// BuildExpandPrompt 构建概念扩写提示词
// 把两三句话的高层创意扩写成完整的分场景叙事，输出带 CONCEPT TITLE 标题行
func BuildExpandPrompt(conceptText string, brand ad.BrandConfig, sceneCount, sceneDuration int) string {
	if sceneCount <= 0 {
		sceneCount = 5
	}
	if sceneDuration <= 0 {
		sceneDuration = 6
	}
	totalDuration := sceneCount * sceneDuration

	return fmt.Sprintf(`Expand the following high-level ad concept into a complete scene-by-scene narrative for a %d-second video advertisement (%d scenes, approximately %d seconds each).

**BRAND CONTEXT:**
- Brand: %s
- Product: %s
- Brand Values: %s
- Value Proposition: %s
- Brand Personality: %s
- Target Audience: %s
- Creative Direction: %s

**HIGH-LEVEL CONCEPT:**
%s

**INSTRUCTIONS:**
1. Keep the core idea and emotional hook of the high-level concept intact
2. Break the story into exactly %d scenes, each renderable in roughly %d seconds of video
3. Give each scene a concrete visual moment: who is on screen, where, doing what
4. Introduce recurring characters and settings so the story holds together across scenes
5. Integrate the brand and product naturally into the narrative, never as an afterthought
6. Keep descriptions filmable with AI video generation: no rapid cuts, no complex choreography, no on-screen text

**OUTPUT FORMAT:**
**CONCEPT TITLE**: [a short, memorable title]

**SCENE 1 (0:00-0:%02d):** [detailed scene description]

**SCENE 2 ...:** [and so on for all %d scenes]

**WHY IT WORKS:** [2-3 sentences on the emotional and commercial logic of the concept]`,
		totalDuration, sceneCount, sceneDuration,
		brand.Get("BRAND_NAME", "N/A"),
		brand.Get("PRODUCT_DESCRIPTION", "N/A"),
		brand.Get("BRAND_VALUES", "N/A"),
		brand.Get("VALUE_PROPOSITION", "N/A"),
		brand.Get("BRAND_PERSONALITY", "N/A"),
		brand.Get("TARGET_AUDIENCE", "N/A"),
		brand.Get("CREATIVE_DIRECTION", "N/A"),
		conceptText,
		sceneCount, sceneDuration,
		sceneDuration,
		sceneCount,
	)
}

// BuildFeedbackRevisePrompt 构建基于评审反馈的修订提示词
// 保留优点、逐条解决缺点，输出格式与原概念一致
func BuildFeedbackRevisePrompt(conceptContent string, verdict *ad.JudgeVerdict, brand ad.BrandConfig, sceneCount, sceneDuration int) string {
	if sceneCount <= 0 {
		sceneCount = 5
	}
	totalDuration := sceneCount * sceneDuration

	return fmt.Sprintf(`An expert advertising judge scored the following ad concept %d/100. Revise the concept to address every weakness while preserving every strength.

**BRAND CONTEXT:**
- Brand: %s
- Product: %s
- Target Audience: %s

**ORIGINAL CONCEPT:**
%s

**JUDGE FEEDBACK (score %d/100):**

Strengths to preserve:
%s

Weaknesses to address:
%s

**INSTRUCTIONS:**
1. Address each weakness with a concrete change to the narrative
2. Do not weaken or remove anything listed as a strength
3. Keep the same %d-scene structure and the %d-second total duration
4. Keep every scene renderable with AI video generation

**OUTPUT FORMAT:**
Return the full revised concept in EXACTLY the same format as the original, including the **CONCEPT TITLE**: line.`,
		verdict.Score,
		brand.Get("BRAND_NAME", "N/A"),
		brand.Get("PRODUCT_DESCRIPTION", "N/A"),
		brand.Get("TARGET_AUDIENCE", "N/A"),
		conceptContent,
		verdict.Score,
		feedbackList(verdict.Strengths),
		feedbackList(verdict.Weaknesses),
		sceneCount, totalDuration,
	)
}

func feedbackList(items []string) string {
	if len(items) == 0 {
		return "- (none)"
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}
