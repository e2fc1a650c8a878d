package adtools

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"pomelo/internal/model/ad"
)

// JudgeSystemMessage 评审模型的系统消息
const JudgeSystemMessage = "You are an expert advertising judge. Respond only with valid JSON."

// BuildJudgePrompt 构建单概念评审提示词。
// 单独评审，不做概念间对比，也不暗示任何结构要求
func BuildJudgePrompt(adStyle, brandName, conceptContent string) string {
	styleDescription := AdStyleDescription(adStyle)

	schema, err := SchemaJSON[ad.JudgeVerdict]()
	if err != nil {
		log.Warn().Err(err).Msg("failed to render judge json schema, prompt will omit it")
		schema = ""
	}

	prompt := fmt.Sprintf(`You are an expert advertising judge evaluating a single ad concept.

**BRAND**: %s
**AD STYLE**: %s
**STYLE DESCRIPTION**: %s

**AI VIDEO GENERATION CONTEXT**:
This concept will be produced using advanced AI video generation (Sora 2, Veo 3).
- These models can generate visuals impossible with traditional filming.
- "Impossible" visuals, transformations, and reality-bending effects are ENCOURAGED if they serve the story.
- Do not penalize creative visual concepts as "unrealistic" - they are likely achievable with AI.
- Reward concepts that leverage this potential for higher Memorability and Visual Impact.

**CONCEPT TO EVALUATE**:

%s

---

**EVALUATION CRITERIA**:

1. **Narrative Quality** (20 points)
   - Does it tell a compelling story?
   - Clear beginning, middle, and end?
   - Are the 5 scenes coherent and connected?

2. **Emotional Impact** (20 points)
   - Does it make you FEEL something strong?
   - Does the emotion match the intended style (%s)?
   - Would most people have this emotional reaction?

3. **Brand Integration** (15 points)
   - Does the brand fit naturally into the story?
   - Is it forced or organic?
   - Does the brand feel necessary, not just added?

4. **Memorability** (15 points)
   - Will people remember this concept?
   - Is there a unique element or hook?
   - Does it stand out?
   - **BONUS**: Does it use AI capabilities for a unique visual hook?

5. **Visual Clarity** (15 points)
   - Can you clearly picture each of the 5 scenes?
   - Would this work as a 30-60 second video?
   - Are scenes visually distinct and clear?

6. **Success Likelihood** (15 points)
   - Would this concept work in the real world?
   - Would the target audience respond positively?
   - Does it feel fresh or cliché?

**TOTAL**: 100 points

---

**INSTRUCTIONS**:
1. Evaluate this concept honestly based ONLY on the criteria above
2. Provide a score (0-100)
3. List 3-5 specific strengths
4. List 3-5 specific weaknesses
5. Give a brief 2-3 sentence explanation of the score

**OUTPUT FORMAT** (JSON only, no other text):
`+"```json"+`
{
  "score": 85,
  "explanation": "2-3 sentence explanation",
  "strengths": ["strength 1", "strength 2", "strength 3"],
  "weaknesses": ["weakness 1", "weakness 2"]
}
`+"```",
		brandName,
		adStyle,
		styleDescription,
		conceptContent,
		adStyle,
	)

	if schema != "" {
		prompt += "\n\n**JSON SCHEMA** (the output must validate against this):\n```json\n" + schema + "\n```"
	}

	return prompt
}
