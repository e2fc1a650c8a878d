package adtools

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"pomelo/internal/model/ad"
)

// realismKeywords 每条图片生成提示词都要带上的写实关键词
const realismKeywords = `"hyper-realistic", "photorealistic", "ultra-realistic", "lifelike", "documentary photography style", "real person", "authentic", "natural skin texture", "realistic lighting", "professional portrait photography"`

// BuildUniversePrompt 构建宇宙与角色抽取提示词
// 每个元素只要一个基准形态：单份描述加单份参考图提示词
func BuildUniversePrompt(revisedScript string, brand ad.BrandConfig, sceneCount int) string {
	if sceneCount <= 0 {
		sceneCount = 5
	}

	schema, err := SchemaJSON[ad.UniverseRecord]()
	if err != nil {
		// 反射失败不阻塞流程，提示词里的样例已经给出完整结构
		log.Warn().Err(err).Msg("failed to render universe json schema, prompt will omit it")
		schema = ""
	}

	prompt := fmt.Sprintf(`You are a video production designer. Analyze this %d-scene ad concept and create detailed descriptions for:
1. **UNIVERSE**: All props, locations, and environmental elements that appear across multiple scenes
2. **CHARACTERS**: All characters with detailed descriptions for visual consistency

**BRAND CONTEXT:**
- Brand: %s
- Product: %s
- Creative Direction: %s

**%d-SCENE CONCEPT:**
%s

**INSTRUCTIONS:**
1. Identify ONLY props/objects that appear in MULTIPLE scenes (2 or more) - these need consistency tracking
2. Identify ONLY locations that appear in MULTIPLE scenes (2 or more) - these need consistency tracking
3. Identify ALL characters with detailed physical descriptions (age, appearance, clothing, distinctive features) - characters need consistency even if only in one scene
4. Describe each element in its SINGLE canonical (base) state; if the story transforms an element, describe the state it starts in
5. Each description should be vivid and detailed enough to use directly in AI image/video generation prompts
6. DO NOT include props or locations that only appear in a single scene - the video generation model will create those fresh each time
7. Focus on elements that need visual consistency ACROSS multiple scenes

**OUTPUT FORMAT (JSON):**
`+"```json"+`
{
  "universe": {
    "locations": [
      {
        "name": "Location Name",
        "scenes_used": [1, 2, 3],
        "description": "Detailed visual description for AI generation",
        "image_generation_prompt": "Complete prompt for generating reference image"
      }
    ],
    "props": [
      {
        "name": "Prop Name",
        "scenes_used": [1, 2, 3],
        "description": "Detailed visual description for AI generation",
        "image_generation_prompt": "Complete prompt for generating reference image"
      }
    ]
  },
  "characters": [
    {
      "name": "Character Name",
      "scenes_used": [1, 2, 3, 4, 5],
      "description": "Detailed physical description",
      "image_generation_prompt": "Complete prompt for generating reference image of this character"
    }
  ]
}
`+"```"+`

**IMPORTANT NOTES:**
- "image_generation_prompt" should be a complete, detailed prompt ready to feed into image generation models
- **CRITICAL: Image prompts must generate HYPER-REALISTIC, PHOTOREALISTIC images that look like real people/photographs**
- Include these realism keywords in every image_generation_prompt: %s
- **CRITICAL FOR GROUPS**: If describing a group with diversity requirements (e.g., "diverse ethnicities", "2 white, 1 Black, 1 Hispanic"), make diversity the FIRST and MOST PROMINENT part of the prompt. Explicitly describe each person's ethnicity, skin tone, and distinctive features. Example: "Group of 4 chefs: Chef 1 - White male with light skin tone and European features, Chef 2 - Black male with dark brown skin and African features, Chef 3 - Hispanic male with medium olive skin and Latin American features, Chef 4 - White male with light skin and European features. Each person clearly distinguishable with distinct ethnic features and skin tones."
- Image prompts should include all visual details: lighting, composition, style, specific features, colors, textures, skin details, hair texture, clothing fabric details, etc.
- Avoid any stylized, artistic, or cartoon-like descriptions - focus on photographic realism`,
		sceneCount,
		brand.Get("BRAND_NAME", "N/A"),
		brand.Get("PRODUCT_DESCRIPTION", "N/A"),
		brand.Get("CREATIVE_DIRECTION", "N/A"),
		sceneCount,
		revisedScript,
		realismKeywords,
	)

	if schema != "" {
		prompt += "\n\n**JSON SCHEMA** (the output must validate against this):\n```json\n" + schema + "\n```"
	}

	prompt += "\n\n**CRITICAL**: Output ONLY the JSON object. Do not include markdown code blocks, explanations, or any text outside the JSON. Start with { and end with }."

	return prompt
}
