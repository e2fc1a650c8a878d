package adtools

import (
	"fmt"
	"strings"

	"pomelo/internal/model/ad"
)

// ScenePromptInput 导演提示词的输入
type ScenePromptInput struct {
	RevisedScript string
	UniverseJSON  string // 宇宙记录的完整 JSON 文本，整体嵌入提示词
	Brand         ad.BrandConfig

	// 允许引用的元素名。必须与参考图清单里的名字一致，
	// 调用方先用解析器把宇宙名换成清单名再传进来
	AllowedCharacters []string
	AllowedLocations  []string
	AllowedProps      []string

	SceneCount    int
	SceneDuration int // 单场景时长（秒）
	Resolution    string
	AspectRatio   string
}

// BuildScenePromptsPrompt 构建逐场景导演提示词
// 输出合同：video_prompt / audio_background / audio_dialogue /
// first_frame_image_prompt / elements_used 五个字段
func BuildScenePromptsPrompt(in *ScenePromptInput) string {
	sceneCount := in.SceneCount
	if sceneCount <= 0 {
		sceneCount = 5
	}

	return fmt.Sprintf(`You are a professional video director creating prompts for AI video generation (Veo 3.1, Sora 2, Seedance-1-pro).

**BRAND CONTEXT:**
- Brand: %s
- Product: %s
- Tagline: %s
- Creative Direction: %s

**%d-SCENE CONCEPT:**
%s

**UNIVERSE & CHARACTERS:**
%s

**CRITICAL: EXACT ELEMENT NAMES TO USE**
You MUST use the EXACT names from the universe record above. Do NOT create new names or variations.
**IMPORTANT**: If an element name has a plural/singular variation (e.g., "Young Chef Group" vs "Young Chefs Group"), you MUST use the EXACT spelling as shown above, including any plural/singular differences. Do NOT add or remove 's' from names.

**ALLOWED CHARACTER NAMES** (use EXACTLY as shown - these are the names that have reference images):
%s

**ALLOWED LOCATION NAMES** (use EXACTLY as shown - these are the names that have reference images):
%s

**ALLOWED PROP NAMES** (use EXACTLY as shown - these are the names that have reference images):
%s

**VIDEO SPECIFICATIONS:**
- Resolution: %s
- Aspect Ratio: %s
- Scene Duration: %d seconds (±3 seconds)

**INSTRUCTIONS:**
For EACH of the %d scenes, create:

1. **video_prompt**: Complete prompt for video generation that MUST include:
   - **Shot Type**: Specific camera shot (close-up, medium shot, wide shot, etc.)
   - **Subject**: Main subject(s) in the frame
   - **Action**: What is happening, character movements, expressions
   - **Setting**: Location and environment details
   - **Lighting**: Lighting conditions, mood, time of day
   - Reference characters/locations by NAME only (e.g., "Master Chef", "Restaurant Location")
   - Keep concise but complete for the video model

2. **audio_background**: Detailed background music prompt for ElevenLabs/Suno (genre, mood, tempo, instruments, energy level)

3. **audio_dialogue**: Compelling, evocative dialogue that characters say in this scene, OR narrator voiceover. **CRITICAL FORMAT**:
   - **For character dialogue**: Use format "Character Name: [dialogue text]". Use the EXACT character name from the universe record (e.g., "Main Chef (Protagonist): Ma, one day this place will smell like your kitchen again.")
   - **For narrator/voiceover**: Use format "Narrator (voice characteristics): [dialogue text]". Voice characteristics must include: tone (sad, hopeful, determined, warm, authoritative, gentle, etc.), emotion (emotional, nostalgic, contemplative, etc.), and style (warm, deep, soft, etc.). Example: "Narrator (sad, emotional, warm, contemplative voice): The journey begins with a single promise."
   - Make dialogue authentic, sensory-rich, and poetic when appropriate. Use vivid imagery, specific details, and memorable phrasing. Match the brand's tone and creative direction.
   - **PRIORITIZE dialogue in scenes with multiple characters, key story moments, or when dialogue would enhance the narrative impact.**
   - Only use null if the scene truly requires silence (e.g., contemplative solo moments, pure visual storytelling).
   - Dialogue can be 10-15 words - make every word count. Aim for lines that are quotable, memorable, and emotionally resonant.

4. **first_frame_image_prompt**: Complete, detailed image generation prompt for the first frame. This should be:
   - Hyper-realistic, photorealistic style
   - Include all characters and locations from elements_used
   - Match the resolution (%s) and aspect ratio (%s)
   - Include specific details: camera settings, lighting, composition, character positions, expressions
   - Ready to feed into image generation models
   - Must ensure all reference characters/locations are clearly visible and identifiable

5. **elements_used**: List which characters, props, and locations from the universe record are in this scene.
   **CRITICAL**:
   - You MUST use the EXACT names from the "ALLOWED" lists above. Copy the names EXACTLY as shown (including parentheses, capitalization, etc.).
   - **ONLY include elements that appear in MULTIPLE scenes** (check the "scenes_used" array in the universe record above)
   - Do NOT include elements that appear in only ONE scene (they don't need reference images for consistency)
   - For characters: Use EXACT names from "ALLOWED CHARACTER NAMES" above, but only if scenes_used has 2+ scene numbers
   - For locations: Use EXACT names from "ALLOWED LOCATION NAMES" above, but only if scenes_used has 2+ scene numbers
   - For props: Use EXACT names from "ALLOWED PROP NAMES" above, but only if scenes_used has 2+ scene numbers
   - Do NOT create variations, abbreviations, or simplified names

**CRITICAL**:
- The first_frame_image_prompt must generate an image that includes ALL characters and locations from elements_used
- This first frame image will be used as a reference input for video generation (passed to the image model with character/location reference images)
- video_prompt must explicitly include: shot type, subject, action, setting, and lighting
- Choose shot types, lighting, and composition that best serve the overall storyline
- In video_prompt and first_frame_image_prompt, you can reference characters by their full name or a shorter descriptive name, but in elements_used you MUST use the EXACT name from the allowed lists

**OUTPUT FORMAT (JSON):**
`+"```json"+`
{
  "scenes": [
    {
      "scene_number": 1,
      "duration_seconds": %d,
      "video_prompt": "Complete prompt with shot type, subject, action, setting, lighting. Reference characters/locations by name only.",
      "audio_background": "Detailed music prompt for ElevenLabs/Suno (genre, mood, tempo, instruments, energy level)",
      "audio_dialogue": "Character Name: [dialogue text] OR Narrator (voice characteristics): [dialogue text] OR null",
      "first_frame_image_prompt": "Complete hyper-realistic image generation prompt for first frame, matching %s %s, with all characters/locations visible. Must include shot type, all characters visible, setting, lighting, composition.",
      "elements_used": {
        "characters": ["EXACT Character Name from ALLOWED list above"],
        "locations": ["EXACT Location Name from ALLOWED list above"],
        "props": ["EXACT Prop Name from ALLOWED list above"]
      }
    }
  ]
}
`+"```",
		in.Brand.Get("BRAND_NAME", "N/A"),
		in.Brand.Get("PRODUCT_DESCRIPTION", "N/A"),
		in.Brand.Get("TAGLINE", "N/A"),
		in.Brand.Get("CREATIVE_DIRECTION", "N/A"),
		sceneCount,
		in.RevisedScript,
		in.UniverseJSON,
		bulletList(in.AllowedCharacters),
		bulletList(in.AllowedLocations),
		bulletList(in.AllowedProps),
		in.Resolution,
		in.AspectRatio,
		in.SceneDuration,
		sceneCount,
		in.Resolution,
		in.AspectRatio,
		in.SceneDuration,
		in.Resolution,
		in.AspectRatio,
	)
}

// bulletList 名字列表渲染为 "- name" 行
func bulletList(names []string) string {
	if len(names) == 0 {
		return "- (none)"
	}
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, "- "+name)
	}
	return strings.Join(lines, "\n")
}
