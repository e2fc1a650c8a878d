package adtools

// 广告风格说明表，供评审提示词使用。只描述调性，不暴露结构要求。
var adStyleDescriptions = map[string]string{
	"Humor - Hilarious":            "Over-the-top funny, designed to make people laugh out loud. Should be relatable and genuinely funny.",
	"Humor - Playful":              "Light, whimsical, charming humor that makes you smile.",
	"Humor - Sarcastic/Witty":      "Dry, clever, deadpan humor with wit.",
	"Sentiment - Heartwarming":     "Gentle, touching moments that make you smile with warmth.",
	"Sentiment - Tear-jerking":     "Intensely emotional, designed to move viewers to tears (happy tears).",
	"Sentiment - Nostalgic":        "Wistful, reflective, bittersweet emotions about the past.",
	"Achievement - Inspirational":  "Uplifting, motivating narrative about overcoming challenges and achieving goals.",
	"Achievement - Empowering":     "Fierce, bold, confident narrative about breaking barriers and showing strength.",
	"Achievement - Understated":    "Quiet determination and subtle resilience leading to triumph.",
	"Adventure - Thrilling":        "High-energy, exciting, fast-paced journey with escalating thrills.",
	"Adventure - Wonder-filled":    "Awe-inspiring, discovery-focused journey that creates wonder.",
	"Adventure - Epic":             "Grand scale, cinematic, larger-than-life adventure.",
	"Reversal - Thought-provoking": "Makes you think differently, challenges assumptions with insight.",
	"Reversal - Mind-blowing":      "Shocking twist that completely recontextualizes everything.",
	"Reversal - Clever":            "Witty, intellectually satisfying twist that makes you say 'ahh, nice!'",
}

// AdStyleDescription 返回风格说明，未知风格给通用描述
func AdStyleDescription(adStyle string) string {
	if desc, ok := adStyleDescriptions[adStyle]; ok {
		return desc
	}
	return "We need to create compelling advertising that resonates with viewers."
}

// KnownAdStyles 全部已知风格名
func KnownAdStyles() []string {
	styles := make([]string, 0, len(adStyleDescriptions))
	for s := range adStyleDescriptions {
		styles = append(styles, s)
	}
	return styles
}
