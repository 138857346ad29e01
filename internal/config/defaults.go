package config

const defaultValidationTemplate = `You are a strict classifier for a color lookup service. Decide whether the following text is color-related. Direct color names count, and so do contexts that merely imply colors: moods, themes, materials, seasons, emotions, rooms, design styles.

Text: "{{.Text}}"

Respond ONLY with a JSON object in this exact shape:
{"isColorRelated": <true or false>, "reason": "<one short sentence>", "impliedContext": "<when the text only hints at colors, a short color context such as 'warm autumn tones', otherwise an empty string>"}`

const defaultLookupTemplate = `You are a color expert. The user describes a color as: "{{.Phrase}}".

Respond with exactly one JSON object and nothing else, with exactly these keys:
{"colorName": "<canonical color name>", "hexCode": "<#RRGGBB>", "description": "<one short sentence about the color>"}

If the input does not describe or imply any color, respond instead with:
{"error": "<one short sentence explaining why this is not a color>"}

Do not wrap the JSON in markdown and do not add commentary.`

const defaultSuggestionTemplate = `You are a color consultant. Suggest colors for the following request: "{{.Query}}"

Return ONLY a JSON array of 3 to 8 entries. Each entry must have exactly these keys:
{"colorName": "<canonical color name>", "hexCode": "<#RRGGBB>", "description": "<one short sentence>", "category": "<a grouping label appropriate to the request, e.g. an item, room or mood mentioned in it>", "reason": "<optional short rationale for the pick>"}

Choose category labels from the request itself. Do not wrap the array in markdown and do not add commentary.`

// Default returns the built-in prompt configuration, used when no
// prompts file is present and to fill gaps in a partial one.
func Default() *PromptsConfig {
	return &PromptsConfig{
		Prompts: Prompts{
			Validation: PromptConfig{
				Template:    defaultValidationTemplate,
				MaxTokens:   200,
				Temperature: 0.0,
			},
			Lookup: PromptConfig{
				Template:    defaultLookupTemplate,
				MaxTokens:   300,
				Temperature: 0.3,
			},
			Suggestion: PromptConfig{
				Template:    defaultSuggestionTemplate,
				MaxTokens:   1500,
				Temperature: 0.6,
			},
		},
	}
}
