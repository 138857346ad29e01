package config

// PromptsConfig is the root of configs/prompts.yaml.
type PromptsConfig struct {
	Prompts Prompts `yaml:"prompts"`
}

type Prompts struct {
	Validation PromptConfig `yaml:"validation"`
	Lookup     PromptConfig `yaml:"lookup"`
	Suggestion PromptConfig `yaml:"suggestion"`
}

// PromptConfig holds one prompt template plus the model parameters used
// when invoking it. Template is a text/template body; the validation
// template receives {{.Text}}, the lookup template {{.Phrase}} and the
// suggestion template {{.Query}}.
type PromptConfig struct {
	Template    string  `yaml:"template"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}
