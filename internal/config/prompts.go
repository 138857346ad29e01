package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadPromptsConfig reads the prompts file from PROMPTS_CONFIG_PATH
// (default configs/prompts.yaml). A missing file is not an error: the
// built-in defaults are returned so every binary works out of the box.
func LoadPromptsConfig() (*PromptsConfig, error) {
	path := os.Getenv("PROMPTS_CONFIG_PATH")
	if path == "" {
		path = "configs/prompts.yaml"
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	var cfg PromptsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse prompts config %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *PromptsConfig) {
	defaults := Default()

	fill := func(dst *PromptConfig, def PromptConfig) {
		if dst.Template == "" {
			dst.Template = def.Template
		}
		if dst.MaxTokens == 0 {
			dst.MaxTokens = def.MaxTokens
		}
	}

	fill(&cfg.Prompts.Validation, defaults.Prompts.Validation)
	fill(&cfg.Prompts.Lookup, defaults.Prompts.Lookup)
	fill(&cfg.Prompts.Suggestion, defaults.Prompts.Suggestion)
}

func (c *PromptsConfig) Validate() error {
	for name, p := range map[string]PromptConfig{
		"validation": c.Prompts.Validation,
		"lookup":     c.Prompts.Lookup,
		"suggestion": c.Prompts.Suggestion,
	} {
		if p.MaxTokens < 0 {
			return fmt.Errorf("prompt %s: max_tokens must not be negative", name)
		}
		if p.Temperature < 0 || p.Temperature > 1 {
			return fmt.Errorf("prompt %s: temperature must be in [0.0, 1.0]", name)
		}
	}
	return nil
}
