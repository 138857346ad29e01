package setup

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/palettelab/color-agent/internal/config"
	"github.com/palettelab/color-agent/internal/llm"
	"github.com/palettelab/color-agent/internal/llm/bedrock"
	"github.com/palettelab/color-agent/internal/llm/gpt"
	"github.com/palettelab/color-agent/internal/resolver"
	"github.com/palettelab/color-agent/internal/validator"
	"github.com/rs/zerolog"
)

type Config struct {
	AWSRegion         string
	ClaudeModelID     string
	OpenAIKey         string
	OpenAIModelID     string
	DefaultProvider   string
	BatchSize         int
	BatchDelay        time.Duration
	ValidatorFailOpen bool
}

type Dependencies struct {
	Resolver  *resolver.Resolver
	Validator *validator.Validator
	Logger    *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID:     getEnv("CLAUDE_MODEL_ID", ""),
		OpenAIKey:         getEnv("OPEN_AI_KEY", ""),
		OpenAIModelID:     getEnv("OPEN_AI_MODEL_ID", ""),
		DefaultProvider:   getEnv("DEFAULT_LLM_PROVIDER", "bedrock"),
		BatchSize:         getEnvInt("BATCH_SIZE", resolver.DefaultBatchSize),
		BatchDelay:        time.Duration(getEnvInt("BATCH_DELAY_MS", 100)) * time.Millisecond,
		ValidatorFailOpen: getEnvBool("VALIDATOR_FAIL_OPEN", true),
	}
}

// Wire builds the full dependency graph. Credential problems surface here
// as configuration errors, before any network call can happen.
func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	llmClient, err := createLLMClient(ctx, cfg.DefaultProvider, cfg)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	prompts, err := config.LoadPromptsConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load prompts config: %w", err)
	}

	queryValidator, err := validator.New(llmClient, prompts.Prompts.Validation, cfg.ValidatorFailOpen, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create validator: %w", err)
	}

	res, err := resolver.New(llmClient, queryValidator, prompts, resolver.Options{
		BatchSize:  cfg.BatchSize,
		BatchDelay: cfg.BatchDelay,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create resolver: %w", err)
	}

	return &Dependencies{
		Resolver:  res,
		Validator: queryValidator,
		Logger:    logger,
	}, nil
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		value = defaultValue
	}

	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		value = defaultValue
	}

	return value
}

func createLLMClient(ctx context.Context, provider string, cfg *Config) (llm.LLMClient, error) {
	switch provider {
	case "openai":
		return gpt.NewClient(cfg.OpenAIKey, cfg.OpenAIModelID)
	default:
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	}
}
