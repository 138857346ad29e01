package setup

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func TestWire_MissingBedrockModelIDIsConfigurationError(t *testing.T) {
	logger := testLogger()

	cfg := &Config{
		AWSRegion:       "us-east-1",
		DefaultProvider: "bedrock",
		ClaudeModelID:   "", // missing credential
	}

	_, err := Wire(context.Background(), cfg, logger)
	if err == nil {
		t.Fatal("Expected configuration error for missing model ID")
	}
	if !strings.Contains(err.Error(), "configuration error") {
		t.Errorf("Expected a configuration error, got: %v", err)
	}
}

func TestWire_MissingOpenAIKeyIsConfigurationError(t *testing.T) {
	logger := testLogger()

	cfg := &Config{
		DefaultProvider: "openai",
		OpenAIKey:       "",
		OpenAIModelID:   "gpt-4o-mini",
	}

	_, err := Wire(context.Background(), cfg, logger)
	if err == nil {
		t.Fatal("Expected configuration error for missing API key")
	}
	if !strings.Contains(err.Error(), "configuration error") {
		t.Errorf("Expected a configuration error, got: %v", err)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("AWS_REGION", "")
	t.Setenv("BATCH_SIZE", "")
	t.Setenv("BATCH_DELAY_MS", "")
	t.Setenv("VALIDATOR_FAIL_OPEN", "")

	cfg := LoadConfig()

	if cfg.AWSRegion != "us-east-1" {
		t.Errorf("Expected default region, got '%s'", cfg.AWSRegion)
	}
	if cfg.BatchSize != 5 {
		t.Errorf("Expected default batch size 5, got %d", cfg.BatchSize)
	}
	if cfg.BatchDelay != 100*time.Millisecond {
		t.Errorf("Expected default batch delay 100ms, got %s", cfg.BatchDelay)
	}
	if !cfg.ValidatorFailOpen {
		t.Error("Expected validator to fail open by default")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("BATCH_SIZE", "10")
	t.Setenv("BATCH_DELAY_MS", "250")
	t.Setenv("VALIDATOR_FAIL_OPEN", "false")

	cfg := LoadConfig()

	if cfg.BatchSize != 10 {
		t.Errorf("Expected batch size 10, got %d", cfg.BatchSize)
	}
	if cfg.BatchDelay != 250*time.Millisecond {
		t.Errorf("Expected batch delay 250ms, got %s", cfg.BatchDelay)
	}
	if cfg.ValidatorFailOpen {
		t.Error("Expected validator to fail closed")
	}
}
