// Package validator asks the generation service whether free text is
// color-related before a full lookup call is spent on it.
package validator

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/palettelab/color-agent/internal/config"
	"github.com/palettelab/color-agent/internal/jsonx"
	"github.com/palettelab/color-agent/internal/llm"
	"github.com/rs/zerolog"
)

// Verdict is the ephemeral outcome of one validation call.
type Verdict struct {
	Valid bool
	// Reason is the validator's stated explanation, user-facing on
	// rejection.
	Reason string
	// ImpliedContext is a short color context inferred for input that is
	// only indirectly color-related ("cozy winter cabin" -> "warm muted
	// tones"). Empty when the input is direct or not color-related at all.
	ImpliedContext string
}

type Validator struct {
	llmClient llm.LLMClient
	tmpl      *template.Template
	cfg       config.PromptConfig
	// failOpen decides the fallback verdict when the validation call or
	// its response parsing fails: callers must get a verdict either way.
	failOpen bool
	logger   *zerolog.Logger
}

func New(llmClient llm.LLMClient, cfg config.PromptConfig, failOpen bool, logger *zerolog.Logger) (*Validator, error) {
	tmpl, err := template.New("validation").Parse(cfg.Template)
	if err != nil {
		return nil, fmt.Errorf("failed to parse validation prompt template: %w", err)
	}

	return &Validator{
		llmClient: llmClient,
		tmpl:      tmpl,
		cfg:       cfg,
		failOpen:  failOpen,
		logger:    logger,
	}, nil
}

// verdictResponse is the JSON shape the model is instructed to return.
type verdictResponse struct {
	IsColorRelated bool   `json:"isColorRelated"`
	Reason         string `json:"reason"`
	ImpliedContext string `json:"impliedContext"`
}

// Validate never returns an error: on any failure it falls back to the
// configured policy so a validator outage cannot crash callers.
func (v *Validator) Validate(ctx context.Context, text string) Verdict {
	var buf bytes.Buffer
	if err := v.tmpl.Execute(&buf, struct{ Text string }{Text: text}); err != nil {
		v.logger.Error().Err(err).Msg("failed to build validation prompt")
		return v.fallback()
	}

	resp, err := v.llmClient.InvokeModel(ctx, llm.LLMRequest{
		Prompt:      buf.String(),
		MaxTokens:   v.cfg.MaxTokens,
		Temperature: v.cfg.Temperature,
	})
	if err != nil {
		v.logger.Warn().Err(err).Msg("validation call failed")
		return v.fallback()
	}

	var parsed verdictResponse
	if err := jsonx.UnmarshalObject(resp.Content, &parsed); err != nil {
		v.logger.Warn().Err(err).Str("content", resp.Content).Msg("failed to parse validation verdict")
		return v.fallback()
	}

	return Verdict{
		Valid:          parsed.IsColorRelated,
		Reason:         parsed.Reason,
		ImpliedContext: parsed.ImpliedContext,
	}
}

func (v *Validator) fallback() Verdict {
	return Verdict{
		Valid:  v.failOpen,
		Reason: "validation unavailable",
	}
}
