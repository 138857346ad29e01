package resolver

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/palettelab/color-agent/internal/config"
	"github.com/palettelab/color-agent/internal/jsonx"
	"github.com/palettelab/color-agent/internal/llm"
	"github.com/palettelab/color-agent/internal/models"
	"github.com/palettelab/color-agent/internal/validator"
	"github.com/rs/zerolog"
)

const (
	DefaultBatchSize  = 5
	DefaultBatchDelay = 100 * time.Millisecond
)

// QueryValidator gates lookups on color-relevance.
type QueryValidator interface {
	Validate(ctx context.Context, text string) validator.Verdict
}

// Resolver turns color queries into structured color data by prompting
// the generation service and reshaping its JSON output. It is stateless;
// every call is independent.
type Resolver struct {
	llmClient      llm.LLMClient
	validator      QueryValidator
	lookupTmpl     *template.Template
	suggestionTmpl *template.Template
	lookupCfg      config.PromptConfig
	suggestionCfg  config.PromptConfig
	batchSize      int
	batchDelay     time.Duration
	logger         *zerolog.Logger
}

// Options tunes batch behavior. Zero values fall back to the defaults.
type Options struct {
	BatchSize  int
	BatchDelay time.Duration
}

func New(
	llmClient llm.LLMClient,
	queryValidator QueryValidator,
	prompts *config.PromptsConfig,
	opts Options,
	logger *zerolog.Logger,
) (*Resolver, error) {
	lookupTmpl, err := template.New("lookup").Parse(prompts.Prompts.Lookup.Template)
	if err != nil {
		return nil, fmt.Errorf("failed to parse lookup prompt template: %w", err)
	}

	suggestionTmpl, err := template.New("suggestion").Parse(prompts.Prompts.Suggestion.Template)
	if err != nil {
		return nil, fmt.Errorf("failed to parse suggestion prompt template: %w", err)
	}

	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.BatchDelay <= 0 {
		opts.BatchDelay = DefaultBatchDelay
	}

	return &Resolver{
		llmClient:      llmClient,
		validator:      queryValidator,
		lookupTmpl:     lookupTmpl,
		suggestionTmpl: suggestionTmpl,
		lookupCfg:      prompts.Prompts.Lookup,
		suggestionCfg:  prompts.Prompts.Suggestion,
		batchSize:      opts.BatchSize,
		batchDelay:     opts.BatchDelay,
		logger:         logger,
	}, nil
}

// lookupResponse is the JSON object the lookup prompt demands. The model
// signals non-color input through the in-band error field instead of
// prose.
type lookupResponse struct {
	ColorName   string `json:"colorName"`
	HexCode     string `json:"hexCode"`
	Description string `json:"description"`
	Error       string `json:"error"`
}

// ResolveOne resolves a single color query. The query's category, if any,
// is carried onto the response.
func (r *Resolver) ResolveOne(ctx context.Context, query models.ColorQuery) (models.ColorResponse, error) {
	verdict := r.validator.Validate(ctx, query.Phrase)
	if !verdict.Valid {
		return models.ColorResponse{}, &RejectedError{Reason: verdict.Reason}
	}

	var buf bytes.Buffer
	if err := r.lookupTmpl.Execute(&buf, struct{ Phrase string }{Phrase: query.Phrase}); err != nil {
		return models.ColorResponse{}, fmt.Errorf("failed to build lookup prompt: %w", err)
	}

	resp, err := r.llmClient.InvokeModel(ctx, llm.LLMRequest{
		Prompt:      buf.String(),
		MaxTokens:   r.lookupCfg.MaxTokens,
		Temperature: r.lookupCfg.Temperature,
	})
	if err != nil {
		return models.ColorResponse{}, fmt.Errorf("model invocation failed: %w", err)
	}

	if strings.TrimSpace(resp.Content) == "" {
		return models.ColorResponse{}, ErrEmptyResponse
	}

	var parsed lookupResponse
	if err := jsonx.UnmarshalObject(resp.Content, &parsed); err != nil {
		// Raw output goes to the log for diagnosis but never to the caller.
		r.logger.Error().Str("phrase", query.Phrase).Str("content", resp.Content).Msg("unparseable lookup response")
		return models.ColorResponse{}, err
	}

	if parsed.Error != "" {
		return models.ColorResponse{}, &RejectedError{Reason: parsed.Error}
	}

	r.logger.Debug().
		Str("phrase", query.Phrase).
		Str("color", parsed.ColorName).
		Str("hex", parsed.HexCode).
		Msg("color resolved")

	return models.ColorResponse{
		ColorName:   parsed.ColorName,
		HexCode:     parsed.HexCode,
		Description: parsed.Description,
		Category:    query.Category,
	}, nil
}
