package resolver

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/palettelab/color-agent/internal/jsonx"
	"github.com/palettelab/color-agent/internal/llm"
	"github.com/palettelab/color-agent/internal/models"
)

// suggestionEntry is one element of the JSON array the suggestion prompt
// demands. Category is model-chosen and context-appropriate; Reason is an
// optional rationale.
type suggestionEntry struct {
	ColorName   string `json:"colorName"`
	HexCode     string `json:"hexCode"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Reason      string `json:"reason"`
}

// Suggest turns an open-ended context query into a categorized palette.
// Validation here is softer than for single lookups: an invalid verdict
// appends the validator's implied color context to the query instead of
// rejecting it.
func (r *Resolver) Suggest(ctx context.Context, query string) ([]models.ColorResult, error) {
	verdict := r.validator.Validate(ctx, query)
	if !verdict.Valid && verdict.ImpliedContext != "" {
		r.logger.Info().
			Str("query", query).
			Str("implied_context", verdict.ImpliedContext).
			Msg("augmenting query with implied color context")
		query = fmt.Sprintf("%s (%s)", query, verdict.ImpliedContext)
	}

	var buf bytes.Buffer
	if err := r.suggestionTmpl.Execute(&buf, struct{ Query string }{Query: query}); err != nil {
		return nil, fmt.Errorf("failed to build suggestion prompt: %w", err)
	}

	resp, err := r.llmClient.InvokeModel(ctx, llm.LLMRequest{
		Prompt:      buf.String(),
		MaxTokens:   r.suggestionCfg.MaxTokens,
		Temperature: r.suggestionCfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("model invocation failed: %w", err)
	}

	if strings.TrimSpace(resp.Content) == "" {
		return nil, ErrEmptyResponse
	}

	var entries []suggestionEntry
	if err := jsonx.UnmarshalArray(resp.Content, &entries); err != nil {
		r.logger.Error().Str("query", query).Str("content", resp.Content).Msg("unparseable suggestion response")
		return nil, err
	}

	results := make([]models.ColorResult, 0, len(entries))
	for _, entry := range entries {
		results = append(results, models.ColorResult{
			ColorResponse: models.ColorResponse{
				ColorName:   entry.ColorName,
				HexCode:     entry.HexCode,
				Description: entry.Description,
				Category:    entry.Category,
			},
			OriginalInput: query,
		})
	}

	r.logger.Info().Str("query", query).Int("colors", len(results)).Msg("palette suggested")

	return results, nil
}
