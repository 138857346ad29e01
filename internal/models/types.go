package models

// ColorQuery is one parsed color request. Category is the optional
// user-supplied grouping label (e.g. "Blues"), empty when the input
// carried none.
type ColorQuery struct {
	Phrase   string `json:"phrase"`
	Category string `json:"category,omitempty"`
}

// ColorResponse is the canonical structured answer for one color.
type ColorResponse struct {
	ColorName   string `json:"colorName"`
	HexCode     string `json:"hexCode"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

// ColorResult is the per-item outcome in a batch. Error is set exclusive
// of the color fields being populated, never both.
type ColorResult struct {
	ColorResponse
	OriginalInput string `json:"originalInput"`
	Error         string `json:"error,omitempty"`
}

// Inbound request. Exactly one of the three fields must be present:
// ColorDescription for a single lookup, ColorDescriptions for a pre-split
// batch, SuggestionQuery for a palette suggestion.
type ColorRequest struct {
	ColorDescription  string   `json:"colorDescription,omitempty"`
	ColorDescriptions []string `json:"colorDescriptions,omitempty"`
	SuggestionQuery   string   `json:"suggestionQuery,omitempty"`
}

// BatchTextRequest carries raw free-form text to be parsed server-side
// before batch resolution.
type BatchTextRequest struct {
	RawText string `json:"rawText"`
}

// BatchResponse wraps batch and suggestion results.
type BatchResponse struct {
	Results []ColorResult `json:"results"`
}
