package parser

import (
	"regexp"
	"strings"

	"github.com/palettelab/color-agent/internal/models"
)

// Parse splits free-form text into discrete color queries using an ordered
// cascade of split strategies. The first strategy that yields more than one
// item wins; if none does, the whole trimmed text comes back as a single
// uncategorized query.
func Parse(rawText string) []models.ColorQuery {
	trimmed := strings.TrimSpace(rawText)
	if trimmed == "" {
		return nil
	}

	for _, strategy := range strategies {
		queries := strategy.split(trimmed)
		if len(queries) > 1 {
			return queries
		}
	}

	return []models.ColorQuery{{Phrase: trimmed}}
}

type splitStrategy struct {
	name  string
	split func(text string) []models.ColorQuery
}

// Order matters: newline, then bullet markers, then commas.
var strategies = []splitStrategy{
	{name: "lines", split: splitLines},
	{name: "bullets", split: splitBullets},
	{name: "commas", split: splitCommas},
}

// phraseSeparator splits a line segment into individual color phrases:
// commas or the literal word "and".
var phraseSeparator = regexp.MustCompile(`\s*,\s*|\s+and\s+`)

// bulletMarker matches bullet list markers: •, * or -.
var bulletMarker = regexp.MustCompile(`[•*-]+`)

// splitLines handles multi-line input. Text before the first colon on a
// line is a category for that line's phrases. A line without its own
// category keeps the most recently seen one; this carry-over is
// intentional and covered by tests.
func splitLines(text string) []models.ColorQuery {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) <= 1 {
		return nil
	}

	var queries []models.ColorQuery
	category := ""

	for _, line := range lines {
		segment := line
		if idx := strings.Index(line, ":"); idx >= 0 {
			category = strings.TrimSpace(line[:idx])
			segment = line[idx+1:]
		}

		for _, phrase := range phraseSeparator.Split(segment, -1) {
			phrase = strings.TrimSpace(phrase)
			if phrase == "" {
				continue
			}
			queries = append(queries, models.ColorQuery{
				Phrase:   phrase,
				Category: category,
			})
		}
	}

	return queries
}

func splitBullets(text string) []models.ColorQuery {
	return uncategorized(bulletMarker.Split(text, -1))
}

func splitCommas(text string) []models.ColorQuery {
	return uncategorized(strings.Split(text, ","))
}

func uncategorized(parts []string) []models.ColorQuery {
	var queries []models.ColorQuery
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		queries = append(queries, models.ColorQuery{Phrase: part})
	}
	return queries
}
