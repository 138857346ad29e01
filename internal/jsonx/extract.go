// Package jsonx extracts JSON values embedded in free-form model output.
// Generation output is not guaranteed to be pure JSON: it may be wrapped
// in prose, markdown code fences, or both.
package jsonx

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFormat reports that response text could not be coerced into
// the expected JSON shape.
var ErrInvalidFormat = errors.New("invalid response format")

// UnmarshalObject locates the first '{' and the last '}' in content and
// unmarshals that slice into v. If no braces are found the raw text is
// tried as-is.
func UnmarshalObject(content string, v any) error {
	return unmarshalSlice(content, '{', '}', v)
}

// UnmarshalArray is UnmarshalObject for JSON arrays, scanning for '[' and ']'.
func UnmarshalArray(content string, v any) error {
	return unmarshalSlice(content, '[', ']', v)
}

func unmarshalSlice(content string, open, close byte, v any) error {
	candidate := stripMarkdownCodeBlock(content)

	first := strings.IndexByte(candidate, open)
	last := strings.LastIndexByte(candidate, close)
	if first >= 0 && last > first {
		candidate = candidate[first : last+1]
	}

	if err := json.Unmarshal([]byte(candidate), v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	return nil
}

// stripMarkdownCodeBlock removes markdown code block formatting if present
func stripMarkdownCodeBlock(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		firstNewline := strings.Index(content, "\n")
		if firstNewline == -1 {
			return content
		}

		closingBackticks := strings.LastIndex(content, "```")
		if closingBackticks == -1 || closingBackticks <= firstNewline {
			return content
		}

		content = content[firstNewline+1 : closingBackticks]
		content = strings.TrimSpace(content)
	}

	return content
}
