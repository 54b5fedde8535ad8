package generation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	numberingOnly   = regexp.MustCompile(`^\d+\.?\s*$`)
	leadingNumber   = regexp.MustCompile(`^\d+\.?\s*`)
	surroundingQuot = regexp.MustCompile(`^"|"$`)
)

// ParseWordList extracts words from free-form LLM output. Words are expected one per
// line; list numbering ("1. Cat") and surrounding quotes are stripped. If the line split
// yields fewer than want words and the text contains commas, the text is parsed as a
// comma separated list instead.
func ParseWordList(text string, want int) ([]string, error) {
	words := make([]string, 0, max(want, 0))
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || numberingOnly.MatchString(trimmed) {
			continue
		}
		if w := cleanWord(trimmed); w != "" {
			words = append(words, w)
		}
	}

	if len(words) < want && strings.Contains(text, ",") {
		words = words[:0]
		for _, part := range strings.Split(text, ",") {
			if w := cleanWord(strings.TrimSpace(part)); w != "" {
				words = append(words, w)
			}
		}
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("%w: no words found in %q", ErrInvalidResponse, text)
	}
	return words, nil
}

func cleanWord(s string) string {
	s = leadingNumber.ReplaceAllString(s, "")
	s = surroundingQuot.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
