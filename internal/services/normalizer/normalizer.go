// Package normalizer cleans free-form MC number input into an ordered,
// deduplicated identifier list.
package normalizer

import (
	"strings"

	"github.com/ternarybob/arbor"
)

const maxMCNumberDigits = 10

// Normalizer parses raw text input (pasted lists, CSV content) into clean
// MC numbers.
type Normalizer struct {
	logger arbor.ILogger
}

// New creates a Normalizer
func New(logger arbor.ILogger) *Normalizer {
	return &Normalizer{logger: logger}
}

// CleanMCNumber strips separators and the MC prefix from a single token and
// validates the remainder. Returns false for tokens that are not valid MC
// numbers; empty tokens are rejected silently, malformed ones with a warning.
func (n *Normalizer) CleanMCNumber(raw string) (string, bool) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return "", false
	}

	// Remove whitespace and common separators
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-', '_', '.':
			return -1
		}
		return r
	}, token)

	// Remove "MC" prefix if present
	if len(cleaned) >= 2 && strings.EqualFold(cleaned[:2], "MC") {
		cleaned = cleaned[2:]
	}

	if !isDigits(cleaned) || len(cleaned) > maxMCNumberDigits {
		n.logger.Warn().Str("token", raw).Msg("Invalid MC number format")
		return "", false
	}

	return cleaned, true
}

// ExtractMCNumbers parses raw input (newline- and comma-separated tokens)
// into cleaned MC numbers with duplicates removed, first occurrence wins.
func (n *Normalizer) ExtractMCNumbers(input string) []string {
	seen := make(map[string]struct{})
	var mcNumbers []string

	for _, line := range strings.Split(input, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		for _, part := range strings.Split(line, ",") {
			cleaned, ok := n.CleanMCNumber(part)
			if !ok {
				continue
			}
			if _, dup := seen[cleaned]; dup {
				continue
			}
			seen[cleaned] = struct{}{}
			mcNumbers = append(mcNumbers, cleaned)
		}
	}

	n.logger.Info().Int("count", len(mcNumbers)).Msg("Extracted unique MC numbers from input")
	return mcNumbers
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
