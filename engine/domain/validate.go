package domain

import (
	"strings"
	"unicode/utf8"
)

// MinQueryLength is the minimum rune count for a retrieval query.
const MinQueryLength = 3

// ValidateQuery rejects queries that are too short to embed meaningfully.
// This runs before any core work begins.
func ValidateQuery(text string) error {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < MinQueryLength {
		return NewValidationError("query", trimmed, ErrQueryTooShort)
	}
	return nil
}

// ValidateSection checks the invariants every extracted Section must hold.
func ValidateSection(s Section) error {
	if strings.TrimSpace(s.Title) == "" {
		return NewValidationError("title", s.Title, ErrExtraction)
	}
	if s.Source == "" {
		return NewValidationError("source", s.Source, ErrExtraction)
	}
	if s.PageNumber < 1 {
		return NewValidationError("page_number", "", ErrExtraction)
	}
	return nil
}
