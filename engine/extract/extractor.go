// Package extract turns the page-structured text blocks of a document into an
// ordered sequence of titled sections using layout heuristics. PDF parsing
// itself belongs to an external collaborator; this package consumes its
// block output.
package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PaperMindAI/papermind-mvp/engine/domain"
)

const (
	// DefaultTitle labels text that precedes the first detected heading.
	DefaultTitle = "Introduction"
	// maxHeadingWords is the longest a block may be and still count as a heading.
	maxHeadingWords = 12
)

var (
	bulletPattern = regexp.MustCompile(`[\x{2022}\x{25E6}\x{25CF}\x{FB00}-\x{FB04}]`)
	spacePattern  = regexp.MustCompile(`\s+`)
)

// CleanBlock strips bullet glyphs and ligature artifacts and collapses
// whitespace, mirroring what the PDF text layer leaves behind.
func CleanBlock(text string) string {
	text = bulletPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(spacePattern.ReplaceAllString(text, " "))
}

// IsHeading classifies a cleaned block as a heading candidate: short, no
// terminal sentence punctuation, and either title-cased, all-caps, or a
// single word.
func IsHeading(text string) bool {
	if text == "" || len(text) <= 2 {
		return false
	}
	if strings.HasSuffix(text, ".") || strings.HasSuffix(text, "!") || strings.HasSuffix(text, "?") {
		return false
	}
	words := strings.Fields(text)
	if len(words) > maxHeadingWords {
		return false
	}
	if len(words) > 1 && !isTitleCase(text) && !isAllUpper(text) {
		return false
	}
	return true
}

// isTitleCase reports whether every cased word starts with an uppercase
// letter followed only by lowercase letters.
func isTitleCase(s string) bool {
	cased := false
	for _, word := range strings.Fields(s) {
		first := true
		for _, r := range word {
			if !unicode.IsLetter(r) {
				continue
			}
			cased = true
			if first {
				if !unicode.IsUpper(r) {
					return false
				}
				first = false
			} else if unicode.IsUpper(r) {
				return false
			}
		}
	}
	return cased
}

// isAllUpper reports whether s contains at least one uppercase letter and no
// lowercase letters.
func isAllUpper(s string) bool {
	upper := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			upper = true
		}
	}
	return upper
}

// Sections segments one document into ordered sections. A heading boundary
// closes the accumulated section; text before the first heading falls under
// the Introduction title; the final open section is flushed at end of
// document. A document with no text yields zero sections and no error.
func Sections(doc domain.DocumentText) []domain.Section {
	var sections []domain.Section
	heading := DefaultTitle
	headingPage := 1
	var content []string

	flush := func() {
		if len(content) == 0 {
			return
		}
		sections = append(sections, domain.Section{
			Title:      heading,
			Content:    strings.Join(content, " "),
			Source:     doc.Name,
			PageNumber: headingPage,
		})
	}

	for _, page := range doc.Pages {
		for _, block := range page.Blocks {
			text := CleanBlock(block)
			if text == "" {
				continue
			}
			if IsHeading(text) {
				flush()
				heading = text
				headingPage = page.Number
				content = nil
				continue
			}
			content = append(content, text)
		}
	}
	flush()

	return sections
}
