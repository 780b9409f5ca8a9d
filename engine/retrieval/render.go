package retrieval

import (
	"fmt"
	"regexp"
	"strings"
)

// mermaidPhrases caps phrase children per branch in the Mermaid rendering.
const mermaidPhrases = 4

// FreeMind renders an outline as a FreeMind .mm document.
func FreeMind(root string, branches []MindmapBranch) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<map version=\"0.9.0\">\n")
	fmt.Fprintf(&b, "  <node TEXT=\"%s\">\n", escapeXML(root))

	for _, br := range branches {
		fmt.Fprintf(&b, "    <node TEXT=\"%s\">\n", escapeXML(br.Title))
		if strings.TrimSpace(br.Summary) != "" {
			fmt.Fprintf(&b, "      <node TEXT=\"%s\" />\n", escapeXML(br.Summary))
		}
		for _, ph := range br.Phrases {
			fmt.Fprintf(&b, "      <node TEXT=\"%s\" />\n", escapeXML(ph.Term))
		}
		b.WriteString("    </node>\n")
	}

	b.WriteString("  </node>\n")
	b.WriteString("</map>")
	return b.String()
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string { return xmlEscaper.Replace(s) }

// Mermaid renders an outline in the Mermaid mindmap format. Node text is
// stripped to characters Mermaid parses reliably and capped in length.
func Mermaid(root string, branches []MindmapBranch) string {
	lines := []string{"mindmap", fmt.Sprintf("  root[%s]", cleanMermaid(root))}

	for i, br := range branches {
		title := cleanMermaid(br.Title)
		lines = append(lines, fmt.Sprintf("    sec%d_%s[%s]", i, title, title))

		phrases := br.Phrases
		if len(phrases) > mermaidPhrases {
			phrases = phrases[:mermaidPhrases]
		}
		for j, ph := range phrases {
			clean := cleanMermaid(ph.Term)
			if len(clean) <= 2 {
				continue
			}
			id := clean
			if len(id) > 10 {
				id = id[:10]
			}
			lines = append(lines, fmt.Sprintf("      p%d_%d_%s[%s]", i, j, id, clean))
		}
	}
	return strings.Join(lines, "\n")
}

var (
	mermaidStrip    = regexp.MustCompile(`[^\w\s\-.,]`)
	mermaidCollapse = regexp.MustCompile(`\s+`)
)

// cleanMermaid strips unsafe characters, collapses whitespace, caps the
// length, and joins words with underscores so the text doubles as node id.
func cleanMermaid(text string) string {
	cleaned := mermaidStrip.ReplaceAllString(text, "")
	cleaned = strings.TrimSpace(mermaidCollapse.ReplaceAllString(cleaned, " "))
	if len(cleaned) > 40 {
		cleaned = cleaned[:37] + "..."
	}
	return mermaidCollapse.ReplaceAllString(cleaned, "_")
}
