package extract

import (
	"strings"
	"testing"

	"github.com/PaperMindAI/papermind-mvp/engine/domain"
)

func TestIsHeading(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Related Work", true},
		{"METHODOLOGY", true},
		{"Conclusion", true},
		{"introduction", true}, // single word, no terminal punctuation
		{"This sentence ends with a period.", false},
		{"Does it work?", false},
		{"a mixed case multi word line", false},
		{"One two three four five six seven eight nine ten eleven twelve thirteen", false},
		{"", false},
		{"ab", false},
	}
	for _, tt := range tests {
		if got := IsHeading(tt.text); got != tt.want {
			t.Errorf("IsHeading(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestCleanBlock(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  hello   world \n", "hello world"},
		{"• bullet item", "bullet item"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanBlock(tt.in); got != tt.want {
			t.Errorf("CleanBlock(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func doc(name string, pages ...domain.Page) domain.DocumentText {
	return domain.DocumentText{Name: name, Pages: pages}
}

func TestSections_HeadingBoundaries(t *testing.T) {
	d := doc("paper.pdf",
		domain.Page{Number: 1, Blocks: []string{
			"Some preamble text before any heading appears in the document.",
			"Background",
			"Body of the background section.",
		}},
		domain.Page{Number: 2, Blocks: []string{
			"More background discussion continues here.",
			"Results",
			"The results were significant.",
		}},
	)

	sections := Sections(d)
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d: %+v", len(sections), sections)
	}

	if sections[0].Title != DefaultTitle || sections[0].PageNumber != 1 {
		t.Errorf("preamble section: %+v", sections[0])
	}
	if sections[1].Title != "Background" || sections[1].PageNumber != 1 {
		t.Errorf("background section: %+v", sections[1])
	}
	if !strings.Contains(sections[1].Content, "More background discussion") {
		t.Errorf("background content should span pages: %q", sections[1].Content)
	}
	if sections[2].Title != "Results" || sections[2].PageNumber != 2 {
		t.Errorf("results section: %+v", sections[2])
	}
	for _, s := range sections {
		if s.Source != "paper.pdf" {
			t.Errorf("source = %q, want paper.pdf", s.Source)
		}
	}
}

func TestSections_NoHeadings(t *testing.T) {
	d := doc("plain.pdf", domain.Page{Number: 1, Blocks: []string{
		"just lowercase body text that is not a heading at all.",
		"and another block of plain running prose.",
	}})

	sections := Sections(d)
	if len(sections) != 1 {
		t.Fatalf("expected exactly one section, got %d", len(sections))
	}
	if sections[0].Title != DefaultTitle {
		t.Errorf("title = %q, want %q", sections[0].Title, DefaultTitle)
	}
	want := "just lowercase body text that is not a heading at all. and another block of plain running prose."
	if sections[0].Content != want {
		t.Errorf("content = %q, want %q", sections[0].Content, want)
	}
}

func TestSections_EmptyDocument(t *testing.T) {
	if got := Sections(doc("empty.pdf")); len(got) != 0 {
		t.Fatalf("expected zero sections, got %d", len(got))
	}
	blank := doc("blank.pdf", domain.Page{Number: 1, Blocks: []string{"   ", "\n"}})
	if got := Sections(blank); len(got) != 0 {
		t.Fatalf("expected zero sections for whitespace-only input, got %d", len(got))
	}
}

func TestSections_BodyTextCoverage(t *testing.T) {
	bodies := []string{
		"first body block with plenty of words in it.",
		"second body block, also clearly prose and not a title.",
		"third body block ends the document with more prose.",
	}
	d := doc("cover.pdf",
		domain.Page{Number: 1, Blocks: []string{bodies[0], "Middle Heading", bodies[1]}},
		domain.Page{Number: 2, Blocks: []string{"FINAL HEADING", bodies[2]}},
	)

	var joined []string
	for _, s := range Sections(d) {
		joined = append(joined, s.Content)
	}
	all := strings.Join(joined, " ")
	for _, b := range bodies {
		if !strings.Contains(all, b) {
			t.Errorf("body text lost: %q", b)
		}
	}
}

func TestBatch_IsolatesEmptyDocuments(t *testing.T) {
	docs := []domain.DocumentText{
		doc("good.pdf", domain.Page{Number: 1, Blocks: []string{"Heading One", "body text for the first document here."}}),
		doc("empty.pdf"),
		doc("also-good.pdf", domain.Page{Number: 1, Blocks: []string{"plain prose with no heading whatsoever in it."}}),
	}

	out := Batch(docs, nil)
	if len(out) != 3 {
		t.Fatalf("expected results for all 3 documents, got %d", len(out))
	}
	if len(out["good.pdf"]) != 1 {
		t.Errorf("good.pdf sections = %d, want 1", len(out["good.pdf"]))
	}
	if len(out["empty.pdf"]) != 0 {
		t.Errorf("empty.pdf should yield zero sections, got %d", len(out["empty.pdf"]))
	}
	if len(out["also-good.pdf"]) != 1 {
		t.Errorf("also-good.pdf sections = %d, want 1", len(out["also-good.pdf"]))
	}
}
