package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDocuments(t *testing.T) {
	dir := t.TempDir()
	named := filepath.Join(dir, "named.json")
	anon := filepath.Join(dir, "thesis.json")

	writeFile(t, named, `{"name":"paper.pdf","pages":[{"number":1,"blocks":["Abstract","Body text."]}]}`)
	writeFile(t, anon, `{"pages":[{"number":1,"blocks":["Only content."]}]}`)

	docs, err := loadDocuments([]string{named, anon})
	if err != nil {
		t.Fatalf("loadDocuments: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d documents", len(docs))
	}
	if docs[0].Name != "paper.pdf" {
		t.Errorf("name = %q", docs[0].Name)
	}
	if docs[1].Name != "thesis.json" {
		t.Errorf("fallback name = %q", docs[1].Name)
	}
	if len(docs[0].Pages) != 1 || len(docs[0].Pages[0].Blocks) != 2 {
		t.Errorf("pages not parsed: %+v", docs[0].Pages)
	}
}

func TestLoadDocumentsBadJSON(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	writeFile(t, bad, `{pages:`)

	if _, err := loadDocuments([]string{bad}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadDocumentsMissingFile(t *testing.T) {
	if _, err := loadDocuments([]string{"/nonexistent/doc.json"}); err == nil {
		t.Fatal("expected read error")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
