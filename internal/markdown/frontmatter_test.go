package markdown

import (
	"os"
	"strings"
	"testing"
	"time"
)

func readFixture(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}

func TestParseFrontMatter(t *testing.T) {
	data := readFixture(t, "testdata/usecase/en/manufacturing.md")

	fm, body, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if fm.Title != "Smart Manufacturing" {
		t.Fatalf("FrontMatter Title mismatch, got %q", fm.Title)
	}
	if fm.Slug != "smart-manufacturing" {
		t.Fatalf("FrontMatter Slug mismatch, got %q", fm.Slug)
	}
	if fm.Author != "Lan Pham" {
		t.Fatalf("FrontMatter Author mismatch, got %q", fm.Author)
	}
	if len(fm.Categories) != 2 || fm.Categories[0] != "manufacturing" {
		t.Fatalf("FrontMatter Categories mismatch: %#v", fm.Categories)
	}
	if fm.PublishedAt.IsZero() {
		t.Fatalf("expected publishedAt to be parsed")
	}
	if fm.Custom["industry"] != "manufacturing" {
		t.Fatalf("FrontMatter Custom industry missing: %#v", fm.Custom)
	}
	if !strings.Contains(string(body), "# Smart Manufacturing") {
		t.Fatalf("Markdown body not returned correctly: %q", string(body))
	}
}

func TestParseFrontMatterDateAlias(t *testing.T) {
	data := readFixture(t, "testdata/usecase/en/retail.md")

	fm, _, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	want := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)
	if !fm.PublishedAt.Equal(want) {
		t.Fatalf("expected date alias to populate PublishedAt, got %v", fm.PublishedAt)
	}
}

func TestBuildDocument(t *testing.T) {
	data := readFixture(t, "testdata/usecase/en/manufacturing.md")
	modified := time.Now().UTC()

	doc, err := BuildDocument("usecase/en/manufacturing.md", "en", data, modified)
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}

	if doc.FilePath != "usecase/en/manufacturing.md" {
		t.Fatalf("expected FilePath to be set, got %q", doc.FilePath)
	}
	if doc.Locale != "en" {
		t.Fatalf("expected Locale to be en, got %q", doc.Locale)
	}
	if doc.LastModified != modified {
		t.Fatalf("expected LastModified to equal the provided timestamp")
	}
	if len(doc.BodyHTML) != 0 {
		t.Fatalf("expected BodyHTML to stay empty until rendering")
	}
}
