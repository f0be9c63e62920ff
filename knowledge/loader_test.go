package knowledge_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/campushq/campus-agent/knowledge"
)

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	passages, err := knowledge.Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if passages != nil {
		t.Fatalf("expected no passages, got %d", len(passages))
	}
}

func TestLoadMalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte(`{"a": `), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := knowledge.Load(path); err == nil {
		t.Fatal("expected error for malformed json")
	}
}

func TestLoadEmitsStructuredThenFlattenedPassages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campus.json")
	raw := `{
  "university_overview": {"full_name": "Test University", "type": "Private"},
  "motto": "Learn by doing"
}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	passages, err := knowledge.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(passages) == 0 {
		t.Fatal("expected passages")
	}

	// Structured section passages come first, flattened leaves after.
	if passages[0].Category != "overview" {
		t.Fatalf("expected structured overview passage first, got category %q", passages[0].Category)
	}
	var sawMotto bool
	for _, p := range passages {
		if p.Category == "motto" {
			sawMotto = true
		}
		if p.Source != knowledge.SourceKnowledgeBase {
			t.Fatalf("unexpected source %q", p.Source)
		}
	}
	if !sawMotto {
		t.Fatal("flattened motto passage missing")
	}
}
