package knowledge_test

import (
	"strings"
	"testing"

	"github.com/campushq/campus-agent/knowledge"
)

func parse(t *testing.T, raw string) knowledge.Node {
	t.Helper()
	root, err := knowledge.Parse(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return root
}

func TestFlattenNestedObjectBuildsBreadcrumb(t *testing.T) {
	root := parse(t, `{"admissions": {"btech": {"eligibility": "60% in PCM"}}}`)

	passages := knowledge.Flatten(root)
	if len(passages) != 1 {
		t.Fatalf("expected 1 passage, got %d", len(passages))
	}

	want := "Topic: admissions > btech > eligibility\nInformation: 60% in PCM"
	if passages[0].Content != want {
		t.Fatalf("content mismatch:\ngot:  %q\nwant: %q", passages[0].Content, want)
	}
	if passages[0].Category != "admissions" {
		t.Fatalf("expected category admissions, got %q", passages[0].Category)
	}
	if passages[0].Source != knowledge.SourceKnowledgeBase {
		t.Fatalf("expected knowledge base source, got %q", passages[0].Source)
	}
}

func TestFlattenRootScalarUsesKeyAsCategory(t *testing.T) {
	root := parse(t, `{"motto": "Learn, Grow, Lead"}`)

	passages := knowledge.Flatten(root)
	if len(passages) != 1 {
		t.Fatalf("expected 1 passage, got %d", len(passages))
	}
	if passages[0].Category != "motto" {
		t.Fatalf("expected category motto, got %q", passages[0].Category)
	}
	if passages[0].Content != "Topic: motto\nInformation: Learn, Grow, Lead" {
		t.Fatalf("unexpected content: %q", passages[0].Content)
	}
}

func TestFlattenListOfObjectsRecursesUnderName(t *testing.T) {
	root := parse(t, `{"student_clubs": [{"name": "Coding Club", "focus": "competitive programming"}]}`)

	passages := knowledge.Flatten(root)

	var found bool
	for _, p := range passages {
		if p.Content == "Topic: student_clubs > Coding Club > focus\nInformation: competitive programming" {
			found = true
			if p.Category != "student_clubs" {
				t.Fatalf("expected category student_clubs, got %q", p.Category)
			}
		}
	}
	if !found {
		t.Fatalf("no passage for the club focus, got %+v", passages)
	}
}

func TestFlattenListObjectWithoutNameGetsPositionalPlaceholder(t *testing.T) {
	root := parse(t, `{"labs": [{"capacity": "40"}, {"capacity": "60"}]}`)

	passages := knowledge.Flatten(root)
	if len(passages) != 2 {
		t.Fatalf("expected 2 passages, got %d", len(passages))
	}
	if passages[0].Content != "Topic: labs > Item 1 > capacity\nInformation: 40" {
		t.Fatalf("unexpected first passage: %q", passages[0].Content)
	}
	if passages[1].Content != "Topic: labs > Item 2 > capacity\nInformation: 60" {
		t.Fatalf("unexpected second passage: %q", passages[1].Content)
	}
}

func TestFlattenRootlessListPrimitivesAreGeneral(t *testing.T) {
	root := parse(t, `["open day", "orientation"]`)

	passages := knowledge.Flatten(root)
	if len(passages) != 2 {
		t.Fatalf("expected 2 passages, got %d", len(passages))
	}
	for _, p := range passages {
		if p.Category != "general" {
			t.Fatalf("expected category general, got %q", p.Category)
		}
	}
}

func TestFlattenPreservesKeyOrder(t *testing.T) {
	root := parse(t, `{"zeta": "1", "alpha": "2", "mid": "3"}`)

	passages := knowledge.Flatten(root)
	if len(passages) != 3 {
		t.Fatalf("expected 3 passages, got %d", len(passages))
	}
	wantOrder := []string{"zeta", "alpha", "mid"}
	for i, key := range wantOrder {
		if !strings.HasPrefix(passages[i].Content, "Topic: "+key) {
			t.Fatalf("passage %d: expected topic %q, got %q", i, key, passages[i].Content)
		}
	}
}

func TestFlattenRendersScalarLiterals(t *testing.T) {
	root := parse(t, `{"stats": {"count": 120, "ratio": 4.5, "active": true, "extra": null}}`)

	passages := knowledge.Flatten(root)
	if len(passages) != 4 {
		t.Fatalf("expected 4 passages, got %d", len(passages))
	}

	wants := []string{
		"Information: 120",
		"Information: 4.5",
		"Information: true",
		"Information: null",
	}
	for i, want := range wants {
		if !strings.Contains(passages[i].Content, want) {
			t.Fatalf("passage %d: expected %q in %q", i, want, passages[i].Content)
		}
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	for _, raw := range []string{"", "{", `{"a": }`, `{"a": 1} trailing`} {
		if _, err := knowledge.Parse(strings.NewReader(raw)); err == nil {
			t.Fatalf("expected parse error for %q", raw)
		}
	}
}
