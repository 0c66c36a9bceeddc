package core

import (
	"strings"
	"testing"
)

func sampleNotes() ReleaseNotes {
	return ReleaseNotes{
		Version: VersionTag{25, 8, 30, 2},
		Entries: map[Category][]ChangeRecord{
			CategoryFix:  {{ID: "42", Title: "fix: null pointer", URL: "https://github.com/acme/widget/pull/42", Author: "kim"}},
			CategoryFeat: {{ID: "41", Title: "feat: add cache", URL: "https://github.com/acme/widget/pull/41"}},
			CategoryOther: {
				{ID: "0a1b2c3d4e5f6071", Title: "update readme", URL: "https://github.com/acme/widget/commit/0a1b2c3d4e5f6071"},
			},
		},
		CompareURL: "https://github.com/acme/widget/compare/v25.8.30.1...v25.8.30.2",
	}
}

func TestRenderNotes(t *testing.T) {
	body := RenderNotes(sampleNotes())

	if !strings.HasPrefix(body, "## v25.8.30.2\n") {
		t.Errorf("missing version header, got:\n%s", body)
	}

	// Sections appear in fixed order; empty categories leave no heading.
	feat := strings.Index(body, "### 🚀 Features")
	fix := strings.Index(body, "### 🐛 Fixes")
	other := strings.Index(body, "### 🔖 Other")
	if feat < 0 || fix < 0 || other < 0 {
		t.Fatalf("missing sections, got:\n%s", body)
	}
	if !(feat < fix && fix < other) {
		t.Errorf("sections out of order: feat=%d fix=%d other=%d", feat, fix, other)
	}
	for _, absent := range []string{"Docs", "Tests", "CI/CD", "Tasks", "Chores"} {
		if strings.Contains(body, absent) {
			t.Errorf("empty section %q was rendered", absent)
		}
	}

	// Entry formatting: short id, link, cleaned title, optional author.
	if !strings.Contains(body, "- [41](https://github.com/acme/widget/pull/41): add cache\n") {
		t.Errorf("feat entry malformed:\n%s", body)
	}
	if !strings.Contains(body, "null pointer (@kim)") {
		t.Errorf("author attribution missing:\n%s", body)
	}
	if !strings.Contains(body, "[0a1b2c3]") {
		t.Errorf("commit id not shortened:\n%s", body)
	}

	if !strings.Contains(body, "**Full Changelog:** https://github.com/acme/widget/compare/v25.8.30.1...v25.8.30.2") {
		t.Errorf("compare trailer missing:\n%s", body)
	}
}

func TestRenderNotes_Deterministic(t *testing.T) {
	notes := sampleNotes()
	first := RenderNotes(notes)
	for i := 0; i < 10; i++ {
		if got := RenderNotes(notes); got != first {
			t.Fatalf("render %d differs from first render", i)
		}
	}
}

func TestRenderNotes_NoPriorRelease(t *testing.T) {
	notes := sampleNotes()
	notes.CompareURL = ""

	body := RenderNotes(notes)
	if !strings.Contains(body, "**Full Changelog:** no previous version to compare against") {
		t.Errorf("missing no-comparison notice:\n%s", body)
	}
	if strings.Contains(body, "compare/") {
		t.Errorf("broken compare link rendered:\n%s", body)
	}
}

func TestRenderNotes_Truncation(t *testing.T) {
	long := strings.Repeat("x", 400)
	notes := ReleaseNotes{
		Version: VersionTag{25, 8, 30, 1},
		Entries: map[Category][]ChangeRecord{
			CategoryFeat:  {{ID: "1", Title: "feat: " + long}},
			CategoryChore: {{ID: "2", Title: "chore: " + long}},
			CategoryOther: {{ID: "3", Title: long}},
		},
	}

	body := renderNotes(notes, 600)
	if len(body) > 600 {
		t.Fatalf("body length %d exceeds limit", len(body))
	}
	if !strings.Contains(body, truncationNotice) {
		t.Errorf("truncation notice missing:\n%s", body)
	}
	// Highest-priority section survives; the tail sections go first.
	if !strings.Contains(body, "### 🚀 Features") {
		t.Errorf("features section dropped before lower-priority ones:\n%s", body)
	}
	if strings.Contains(body, "### 🔖 Other") {
		t.Errorf("lowest-priority section kept under pressure:\n%s", body)
	}
	if !strings.HasPrefix(body, "## v25.8.30.1\n") {
		t.Errorf("header lost during truncation:\n%s", body)
	}
}

func TestRenderNotes_RoundTrip(t *testing.T) {
	records := []ChangeRecord{
		{ID: "a1", Title: "feat: add cache"},
		{ID: "b2", Title: "fix: null pointer"},
		{ID: "c3", Title: "update readme"},
	}

	entries := make(map[Category][]ChangeRecord)
	for _, r := range records {
		entries[Classify(r.Title)] = append(entries[Classify(r.Title)], r)
	}

	if len(entries[CategoryFeat]) != 1 || len(entries[CategoryFix]) != 1 || len(entries[CategoryOther]) != 1 {
		t.Fatalf("classification off: %v", entries)
	}

	body := RenderNotes(ReleaseNotes{Version: VersionTag{25, 8, 30, 1}, Entries: entries})
	feat := strings.Index(body, "### 🚀 Features")
	fix := strings.Index(body, "### 🐛 Fixes")
	other := strings.Index(body, "### 🔖 Other")
	if !(feat >= 0 && fix > feat && other > fix) {
		t.Fatalf("expected feat, fix, other in order, got:\n%s", body)
	}
	if strings.Contains(body, "CI/CD") || strings.Contains(body, "Docs") {
		t.Errorf("empty sections rendered:\n%s", body)
	}
}
