package git

import (
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/shipnote/pkg/core"
)

func TestHistorySource_Excluded(t *testing.T) {
	src := &HistorySource{Exclude: []string{"docs/**", "**/*.md"}}

	tests := []struct {
		name  string
		files []string
		want  bool
	}{
		{name: "all excluded", files: []string{"docs/guide.md", "README.md"}, want: true},
		{name: "code survives", files: []string{"docs/guide.md", "pkg/core/service.go"}, want: false},
		{name: "no files never excluded", files: nil, want: false},
		{name: "nested docs", files: []string{"docs/deep/nested/page.md"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := core.ChangeRecord{ID: "abc", Files: tt.files}
			if got := src.excluded(rec); got != tt.want {
				t.Errorf("excluded(%v) = %v, want %v", tt.files, got, tt.want)
			}
		})
	}

	t.Run("no patterns", func(t *testing.T) {
		empty := &HistorySource{}
		if empty.excluded(core.ChangeRecord{Files: []string{"README.md"}}) {
			t.Error("excluded with no patterns configured")
		}
	})
}

func TestHistorySource_Changes(t *testing.T) {
	client, ctx := newTestRepo(t)
	commitFile(t, client, ctx, "a.txt", "feat: first")
	mustRun(t, client, ctx, "tag", "v25.8.30.1")
	commitFile(t, client, ctx, "docs/readme.md", "docs: notes only")
	commitFile(t, client, ctx, "b.txt", "fix: second")

	head, err := client.Head(ctx)
	if err != nil {
		t.Fatal(err)
	}

	src := &HistorySource{Client: client, Slug: "acme/widget", Exclude: []string{"docs/**"}}
	records, err := src.Changes(ctx, core.Reference{Name: "v25.8.30.1"}, head)
	if err != nil {
		t.Fatalf("Changes: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("Changes returned %d records, want 1 (docs-only commit excluded): %+v", len(records), records)
	}
	if records[0].Title != "fix: second" {
		t.Errorf("Title = %q", records[0].Title)
	}
	if !strings.HasPrefix(records[0].URL, "https://github.com/acme/widget/commit/") {
		t.Errorf("URL = %q", records[0].URL)
	}
}

func TestHistorySource_UnrelatedHistories(t *testing.T) {
	client, ctx := newTestRepo(t)
	commitFile(t, client, ctx, "a.txt", "feat: first")
	mainHead, err := client.Head(ctx)
	if err != nil {
		t.Fatal(err)
	}

	// An orphan branch shares no ancestry with the first commit.
	mustRun(t, client, ctx, "checkout", "-q", "--orphan", "detached")
	commitFile(t, client, ctx, "c.txt", "chore: unrelated")
	orphanHead, err := client.Head(ctx)
	if err != nil {
		t.Fatal(err)
	}

	src := &HistorySource{Client: client}
	_, err = src.Changes(ctx, core.Reference{Name: mainHead.Name, IsCommit: true}, orphanHead)
	if !errors.Is(err, core.ErrNoMatchingHistory) {
		t.Fatalf("Changes error = %v, want ErrNoMatchingHistory", err)
	}
}

func TestClient_CommitTime(t *testing.T) {
	client, ctx := newTestRepo(t)
	commitFile(t, client, ctx, "a.txt", "feat: first")

	ts, err := client.CommitTime(ctx, "HEAD")
	if err != nil {
		t.Fatalf("CommitTime: %v", err)
	}
	if ts.IsZero() {
		t.Error("CommitTime returned zero time")
	}
}
