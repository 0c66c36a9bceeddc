package git

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/shipnote/pkg/core"
)

// HistorySource collects change records from raw commits: one record per
// commit in the range. This is the commit-based strategy; the
// pull-request strategy lives in the github adapter, and a run uses
// exactly one of the two.
type HistorySource struct {
	Client  *Client
	Slug    string   // "owner/name" for commit links, optional
	Exclude []string // doublestar globs; commits touching only these paths are dropped
	Logger  *slog.Logger
}

// Changes implements core.History. It verifies reachability before
// collecting: an unreachable range means the tag and branch have
// diverged, and a release cut from it would be nonsense.
func (h *HistorySource) Changes(ctx context.Context, since, until core.Reference) ([]core.ChangeRecord, error) {
	ok, err := h.Client.IsAncestor(ctx, since.Name, until.Name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s is not reachable from %s", core.ErrNoMatchingHistory, until.Short(), since.Short())
	}

	records, err := h.Client.CommitsInRange(ctx, since.Name, until.Name)
	if err != nil {
		return nil, err
	}

	kept := records[:0]
	for _, rec := range records {
		if h.excluded(rec) {
			if h.Logger != nil {
				h.Logger.Debug("excluding commit by path filter", "sha", rec.ShortID())
			}
			continue
		}
		if h.Slug != "" && rec.URL == "" {
			rec.URL = fmt.Sprintf("https://github.com/%s/commit/%s", h.Slug, rec.ID)
		}
		kept = append(kept, rec)
	}
	return kept, nil
}

// excluded reports whether every touched file matches an exclude glob.
// Commits with no recorded files (pure merges) are never excluded.
func (h *HistorySource) excluded(rec core.ChangeRecord) bool {
	if len(h.Exclude) == 0 || len(rec.Files) == 0 {
		return false
	}
	for _, f := range rec.Files {
		matched := false
		for _, pattern := range h.Exclude {
			if ok, err := doublestar.Match(pattern, f); err == nil && ok {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}
