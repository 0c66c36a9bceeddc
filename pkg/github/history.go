package github

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/shipnote/pkg/core"
	"github.com/aretw0/shipnote/pkg/git"
)

// HistorySource collects change records from merged pull requests: one
// record per squash-merge, coarser than the commit-based strategy in the
// git package. The local git client still answers the ancestry question
// and resolves the boundary timestamp; the API answers everything else.
type HistorySource struct {
	API    *Client
	Git    *git.Client
	Logger *slog.Logger
}

// Changes implements core.History. Pull requests qualify when their
// merge point falls after the since reference's commit time.
func (h *HistorySource) Changes(ctx context.Context, since, until core.Reference) ([]core.ChangeRecord, error) {
	ok, err := h.Git.IsAncestor(ctx, since.Name, until.Name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s is not reachable from %s", core.ErrNoMatchingHistory, until.Short(), since.Short())
	}

	boundary, err := h.Git.CommitTime(ctx, since.Name)
	if err != nil {
		return nil, fmt.Errorf("resolve boundary time of %s: %w", since.Short(), err)
	}

	records, err := h.API.ListMergedPullRequests(ctx, boundary)
	if err != nil {
		return nil, err
	}
	if h.Logger != nil {
		h.Logger.Debug("listed merged pull requests", "count", len(records), "since", boundary)
	}
	return records, nil
}
