package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/shipnote/pkg/core"
)

// Client wraps git command execution. We keep it small and focused on
// the read operations the release pipeline needs; tag creation is the
// one side effect, and it stays outside the core algorithm.
type Client struct {
	WorkDir string
	Logger  *slog.Logger
}

// NewClient creates a new git client for the given working directory.
func NewClient(workDir string, logger *slog.Logger) *Client {
	return &Client{WorkDir: workDir, Logger: logger}
}

// Run executes a raw git command in the working directory.
func (c *Client) Run(ctx context.Context, args ...string) (string, error) {
	if c.Logger != nil {
		c.Logger.Debug("executing git", "args", args, "dir", c.WorkDir)
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.WorkDir

	out, err := cmd.CombinedOutput()
	output := string(out)

	if err != nil {
		return output, fmt.Errorf("git %s failed: %w\nOutput: %s", args[0], err, output)
	}

	return strings.TrimSpace(output), nil
}

// Tags returns all tag names in the repository.
func (c *Client) Tags(ctx context.Context) ([]string, error) {
	out, err := c.Run(ctx, "tag", "--list")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// Head returns the current HEAD commit.
func (c *Client) Head(ctx context.Context) (core.Reference, error) {
	out, err := c.Run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return core.Reference{}, err
	}
	return core.Reference{Name: out, IsCommit: true}, nil
}

// InitialCommit returns the repository's root commit. Repositories with
// multiple roots (merged unrelated histories) resolve to the oldest one.
func (c *Client) InitialCommit(ctx context.Context) (core.Reference, error) {
	out, err := c.Run(ctx, "rev-list", "--max-parents=0", "HEAD")
	if err != nil {
		return core.Reference{}, err
	}
	roots := strings.Split(out, "\n")
	return core.Reference{Name: strings.TrimSpace(roots[len(roots)-1]), IsCommit: true}, nil
}

// IsAncestor reports whether a is an ancestor of b.
func (c *Client) IsAncestor(ctx context.Context, a, b string) (bool, error) {
	cmd := exec.CommandContext(ctx, "git", "merge-base", "--is-ancestor", a, b)
	cmd.Dir = c.WorkDir

	err := cmd.Run()
	if err == nil {
		return true, nil
	}
	// Exit status 1 is the documented "not an ancestor" answer, anything
	// else is a real failure (unknown ref, not a repository).
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return false, nil
	}
	return false, fmt.Errorf("git merge-base --is-ancestor %s %s: %w", a, b, err)
}

// CommitTime returns the committer timestamp of a ref.
func (c *Client) CommitTime(ctx context.Context, ref string) (time.Time, error) {
	out, err := c.Run(ctx, "show", "-s", "--format=%ct", ref)
	if err != nil {
		return time.Time{}, err
	}
	// Annotated tags print the tag header before the commit; the
	// timestamp is the last line either way.
	lines := strings.Split(out, "\n")
	unix, err := strconv.ParseInt(strings.TrimSpace(lines[len(lines)-1]), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse commit time of %s: %w", ref, err)
	}
	return time.Unix(unix, 0).UTC(), nil
}

// CommitsInRange returns the commits in (since, until], newest first,
// with author, subject and touched files. A single git invocation keeps
// large ranges cheap.
func (c *Client) CommitsInRange(ctx context.Context, since, until string) ([]core.ChangeRecord, error) {
	rangeSpec := fmt.Sprintf("%s..%s", since, until)
	out, err := c.Run(ctx, "log", "--name-only", "--pretty=format:%x1e%H%x1f%an%x1f%s", rangeSpec)
	if err != nil {
		return nil, fmt.Errorf("git log %s: %w", rangeSpec, err)
	}
	return parseLog(out), nil
}

// parseLog splits the record-separated log output produced by
// CommitsInRange: one \x1e-prefixed record per commit, header fields
// joined by \x1f, touched files on the following lines.
func parseLog(out string) []core.ChangeRecord {
	var records []core.ChangeRecord
	for _, raw := range strings.Split(out, "\x1e") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		header, rest, _ := strings.Cut(raw, "\n")
		fields := strings.SplitN(header, "\x1f", 3)
		if len(fields) < 3 {
			continue
		}

		rec := core.ChangeRecord{
			ID:     strings.TrimSpace(fields[0]),
			Author: strings.TrimSpace(fields[1]),
			Title:  strings.TrimSpace(fields[2]),
		}
		for _, line := range strings.Split(rest, "\n") {
			if path := strings.TrimSpace(line); path != "" {
				rec.Files = append(rec.Files, path)
			}
		}
		records = append(records, rec)
	}
	return records
}

// CreateTag creates a lightweight tag at HEAD. Duplicate names fail at
// the git level and surface as ErrDuplicateVersion.
func (c *Client) CreateTag(ctx context.Context, name string) error {
	if out, err := c.Run(ctx, "tag", name); err != nil {
		if strings.Contains(out, "already exists") {
			return fmt.Errorf("%w: %s", core.ErrDuplicateVersion, name)
		}
		return err
	}
	return nil
}

// PushTag pushes a tag to origin.
func (c *Client) PushTag(ctx context.Context, name string) error {
	_, err := c.Run(ctx, "push", "origin", name)
	return err
}
