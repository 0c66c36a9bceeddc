// Package github talks to the GitHub REST API: listing merged pull
// requests for the release notes and creating the release itself.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/oauth2"

	"github.com/aretw0/shipnote/pkg/core"
)

// DefaultBaseURL is the public GitHub API endpoint.
const DefaultBaseURL = "https://api.github.com"

const perPage = 100

// Client is a minimal REST client scoped to one repository. The
// credential is used as an opaque bearer token and never inspected.
type Client struct {
	baseURL string
	owner   string
	repo    string
	httpc   *http.Client
	logger  *slog.Logger
}

// ClientConfig configures a Client. HTTPClient overrides the
// token-authenticated default, mainly for tests.
type ClientConfig struct {
	Owner      string
	Repo       string
	Token      string
	BaseURL    string
	Timeout    time.Duration
	Logger     *slog.Logger
	HTTPClient *http.Client
}

// NewClient creates a client for the given repository.
func NewClient(cfg ClientConfig) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var httpc *http.Client
	if cfg.HTTPClient != nil {
		// Shallow copy so the timeout below never leaks into a client
		// the caller shares.
		clone := *cfg.HTTPClient
		httpc = &clone
	} else {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpc = oauth2.NewClient(context.Background(), src)
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	httpc.Timeout = timeout

	return &Client{
		baseURL: base,
		owner:   cfg.Owner,
		repo:    cfg.Repo,
		httpc:   httpc,
		logger:  logger,
	}
}

type pullRequest struct {
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	HTMLURL   string     `json:"html_url"`
	MergedAt  *time.Time `json:"merged_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	User      struct {
		Login string `json:"login"`
	} `json:"user"`
}

// ListMergedPullRequests returns the pull requests merged after the
// given instant, newest first. One paginated list call replaces the
// one-lookup-per-commit pattern that burns through rate limits.
func (c *Client) ListMergedPullRequests(ctx context.Context, since time.Time) ([]core.ChangeRecord, error) {
	var records []core.ChangeRecord

	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/repos/%s/%s/pulls?state=closed&sort=updated&direction=desc&per_page=%d&page=%d",
			c.baseURL, c.owner, c.repo, perPage, page)

		var prs []pullRequest
		if err := c.get(ctx, url, &prs); err != nil {
			return nil, fmt.Errorf("list pull requests: %w", err)
		}

		done := len(prs) < perPage
		for _, pr := range prs {
			// Sorted by update time descending: once updates predate the
			// boundary, no older page can hold a qualifying merge.
			if pr.UpdatedAt.Before(since) {
				done = true
				break
			}
			if pr.MergedAt == nil || !pr.MergedAt.After(since) {
				continue
			}
			records = append(records, core.ChangeRecord{
				ID:     strconv.Itoa(pr.Number),
				Title:  pr.Title,
				Author: pr.User.Login,
				URL:    pr.HTMLURL,
			})
		}
		if done {
			return records, nil
		}
	}
}

type releaseRequest struct {
	TagName         string `json:"tag_name"`
	TargetCommitish string `json:"target_commitish,omitempty"`
	Name            string `json:"name"`
	Body            string `json:"body"`
	Draft           bool   `json:"draft"`
	Prerelease      bool   `json:"prerelease"`
}

type releaseResponse struct {
	HTMLURL string `json:"html_url"`
}

// Publish implements core.Publisher with a single create-release call.
// API outcomes map onto the error taxonomy; no retry happens here.
func (c *Client) Publish(ctx context.Context, rel core.Release) (core.PublishResult, error) {
	payload := releaseRequest{
		TagName:         rel.Tag,
		TargetCommitish: rel.Target,
		Name:            rel.Name,
		Body:            rel.Body,
		Draft:           rel.Draft,
		Prerelease:      rel.Prerelease,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return core.PublishResult{}, fmt.Errorf("encode release: %w", err)
	}

	url := fmt.Sprintf("%s/repos/%s/%s/releases", c.baseURL, c.owner, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return core.PublishResult{}, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return core.PublishResult{}, classifyTransport(err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	switch {
	case resp.StatusCode == http.StatusCreated:
		var parsed releaseResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return core.PublishResult{}, fmt.Errorf("parse create-release response: %w", err)
		}
		c.logger.Debug("release created", "tag", rel.Tag, "url", parsed.HTMLURL)
		return core.PublishResult{URL: parsed.HTMLURL}, nil

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return core.PublishResult{}, fmt.Errorf("%w: status %d", core.ErrAuthentication, resp.StatusCode)

	case resp.StatusCode == http.StatusUnprocessableEntity && bytes.Contains(body, []byte("already_exists")):
		return core.PublishResult{}, fmt.Errorf("%w: %s", core.ErrConflict, rel.Tag)

	case resp.StatusCode >= 500:
		return core.PublishResult{}, fmt.Errorf("%w: status %d", core.ErrTransientNetwork, resp.StatusCode)

	default:
		return core.PublishResult{}, fmt.Errorf("%w: status %d: %s", core.ErrFatalAPI, resp.StatusCode, truncateBody(body))
	}
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return classifyTransport(err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<20))

	switch {
	case resp.StatusCode == http.StatusOK:
		return json.Unmarshal(body, out)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", core.ErrAuthentication, resp.StatusCode)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", core.ErrTransientNetwork, resp.StatusCode)
	default:
		return fmt.Errorf("%w: status %d: %s", core.ErrFatalAPI, resp.StatusCode, truncateBody(body))
	}
}

// classifyTransport maps transport failures onto the taxonomy: timeouts
// and connection resets are worth a caller-driven retry, the rest are
// not.
func classifyTransport(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", core.ErrTransientNetwork, err)
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", core.ErrTransientNetwork, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", core.ErrTransientNetwork, err)
	}
	return fmt.Errorf("%w: %v", core.ErrFatalAPI, err)
}

func truncateBody(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
