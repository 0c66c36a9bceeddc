package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Service runs the release pipeline: scan tags, resolve the prior
// reference, collect and classify changes, render the body, publish.
// Strictly sequential, one shot per invocation.
type Service struct {
	repo      Repository
	history   History
	publisher Publisher
	slug      string // "owner/name", used for the comparison link
	logger    *slog.Logger
	now       func() time.Time
}

// ServiceConfig configures a Service. Publisher may be nil for
// render-only runs; Now defaults to time.Now.
type ServiceConfig struct {
	Repo      Repository
	History   History
	Publisher Publisher
	Slug      string
	Logger    *slog.Logger
	Now       func() time.Time
}

// NewService creates a new Service.
func NewService(cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:      cfg.Repo,
		history:   cfg.History,
		publisher: cfg.Publisher,
		slug:      cfg.Slug,
		logger:    logger,
		now:       now,
	}
}

// Plan is the fully computed release before anything touches the hosting
// API: the next version, the range it covers, and the rendered body.
type Plan struct {
	Version VersionTag
	Prior   *VersionTag // nil when this is the first release
	Since   Reference
	Until   Reference
	Notes   ReleaseNotes
	Body    string
}

// Plan computes the next version and renders the release notes without
// publishing anything.
func (s *Service) Plan(ctx context.Context) (*Plan, error) {
	names, err := s.repo.Tags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	tags, malformed := ScanTags(names)
	for _, m := range malformed {
		s.logger.Warn("skipping malformed version tag", "tag", m.Tag, "reason", m.Reason)
	}

	version := NextVersion(tags, s.now())
	s.logger.Debug("computed next version", "version", version.String())

	until, err := s.repo.Head(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve head: %w", err)
	}

	var (
		since Reference
		prior *VersionTag
	)
	if p, ok := PriorVersion(tags, version); ok {
		prior = &p
		since = Reference{Name: p.String()}
	} else {
		// First release: anchor the range at the root commit so the
		// comparison still resolves to something sensible.
		since, err = s.repo.InitialCommit(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolve initial commit: %w", err)
		}
	}

	changes, err := s.history.Changes(ctx, since, until)
	if err != nil {
		return nil, fmt.Errorf("collect changes %s..%s: %w", since.Short(), until.Short(), err)
	}
	s.logger.Info("collected changes", "count", len(changes), "since", since.Short())

	entries := make(map[Category][]ChangeRecord)
	for _, c := range changes {
		cat := Classify(c.Title)
		entries[cat] = append(entries[cat], c)
	}

	notes := ReleaseNotes{
		Version:    version,
		Entries:    entries,
		CompareURL: s.compareURL(prior, version),
	}

	return &Plan{
		Version: version,
		Prior:   prior,
		Since:   since,
		Until:   until,
		Notes:   notes,
		Body:    RenderNotes(notes),
	}, nil
}

func (s *Service) compareURL(prior *VersionTag, next VersionTag) string {
	if prior == nil || s.slug == "" {
		return ""
	}
	return fmt.Sprintf("https://github.com/%s/compare/%s...%s", s.slug, prior.String(), next.String())
}

// PublishOptions tweak the created release.
type PublishOptions struct {
	Draft      bool
	Prerelease bool
}

// Publish submits a computed plan to the hosting API. The release either
// publishes fully or not at all; any error leaves no partial state behind
// worth reporting beyond the error itself.
func (s *Service) Publish(ctx context.Context, plan *Plan, opts PublishOptions) (PublishResult, error) {
	if s.publisher == nil {
		return PublishResult{}, errors.New("no publisher configured")
	}

	rel := Release{
		Tag:        plan.Version.String(),
		Name:       plan.Version.String(),
		Body:       plan.Body,
		Target:     plan.Until.Name,
		Draft:      opts.Draft,
		Prerelease: opts.Prerelease,
	}

	res, err := s.publisher.Publish(ctx, rel)
	if err != nil {
		return PublishResult{}, err
	}
	s.logger.Info("release published", "tag", rel.Tag, "url", res.URL)
	return res, nil
}

// Run plans and publishes in one go.
func (s *Service) Run(ctx context.Context, opts PublishOptions) (*Plan, PublishResult, error) {
	plan, err := s.Plan(ctx)
	if err != nil {
		return nil, PublishResult{}, err
	}
	res, err := s.Publish(ctx, plan, opts)
	if err != nil {
		return plan, PublishResult{}, err
	}
	return plan, res, nil
}
