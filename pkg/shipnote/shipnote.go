// Package shipnote assembles the release pipeline: compute the next
// date-coded version, gather history since the previous release, render
// categorized notes and publish them as a GitHub release.
package shipnote

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/aretw0/shipnote/pkg/core"
	"github.com/aretw0/shipnote/pkg/git"
	"github.com/aretw0/shipnote/pkg/github"
)

// Version exposes the version of the tool.
const Version = "0.3.0"

// Preview computes the next version and renders the release notes
// without touching the hosting API. It needs no credential in commit
// mode.
func Preview(ctx context.Context, cfg Config, opts ...Option) (*core.Plan, error) {
	svc, err := buildService(cfg, false, opts...)
	if err != nil {
		return nil, err
	}
	return svc.Plan(ctx)
}

// Release runs the full pipeline and publishes the result. The release
// is either fully published or not published at all.
func Release(ctx context.Context, cfg Config, opts ...Option) (*core.Plan, core.PublishResult, error) {
	svc, err := buildService(cfg, true, opts...)
	if err != nil {
		return nil, core.PublishResult{}, err
	}
	return svc.Run(ctx, core.PublishOptions{Draft: cfg.Draft, Prerelease: cfg.Prerelease})
}

// NextVersion computes only the next tag for today, without collecting
// history.
func NextVersion(ctx context.Context, cfg Config, opts ...Option) (core.VersionTag, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	var repo core.Repository = git.NewClient(cfg.WorkDir, o.logger)
	if o.repo != nil {
		repo = o.repo
	}

	names, err := repo.Tags(ctx)
	if err != nil {
		return core.VersionTag{}, fmt.Errorf("list tags: %w", err)
	}
	tags, malformed := core.ScanTags(names)
	for _, m := range malformed {
		o.logger.Warn("skipping malformed version tag", "tag", m.Tag, "reason", m.Reason)
	}
	return core.NextVersion(tags, o.now()), nil
}

func buildService(cfg Config, publishing bool, opts ...Option) (*core.Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger.With("run_id", uuid.NewString())

	owner, name, err := cfg.ownerName()
	if err != nil {
		return nil, err
	}

	gitClient := git.NewClient(cfg.WorkDir, logger)

	var repo core.Repository = gitClient
	if o.repo != nil {
		repo = o.repo
	}

	needsAPI := (publishing && o.publisher == nil) || (cfg.Source == SourcePRs && o.history == nil)
	var api *github.Client
	if needsAPI {
		if cfg.Token == "" {
			return nil, errors.New("missing credential: set GITHUB_TOKEN or pass --token")
		}
		api = github.NewClient(github.ClientConfig{
			Owner:  owner,
			Repo:   name,
			Token:  cfg.Token,
			Logger: logger,
		})
	}

	history := o.history
	if history == nil {
		switch cfg.Source {
		case SourcePRs:
			history = &github.HistorySource{API: api, Git: gitClient, Logger: logger}
		default:
			history = &git.HistorySource{Client: gitClient, Slug: cfg.Repo, Exclude: cfg.Exclude, Logger: logger}
		}
	}

	var publisher core.Publisher
	if publishing {
		publisher = o.publisher
		if publisher == nil {
			publisher = api
		}
		if cfg.Retries > 0 {
			publisher = &github.RetryPublisher{Publisher: publisher, MaxRetries: cfg.Retries, Logger: logger}
		}
	}

	return core.NewService(core.ServiceConfig{
		Repo:      repo,
		History:   history,
		Publisher: publisher,
		Slug:      cfg.Repo,
		Logger:    logger,
		Now:       o.now,
	}), nil
}
