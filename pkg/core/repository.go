package core

import "context"

// Repository defines the read side of the version-control collaborator.
// Adhering to this interface keeps the pipeline independent of how the
// repository is reached (local git binary, hosting API, a fake in tests).
type Repository interface {
	// Tags returns all tag names in the repository.
	Tags(ctx context.Context) ([]string, error)

	// Head returns the commit the release will point at.
	Head(ctx context.Context) (Reference, error)

	// InitialCommit returns the repository's root commit, used as the
	// range boundary when no previous release exists.
	InitialCommit(ctx context.Context) (Reference, error)
}

// History collects the change records between two references. A run uses
// exactly one implementation: commit-based or pull-request-based. The two
// differ in granularity (one entry per commit vs one per squash-merge)
// and must never be mixed within a run.
type History interface {
	// Changes returns the records in (since, until], newest first. It
	// fails with ErrNoMatchingHistory when until is not reachable from
	// since.
	Changes(ctx context.Context, since, until Reference) ([]ChangeRecord, error)
}

// Publisher submits a release to the hosting API. Implementations make a
// single attempt; retry policy is an explicit wrapper the caller opts
// into.
type Publisher interface {
	Publish(ctx context.Context, rel Release) (PublishResult, error)
}
