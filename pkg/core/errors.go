package core

import (
	"errors"
	"fmt"
)

// Common errors. The pipeline aborts on any of these except malformed
// tags, which are skipped with a warning.
var (
	// ErrNoMatchingHistory means the range endpoints are unrelated (the
	// until reference is not reachable from since). Publishing anyway
	// would produce a nonsensical release, so this is fatal.
	ErrNoMatchingHistory = errors.New("no matching history between references")

	// ErrDuplicateVersion means a tag for the computed version already
	// exists upstream.
	ErrDuplicateVersion = errors.New("version tag already exists")

	// ErrAuthentication means the release host rejected the credential.
	ErrAuthentication = errors.New("authentication rejected by release host")

	// ErrConflict means a release for the tag already exists.
	ErrConflict = errors.New("release already exists for tag")

	// ErrTransientNetwork marks retryable transport failures (timeout,
	// connection reset). The pipeline does not retry on its own; callers
	// opt in via a retry wrapper.
	ErrTransientNetwork = errors.New("transient network failure")

	// ErrFatalAPI covers every other non-success API response.
	ErrFatalAPI = errors.New("release host API error")
)

// MalformedTagError flags a tag that matches the date-coded prefix but
// has a missing or non-numeric sequence suffix. Historical tags may
// predate the scheme, so these are reported and skipped, never fatal.
type MalformedTagError struct {
	Tag    string
	Reason string
}

func (e *MalformedTagError) Error() string {
	return fmt.Sprintf("malformed version tag %q: %s", e.Tag, e.Reason)
}
