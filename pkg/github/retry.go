package github

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/aretw0/shipnote/pkg/core"
)

// RetryPublisher wraps a Publisher with bounded exponential backoff.
// Only transient network failures are retried; authentication failures,
// conflicts and fatal API errors surface immediately. Retrying is an
// explicit opt-in, the bare client never retries on its own.
type RetryPublisher struct {
	Publisher  core.Publisher
	MaxRetries uint64 // additional attempts after the first; 0 means use the default
	Logger     *slog.Logger

	// Interval overrides the initial backoff interval, mainly for tests.
	Interval time.Duration
}

const defaultMaxRetries = 3

// Publish implements core.Publisher.
func (r *RetryPublisher) Publish(ctx context.Context, rel core.Release) (core.PublishResult, error) {
	retries := r.MaxRetries
	if retries == 0 {
		retries = defaultMaxRetries
	}

	policy := backoff.NewExponentialBackOff()
	if r.Interval > 0 {
		policy.InitialInterval = r.Interval
	}

	var res core.PublishResult
	attempt := 0
	op := func() error {
		attempt++
		var err error
		res, err = r.Publisher.Publish(ctx, rel)
		if err == nil {
			return nil
		}
		if errors.Is(err, core.ErrTransientNetwork) {
			if r.Logger != nil {
				r.Logger.Warn("publish attempt failed, will retry", "attempt", attempt, "error", err)
			}
			return err
		}
		return backoff.Permanent(err)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(policy, retries), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return core.PublishResult{}, err
	}
	return res, nil
}
