package reference

import (
	"context"
	"time"
)

// RetryPolicy bounds SyncUntilAvailable.
type RetryPolicy struct {
	Delay       time.Duration
	MaxAttempts int
}

// DefaultRetryPolicy polls every two seconds for up to a minute.
var DefaultRetryPolicy = RetryPolicy{
	Delay:       2 * time.Second,
	MaxAttempts: 30,
}

// SyncUntilAvailable repeats Sync with a fixed delay until a list is
// obtained. It stops after MaxAttempts or when ctx is done and then returns
// an *UnavailableError carrying the last result.
func (s *Syncer) SyncUntilAvailable(ctx context.Context, src Source, policy RetryPolicy) (*Result, error) {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = 1
	}

	var last *Result
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return last, &UnavailableError{Kind: src.Kind, Attempts: attempt - 1, Last: last, Cause: err}
		}

		last = s.Sync(ctx, src)
		if last.List != nil {
			return last, nil
		}

		if attempt < policy.MaxAttempts {
			s.logger.Debug("reference list unavailable, retrying",
				"list", src.Kind.String(),
				"attempt", attempt,
				"wait", policy.Delay)
			timer := time.NewTimer(policy.Delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return last, &UnavailableError{Kind: src.Kind, Attempts: attempt, Last: last, Cause: ctx.Err()}
			}
		}
	}

	return last, &UnavailableError{Kind: src.Kind, Attempts: policy.MaxAttempts, Last: last, Cause: last.Err}
}
