package ports

import (
	"context"
	"time"
)

// LoginTracker records successful logins. Failures are never fatal to a login.
type LoginTracker interface {
	RecordLogin(ctx context.Context, username string, at time.Time) error
	// LastLogin returns the zero time when no login has been recorded.
	LastLogin(ctx context.Context, username string) (time.Time, error)
}
