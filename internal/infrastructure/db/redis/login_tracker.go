package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const lastLoginTTL = 90 * 24 * time.Hour

// LoginTracker remembers the last successful login per username.
// Key format: last_login:<username>, value is a unix timestamp.
type LoginTracker struct {
	client *redis.Client
}

func NewLoginTracker(client *redis.Client) *LoginTracker {
	return &LoginTracker{client: client}
}

// RecordLogin stores at as the latest login (expires after lastLoginTTL).
func (t *LoginTracker) RecordLogin(ctx context.Context, username string, at time.Time) error {
	if err := t.client.Set(ctx, t.key(username), at.UTC().Unix(), lastLoginTTL).Err(); err != nil {
		return fmt.Errorf("record login: %w", err)
	}
	return nil
}

// LastLogin returns the zero time when nothing has been recorded.
func (t *LoginTracker) LastLogin(ctx context.Context, username string) (time.Time, error) {
	ts, err := t.client.Get(ctx, t.key(username)).Int64()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("last login: %w", err)
	}
	return time.Unix(ts, 0).UTC(), nil
}

func (t *LoginTracker) key(username string) string {
	return "last_login:" + username
}
