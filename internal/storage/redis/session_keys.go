package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jeylanithiam/ResumeMash/internal/models"
)

const (
	// DefaultSessionTTL bounds how long a dormant swipe session survives.
	// A recruiter who walks away starts a fresh pass on return.
	DefaultSessionTTL = 30 * time.Minute

	RateLimitWindowTTL = 1 * time.Minute
)

// SessionKey addresses one recruiter's pass over one field. Sessions for
// different fields never share a key, so switching fields leaves the old
// cursor dormant instead of merging them.
func SessionKey(recruiterID int64, field string) string {
	return fmt.Sprintf("swipe:session:%d:%s", recruiterID, field)
}

func RateLimitKey(client string) string {
	return fmt.Sprintf("ratelimit:client:%s", client)
}

// GetSession loads a recruiter's swipe session, or nil if none is active.
func (c *Cache) GetSession(ctx context.Context, recruiterID int64, field string) (*models.SwipeSession, error) {
	var session models.SwipeSession
	err := c.Get(ctx, SessionKey(recruiterID, field), &session)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Cache) SaveSession(ctx context.Context, session *models.SwipeSession) error {
	return c.Set(ctx, SessionKey(session.RecruiterID, session.JobField), session, c.sessionTTL)
}

func (c *Cache) DeleteSession(ctx context.Context, recruiterID int64, field string) error {
	return c.Delete(ctx, SessionKey(recruiterID, field))
}

func (c *Cache) IncrementClientRateLimit(ctx context.Context, client string) (int64, error) {
	return c.IncrementWithExpiry(ctx, RateLimitKey(client), RateLimitWindowTTL)
}
