package engine

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jeylanithiam/ResumeMash/internal/models"

	"go.uber.org/zap"
)

// StartSession snapshots the resumes in the field this recruiter has not yet
// labeled, shuffles them, and stores the session with the cursor at zero.
// The shuffle is unseeded on purpose: passes are not reproducible, so a
// recruiter cannot game a fixed order. Resumes uploaded after the snapshot
// join the next pass, not this one.
func (e *Engine) StartSession(ctx context.Context, recruiterID int64, field string) (*models.SwipeSession, error) {
	ids, err := e.labels.UnlabeledResumeIDs(ctx, field, recruiterID)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	order := make([]string, len(ids))
	copy(order, ids)
	rand.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	session := &models.SwipeSession{
		RecruiterID: recruiterID,
		JobField:    field,
		Order:       order,
		Cursor:      0,
		StartedAt:   time.Now(),
	}

	if err := e.sessions.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	e.logger.Info("swipe session started",
		zap.Int64("recruiter_id", recruiterID),
		zap.String("job_field", field),
		zap.Int("queue_size", len(order)),
	)

	return session, nil
}

// Next serves the resume id at the cursor and advances it. A missing or
// expired session starts a fresh one. At the end of the pass it returns
// ErrQueueExhausted, does not advance further, and keeps returning
// ErrQueueExhausted on repeat calls.
func (e *Engine) Next(ctx context.Context, recruiterID int64, field string) (string, error) {
	session, err := e.sessions.GetSession(ctx, recruiterID, field)
	if err != nil {
		return "", fmt.Errorf("next resume: %w", err)
	}

	if session == nil {
		session, err = e.StartSession(ctx, recruiterID, field)
		if err != nil {
			return "", err
		}
	}

	if session.Cursor >= len(session.Order) {
		return "", ErrQueueExhausted
	}

	resumeID := session.Order[session.Cursor]
	session.Cursor++

	if err := e.sessions.SaveSession(ctx, session); err != nil {
		return "", fmt.Errorf("next resume: %w", err)
	}

	return resumeID, nil
}

// Reset recomputes the permutation against the recruiter's current exclusion
// set and zeroes the cursor. Resumes labeled by other recruiters in the
// meantime still appear: exclusion is scoped to the requesting recruiter.
func (e *Engine) Reset(ctx context.Context, recruiterID int64, field string) (*models.SwipeSession, error) {
	return e.StartSession(ctx, recruiterID, field)
}
