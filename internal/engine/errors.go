package engine

import "errors"

var (
	// ErrResumeNotFound means a label referenced a resume that does not
	// exist. Nothing is written; the caller made a mistake.
	ErrResumeNotFound = errors.New("resume not found")

	// ErrDuplicateResume means a candidate already uploaded an identical
	// resume for the same job field.
	ErrDuplicateResume = errors.New("duplicate resume")

	// ErrQueueExhausted is the terminal state of a swipe session: every
	// resume in the pass has been served. Expected, not a failure.
	ErrQueueExhausted = errors.New("swipe queue exhausted")

	// ErrInsufficientDiversity means a field's labels hold fewer than two
	// classes, so training was skipped. The existing bundle, if any, stays.
	ErrInsufficientDiversity = errors.New("insufficient label diversity")

	// ErrNoModel means no bundle has been trained for the field yet.
	// Expected before the first successful retrain.
	ErrNoModel = errors.New("no trained model for field")
)
