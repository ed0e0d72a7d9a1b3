// Package engine is the swipe queue + adaptive scoring core: it hands
// recruiters a randomized pass over unseen resumes, records their labels,
// retrains a per-field text classifier every full batch of new labels, and
// scores resume text against the field's current model.
package engine

import (
	"context"
	"sync"

	"github.com/jeylanithiam/ResumeMash/internal/ml"
	"github.com/jeylanithiam/ResumeMash/internal/models"

	"go.uber.org/zap"
)

// LabelStore is the durable store of resumes and swipe labels.
// Implementations must make RecordSwipe durable before returning.
type LabelStore interface {
	GetResume(ctx context.Context, resumeID string) (*models.Resume, error)
	UnlabeledResumeIDs(ctx context.Context, field string, recruiterID int64) ([]string, error)
	RecordSwipe(ctx context.Context, resumeID string, recruiterID int64, label int) (bool, error)
	LabelsForField(ctx context.Context, field string) ([]models.TrainingExample, error)
	CountLabels(ctx context.Context, field string) (int, error)
}

// BundleStore persists serialized model bundles keyed by job field.
// SaveBundle must replace a field's bundle atomically.
type BundleStore interface {
	SaveBundle(ctx context.Context, bundle *models.ModelBundle) error
	GetBundle(ctx context.Context, field string) (*models.ModelBundle, error)
}

// SessionStore holds ephemeral swipe sessions keyed by (recruiter, field).
// GetSession returns nil for a missing or expired session.
type SessionStore interface {
	GetSession(ctx context.Context, recruiterID int64, field string) (*models.SwipeSession, error)
	SaveSession(ctx context.Context, session *models.SwipeSession) error
	DeleteSession(ctx context.Context, recruiterID int64, field string) error
}

type Engine struct {
	labels    LabelStore
	bundles   BundleStore
	sessions  SessionStore
	batchSize int
	logger    *zap.Logger

	// fieldMu serializes the count/train/replace sequence per field so two
	// recruiters crossing the same threshold cannot double-train or leave a
	// mixed-vintage bundle. Distinct fields retrain independently.
	mu      sync.Mutex
	fieldMu map[string]*sync.Mutex

	// modelMu guards the per-field slot of the currently served bundle.
	// The slot is swapped whole on retrain, never mutated in place.
	modelMu sync.RWMutex
	model   map[string]*ml.Bundle
}

func New(
	labels LabelStore,
	bundles BundleStore,
	sessions SessionStore,
	batchSize int,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		labels:    labels,
		bundles:   bundles,
		sessions:  sessions,
		batchSize: batchSize,
		logger:    logger,
		fieldMu:   make(map[string]*sync.Mutex),
		model:     make(map[string]*ml.Bundle),
	}
}

func (e *Engine) fieldLock(field string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	lock, ok := e.fieldMu[field]
	if !ok {
		lock = &sync.Mutex{}
		e.fieldMu[field] = lock
	}
	return lock
}

func (e *Engine) currentBundle(field string) *ml.Bundle {
	e.modelMu.RLock()
	defer e.modelMu.RUnlock()
	return e.model[field]
}

func (e *Engine) swapBundle(field string, bundle *ml.Bundle) {
	e.modelMu.Lock()
	defer e.modelMu.Unlock()
	e.model[field] = bundle
}
