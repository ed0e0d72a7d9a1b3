package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jeylanithiam/ResumeMash/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

// SaveBundle replaces the field's model bundle as a whole. The upsert keeps
// vectorizer and classifier vintage-matched: readers see the old row or the
// new row, never a mix.
func (s *Store) SaveBundle(ctx context.Context, bundle *models.ModelBundle) error {
	// using plain SQL via InsertBySql for ON CONFLICT
	query := `
		INSERT INTO model_bundles (job_field, data, label_count, trained_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (job_field) DO UPDATE SET
			data = EXCLUDED.data,
			label_count = EXCLUDED.label_count,
			trained_at = EXCLUDED.trained_at
	`

	if bundle.TrainedAt.IsZero() {
		bundle.TrainedAt = time.Now()
	}

	_, err := s.sess.
		InsertBySql(query,
			bundle.JobField,
			bundle.Data,
			bundle.LabelCount,
			bundle.TrainedAt,
		).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to save model bundle",
			zap.String("job_field", bundle.JobField),
			zap.Error(err),
		)
		return fmt.Errorf("save model bundle: %w", err)
	}

	s.logger.Info("model bundle saved",
		zap.String("job_field", bundle.JobField),
		zap.Int("label_count", bundle.LabelCount),
	)

	return nil
}

// GetBundle returns the field's current bundle, or nil if none was trained.
func (s *Store) GetBundle(ctx context.Context, field string) (*models.ModelBundle, error) {
	var bundle models.ModelBundle

	err := s.sess.
		Select("*").
		From("model_bundles").
		Where("job_field = ?", field).
		LoadOneContext(ctx, &bundle)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get model bundle",
			zap.String("job_field", field),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get model bundle: %w", err)
	}

	return &bundle, nil
}
