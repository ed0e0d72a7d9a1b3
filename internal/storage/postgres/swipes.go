package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jeylanithiam/ResumeMash/internal/engine"
	"github.com/jeylanithiam/ResumeMash/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

// RecordSwipe appends one immutable swipe row. It reports false without
// writing when this recruiter already swiped this resume, and
// engine.ErrResumeNotFound when the resume does not exist. A successful
// return means the row is durable.
func (s *Store) RecordSwipe(ctx context.Context, resumeID string, recruiterID int64, label int) (bool, error) {
	var id string
	err := s.sess.
		Select("id").
		From("resumes").
		Where("id = ?", resumeID).
		LoadOneContext(ctx, &id)

	if err == dbr.ErrNotFound {
		return false, engine.ErrResumeNotFound
	}
	if err != nil {
		s.logger.Error("failed to look up resume for swipe",
			zap.String("resume_id", resumeID),
			zap.Error(err),
		)
		return false, fmt.Errorf("look up resume: %w", err)
	}

	// The unique index on (resume_id, recruiter_id) is the real duplicate
	// guard; ON CONFLICT DO NOTHING keeps a repeat swipe from failing.
	query := `
		INSERT INTO swipes (resume_id, recruiter_id, label, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (resume_id, recruiter_id) DO NOTHING
	`

	result, err := s.sess.
		InsertBySql(query, resumeID, recruiterID, label).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to record swipe",
			zap.String("resume_id", resumeID),
			zap.Int64("recruiter_id", recruiterID),
			zap.Error(err),
		)
		return false, fmt.Errorf("record swipe: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("record swipe rows affected: %w", err)
	}

	if rows == 0 {
		s.logger.Debug("duplicate swipe skipped",
			zap.String("resume_id", resumeID),
			zap.Int64("recruiter_id", recruiterID),
		)
		return false, nil
	}

	s.logger.Info("swipe recorded",
		zap.String("resume_id", resumeID),
		zap.Int64("recruiter_id", recruiterID),
		zap.String("label", models.LabelName(label)),
	)

	return true, nil
}

// LabelsForField returns every swipe in the field joined to its resume text,
// in no guaranteed order.
func (s *Store) LabelsForField(ctx context.Context, field string) ([]models.TrainingExample, error) {
	query := `
		SELECT resumes.text AS text, swipes.label AS label
		FROM swipes
		JOIN resumes ON swipes.resume_id = resumes.id
		WHERE resumes.job_field = ?
	`

	var examples []models.TrainingExample
	_, err := s.sess.
		SelectBySql(query, field).
		LoadContext(ctx, &examples)

	if err != nil {
		s.logger.Error("failed to get labels for field",
			zap.String("job_field", field),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get labels for field: %w", err)
	}

	return examples, nil
}

// CountLabels returns the cumulative number of swipes in the field.
func (s *Store) CountLabels(ctx context.Context, field string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM swipes
		JOIN resumes ON swipes.resume_id = resumes.id
		WHERE resumes.job_field = ?
	`

	var count int
	err := s.sess.
		SelectBySql(query, field).
		LoadOneContext(ctx, &count)

	if err != nil {
		s.logger.Error("failed to count labels",
			zap.String("job_field", field),
			zap.Error(err),
		)
		return 0, fmt.Errorf("count labels: %w", err)
	}

	return count, nil
}

// CountLabelsSince returns how many swipes in the field were recorded after
// the marker, e.g. since the field's model was last trained.
func (s *Store) CountLabelsSince(ctx context.Context, field string, marker time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM swipes
		JOIN resumes ON swipes.resume_id = resumes.id
		WHERE resumes.job_field = ? AND swipes.created_at > ?
	`

	var count int
	err := s.sess.
		SelectBySql(query, field, marker).
		LoadOneContext(ctx, &count)

	if err != nil {
		s.logger.Error("failed to count labels since marker",
			zap.String("job_field", field),
			zap.Time("marker", marker),
			zap.Error(err),
		)
		return 0, fmt.Errorf("count labels since: %w", err)
	}

	return count, nil
}
