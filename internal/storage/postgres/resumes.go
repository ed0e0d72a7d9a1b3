package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jeylanithiam/ResumeMash/internal/engine"
	"github.com/jeylanithiam/ResumeMash/internal/models"

	"github.com/gocraft/dbr/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateResume inserts a new resume with pre-extracted text. An identical
// upload (same candidate, text and field) is rejected with
// engine.ErrDuplicateResume so candidates are nudged toward uploading an
// updated version instead.
func (s *Store) CreateResume(ctx context.Context, resume *models.Resume) error {
	var existingID string
	err := s.sess.
		Select("id").
		From("resumes").
		Where("candidate_id = ? AND text = ? AND job_field = ?",
			resume.CandidateID, resume.Text, resume.JobField).
		LoadOneContext(ctx, &existingID)

	if err == nil {
		return engine.ErrDuplicateResume
	}
	if err != dbr.ErrNotFound {
		s.logger.Error("failed to check for duplicate resume",
			zap.Int64("candidate_id", resume.CandidateID),
			zap.Error(err),
		)
		return fmt.Errorf("check duplicate resume: %w", err)
	}

	if resume.ID == "" {
		resume.ID = uuid.NewString()
	}
	if resume.UploadedAt.IsZero() {
		resume.UploadedAt = time.Now()
	}

	_, err = s.sess.
		InsertInto("resumes").
		Columns("id", "candidate_id", "text", "job_field", "uploaded_at").
		Values(resume.ID, resume.CandidateID, resume.Text, resume.JobField, resume.UploadedAt).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to create resume",
			zap.Int64("candidate_id", resume.CandidateID),
			zap.String("job_field", resume.JobField),
			zap.Error(err),
		)
		return fmt.Errorf("create resume: %w", err)
	}

	s.logger.Info("resume created",
		zap.String("resume_id", resume.ID),
		zap.Int64("candidate_id", resume.CandidateID),
		zap.String("job_field", resume.JobField),
	)

	return nil
}

func (s *Store) GetResume(ctx context.Context, resumeID string) (*models.Resume, error) {
	var resume models.Resume

	err := s.sess.
		Select("*").
		From("resumes").
		Where("id = ?", resumeID).
		LoadOneContext(ctx, &resume)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get resume",
			zap.String("resume_id", resumeID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get resume: %w", err)
	}

	return &resume, nil
}

// LatestResumeForCandidate returns the candidate's most recent upload, or
// nil if they have none.
func (s *Store) LatestResumeForCandidate(ctx context.Context, candidateID int64) (*models.Resume, error) {
	var resume models.Resume

	err := s.sess.
		Select("*").
		From("resumes").
		Where("candidate_id = ?", candidateID).
		OrderDesc("uploaded_at").
		OrderDesc("id").
		Limit(1).
		LoadOneContext(ctx, &resume)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get latest resume",
			zap.Int64("candidate_id", candidateID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get latest resume: %w", err)
	}

	return &resume, nil
}

// UnlabeledResumeIDs returns ids of resumes in the field that the given
// recruiter has not swiped yet. Labels from other recruiters do not exclude
// a resume, so several recruiters can cover a field independently.
func (s *Store) UnlabeledResumeIDs(ctx context.Context, field string, recruiterID int64) ([]string, error) {
	query := `
		SELECT id FROM resumes
		WHERE job_field = ?
		AND id NOT IN (
			SELECT resume_id FROM swipes WHERE recruiter_id = ?
		)
	`

	var ids []string
	_, err := s.sess.
		SelectBySql(query, field, recruiterID).
		LoadContext(ctx, &ids)

	if err != nil {
		s.logger.Error("failed to get unlabeled resumes",
			zap.String("job_field", field),
			zap.Int64("recruiter_id", recruiterID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get unlabeled resumes: %w", err)
	}

	return ids, nil
}
