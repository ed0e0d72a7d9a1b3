package engine

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// RecordLabel durably appends a recruiter's label and, when the field's
// cumulative label count lands on a full batch, retrains that field's model
// inline before returning. It reports whether the label was written and
// whether a retrain produced a new bundle. A repeat swipe by the same
// recruiter on the same resume records nothing and never counts toward the
// batch.
func (e *Engine) RecordLabel(ctx context.Context, resumeID string, recruiterID int64, label int) (recorded, retrained bool, err error) {
	resume, err := e.labels.GetResume(ctx, resumeID)
	if err != nil {
		return false, false, fmt.Errorf("record label: %w", err)
	}
	if resume == nil {
		return false, false, ErrResumeNotFound
	}

	recorded, err = e.labels.RecordSwipe(ctx, resumeID, recruiterID, label)
	if err != nil {
		return false, false, fmt.Errorf("record label: %w", err)
	}
	if !recorded {
		return false, false, nil
	}

	return true, e.maybeRetrain(ctx, resume.JobField), nil
}

// maybeRetrain applies the batch policy: retrain exactly when the field's
// cumulative label count is a multiple of the batch size. The count happens
// after the triggering label is durable, so a retrain always sees it. A
// training skip from the diversity guard still consumes the batch; the next
// attempt waits for another full batch. Training failures are logged, not
// propagated: the label itself was recorded either way.
func (e *Engine) maybeRetrain(ctx context.Context, field string) bool {
	lock := e.fieldLock(field)
	lock.Lock()
	defer lock.Unlock()

	total, err := e.labels.CountLabels(ctx, field)
	if err != nil {
		e.logger.Error("failed to count labels for retrain check",
			zap.String("job_field", field),
			zap.Error(err),
		)
		return false
	}

	if total == 0 || total%e.batchSize != 0 {
		return false
	}

	if err := e.trainLocked(ctx, field); err != nil {
		if errors.Is(err, ErrInsufficientDiversity) {
			e.logger.Info("retrain skipped: only one label class present",
				zap.String("job_field", field),
				zap.Int("total_labels", total),
			)
		} else {
			e.logger.Error("retrain failed",
				zap.String("job_field", field),
				zap.Error(err),
			)
		}
		return false
	}

	return true
}
