package engine

import (
	"context"
	"fmt"

	"github.com/jeylanithiam/ResumeMash/internal/ml"
	"github.com/jeylanithiam/ResumeMash/internal/models"

	"go.uber.org/zap"
)

// Train refits the field's model on every label recorded for it and replaces
// the stored bundle as one unit. With fewer than two label classes it
// returns ErrInsufficientDiversity and leaves the existing bundle untouched.
func (e *Engine) Train(ctx context.Context, field string) error {
	lock := e.fieldLock(field)
	lock.Lock()
	defer lock.Unlock()

	return e.trainLocked(ctx, field)
}

func (e *Engine) trainLocked(ctx context.Context, field string) error {
	examples, err := e.labels.LabelsForField(ctx, field)
	if err != nil {
		return fmt.Errorf("train %s: %w", field, err)
	}

	classes := make(map[int]bool)
	for _, ex := range examples {
		classes[ex.Label] = true
	}
	if len(classes) < 2 {
		return ErrInsufficientDiversity
	}

	texts := make([]string, len(examples))
	labels := make([]int, len(examples))
	for i, ex := range examples {
		texts[i] = ex.Text
		labels[i] = ex.Label
	}

	bundle := ml.Train(texts, labels)

	data, err := bundle.Encode()
	if err != nil {
		return fmt.Errorf("train %s: %w", field, err)
	}

	stored := &models.ModelBundle{
		JobField:   field,
		Data:       models.RawJSON(data),
		LabelCount: bundle.LabelCount,
		TrainedAt:  bundle.TrainedAt,
	}
	if err := e.bundles.SaveBundle(ctx, stored); err != nil {
		return fmt.Errorf("train %s: %w", field, err)
	}

	e.swapBundle(field, bundle)

	e.logger.Info("model retrained",
		zap.String("job_field", field),
		zap.Int("label_count", bundle.LabelCount),
		zap.Int("vocabulary_size", bundle.Vectorizer.Dim()),
	)

	return nil
}
