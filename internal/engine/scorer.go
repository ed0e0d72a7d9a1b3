package engine

import (
	"context"
	"fmt"

	"github.com/jeylanithiam/ResumeMash/internal/ml"
)

// Tier buckets a score into the qualitative feedback shown to candidates.
type Tier int

const (
	TierLow Tier = iota
	TierMiddle
	TierTop
)

// TierFor maps a probability to its feedback tier. Boundaries are closed on
// the lower edge: exactly 0.80 is top, exactly 0.50 is middle.
func TierFor(p float64) Tier {
	switch {
	case p >= 0.80:
		return TierTop
	case p >= 0.50:
		return TierMiddle
	default:
		return TierLow
	}
}

func (t Tier) String() string {
	switch t {
	case TierTop:
		return "top"
	case TierMiddle:
		return "middle"
	default:
		return "low"
	}
}

// Score returns P(mash) for the text under the field's current bundle, or
// ErrNoModel when the field has no trained model yet. Scoring the same text
// against the same bundle always yields the same value.
func (e *Engine) Score(ctx context.Context, text, field string) (float64, error) {
	bundle := e.currentBundle(field)

	if bundle == nil {
		stored, err := e.bundles.GetBundle(ctx, field)
		if err != nil {
			return 0, fmt.Errorf("score: %w", err)
		}
		if stored == nil {
			return 0, ErrNoModel
		}

		bundle, err = ml.Decode(stored.Data)
		if err != nil {
			return 0, fmt.Errorf("score: %w", err)
		}
		e.swapBundle(field, bundle)
	}

	return bundle.Score(text), nil
}
