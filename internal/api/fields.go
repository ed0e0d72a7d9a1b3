package api

import (
	"net/http"

	"github.com/jeylanithiam/ResumeMash/internal/models"

	"go.uber.org/zap"
)

type fieldStats struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	TotalLabels      int    `json:"total_labels"`
	ModelAvailable   bool   `json:"model_available"`
	ModelLabelCount  int    `json:"model_label_count,omitempty"`
	LabelsSinceTrain int    `json:"labels_since_train,omitempty"`
}

// FieldsHandler lists every job field with its labeling progress: how many
// labels exist, whether a model has been trained, and how much new evidence
// has accumulated since.
func (a *API) FieldsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	stats := make([]fieldStats, 0, len(models.JobFields))
	for _, f := range models.JobFields {
		total, err := a.store.CountLabels(r.Context(), f.ID)
		if err != nil {
			a.logger.Error("failed to count labels", zap.String("job_field", f.ID), zap.Error(err))
			a.writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		entry := fieldStats{
			ID:          f.ID,
			Name:        f.Name,
			TotalLabels: total,
		}

		bundle, err := a.store.GetBundle(r.Context(), f.ID)
		if err != nil {
			a.logger.Error("failed to load bundle", zap.String("job_field", f.ID), zap.Error(err))
			a.writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if bundle != nil {
			entry.ModelAvailable = true
			entry.ModelLabelCount = bundle.LabelCount

			since, err := a.store.CountLabelsSince(r.Context(), f.ID, bundle.TrainedAt)
			if err != nil {
				a.logger.Error("failed to count labels since training", zap.String("job_field", f.ID), zap.Error(err))
				a.writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			entry.LabelsSinceTrain = since
		}

		stats = append(stats, entry)
	}

	a.writeJSON(w, http.StatusOK, map[string]interface{}{"fields": stats})
}
