package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/jeylanithiam/ResumeMash/internal/engine"
	"github.com/jeylanithiam/ResumeMash/internal/models"

	"go.uber.org/zap"
)

type sessionRequest struct {
	RecruiterID int64  `json:"recruiter_id"`
	JobField    string `json:"job_field"`
}

// StartSessionHandler begins a fresh randomized pass for a recruiter over
// one field's unseen resumes.
func (a *API) StartSessionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	req, ok := a.decodeSessionRequest(w, r)
	if !ok {
		return
	}

	session, err := a.engine.StartSession(r.Context(), req.RecruiterID, req.JobField)
	if err != nil {
		a.logger.Error("failed to start session", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	a.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"job_field": session.JobField,
		"remaining": session.Remaining(),
	})
}

// NextHandler serves the next resume in the recruiter's pass, or done=true
// once the pass is exhausted. Exhaustion is a normal state, not an error.
func (a *API) NextHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	recruiterID, err := strconv.ParseInt(r.URL.Query().Get("recruiter_id"), 10, 64)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid recruiter_id")
		return
	}
	field := r.URL.Query().Get("job_field")
	if !models.ValidJobField(field) {
		a.writeError(w, http.StatusBadRequest, "unknown job field")
		return
	}

	resumeID, err := a.engine.Next(r.Context(), recruiterID, field)
	if errors.Is(err, engine.ErrQueueExhausted) {
		a.writeJSON(w, http.StatusOK, map[string]interface{}{
			"done":    true,
			"message": "no more resumes to review in this field",
		})
		return
	}
	if err != nil {
		a.logger.Error("failed to get next resume", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resume, err := a.store.GetResume(r.Context(), resumeID)
	if err != nil {
		a.logger.Error("failed to load resume", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if resume == nil {
		// The resume was deleted after the session snapshot; the card is
		// simply gone, the client should ask for the next one.
		a.writeJSON(w, http.StatusOK, map[string]interface{}{
			"done":    false,
			"skipped": true,
		})
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"done":      false,
		"resume_id": resume.ID,
		"job_field": resume.JobField,
		"text":      resume.Text,
	})
}

type swipeRequest struct {
	ResumeID    string `json:"resume_id"`
	RecruiterID int64  `json:"recruiter_id"`
	Label       string `json:"label"`
}

// SwipeHandler records a recruiter's label. When the label completes a batch
// for its field, the retrain runs inline before the response is written.
func (a *API) SwipeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req swipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	label, err := models.ParseLabel(req.Label)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	recorded, retrained, err := a.engine.RecordLabel(r.Context(), req.ResumeID, req.RecruiterID, label)
	if errors.Is(err, engine.ErrResumeNotFound) {
		a.writeError(w, http.StatusNotFound, "resume not found")
		return
	}
	if err != nil {
		a.logger.Error("failed to record swipe", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"recorded":  recorded,
		"retrained": retrained,
	})
}

// ResetHandler starts the recruiter's pass over, rebuilding the permutation
// against their current exclusion set.
func (a *API) ResetHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	req, ok := a.decodeSessionRequest(w, r)
	if !ok {
		return
	}

	session, err := a.engine.Reset(r.Context(), req.RecruiterID, req.JobField)
	if err != nil {
		a.logger.Error("failed to reset session", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"job_field": session.JobField,
		"remaining": session.Remaining(),
	})
}

func (a *API) decodeSessionRequest(w http.ResponseWriter, r *http.Request) (sessionRequest, bool) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if !models.ValidJobField(req.JobField) {
		a.writeError(w, http.StatusBadRequest, "unknown job field")
		return req, false
	}
	return req, true
}
