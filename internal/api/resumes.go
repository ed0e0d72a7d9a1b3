package api

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/jeylanithiam/ResumeMash/internal/engine"
	"github.com/jeylanithiam/ResumeMash/internal/models"

	"go.uber.org/zap"
)

type createResumeRequest struct {
	CandidateID int64  `json:"candidate_id"`
	Text        string `json:"text"`
	JobField    string `json:"job_field"`
}

// CreateResumeHandler accepts a resume with pre-extracted text. The caller
// (upload or bulk import boundary) is trusted to have done the extraction;
// only the job field is checked against the known list.
func (a *API) CreateResumeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req createResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Text == "" {
		a.writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	if !models.ValidJobField(req.JobField) {
		a.writeError(w, http.StatusBadRequest, "unknown job field")
		return
	}

	resume := &models.Resume{
		CandidateID: req.CandidateID,
		Text:        req.Text,
		JobField:    req.JobField,
	}

	err := a.store.CreateResume(r.Context(), resume)
	if errors.Is(err, engine.ErrDuplicateResume) {
		a.writeError(w, http.StatusConflict,
			"you already uploaded this resume for this job field; try an updated version instead")
		return
	}
	if err != nil {
		a.logger.Error("failed to create resume", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	a.writeJSON(w, http.StatusCreated, map[string]string{"id": resume.ID})
}

var tierMessages = map[engine.Tier]string{
	engine.TierTop: "Your resume currently scores very well. Recruiters whose swipes " +
		"trained this model tend to like resumes like yours.",
	engine.TierMiddle: "Your resume is in a solid range, but there's room to improve. " +
		"Tighten bullets, quantify impact, and make sure your strongest " +
		"experiences and skills are front and center.",
	engine.TierLow: "Right now, the model predicts your resume might not perform as well " +
		"with recruiters. Focus on clearer structure, stronger action verbs, " +
		"and concrete numbers that show what you actually achieved.",
}

const noModelMessage = "Our AI doesn't have enough recruiter swipe data yet to give " +
	"reliable feedback. Ask recruiters to swipe more resumes, then try again."

// FeedbackHandler scores the candidate's latest resume against their field's
// current model. A field with no trained model is a normal state and answers
// with available=false, not an error.
func (a *API) FeedbackHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	candidateID, err := strconv.ParseInt(r.URL.Query().Get("candidate_id"), 10, 64)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid candidate_id")
		return
	}

	resume, err := a.store.LatestResumeForCandidate(r.Context(), candidateID)
	if err != nil {
		a.logger.Error("failed to load latest resume", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if resume == nil {
		a.writeError(w, http.StatusNotFound, "upload a resume first to get feedback")
		return
	}

	score, err := a.engine.Score(r.Context(), resume.Text, resume.JobField)
	if errors.Is(err, engine.ErrNoModel) {
		a.writeJSON(w, http.StatusOK, map[string]interface{}{
			"available": false,
			"resume_id": resume.ID,
			"job_field": resume.JobField,
			"message":   noModelMessage,
		})
		return
	}
	if err != nil {
		a.logger.Error("failed to score resume", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	tier := engine.TierFor(score)
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"available": true,
		"resume_id": resume.ID,
		"job_field": resume.JobField,
		"score_pct": int(math.Round(score * 100)),
		"tier":      tier.String(),
		"message":   tierMessages[tier],
	})
}
