package api

import (
	"net/http"

	"github.com/jeylanithiam/ResumeMash/internal/api/middleware"
	"github.com/jeylanithiam/ResumeMash/internal/storage/redis"

	"go.uber.org/zap"
)

func NewRouter(a *API, cache *redis.Cache, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check (for load balancers, k8s, etc.)
	mux.HandleFunc("/health", a.HealthHandler)

	// Job fields + labeling progress
	mux.HandleFunc("/api/fields", a.FieldsHandler)

	// Resume ingestion + candidate feedback
	mux.HandleFunc("/api/resumes", a.CreateResumeHandler)
	mux.HandleFunc("/api/feedback", a.FeedbackHandler)

	// Recruiter swipe flow
	mux.HandleFunc("/api/swipe/session", a.StartSessionHandler)
	mux.HandleFunc("/api/swipe/next", a.NextHandler)
	mux.HandleFunc("/api/swipe", a.SwipeHandler)
	mux.HandleFunc("/api/swipe/reset", a.ResetHandler)

	var handler http.Handler = mux
	handler = middleware.RateLimit(cache, logger)(handler)
	handler = middleware.RequestLogger(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
