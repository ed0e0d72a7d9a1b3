package api

import (
	"net/http"

	"github.com/jeylanithiam/ResumeMash/internal/engine"
	"github.com/jeylanithiam/ResumeMash/internal/storage/postgres"
	"github.com/jeylanithiam/ResumeMash/internal/storage/redis"

	"go.uber.org/zap"
)

type API struct {
	engine *engine.Engine
	store  *postgres.Store
	cache  *redis.Cache
	logger *zap.Logger
}

func New(eng *engine.Engine, store *postgres.Store, cache *redis.Cache, logger *zap.Logger) *API {
	return &API{
		engine: eng,
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// HealthHandler reports liveness of the server and both backing stores.
func (a *API) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.store.Ping(r.Context()); err != nil {
		a.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "postgres unreachable"})
		return
	}
	if err := a.cache.Ping(r.Context()); err != nil {
		a.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "redis unreachable"})
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
