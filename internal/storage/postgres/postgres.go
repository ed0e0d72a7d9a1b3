package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/gocraft/dbr/v2"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type Store struct {
	conn   *dbr.Connection
	sess   *dbr.Session
	logger *zap.Logger
}

func New(dsn string, logger *zap.Logger) (*Store, error) {
	conn, err := dbr.Open("postgres", dsn, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// set up connection pool
	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	// check connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	sess := conn.NewSession(nil)

	logger.Info("successfully connected to PostgreSQL")

	return &Store{
		conn:   conn,
		sess:   sess,
		logger: logger,
	}, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// Migrate creates the schema if it does not exist yet. Swipes are
// append-only; model_bundles holds at most one row per job field and is
// replaced whole on retrain.
func (s *Store) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS resumes (
			id UUID PRIMARY KEY,
			candidate_id BIGINT NOT NULL,
			text TEXT NOT NULL,
			job_field TEXT NOT NULL,
			uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_resumes_job_field ON resumes (job_field)`,
		`CREATE INDEX IF NOT EXISTS idx_resumes_candidate ON resumes (candidate_id, uploaded_at DESC)`,
		`CREATE TABLE IF NOT EXISTS swipes (
			id BIGSERIAL PRIMARY KEY,
			resume_id UUID NOT NULL REFERENCES resumes (id),
			recruiter_id BIGINT NOT NULL,
			label SMALLINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_swipes_resume_recruiter ON swipes (resume_id, recruiter_id)`,
		`CREATE TABLE IF NOT EXISTS model_bundles (
			job_field TEXT PRIMARY KEY,
			data JSONB NOT NULL,
			label_count INTEGER NOT NULL,
			trained_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.sess.ExecContext(ctx, stmt); err != nil {
			s.logger.Error("migration statement failed", zap.Error(err))
			return fmt.Errorf("migrate: %w", err)
		}
	}

	s.logger.Info("database schema ready")
	return nil
}
