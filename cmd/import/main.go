// Command import bulk-loads already-extracted resume text files.
// It expects a directory laid out as <dir>/<job_field>/<name>.txt and
// inserts each file as one resume owned by the given candidate id.
// Duplicates (same candidate, text and field) are skipped.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeylanithiam/ResumeMash/internal/config"
	"github.com/jeylanithiam/ResumeMash/internal/engine"
	"github.com/jeylanithiam/ResumeMash/internal/logger"
	"github.com/jeylanithiam/ResumeMash/internal/models"
	"github.com/jeylanithiam/ResumeMash/internal/storage/postgres"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	dir := flag.String("dir", "", "directory of <job_field>/<name>.txt resume files")
	candidateID := flag.Int64("candidate", 0, "candidate id that will own the imported resumes")
	flag.Parse()

	if *dir == "" || *candidateID == 0 {
		fmt.Fprintln(os.Stderr, "usage: import -dir <path> -candidate <id>")
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	store, err := postgres.New(cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := store.Migrate(ctx); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	var imported, skipped int

	for _, field := range models.JobFields {
		fieldDir := filepath.Join(*dir, field.ID)
		entries, err := os.ReadDir(fieldDir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			log.Fatal("failed to read field directory",
				zap.String("dir", fieldDir),
				zap.Error(err),
			)
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
				continue
			}

			path := filepath.Join(fieldDir, entry.Name())
			data, err := os.ReadFile(path)
			if err != nil {
				log.Fatal("failed to read resume file",
					zap.String("path", path),
					zap.Error(err),
				)
			}

			text := strings.TrimSpace(string(data))
			if text == "" {
				log.Warn("skipping empty resume file", zap.String("path", path))
				skipped++
				continue
			}

			resume := &models.Resume{
				CandidateID: *candidateID,
				Text:        text,
				JobField:    field.ID,
			}

			err = store.CreateResume(ctx, resume)
			if errors.Is(err, engine.ErrDuplicateResume) {
				log.Info("skipping duplicate resume", zap.String("path", path))
				skipped++
				continue
			}
			if err != nil {
				log.Fatal("failed to import resume",
					zap.String("path", path),
					zap.Error(err),
				)
			}

			imported++
		}
	}

	log.Info("import finished",
		zap.Int("imported", imported),
		zap.Int("skipped", skipped),
	)
}
