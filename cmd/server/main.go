// Command server runs the learning assessment and scheduling API.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver

	"github.com/lexago/lexago-api/internal/api"
	"github.com/lexago/lexago-api/internal/config"
	"github.com/lexago/lexago-api/internal/domain/grading"
	"github.com/lexago/lexago-api/internal/domain/srs"
	"github.com/lexago/lexago-api/internal/platform/logger"
	"github.com/lexago/lexago-api/internal/platform/postgres"
	"github.com/lexago/lexago-api/internal/service/assessment"
	"github.com/lexago/lexago-api/internal/service/auth"
	"github.com/lexago/lexago-api/internal/service/progress"
	"github.com/lexago/lexago-api/internal/service/scheduler"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", slog.String("error", err.Error()))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := postgres.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("database ready")

	cardStore := postgres.NewCardStore(db, log)
	responseStore := postgres.NewResponseStore(db, log)
	userStore := postgres.NewUserStore(db, log)
	lexiconStore := postgres.NewLexiconStore(db, log)

	entries, err := lexiconStore.ListEntries(ctx)
	if err != nil {
		return fmt.Errorf("failed to load lexicon: %w", err)
	}
	resolver := grading.NewLexiconResolver(entries)
	log.Info("lexicon loaded", slog.Int("entries", len(entries)))

	srsService := srs.NewServiceWithParams(srs.NewParams(srs.ParamsConfig{
		MinEaseFactor:      cfg.SRS.MinEaseFactor,
		MaxEaseFactor:      cfg.SRS.MaxEaseFactor,
		InitialEaseFactor:  cfg.SRS.InitialEaseFactor,
		FirstIntervalDays:  cfg.SRS.FirstIntervalDays,
		SecondIntervalDays: cfg.SRS.SecondIntervalDays,
		PassThreshold:      cfg.SRS.PassThreshold,
		FailureEasePenalty: cfg.SRS.FailureEasePenalty,
		MatureIntervalDays: cfg.SRS.MatureIntervalDays,
	}))

	grader := grading.NewGrader(grading.NewParams(grading.ParamsConfig{
		FuzzyMatchThreshold:   cfg.Grading.FuzzyMatchThreshold,
		MorphologicalCredit:   cfg.Grading.MorphologicalCredit,
		ClozePassThreshold:    cfg.Grading.ClozePassThreshold,
		MatchingPassThreshold: cfg.Grading.MatchingPassThreshold,
		WritingPassThreshold:  cfg.Grading.WritingPassThreshold,
		WritingDefaultCredit:  cfg.Grading.WritingDefaultCredit,
	}), resolver)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to set up JWT service: %w", err)
	}
	bcryptVerifier := auth.NewBcryptVerifier()

	router := api.NewRouter(api.RouterDeps{
		Users:             userStore,
		JWTService:        jwtService,
		PasswordHasher:    bcryptVerifier,
		PasswordVerifier:  bcryptVerifier,
		SchedulerService:  scheduler.NewSchedulerService(db, cardStore, srsService, log),
		AssessmentService: assessment.NewAssessmentService(db, grader, responseStore, log),
		ProgressService:   progress.NewProgressService(cardStore, responseStore, srsService, log),
		Logger:            log,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", slog.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		log.Info("shutting down", slog.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("server stopped")
	return nil
}
