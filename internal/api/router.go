package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/lexago/lexago-api/internal/api/middleware"
	"github.com/lexago/lexago-api/internal/api/shared"
	"github.com/lexago/lexago-api/internal/service/assessment"
	"github.com/lexago/lexago-api/internal/service/auth"
	"github.com/lexago/lexago-api/internal/service/progress"
	"github.com/lexago/lexago-api/internal/service/scheduler"
	"github.com/lexago/lexago-api/internal/store"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Users             store.UserStore
	JWTService        auth.JWTService
	PasswordHasher    auth.PasswordHasher
	PasswordVerifier  auth.PasswordVerifier
	SchedulerService  scheduler.SchedulerService
	AssessmentService assessment.AssessmentService
	ProgressService   progress.ProgressService
	Logger            *slog.Logger
}

// NewRouter builds the HTTP router with all routes and middleware.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.TraceID)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	authHandler := NewAuthHandler(
		deps.Users, deps.JWTService, deps.PasswordHasher, deps.PasswordVerifier, deps.Logger)
	cardHandler := NewCardHandler(deps.SchedulerService, deps.Logger)
	gradeHandler := NewGradeHandler(deps.AssessmentService, deps.SchedulerService, deps.Logger)
	progressHandler := NewProgressHandler(deps.ProgressService, deps.Logger)

	authMiddleware := middleware.NewAuthMiddleware(deps.JWTService, deps.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Route("/cards", func(r chi.Router) {
			r.Post("/", cardHandler.Create)
			r.Get("/due", cardHandler.Due)
			r.Post("/{id}/review", cardHandler.Review)
			r.Delete("/{id}", cardHandler.Deactivate)
		})

		r.Post("/grade", gradeHandler.Grade)
		r.Get("/progress", progressHandler.Summary)
	})

	return r
}
