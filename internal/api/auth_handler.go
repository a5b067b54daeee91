package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/lexago/lexago-api/internal/api/shared"
	"github.com/lexago/lexago-api/internal/domain"
	"github.com/lexago/lexago-api/internal/service/auth"
	"github.com/lexago/lexago-api/internal/store"
)

// AuthHandler handles user registration and login.
type AuthHandler struct {
	users      store.UserStore
	jwtService auth.JWTService
	hasher     auth.PasswordHasher
	verifier   auth.PasswordVerifier
	validate   *validator.Validate
	logger     *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	users store.UserStore,
	jwtService auth.JWTService,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) *AuthHandler {
	if users == nil {
		panic("users cannot be nil") // ALLOW-PANIC: constructor validation
	}
	if jwtService == nil {
		panic("jwtService cannot be nil") // ALLOW-PANIC: constructor validation
	}
	if hasher == nil {
		panic("hasher cannot be nil") // ALLOW-PANIC: constructor validation
	}
	if verifier == nil {
		panic("verifier cannot be nil") // ALLOW-PANIC: constructor validation
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthHandler{
		users:      users,
		jwtService: jwtService,
		hasher:     hasher,
		verifier:   verifier,
		validate:   validator.New(),
		logger:     logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Email and a 12-72 character password are required")
		return
	}

	user, err := domain.NewUser(req.Email, req.Password)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := h.hasher.Hash(user.Password)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, h.logger, err,
			http.StatusInternalServerError, "An unexpected error occurred")
		return
	}
	user.HashedPassword = hash
	user.Password = ""

	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithError(w, r, http.StatusConflict, "Email address is already registered")
			return
		}
		shared.RespondWithErrorAndLog(w, r, h.logger, err,
			http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, h.logger, err,
			http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	h.logger.InfoContext(r.Context(), "user registered",
		slog.String("user_id", user.ID.String()))
	shared.RespondWithJSON(w, http.StatusCreated, AuthResponse{Token: token, UserID: user.ID})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if store.IsNotFound(err) {
			// Same response as a wrong password, so the endpoint does
			// not reveal which emails are registered.
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		shared.RespondWithErrorAndLog(w, r, h.logger, err,
			http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	if err := h.verifier.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, h.logger, err,
			http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	shared.RespondWithJSON(w, http.StatusOK, AuthResponse{Token: token, UserID: user.ID})
}
