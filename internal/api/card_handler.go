package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lexago/lexago-api/internal/api/shared"
	"github.com/lexago/lexago-api/internal/domain/srs"
	"github.com/lexago/lexago-api/internal/service/scheduler"
)

// defaultDueLimit caps GET /cards/due when the client sends no limit.
const defaultDueLimit = 20

// CardHandler handles the spaced-repetition card endpoints.
type CardHandler struct {
	scheduler scheduler.SchedulerService
	logger    *slog.Logger
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(schedulerService scheduler.SchedulerService, logger *slog.Logger) *CardHandler {
	if schedulerService == nil {
		panic("schedulerService cannot be nil") // ALLOW-PANIC: constructor validation
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CardHandler{
		scheduler: schedulerService,
		logger:    logger.With(slog.String("component", "card_handler")),
	}
}

// Create handles POST /cards.
func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	var req CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.ItemID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "item_id is required")
		return
	}

	card, err := h.scheduler.CreateCard(r.Context(), ownerID, req.ItemID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, http.StatusCreated, card)
}

// Due handles GET /cards/due.
func (h *CardHandler) Due(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	limit := defaultDueLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	cards, err := h.scheduler.DueCards(r.Context(), ownerID, limit)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, http.StatusOK, cards)
}

// Review handles POST /cards/{id}/review.
func (h *CardHandler) Review(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	cardID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID")
		return
	}

	var req SubmitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := h.scheduler.SubmitReview(r.Context(), ownerID, cardID, req.Quality)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, http.StatusOK, reviewResponse(result))
}

// Deactivate handles DELETE /cards/{id}.
func (h *CardHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	cardID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID")
		return
	}

	if err := h.scheduler.DeactivateCard(r.Context(), ownerID, cardID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, http.StatusNoContent, nil)
}

func (h *CardHandler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	if status == http.StatusInternalServerError {
		shared.RespondWithErrorAndLog(w, r, h.logger, err, status, GetSafeErrorMessage(err))
		return
	}
	shared.RespondWithError(w, r, status, GetSafeErrorMessage(err))
}

func reviewResponse(result *srs.ReviewResult) ReviewResponse {
	return ReviewResponse{
		Card:             result.Card,
		PrevIntervalDays: result.PrevIntervalDays,
		PrevEaseFactor:   result.PrevEaseFactor,
		IntervalDays:     result.IntervalDays,
		EaseFactor:       result.EaseFactor,
	}
}

// authenticatedUserID pulls the user ID set by the auth middleware. A missing
// ID means the route was wired without the middleware; treat it as 401.
func authenticatedUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid or missing token")
		return uuid.Nil, false
	}
	return userID, true
}
