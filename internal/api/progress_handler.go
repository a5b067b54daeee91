package api

import (
	"log/slog"
	"net/http"

	"github.com/lexago/lexago-api/internal/api/shared"
	"github.com/lexago/lexago-api/internal/service/progress"
)

// ProgressHandler serves learner progress summaries.
type ProgressHandler struct {
	progress progress.ProgressService
	logger   *slog.Logger
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService progress.ProgressService, logger *slog.Logger) *ProgressHandler {
	if progressService == nil {
		panic("progressService cannot be nil") // ALLOW-PANIC: constructor validation
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ProgressHandler{
		progress: progressService,
		logger:   logger.With(slog.String("component", "progress_handler")),
	}
}

// Summary handles GET /progress.
func (h *ProgressHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	summary, err := h.progress.Summary(r.Context(), ownerID)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, h.logger, err, status, GetSafeErrorMessage(err))
		return
	}

	shared.RespondWithJSON(w, http.StatusOK, summary)
}
