package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/lexago/lexago-api/internal/api/shared"
	"github.com/lexago/lexago-api/internal/service/assessment"
	"github.com/lexago/lexago-api/internal/service/scheduler"
)

// GradeHandler handles submission grading. It can optionally chain the graded
// outcome into the scheduler when the request names a card.
type GradeHandler struct {
	assessment assessment.AssessmentService
	scheduler  scheduler.SchedulerService
	validate   *validator.Validate
	logger     *slog.Logger
}

// NewGradeHandler creates a new GradeHandler.
func NewGradeHandler(
	assessmentService assessment.AssessmentService,
	schedulerService scheduler.SchedulerService,
	logger *slog.Logger,
) *GradeHandler {
	if assessmentService == nil {
		panic("assessmentService cannot be nil") // ALLOW-PANIC: constructor validation
	}
	if schedulerService == nil {
		panic("schedulerService cannot be nil") // ALLOW-PANIC: constructor validation
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &GradeHandler{
		assessment: assessmentService,
		scheduler:  schedulerService,
		validate:   validator.New(),
		logger:     logger.With(slog.String("component", "grade_handler")),
	}
}

// Grade handles POST /grade.
func (h *GradeHandler) Grade(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	var req GradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "attempt_id and question are required")
		return
	}
	if err := req.Question.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	response, err := h.assessment.GradeSubmission(
		r.Context(), ownerID, req.AttemptID, req.Question, req.Answer, req.TimeTaken())
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, h.logger, err, status, GetSafeErrorMessage(err))
		return
	}

	result := response.GradeResult()
	quality := assessment.QualityForResult(result)

	out := GradeResponse{
		ResponseID: response.ID,
		Result:     result,
		Quality:    quality,
	}

	if req.CardID != nil {
		review, err := h.scheduler.SubmitReview(r.Context(), ownerID, *req.CardID, quality)
		if err != nil {
			// The response is already recorded; report the scheduling
			// failure rather than pretend the review happened.
			status := MapErrorToStatusCode(err)
			shared.RespondWithErrorAndLog(w, r, h.logger, err, status, GetSafeErrorMessage(err))
			return
		}
		rr := reviewResponse(review)
		out.Review = &rr
	}

	shared.RespondWithJSON(w, http.StatusOK, out)
}
