package get_available_slots

import (
	"net/http"

	"github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers"
)

const (
	msgMissingParams = "параметры postcode, date и durationMinutes обязательны"
	msgInvalidParams = "некорректные параметры: date ожидается YYYY-MM-DD, durationMinutes целое число"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-slots
// Query params: postcode, date (YYYY-MM-DD), durationMinutes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	postcode, dateStr, durationStr := query.Get("postcode"), query.Get("date"), query.Get("durationMinutes")

	if postcode == "" || dateStr == "" || durationStr == "" {
		h.logger.Warn("GET /available-slots - Missing query params")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	useCaseReq, err := ToUseCaseRequest(postcode, dateStr, durationStr)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		handlers.RespondFailure(w, h.logger, "GET /available-slots", err)
		return
	}

	h.logger.Info("GET /available-slots - Slots retrieved successfully: postcode=%s, date=%s, slots_count=%d",
		postcode, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
