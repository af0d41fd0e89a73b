package update_working_hours

import (
	"net/http"

	"github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/contractors/models"
)

const (
	msgInvalidContractorID = "некорректный ID подрядчика"
	msgInvalidRequestBody  = "некорректное тело запроса"
)

type Handler struct {
	service ContractorService
	logger  Logger
}

func NewHandler(service ContractorService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/contractors/{contractorId}/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	contractorID, err := handlers.PathUUID(r, "contractorId")
	if err != nil {
		h.logger.Warn("PUT /contractors/{id}/working-hours - Invalid contractor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidContractorID)
		return
	}

	var req models.WorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /contractors/{id}/working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	contractor, err := h.service.SetWorkingHours(r.Context(), contractorID, &req)
	if err != nil {
		handlers.RespondFailure(w, h.logger, "PUT /contractors/{id}/working-hours", err)
		return
	}

	h.logger.Info("PUT /contractors/{id}/working-hours - Working hours updated: contractor_id=%s, weekday=%s",
		contractorID, req.Weekday)
	handlers.RespondJSON(w, http.StatusOK, contractor)
}
