package set_contractor_status

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

// Handle PATCH /api/v1/contractors/{contractorId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	contractorID, err := handlers.PathUUID(r, "contractorId")
	if err != nil {
		h.logger.Warn("PATCH /contractors/{id}/status - Invalid contractor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidContractorID)
		return
	}

	var req models.StatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /contractors/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	contractor, err := h.service.SetActive(r.Context(), contractorID, &req)
	if err != nil {
		handlers.RespondFailure(w, h.logger, "PATCH /contractors/{id}/status", err)
		return
	}

	h.logger.Info("PATCH /contractors/{id}/status - Status updated: contractor_id=%s, active=%t",
		contractorID, contractor.IsActive)
	handlers.RespondJSON(w, http.StatusOK, contractor)
}
