package get_contractor

import (
	"net/http"

	"github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers"
)

const msgInvalidContractorID = "некорректный ID подрядчика"

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

// Handle GET /api/v1/contractors/{contractorId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	contractorID, err := handlers.PathUUID(r, "contractorId")
	if err != nil {
		h.logger.Warn("GET /contractors/{id} - Invalid contractor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidContractorID)
		return
	}

	contractor, err := h.service.GetByID(r.Context(), contractorID)
	if err != nil {
		handlers.RespondFailure(w, h.logger, "GET /contractors/{id}", err)
		return
	}

	h.logger.Info("GET /contractors/{id} - Contractor retrieved: contractor_id=%s", contractorID)
	handlers.RespondJSON(w, http.StatusOK, contractor)
}
