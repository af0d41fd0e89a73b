package create_contractor

import (
	"net/http"

	"github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/contractors/models"
)

const msgInvalidRequestBody = "некорректное тело запроса"

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

// Handle POST /api/v1/contractors
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateContractorRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /contractors - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	contractor, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handlers.RespondFailure(w, h.logger, "POST /contractors", err)
		return
	}

	h.logger.Info("POST /contractors - Contractor created: contractor_id=%s", contractor.ID)
	handlers.RespondJSON(w, http.StatusCreated, contractor)
}
