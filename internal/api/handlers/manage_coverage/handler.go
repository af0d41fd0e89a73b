package manage_coverage

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/contractors/models"
)

const (
	msgInvalidContractorID = "некорректный ID подрядчика"
	msgInvalidRequestBody  = "некорректное тело запроса"
)

type operation func(ctx context.Context, id uuid.UUID, req *models.CoverageRequest) (*models.ContractorResponse, error)

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

// HandleAdd POST /api/v1/contractors/{contractorId}/coverage
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "POST /contractors/{id}/coverage", h.service.AddCoverage)
}

// HandleRemove DELETE /api/v1/contractors/{contractorId}/coverage
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "DELETE /contractors/{id}/coverage", h.service.RemoveCoverage)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, route string, op operation) {
	contractorID, err := handlers.PathUUID(r, "contractorId")
	if err != nil {
		h.logger.Warn("%s - Invalid contractor ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidContractorID)
		return
	}

	var req models.CoverageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	contractor, err := op(r.Context(), contractorID, &req)
	if err != nil {
		handlers.RespondFailure(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Done: contractor_id=%s, postcode=%s", route, contractorID, req.Postcode)
	handlers.RespondJSON(w, http.StatusOK, contractor)
}
