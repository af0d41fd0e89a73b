package manage_unavailability

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

type operation func(ctx context.Context, id uuid.UUID, req *models.UnavailabilityRequest) (*models.ContractorResponse, error)

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

// HandleAdd POST /api/v1/contractors/{contractorId}/unavailability
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "POST /contractors/{id}/unavailability", h.service.AddUnavailable)
}

// HandleRemove DELETE /api/v1/contractors/{contractorId}/unavailability
// Интервал передается в теле и должен совпадать точно
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "DELETE /contractors/{id}/unavailability", h.service.RemoveUnavailable)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, route string, op operation) {
	contractorID, err := handlers.PathUUID(r, "contractorId")
	if err != nil {
		h.logger.Warn("%s - Invalid contractor ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidContractorID)
		return
	}

	var req models.UnavailabilityRequest
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

	h.logger.Info("%s - Done: contractor_id=%s, unavailable_count=%d", route, contractorID, len(contractor.Unavailable))
	handlers.RespondJSON(w, http.StatusOK, contractor)
}
