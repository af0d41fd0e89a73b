package create_pricing_rule

import (
	"net/http"

	"github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/catalog/models"
)

const msgInvalidRequestBody = "некорректное тело запроса"

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/pricing-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePricingRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /pricing-rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	rule, err := h.service.CreatePricingRule(r.Context(), &req)
	if err != nil {
		handlers.RespondFailure(w, h.logger, "POST /pricing-rules", err)
		return
	}

	h.logger.Info("POST /pricing-rules - Rule created: rule_id=%s, postcode=%s", rule.ID, rule.Postcode)
	handlers.RespondJSON(w, http.StatusCreated, rule)
}
