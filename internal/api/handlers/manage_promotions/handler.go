package manage_promotions

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingCode        = "не указан промокод"
)

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

// HandleCreate POST /api/v1/promotions
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePromotionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /promotions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	promotion, err := h.service.CreatePromotion(r.Context(), &req)
	if err != nil {
		handlers.RespondFailure(w, h.logger, "POST /promotions", err)
		return
	}

	h.logger.Info("POST /promotions - Promotion created: promotion_id=%s, code=%s", promotion.ID, promotion.Code)
	handlers.RespondJSON(w, http.StatusCreated, promotion)
}

// HandleGet GET /api/v1/promotions/{code}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(mux.Vars(r)["code"])
	if code == "" {
		h.logger.Warn("GET /promotions/{code} - Missing code")
		handlers.RespondBadRequest(w, msgMissingCode)
		return
	}

	promotion, err := h.service.GetPromotion(r.Context(), code)
	if err != nil {
		handlers.RespondFailure(w, h.logger, "GET /promotions/{code}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, promotion)
}
