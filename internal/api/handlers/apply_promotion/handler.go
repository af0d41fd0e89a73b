package apply_promotion

import (
	"net/http"

	"github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers"
	applyPromotion "github.com/m04kA/SMC-CleaningBookingService/internal/usecase/apply_promotion"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	useCase ApplyPromotionUseCase
	logger  Logger
}

func NewHandler(useCase ApplyPromotionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/promotion
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/promotion - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req ApplyPromotionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/promotion - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.useCase.Execute(r.Context(), &applyPromotion.Request{BookingID: bookingID, Code: req.Code})
	if err != nil {
		handlers.RespondFailure(w, h.logger, "POST /bookings/{id}/promotion", err)
		return
	}

	h.logger.Info("POST /bookings/{id}/promotion - Promotion applied: booking_id=%s, discount=%s, total=%s",
		bookingID, booking.Discount, booking.TotalPrice)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
