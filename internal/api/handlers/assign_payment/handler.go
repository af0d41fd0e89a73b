package assign_payment

import (
	"net/http"

	"github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers"
	assignPayment "github.com/m04kA/SMC-CleaningBookingService/internal/usecase/assign_payment"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	useCase AssignPaymentUseCase
	logger  Logger
}

func NewHandler(useCase AssignPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/payment
// Для карты в ответе payment.link ведет на страницу оплаты
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/payment - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req AssignPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.useCase.Execute(r.Context(), &assignPayment.Request{BookingID: bookingID, PaymentType: req.PaymentType})
	if err != nil {
		handlers.RespondFailure(w, h.logger, "POST /bookings/{id}/payment", err)
		return
	}

	h.logger.Info("POST /bookings/{id}/payment - Payment assigned: booking_id=%s, type=%s, status=%s",
		bookingID, req.PaymentType, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
