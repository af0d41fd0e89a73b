package confirm_booking

import (
	"net/http"

	"github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers"
	confirmBooking "github.com/m04kA/SMC-CleaningBookingService/internal/usecase/confirm_booking"
)

const msgInvalidBookingID = "некорректный ID бронирования"

type Handler struct {
	useCase ConfirmBookingUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/confirm - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.useCase.Execute(r.Context(), &confirmBooking.Request{BookingID: bookingID})
	if err != nil {
		handlers.RespondFailure(w, h.logger, "POST /bookings/{id}/confirm", err)
		return
	}

	h.logger.Info("POST /bookings/{id}/confirm - Booking confirmed: booking_id=%s, total=%s", bookingID, booking.TotalPrice)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
