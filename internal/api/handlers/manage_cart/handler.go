package manage_cart

import (
	"net/http"

	"github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers"
	manageCart "github.com/m04kA/SMC-CleaningBookingService/internal/usecase/manage_cart"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidQuantity    = "quantity должно быть целым числом"
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	useCase ManageCartUseCase
	logger  Logger
}

func NewHandler(useCase ManageCartUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleAdd POST /api/v1/bookings/{bookingId}/items
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/items - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req AddItemRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/items - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/items - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	booking, err := h.useCase.AddItem(r.Context(), useCaseReq)
	if err != nil {
		handlers.RespondFailure(w, h.logger, "POST /bookings/{id}/items", err)
		return
	}

	h.logger.Info("POST /bookings/{id}/items - Item added: booking_id=%s, service_id=%s, quantity=%d, total=%s",
		bookingID, useCaseReq.ServiceID, useCaseReq.Quantity, booking.TotalPrice)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

// HandleRemove DELETE /api/v1/bookings/{bookingId}/items/{serviceId}?quantity=N
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("DELETE /bookings/{id}/items/{serviceId} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	serviceID, err := handlers.PathUUID(r, "serviceId")
	if err != nil {
		h.logger.Warn("DELETE /bookings/{id}/items/{serviceId} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	quantity, err := parseQuantity(r.URL.Query().Get("quantity"))
	if err != nil {
		h.logger.Warn("DELETE /bookings/{id}/items/{serviceId} - Invalid quantity: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuantity)
		return
	}

	booking, err := h.useCase.RemoveItem(r.Context(), &manageCart.RemoveItemRequest{
		BookingID: bookingID,
		ServiceID: serviceID,
		Quantity:  quantity,
	})
	if err != nil {
		handlers.RespondFailure(w, h.logger, "DELETE /bookings/{id}/items/{serviceId}", err)
		return
	}

	h.logger.Info("DELETE /bookings/{id}/items/{serviceId} - Item removed: booking_id=%s, service_id=%s, quantity=%d, total=%s",
		bookingID, serviceID, quantity, booking.TotalPrice)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
