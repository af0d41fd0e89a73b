package assign_slot

import (
	"net/http"

	"github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/bookings/models"
	assignSlot "github.com/m04kA/SMC-CleaningBookingService/internal/usecase/assign_slot"
)

const (
	msgInvalidBookingID    = "некорректный ID бронирования"
	msgInvalidContractorID = "некорректный ID подрядчика"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgIncompleteSlot      = "start и end передаются вместе"
)

type Handler struct {
	useCase AssignSlotUseCase
	logger  Logger
}

func NewHandler(useCase AssignSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}/slot
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PUT /bookings/{id}/slot - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req AssignSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id}/slot - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	contractorID, err := req.contractorID()
	if err != nil {
		h.logger.Warn("PUT /bookings/{id}/slot - Invalid contractor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidContractorID)
		return
	}

	var booking *models.BookingResponse
	switch {
	case !req.HasSlot():
		booking, err = h.useCase.SelectContractor(r.Context(), &assignSlot.SelectContractorRequest{
			BookingID:    bookingID,
			ContractorID: contractorID,
		})
	case req.Start == nil || req.End == nil:
		h.logger.Warn("PUT /bookings/{id}/slot - Incomplete slot: booking_id=%s", bookingID)
		handlers.RespondBadRequest(w, msgIncompleteSlot)
		return
	default:
		booking, err = h.useCase.Execute(r.Context(), &assignSlot.Request{
			BookingID:    bookingID,
			ContractorID: contractorID,
			Start:        *req.Start,
			End:          *req.End,
		})
	}
	if err != nil {
		handlers.RespondFailure(w, h.logger, "PUT /bookings/{id}/slot", err)
		return
	}

	h.logger.Info("PUT /bookings/{id}/slot - Assigned: booking_id=%s, contractor_id=%s, with_slot=%t",
		bookingID, contractorID, req.HasSlot())
	handlers.RespondJSON(w, http.StatusOK, booking)
}
