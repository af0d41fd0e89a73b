package find_candidates

import (
	"net/http"

	"github.com/m04kA/SMC-CleaningBookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-CleaningBookingService/internal/usecase/get_available_slots"
)

const msgMissingPostcode = "параметр postcode обязателен"

type Handler struct {
	useCase CandidatesUseCase
	logger  Logger
}

func NewHandler(useCase CandidatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/candidates?postcode=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	postcode := r.URL.Query().Get("postcode")
	if postcode == "" {
		h.logger.Warn("GET /candidates - Missing postcode")
		handlers.RespondBadRequest(w, msgMissingPostcode)
		return
	}

	result, err := h.useCase.Candidates(r.Context(), &getAvailableSlots.CandidatesRequest{Postcode: postcode})
	if err != nil {
		handlers.RespondFailure(w, h.logger, "GET /candidates", err)
		return
	}

	h.logger.Info("GET /candidates - Candidates found: postcode=%s, count=%d", postcode, len(result.ContractorIDs))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
