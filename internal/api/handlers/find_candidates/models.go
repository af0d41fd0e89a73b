package find_candidates

import (
	getAvailableSlots "github.com/m04kA/SMC-CleaningBookingService/internal/usecase/get_available_slots"
)

// CandidatesResponse HTTP response model; лучший подрядчик первым
type CandidatesResponse struct {
	Postcode      string   `json:"postcode"`
	ContractorIDs []string `json:"contractorIds"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.CandidatesResponse) *CandidatesResponse {
	ids := make([]string, len(resp.ContractorIDs))
	for i, id := range resp.ContractorIDs {
		ids[i] = id.String()
	}
	return &CandidatesResponse{Postcode: resp.Postcode, ContractorIDs: ids}
}
