package get_available_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-CleaningBookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	Postcode        string          `json:"postcode"`
	DurationMinutes int             `json:"durationMinutes"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot свободный слот и подрядчики в порядке ранжирования
type AvailableSlot struct {
	Start         string   `json:"start"` // ISO 8601 format
	End           string   `json:"end"`
	ContractorIDs []string `json:"contractorIds"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		ids := make([]string, len(slot.ContractorIDs))
		for j, id := range slot.ContractorIDs {
			ids[j] = id.String()
		}
		slots[i] = AvailableSlot{
			Start:         slot.Start.UTC().Format(time.RFC3339),
			End:           slot.End.UTC().Format(time.RFC3339),
			ContractorIDs: ids,
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		Postcode:        resp.Postcode,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(postcode, dateStr, durationStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	duration, err := strconv.Atoi(durationStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		Postcode:        postcode,
		Date:            date,
		DurationMinutes: duration,
	}, nil
}
