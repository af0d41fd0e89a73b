package assign_slot

import (
	"time"

	"github.com/google/uuid"
)

// Request назначить подрядчика и слот бронированию
type Request struct {
	BookingID    uuid.UUID
	ContractorID uuid.UUID
	Start        time.Time
	End          time.Time
}

// SelectContractorRequest выбрать подрядчика до выбора слота
type SelectContractorRequest struct {
	BookingID    uuid.UUID
	ContractorID uuid.UUID
}
