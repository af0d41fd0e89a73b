package assign_slot

import (
	"time"

	"github.com/google/uuid"
)

// AssignSlotRequest HTTP request model
// Без start/end назначается только подрядчик
type AssignSlotRequest struct {
	ContractorID string     `json:"contractorId"`
	Start        *time.Time `json:"start,omitempty"` // ISO 8601 format
	End          *time.Time `json:"end,omitempty"`
}

// HasSlot true, если передан интервал
func (r *AssignSlotRequest) HasSlot() bool {
	return r.Start != nil || r.End != nil
}

func (r *AssignSlotRequest) contractorID() (uuid.UUID, error) {
	return uuid.Parse(r.ContractorID)
}
