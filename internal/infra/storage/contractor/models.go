package contractor

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
	"github.com/m04kA/SMC-CleaningBookingService/pkg/types"
)

type workingHoursRow struct {
	Weekday      int    `json:"weekday"`
	IsWorkingDay bool   `json:"is_working_day"`
	Start        string `json:"start,omitempty"`
	End          string `json:"end,omitempty"`
}

type slotRow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type coverageRow struct {
	Postcode string `json:"postcode"`
	IsActive bool   `json:"is_active"`
}

type contractorRow struct {
	ID           uuid.UUID
	Name         string
	IsActive     bool
	WorkingHours []byte
	Unavailable  []byte
	Coverage     []byte
	BookedCount  int
	Version      int64
	CreatedAt    sql.NullTime
	UpdatedAt    sql.NullTime
}

var contractorColumns = []string{
	"id",
	"name",
	"is_active",
	"working_hours",
	"unavailable_slots",
	"coverage",
	"booked_count",
	"version",
	"created_at",
	"updated_at",
}

func (r *contractorRow) scanTargets() []interface{} {
	return []interface{}{
		&r.ID,
		&r.Name,
		&r.IsActive,
		&r.WorkingHours,
		&r.Unavailable,
		&r.Coverage,
		&r.BookedCount,
		&r.Version,
		&r.CreatedAt,
		&r.UpdatedAt,
	}
}

// encoded jsonb колонки агрегата
type encoded struct {
	workingHours string
	unavailable  string
	coverage     string
}

func encode(c *domain.Contractor) (encoded, error) {
	wh := make([]workingHoursRow, 0, len(c.WorkingHours))
	for _, h := range c.WorkingHours {
		wh = append(wh, workingHoursRow{
			Weekday:      int(h.Weekday),
			IsWorkingDay: h.IsWorkingDay,
			Start:        h.Start.String(),
			End:          h.End.String(),
		})
	}
	slots := make([]slotRow, 0, len(c.Unavailable))
	for _, s := range c.Unavailable {
		slots = append(slots, slotRow{Start: s.Start(), End: s.End()})
	}
	coverage := make([]coverageRow, 0, len(c.Coverage))
	for _, area := range c.Coverage {
		coverage = append(coverage, coverageRow{Postcode: area.Postcode.String(), IsActive: area.IsActive})
	}

	whJSON, err := json.Marshal(wh)
	if err != nil {
		return encoded{}, err
	}
	slotsJSON, err := json.Marshal(slots)
	if err != nil {
		return encoded{}, err
	}
	coverageJSON, err := json.Marshal(coverage)
	if err != nil {
		return encoded{}, err
	}
	return encoded{workingHours: string(whJSON), unavailable: string(slotsJSON), coverage: string(coverageJSON)}, nil
}

func (r *contractorRow) toDomain() (*domain.Contractor, error) {
	c := &domain.Contractor{
		ID:          r.ID,
		Name:        r.Name,
		IsActive:    r.IsActive,
		BookedCount: r.BookedCount,
		Version:     r.Version,
		CreatedAt:   r.CreatedAt.Time.UTC(),
		UpdatedAt:   r.UpdatedAt.Time.UTC(),
	}

	var wh []workingHoursRow
	if err := unmarshalColumn(r.WorkingHours, &wh); err != nil {
		return nil, fmt.Errorf("%w: working_hours: %v", ErrMapping, err)
	}
	for _, h := range wh {
		hours := domain.WorkingHours{
			Weekday:      time.Weekday(h.Weekday),
			IsWorkingDay: h.IsWorkingDay,
			Start:        types.TimeString(h.Start),
			End:          types.TimeString(h.End),
		}
		if err := c.SetWorkingHours(hours); err != nil {
			return nil, fmt.Errorf("%w: working_hours: %v", ErrMapping, err)
		}
	}

	var slots []slotRow
	if err := unmarshalColumn(r.Unavailable, &slots); err != nil {
		return nil, fmt.Errorf("%w: unavailable_slots: %v", ErrMapping, err)
	}
	for _, s := range slots {
		slot, err := domain.NewTimeSlot(s.Start, s.End)
		if err != nil {
			return nil, fmt.Errorf("%w: unavailable_slots: %v", ErrMapping, err)
		}
		c.Unavailable = append(c.Unavailable, slot)
	}

	var coverage []coverageRow
	if err := unmarshalColumn(r.Coverage, &coverage); err != nil {
		return nil, fmt.Errorf("%w: coverage: %v", ErrMapping, err)
	}
	for _, area := range coverage {
		pc, err := domain.ParsePostcode(area.Postcode)
		if err != nil {
			return nil, fmt.Errorf("%w: coverage: %v", ErrMapping, err)
		}
		c.Coverage = append(c.Coverage, domain.CoverageArea{Postcode: pc, IsActive: area.IsActive})
	}

	return c, nil
}

func unmarshalColumn(data []byte, v interface{}) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
