package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
	"github.com/m04kA/SMC-CleaningBookingService/pkg/types"
)

// Request модели

// CreateContractorRequest запрос на создание подрядчика
type CreateContractorRequest struct {
	Name     string   `json:"name"`
	Coverage []string `json:"coverage,omitempty"` // postcode или district, например "LE1"
}

// WorkingHoursRequest расписание на один день недели
// Start и End игнорируются для нерабочего дня
type WorkingHoursRequest struct {
	Weekday      string           `json:"weekday"` // monday..sunday
	IsWorkingDay bool             `json:"isWorkingDay"`
	Start        types.TimeString `json:"start,omitempty"` // HH:MM
	End          types.TimeString `json:"end,omitempty"`
}

// UnavailabilityRequest интервал недоступности подрядчика
type UnavailabilityRequest struct {
	Start time.Time `json:"start"` // ISO 8601 format
	End   time.Time `json:"end"`
}

// CoverageRequest зона обслуживания
type CoverageRequest struct {
	Postcode string `json:"postcode"`
}

// StatusRequest включение или вывод подрядчика из подбора
type StatusRequest struct {
	IsActive *bool `json:"isActive"`
}

// Response модели

// WorkingHoursResponse расписание дня
type WorkingHoursResponse struct {
	Weekday      string           `json:"weekday"`
	IsWorkingDay bool             `json:"isWorkingDay"`
	Start        types.TimeString `json:"start,omitempty"`
	End          types.TimeString `json:"end,omitempty"`
}

// SlotResponse интервал времени
type SlotResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// CoverageResponse зона обслуживания
type CoverageResponse struct {
	Postcode string `json:"postcode"`
	IsActive bool   `json:"isActive"`
}

// ContractorResponse ответ с данными подрядчика
type ContractorResponse struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	IsActive     bool                   `json:"isActive"`
	WorkingHours []WorkingHoursResponse `json:"workingHours"`
	Unavailable  []SlotResponse         `json:"unavailable"`
	Coverage     []CoverageResponse     `json:"coverage"`
	BookedCount  int                    `json:"bookedCount"`
	Version      int64                  `json:"version"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

// Методы конвертации

// ParseWeekday принимает английское название дня недели в любом регистре
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: weekday %q", domain.ErrInvalidWorkingDay, s)
}

// ToDomain конвертирует запрос в domain.WorkingHours
func (r *WorkingHoursRequest) ToDomain() (domain.WorkingHours, error) {
	day, err := ParseWeekday(r.Weekday)
	if err != nil {
		return domain.WorkingHours{}, err
	}
	wh := domain.WorkingHours{Weekday: day, IsWorkingDay: r.IsWorkingDay}
	if r.IsWorkingDay {
		wh.Start, wh.End = r.Start, r.End
	}
	return wh, wh.Validate()
}

// ToDomain конвертирует запрос в domain.TimeSlot
func (r *UnavailabilityRequest) ToDomain() (domain.TimeSlot, error) {
	return domain.NewTimeSlot(r.Start, r.End)
}

// FromDomainContractor конвертирует domain модель в DTO
func FromDomainContractor(c *domain.Contractor) *ContractorResponse {
	if c == nil {
		return nil
	}

	resp := &ContractorResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		IsActive:     c.IsActive,
		WorkingHours: make([]WorkingHoursResponse, 0, len(c.WorkingHours)),
		Unavailable:  make([]SlotResponse, 0, len(c.Unavailable)),
		Coverage:     make([]CoverageResponse, 0, len(c.Coverage)),
		BookedCount:  c.BookedCount,
		Version:      c.Version,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	for _, wh := range c.WorkingHours {
		resp.WorkingHours = append(resp.WorkingHours, WorkingHoursResponse{
			Weekday:      strings.ToLower(wh.Weekday.String()),
			IsWorkingDay: wh.IsWorkingDay,
			Start:        wh.Start,
			End:          wh.End,
		})
	}
	for _, s := range c.Unavailable {
		resp.Unavailable = append(resp.Unavailable, SlotResponse{Start: s.Start(), End: s.End()})
	}
	for _, area := range c.Coverage {
		resp.Coverage = append(resp.Coverage, CoverageResponse{Postcode: area.Postcode.String(), IsActive: area.IsActive})
	}
	return resp
}
