package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CleaningBookingService/pkg/types"
)

// WorkingHours расписание подрядчика на один день недели
type WorkingHours struct {
	Weekday      time.Weekday
	IsWorkingDay bool
	Start        types.TimeString
	End          types.TimeString
}

// Validate у рабочего дня Start < End
func (w WorkingHours) Validate() error {
	if w.Weekday < time.Sunday || w.Weekday > time.Saturday {
		return fmt.Errorf("%w: weekday %d", ErrInvalidWorkingDay, w.Weekday)
	}
	if !w.IsWorkingDay {
		return nil
	}
	if err := w.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidWorkingDay, err)
	}
	if err := w.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidWorkingDay, err)
	}
	if !w.Start.IsBefore(w.End) {
		return fmt.Errorf("%w: %s must be before %s", ErrInvalidWorkingDay, w.Start, w.End)
	}
	return nil
}

// Contains лежит ли слот внутри [Start, End] своего дня.
// Слот, заканчивающийся ровно в End, допустим.
func (w WorkingHours) Contains(slot TimeSlot) bool {
	if !w.IsWorkingDay || !slot.SameDay() || slot.Start().Weekday() != w.Weekday {
		return false
	}
	start := slot.Start().Hour()*60 + slot.Start().Minute()
	end := slot.End().Hour()*60 + slot.End().Minute()
	// секунды внутри минуты округляем в сторону строгости
	if slot.End().Second() > 0 || slot.End().Nanosecond() > 0 {
		end++
	}
	return w.Start.Minutes() <= start && end <= w.End.Minutes()
}

// CoverageArea postcode или его часть, которую обслуживает подрядчик
type CoverageArea struct {
	Postcode Postcode
	IsActive bool
}

// Contractor агрегат с данными доступности исполнителя
type Contractor struct {
	ID           uuid.UUID
	Name         string
	IsActive     bool
	WorkingHours []WorkingHours
	Unavailable  []TimeSlot
	Coverage     []CoverageArea
	BookedCount  int
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewContractor создает активного подрядчика без расписания
func NewContractor(name string, now time.Time) *Contractor {
	return &Contractor{
		ID:        uuid.New(),
		Name:      name,
		IsActive:  true,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
}

// Activate возвращает подрядчика в подбор
func (c *Contractor) Activate() {
	c.IsActive = true
}

// Deactivate убирает подрядчика из подбора, история сохраняется
func (c *Contractor) Deactivate() {
	c.IsActive = false
}

// SetWorkingHours заменяет запись для wh.Weekday; записи упорядочены по дню недели
func (c *Contractor) SetWorkingHours(wh WorkingHours) error {
	if err := wh.Validate(); err != nil {
		return err
	}
	for i := range c.WorkingHours {
		if c.WorkingHours[i].Weekday == wh.Weekday {
			c.WorkingHours[i] = wh
			return nil
		}
	}
	c.WorkingHours = append(c.WorkingHours, wh)
	slices.SortFunc(c.WorkingHours, func(a, b WorkingHours) int {
		return int(a.Weekday) - int(b.Weekday)
	})
	return nil
}

// WorkingHoursFor запись на день недели, если она есть
func (c *Contractor) WorkingHoursFor(day time.Weekday) (WorkingHours, bool) {
	for _, wh := range c.WorkingHours {
		if wh.Weekday == day {
			return wh, true
		}
	}
	return WorkingHours{}, false
}

// MarkUnavailable добавляет слот, если он не пересекается с уже занятыми.
// Занятые слоты попарно не пересекаются, поэтому добавление работает как CAS резервирования.
func (c *Contractor) MarkUnavailable(slot TimeSlot) error {
	if slot.IsZero() {
		return fmt.Errorf("%w: empty slot", ErrInvalidTimeSlot)
	}
	for _, existing := range c.Unavailable {
		if existing.Overlaps(slot) {
			return fmt.Errorf("%w: %s overlaps %s", ErrUnavailableOverlap, slot, existing)
		}
	}
	c.Unavailable = append(c.Unavailable, slot)
	return nil
}

// RemoveUnavailable удаляет точное совпадение; false, если удалять нечего
func (c *Contractor) RemoveUnavailable(slot TimeSlot) bool {
	for i, existing := range c.Unavailable {
		if existing.Equal(slot) {
			c.Unavailable = slices.Delete(c.Unavailable, i, i+1)
			return true
		}
	}
	return false
}

// IsUnavailableDuring пересекается ли slot с каким-либо занятым слотом
func (c *Contractor) IsUnavailableDuring(slot TimeSlot) bool {
	for _, existing := range c.Unavailable {
		if existing.Overlaps(slot) {
			return true
		}
	}
	return false
}

// AddCoverage идемпотентна для активных зон и реактивирует неактивные
func (c *Contractor) AddCoverage(pc Postcode) {
	for i := range c.Coverage {
		if c.Coverage[i].Postcode.Value == pc.Value {
			c.Coverage[i].IsActive = true
			return
		}
	}
	c.Coverage = append(c.Coverage, CoverageArea{Postcode: pc, IsActive: true})
}

// RemoveCoverage деактивирует зону; false, если активной зоны не нашлось
func (c *Contractor) RemoveCoverage(pc Postcode) bool {
	for i := range c.Coverage {
		if c.Coverage[i].Postcode.Value == pc.Value && c.Coverage[i].IsActive {
			c.Coverage[i].IsActive = false
			return true
		}
	}
	return false
}

// Covers есть ли активная зона, совместимая с pc
func (c *Contractor) Covers(pc Postcode) bool {
	for _, area := range c.Coverage {
		if area.IsActive && area.Postcode.Compatible(pc) {
			return true
		}
	}
	return false
}

// IncrementBookedCount вызывается один раз на каждую резервацию слота
func (c *Contractor) IncrementBookedCount() {
	c.BookedCount++
}
