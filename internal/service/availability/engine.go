package availability

import (
	"fmt"
	"iter"
	"time"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
	"github.com/m04kA/SMC-CleaningBookingService/pkg/types"
)

// Config окно, в котором перебираются стартовые времена слотов
type Config struct {
	ScanStart types.TimeString
	ScanEnd   types.TimeString
	ScanStep  time.Duration
}

// DefaultConfig 08:30–18:30 с шагом 30 минут
func DefaultConfig() Config {
	return Config{
		ScanStart: types.TimeString(domain.DefaultScanStart),
		ScanEnd:   types.TimeString(domain.DefaultScanEnd),
		ScanStep:  domain.DefaultScanStep,
	}
}

func (c Config) Validate() error {
	if err := c.ScanStart.Validate(); err != nil {
		return fmt.Errorf("%w: scan start: %v", ErrInvalidConfig, err)
	}
	if err := c.ScanEnd.Validate(); err != nil {
		return fmt.Errorf("%w: scan end: %v", ErrInvalidConfig, err)
	}
	if !c.ScanStart.IsBefore(c.ScanEnd) {
		return fmt.Errorf("%w: scan start %s must be before end %s", ErrInvalidConfig, c.ScanStart, c.ScanEnd)
	}
	if c.ScanStep < time.Minute {
		return fmt.Errorf("%w: scan step %s", ErrInvalidConfig, c.ScanStep)
	}
	return nil
}

// Engine проверяет доступность подрядчиков. Не делает I/O и не хранит состояние
// кроме конфигурации, поэтому безопасен для конкурентного использования.
type Engine struct {
	cfg Config
}

// NewEngine создает движок доступности
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Check возвращает конкретную причину, по которой подрядчик не может взять слот.
// Порядок проверок: активность, покрытие, недоступность, рабочие часы.
func (e *Engine) Check(c *domain.Contractor, slot domain.TimeSlot, pc domain.Postcode) error {
	if c == nil {
		return fmt.Errorf("%w: contractor is nil", domain.ErrContractorUnavailable)
	}
	if slot.IsZero() {
		return fmt.Errorf("%w: empty slot", domain.ErrInvalidTimeSlot)
	}
	if !c.IsActive {
		return fmt.Errorf("%w: %s", domain.ErrContractorInactive, c.ID)
	}
	if !c.Covers(pc) {
		return fmt.Errorf("%w: %s does not cover %s", domain.ErrContractorNoCoverage, c.ID, pc)
	}
	if c.IsUnavailableDuring(slot) {
		return fmt.Errorf("%w: %s during %s", domain.ErrContractorUnavailable, c.ID, slot)
	}
	wh, ok := c.WorkingHoursFor(slot.Start().Weekday())
	if !ok || !wh.Contains(slot) {
		return fmt.Errorf("%w: %s at %s", domain.ErrOutsideWorkingHours, c.ID, slot)
	}
	return nil
}

// IsAvailable fails closed: любая причина отказа дает false.
func (e *Engine) IsAvailable(c *domain.Contractor, slot domain.TimeSlot, pc domain.Postcode) bool {
	return e.Check(c, slot, pc) == nil
}

// DaySlots лениво перебирает слоты длительностью duration на дату date.
// Последовательность конечна и может перебираться повторно.
// Неположительная длительность дает пустую последовательность; вызывающий код валидирует заранее.
func (e *Engine) DaySlots(c *domain.Contractor, date time.Time, duration time.Duration, pc domain.Postcode) iter.Seq2[domain.TimeSlot, bool] {
	return func(yield func(domain.TimeSlot, bool) bool) {
		if duration <= 0 {
			return
		}
		day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		windowEnd := e.cfg.ScanEnd.On(day)

		for start := e.cfg.ScanStart.On(day); !start.Add(duration).After(windowEnd); start = start.Add(e.cfg.ScanStep) {
			slot, err := domain.NewTimeSlotWithDuration(start, duration)
			if err != nil {
				return
			}
			if !yield(slot, e.IsAvailable(c, slot, pc)) {
				return
			}
		}
	}
}

// AvailableSlots собирает только свободные слоты дня
func (e *Engine) AvailableSlots(c *domain.Contractor, date time.Time, duration time.Duration, pc domain.Postcode) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0)
	for slot, ok := range e.DaySlots(c, date, duration, pc) {
		if ok {
			slots = append(slots, slot)
		}
	}
	return slots
}
