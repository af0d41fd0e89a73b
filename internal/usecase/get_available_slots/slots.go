package get_available_slots

import (
	"slices"
	"time"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

// collectSlots перебирает день каждого кандидата и группирует свободные слоты по времени начала.
// Внутри слота подрядчики идут в порядке кандидатов.
func collectSlots(
	engine AvailabilityEngine,
	candidates []*domain.Contractor,
	date time.Time,
	duration time.Duration,
	pc domain.Postcode,
	notBefore time.Time,
) []Slot {
	byStart := make(map[time.Time]*Slot)
	order := make([]time.Time, 0)

	for _, c := range candidates {
		for slot, free := range engine.DaySlots(c, date, duration, pc) {
			if !free {
				continue
			}
			// Слоты, которые уже начались, не предлагаем
			if slot.Start().Before(notBefore) {
				continue
			}
			s, ok := byStart[slot.Start()]
			if !ok {
				s = &Slot{Start: slot.Start(), End: slot.End()}
				byStart[slot.Start()] = s
				order = append(order, slot.Start())
			}
			s.ContractorIDs = append(s.ContractorIDs, c.ID)
		}
	}

	slices.SortFunc(order, func(a, b time.Time) int {
		return a.Compare(b)
	})

	result := make([]Slot, 0, len(order))
	for _, start := range order {
		result = append(result, *byStart[start])
	}
	return result
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowUTC := now.UTC()
	nowOnly := time.Date(nowUTC.Year(), nowUTC.Month(), nowUTC.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
