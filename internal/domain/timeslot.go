package domain

import (
	"fmt"
	"time"
)

// TimeSlot полуоткрытый интервал [start, end) в UTC
type TimeSlot struct {
	start time.Time
	end   time.Time
}

// NewTimeSlot приводит оба момента к UTC и требует start < end
func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	start, end = start.UTC(), end.UTC()
	if !start.Before(end) {
		return TimeSlot{}, fmt.Errorf("%w: %s - %s", ErrInvalidTimeSlot, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return TimeSlot{start: start, end: end}, nil
}

// NewTimeSlotWithDuration строит [start, start+d)
func NewTimeSlotWithDuration(start time.Time, d time.Duration) (TimeSlot, error) {
	if d <= 0 {
		return TimeSlot{}, fmt.Errorf("%w: %s", ErrInvalidDuration, d)
	}
	return NewTimeSlot(start, start.Add(d))
}

func (s TimeSlot) Start() time.Time {
	return s.start
}

func (s TimeSlot) End() time.Time {
	return s.end
}

func (s TimeSlot) Duration() time.Duration {
	return s.end.Sub(s.start)
}

func (s TimeSlot) IsZero() bool {
	return s.start.IsZero() && s.end.IsZero()
}

// Overlaps полуоткрытая семантика: слоты с общей границей не пересекаются
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return s.start.Before(other.end) && other.start.Before(s.end)
}

// Equal сравнивает моменты, а не часовые пояса
func (s TimeSlot) Equal(other TimeSlot) bool {
	return s.start.Equal(other.start) && s.end.Equal(other.end)
}

// SameDay слот начинается и заканчивается в один календарный день UTC
func (s TimeSlot) SameDay() bool {
	y1, m1, d1 := s.start.Date()
	y2, m2, d2 := s.end.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (s TimeSlot) String() string {
	return fmt.Sprintf("[%s, %s)", s.start.Format(time.RFC3339), s.end.Format(time.RFC3339))
}
