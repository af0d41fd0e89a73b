package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// CleaningService позиция каталога, которую можно положить в корзину бронирования
type CleaningService struct {
	ID              uuid.UUID
	Name            string
	BasePrice       Money
	DurationMinutes int
	IsActive        bool
}

// Validate проверяет описание услуги до записи в каталог
func (s *CleaningService) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidService)
	}
	if s.BasePrice.Currency() == "" || s.BasePrice.IsNegative() {
		return fmt.Errorf("%w: base price %s", ErrInvalidService, s.BasePrice)
	}
	if s.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration %d", ErrInvalidService, s.DurationMinutes)
	}
	return nil
}
