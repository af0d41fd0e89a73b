package availability

import "errors"

var (
	// ErrInvalidConfig возвращается при некорректном окне перебора слотов
	ErrInvalidConfig = errors.New("availability: invalid scan config")
)
