package pricing

import "errors"

var (
	// ErrNilPromotion возвращается, когда промокод не передан
	ErrNilPromotion = errors.New("pricing: promotion is nil")
)
