package notifier

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

var (
	// ErrEncode не удалось сериализовать событие
	ErrEncode = errors.New("notifier: failed to encode event")

	// ErrPublish брокер не принял сообщение
	ErrPublish = fmt.Errorf("%w: notifier: failed to publish event", domain.ErrExternalDependency)
)
