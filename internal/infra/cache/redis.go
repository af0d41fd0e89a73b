package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-CleaningBookingService/internal/config"
)

// ErrLockNotHeld блокировка истекла или принадлежит другому владельцу
var ErrLockNotHeld = errors.New("cache: slot lock is not held")

// RedisCache краткоживущие блокировки слотов подрядчиков.
// Блокировка только ускоряет отказ при конкуренции; корректность обеспечивает
// транзакция и проверка version в БД.
type RedisCache struct {
	client redis.Cmdable
	closer func() error
}

// NewRedisCache создает клиента по конфигурации
func NewRedisCache(cfg config.RedisConfig) *RedisCache {
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	return &RedisCache{client: client, closer: client.Close}
}

// NewWithClient оборачивает готовый клиент (кластер, тесты)
func NewWithClient(client redis.Cmdable) *RedisCache {
	return &RedisCache{client: client, closer: func() error { return nil }}
}

// Ping проверяет доступность Redis
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// releaseLockScript удаляет ключ, только если в нем токен владельца
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// AcquireSlotLock пытается занять слот подрядчика. Возвращает токен владельца;
// ok=false - слот уже кем-то занят.
func (c *RedisCache) AcquireSlotLock(ctx context.Context, contractorID uuid.UUID, start time.Time, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := c.client.SetNX(ctx, slotLockKey(contractorID, start), token, ttl).Result()
	if err != nil || !ok {
		return "", ok, err
	}
	return token, true, nil
}

// ReleaseSlotLock снимает блокировку, если она все еще принадлежит token.
// Блокировка, истекшая и занятая другим запросом, не трогается.
func (c *RedisCache) ReleaseSlotLock(ctx context.Context, contractorID uuid.UUID, start time.Time, token string) error {
	deleted, err := releaseLockScript.Run(ctx, c.client, []string{slotLockKey(contractorID, start)}, token).Int64()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrLockNotHeld
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.closer()
}

func slotLockKey(contractorID uuid.UUID, start time.Time) string {
	return fmt.Sprintf("lock:contractor:%s:slot:%d", contractorID, start.UTC().Unix())
}
