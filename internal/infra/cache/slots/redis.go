package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/barbershop-booking/pkg/types"
)

// RedisCache кэш слотов в Redis.
// Поколение мастера хранится в slots:{staffId}:gen, слоты - в отдельных ключах
// slots:{staffId}:{generation}:{date}:{duration} со своим TTL. Инвалидация мастера -
// это INCR поколения: ключи прошлых поколений больше не читаются и истекают сами.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient создает клиент Redis
func NewRedisClient(addr, password string, db, poolSize int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: poolSize,
	})
}

// NewRedisCache создает кэш слотов поверх клиента Redis
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

// Generation возвращает текущее поколение слотов мастера
func (c *RedisCache) Generation(ctx context.Context, staffID string) (int64, error) {
	if c.client == nil {
		return 0, ErrNilClient
	}

	gen, err := c.client.Get(ctx, generationKey(staffID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: Generation - get: %w", ErrCache, err)
	}
	return gen, nil
}

// Get возвращает слоты поколения generation; found=false при промахе
func (c *RedisCache) Get(ctx context.Context, staffID string, generation int64, date time.Time, durationMinutes int) ([]types.TimeString, bool, error) {
	if c.client == nil {
		return nil, false, ErrNilClient
	}

	val, err := c.client.Get(ctx, entryKey(staffID, generation, date, durationMinutes)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: Get - get: %w", ErrCache, err)
	}

	var slots []types.TimeString
	if err := json.Unmarshal(val, &slots); err != nil {
		return nil, false, fmt.Errorf("%w: Get - unmarshal: %w", ErrCache, err)
	}

	return slots, true, nil
}

// Set сохраняет слоты под поколением generation с собственным TTL.
// Если поколение уже сменилось, запись ложится в ключ, который никто не читает.
func (c *RedisCache) Set(ctx context.Context, staffID string, generation int64, date time.Time, durationMinutes int, slots []types.TimeString) error {
	if c.client == nil {
		return ErrNilClient
	}

	if slots == nil {
		slots = []types.TimeString{}
	}
	data, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("%w: Set - marshal: %w", ErrCache, err)
	}

	if err := c.client.Set(ctx, entryKey(staffID, generation, date, durationMinutes), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set - set: %w", ErrCache, err)
	}

	return nil
}

// InvalidateStaff переводит мастера на новое поколение слотов
func (c *RedisCache) InvalidateStaff(ctx context.Context, staffID string) error {
	if c.client == nil {
		return ErrNilClient
	}
	if err := c.client.Incr(ctx, generationKey(staffID)).Err(); err != nil {
		return fmt.Errorf("%w: InvalidateStaff - incr: %w", ErrCache, err)
	}
	return nil
}

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}
