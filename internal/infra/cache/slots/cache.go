package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	keyPrefix        = "appointments:slots"
	generationPrefix = "appointments:slots-gen"

	// generationTTL должен быть заметно больше времени между чтением поколения и Put
	generationTTL = 24 * time.Hour
)

// putScript пишет поле только если поколение дня не изменилось с момента чтения.
// KEYS[1] ключ поколения, KEYS[2] хеш дня; ARGV: поколение, поле, значение, TTL в секундах.
var putScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1]) or '0'
if current ~= ARGV[1] then
	return 0
end
redis.call('HSET', KEYS[2], ARGV[2], ARGV[3])
redis.call('EXPIRE', KEYS[2], ARGV[4])
return 1
`)

// Cache кеш рассчитанных списков слотов в Redis
type Cache struct {
	client  redis.Cmdable
	ttl     time.Duration
	metrics Metrics
}

// NewCache создает кеш. metrics может быть nil.
func NewCache(client redis.Cmdable, ttl time.Duration, metrics Metrics) *Cache {
	return &Cache{
		client:  client,
		ttl:     ttl,
		metrics: metrics,
	}
}

func hashKey(businessID, date string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, businessID, date)
}

func generationKey(businessID, date string) string {
	return fmt.Sprintf("%s:%s:%s", generationPrefix, businessID, date)
}

func fieldKey(providerID, serviceID string) string {
	return providerID + ":" + serviceID
}

// Get возвращает список слотов; found == false означает промах
func (c *Cache) Get(ctx context.Context, key Key) ([]domain.TimeSlot, bool, error) {
	raw, err := c.client.HGet(ctx, hashKey(key.BusinessID, key.Date), fieldKey(key.ProviderID, key.ServiceID)).Result()
	if errors.Is(err, redis.Nil) {
		c.observe("get", "miss")
		return nil, false, nil
	}
	if err != nil {
		c.observe("get", "error")
		return nil, false, fmt.Errorf("%w: Get: %v", ErrCacheUnavailable, err)
	}

	var e entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		c.observe("get", "error")
		return nil, false, fmt.Errorf("%w: Get: %v", ErrCorruptedEntry, err)
	}

	c.observe("get", "hit")
	return fromCached(e.Slots), true, nil
}

// Generation возвращает текущее поколение дня. Его нужно прочитать до загрузки бронирований
// и передать в Put: любое бронирование или сброс кеша между чтением и записью увеличит поколение.
func (c *Cache) Generation(ctx context.Context, businessID, date string) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(businessID, date)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		c.observe("generation", "error")
		return 0, fmt.Errorf("%w: Generation: %v", ErrCacheUnavailable, err)
	}
	return gen, nil
}

// Put сохраняет список слотов и продлевает TTL хеша дня.
// Если поколение изменилось после чтения generation, запись пропускается.
func (c *Cache) Put(ctx context.Context, key Key, generation int64, durationMinutes int, slots []domain.TimeSlot) error {
	payload, err := json.Marshal(entry{DurationMinutes: durationMinutes, Slots: toCached(slots)})
	if err != nil {
		return fmt.Errorf("%w: Put: %v", ErrCorruptedEntry, err)
	}

	keys := []string{generationKey(key.BusinessID, key.Date), hashKey(key.BusinessID, key.Date)}
	stored, err := putScript.Run(ctx, c.client, keys,
		strconv.FormatInt(generation, 10),
		fieldKey(key.ProviderID, key.ServiceID),
		string(payload),
		int64(c.ttl/time.Second),
	).Int64()
	if err != nil {
		c.observe("put", "error")
		return fmt.Errorf("%w: Put: %v", ErrCacheUnavailable, err)
	}

	if stored == 0 {
		c.observe("put", "stale")
		return nil
	}
	c.observe("put", "ok")
	return nil
}

// ApplyBooking патчит все закешированные списки сотрудника на дату бронирования.
// TTL хеша не меняется.
func (c *Cache) ApplyBooking(ctx context.Context, booking domain.Booking, patch PatchFunc) error {
	if err := c.bumpGeneration(ctx, booking.BusinessID, booking.Date); err != nil {
		c.observe("apply_booking", "error")
		return err
	}

	hash := hashKey(booking.BusinessID, booking.Date)
	fields, err := c.client.HGetAll(ctx, hash).Result()
	if err != nil {
		c.observe("apply_booking", "error")
		return fmt.Errorf("%w: ApplyBooking: %v", ErrCacheUnavailable, err)
	}

	prefix := booking.ProviderID + ":"
	names := make([]string, 0, len(fields))
	for name := range fields {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		var e entry
		if err := json.Unmarshal([]byte(fields[name]), &e); err != nil {
			// Битое поле проще удалить, чем чинить
			if err := c.client.HDel(ctx, hash, name).Err(); err != nil {
				return fmt.Errorf("%w: ApplyBooking drop corrupted field: %v", ErrCacheUnavailable, err)
			}
			continue
		}

		e.Slots = toCached(patch(fromCached(e.Slots), e.DurationMinutes))
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("%w: ApplyBooking: %v", ErrCorruptedEntry, err)
		}
		if err := c.client.HSet(ctx, hash, name, string(payload)).Err(); err != nil {
			c.observe("apply_booking", "error")
			return fmt.Errorf("%w: ApplyBooking: %v", ErrCacheUnavailable, err)
		}
	}

	c.observe("apply_booking", "ok")
	return nil
}

// Invalidate удаляет закешированные списки бизнеса на указанные даты
func (c *Cache) Invalidate(ctx context.Context, businessID string, dates ...string) error {
	if len(dates) == 0 {
		return nil
	}

	keys := make([]string, len(dates))
	for i, date := range dates {
		if err := c.bumpGeneration(ctx, businessID, date); err != nil {
			c.observe("invalidate", "error")
			return err
		}
		keys[i] = hashKey(businessID, date)
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.observe("invalidate", "error")
		return fmt.Errorf("%w: Invalidate: %v", ErrCacheUnavailable, err)
	}

	c.observe("invalidate", "ok")
	return nil
}

// bumpGeneration увеличивает поколение дня до изменения хеша,
// чтобы Put с ранее прочитанным поколением не записал устаревший список
func (c *Cache) bumpGeneration(ctx context.Context, businessID, date string) error {
	key := generationKey(businessID, date)
	if err := c.client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: bump generation: %v", ErrCacheUnavailable, err)
	}
	if err := c.client.Expire(ctx, key, generationTTL).Err(); err != nil {
		return fmt.Errorf("%w: bump generation expire: %v", ErrCacheUnavailable, err)
	}
	return nil
}

func (c *Cache) observe(operation, result string) {
	if c.metrics != nil {
		c.metrics.IncCacheOperation(operation, result)
	}
}
