package slots

import "errors"

var (
	// ErrCacheUnavailable возвращается при ошибках Redis
	ErrCacheUnavailable = errors.New("slots.cache: redis unavailable")

	// ErrCorruptedEntry возвращается, когда значение в кеше не удалось разобрать
	ErrCorruptedEntry = errors.New("slots.cache: corrupted entry")
)
