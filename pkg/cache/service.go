package cache

import "time"

// CacheService defines the behavior for caching mechanisms
type CacheService interface {
	// Get retrieves a value from the cache
	// Returns value, true if found
	// Returns nil, false if not found
	Get(key string) (interface{}, bool)

	// Set adds a value to the cache with a duration
	Set(key string, value interface{}, duration time.Duration)

	// Add stores value only if key is absent or expired.
	// Returns false if a live entry already exists.
	Add(key string, value interface{}, duration time.Duration) bool

	// Delete removes a value from the cache
	Delete(key string)

	// Flush removes all items
	Flush()

	// ItemCount reports the number of entries, including expired ones
	// not yet cleaned up.
	ItemCount() int

	// OnEvicted registers fn to run whenever an entry is deleted or expires.
	// Flush does not trigger it.
	OnEvicted(fn func(key string, value interface{}))
}
