// Package session maps shopper sessions to their carts. A cart lives exactly
// as long as its session entry: when the entry expires or is ended the cart
// is closed and its subscribers are detached.
package session

import (
	"time"

	"storefront-backend/internal/cart"
	"storefront-backend/internal/domain"
	"storefront-backend/pkg/cache"
	"storefront-backend/pkg/logger"
	"storefront-backend/pkg/metrics"

	"github.com/rs/zerolog"
)

const keyPrefix = "session:"

type Registry struct {
	cache   cache.CacheService
	ttl     time.Duration
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// NewRegistry takes ownership of c's eviction callback.
func NewRegistry(c cache.CacheService, ttl time.Duration, m *metrics.Metrics) *Registry {
	r := &Registry{
		cache:   c,
		ttl:     ttl,
		metrics: m,
		log:     logger.Component("session"),
	}
	c.OnEvicted(r.evicted)
	return r
}

// Cart returns the session's cart, creating an empty one on first use.
// Every call extends the session by the registry TTL.
func (r *Registry) Cart(sessionID string) *cart.Store {
	key := keyPrefix + sessionID
	for {
		if v, ok := r.cache.Get(key); ok {
			store := v.(*cart.Store)
			if isClosed(store) {
				r.cache.Delete(key)
				continue
			}
			r.cache.Set(key, store, r.ttl)
			return store
		}

		l := logger.WithSessionID(r.log, sessionID)
		store := cart.NewStore(cart.WithLogger(l))
		if !r.cache.Add(key, store, r.ttl) {
			// Lost a race with another request for the same session.
			continue
		}
		store.Subscribe(func(domain.Snapshot) {
			r.metrics.CartUpdates.Inc()
		})
		r.metrics.ActiveSessions.Inc()
		l.Info().Msg("Session cart created")
		return store
	}
}

// Lookup returns the session's cart without creating or extending it.
func (r *Registry) Lookup(sessionID string) (*cart.Store, bool) {
	v, ok := r.cache.Get(keyPrefix + sessionID)
	if !ok {
		return nil, false
	}
	store := v.(*cart.Store)
	if isClosed(store) {
		return nil, false
	}
	return store, true
}

// End destroys the session's cart immediately.
func (r *Registry) End(sessionID string) {
	r.cache.Delete(keyPrefix + sessionID)
}

func (r *Registry) evicted(key string, value interface{}) {
	store, ok := value.(*cart.Store)
	if !ok {
		return
	}
	if isClosed(store) {
		return
	}
	store.Close()
	r.metrics.ActiveSessions.Dec()
	r.log.Info().Str("key", key).Msg("Session cart destroyed")
}

func isClosed(s *cart.Store) bool {
	select {
	case <-s.Done():
		return true
	default:
		return false
	}
}
