// Package cart holds the shopping cart state container shared by every
// consumer of a session: handlers, the live event stream and metrics.
package cart

import (
	"fmt"
	"sync"

	"storefront-backend/internal/domain"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Listener is called once per committed change with the post-change snapshot.
// It must not call AddItem, RemoveItem, SetQuantity, Clear or Close.
type Listener func(domain.Snapshot)

type subscription struct {
	id       uint64
	listener Listener
}

// Store is the single source of truth for one cart.
//
// Mutations are serialized by opMu and run to completion, including listener
// notification, before the next one starts. Reads only take mu, so listeners
// may read the store (or unsubscribe) from inside their callback.
type Store struct {
	opMu sync.Mutex

	mu       sync.RWMutex
	items    []domain.LineItem
	state    domain.Snapshot
	subs     []subscription
	nextSub  uint64
	closed   bool
	closedCh chan struct{}

	log zerolog.Logger
}

type Option func(*Store)

// WithLogger sets the logger used for mutation debug output.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// NewStore creates an empty cart.
func NewStore(opts ...Option) *Store {
	s := &Store{
		closedCh: make(chan struct{}),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = domain.Snapshot{Subtotal: decimal.Zero}
	return s
}

// AddItem increments the quantity of an existing line or appends a new line
// with quantity 1. Invalid input is rejected and leaves the cart untouched.
func (s *Store) AddItem(p domain.ProductRef) (domain.Snapshot, error) {
	if p.ProductID == "" {
		return s.Snapshot(), domain.ErrInvalidProductID
	}
	if p.UnitPrice.IsNegative() {
		return s.Snapshot(), fmt.Errorf("product %s: %w", p.ProductID, domain.ErrInvalidUnitPrice)
	}

	return s.mutate("add", func(items []domain.LineItem) ([]domain.LineItem, bool) {
		if i := indexOf(items, p.ProductID); i >= 0 {
			items[i].Quantity++
			return items, true
		}
		return append(items, domain.LineItem{
			ProductID: p.ProductID,
			Name:      p.Name,
			UnitPrice: p.UnitPrice,
			ImageRef:  p.ImageRef,
			Quantity:  1,
		}), true
	})
}

// RemoveItem deletes the line for productID. Absent items are a no-op.
func (s *Store) RemoveItem(productID string) (domain.Snapshot, error) {
	return s.mutate("remove", func(items []domain.LineItem) ([]domain.LineItem, bool) {
		i := indexOf(items, productID)
		if i < 0 {
			return items, false
		}
		return append(items[:i], items[i+1:]...), true
	})
}

// SetQuantity sets the quantity of an existing line. A quantity of zero or
// less removes the line; an absent product is never created here.
func (s *Store) SetQuantity(productID string, quantity int) (domain.Snapshot, error) {
	if quantity <= 0 {
		return s.RemoveItem(productID)
	}
	return s.mutate("set_quantity", func(items []domain.LineItem) ([]domain.LineItem, bool) {
		i := indexOf(items, productID)
		if i < 0 || items[i].Quantity == quantity {
			return items, false
		}
		items[i].Quantity = quantity
		return items, true
	})
}

// Clear empties the cart.
func (s *Store) Clear() (domain.Snapshot, error) {
	return s.mutate("clear", clearItems)
}

func clearItems(items []domain.LineItem) ([]domain.LineItem, bool) {
	if len(items) == 0 {
		return items, false
	}
	return nil, true
}

// Snapshot returns the current state. The returned Items slice is a copy.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSnapshot(s.state)
}

// Subscribe registers l and returns a handle that removes it again.
// Calling the handle more than once is harmless.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return func() {}
	}
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscription{id: id, listener: l})

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(id) })
	}
}

// Subscribers reports how many listeners are registered.
func (s *Store) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// Close ends the cart's lifetime: the cart is cleared (listeners see the
// empty state), every listener is detached and Done is closed.
// Mutations after Close fail with domain.ErrSessionClosed.
func (s *Store) Close() {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if _, err := s.apply("close", clearItems); err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.subs = nil
	close(s.closedCh)
}

// Done is closed once the store has been closed.
func (s *Store) Done() <-chan struct{} {
	return s.closedCh
}

func (s *Store) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

// mutate applies fn to a private copy of the items. When fn reports a change
// the copy is committed, the aggregates are recomputed from it and every
// listener registered at commit time is notified before mutate returns.
func (s *Store) mutate(op string, fn func([]domain.LineItem) ([]domain.LineItem, bool)) (domain.Snapshot, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	return s.apply(op, fn)
}

// apply does the work of mutate. The caller holds opMu.
func (s *Store) apply(op string, fn func([]domain.LineItem) ([]domain.LineItem, bool)) (domain.Snapshot, error) {
	s.mu.RLock()
	if s.closed {
		snap := cloneSnapshot(s.state)
		s.mu.RUnlock()
		return snap, domain.ErrSessionClosed
	}
	working := make([]domain.LineItem, len(s.items))
	copy(working, s.items)
	s.mu.RUnlock()

	next, changed := fn(working)
	if !changed {
		s.log.Debug().Str("op", op).Msg("cart unchanged")
		return s.Snapshot(), nil
	}

	s.mu.Lock()
	s.items = next
	s.state = compute(next, s.state.Revision+1)
	committed := s.state
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	s.log.Debug().
		Str("op", op).
		Int("lines", len(committed.Items)).
		Int("item_count", committed.ItemCount).
		Str("subtotal", committed.Subtotal.String()).
		Uint64("revision", committed.Revision).
		Msg("cart updated")

	for _, sub := range subs {
		sub.listener(cloneSnapshot(committed))
	}
	return cloneSnapshot(committed), nil
}

// compute rebuilds the derived aggregates from items. The snapshot keeps its
// own copy so later commits never alias it.
func compute(items []domain.LineItem, revision uint64) domain.Snapshot {
	out := domain.Snapshot{
		Items:    make([]domain.LineItem, len(items)),
		Subtotal: decimal.Zero,
		Revision: revision,
	}
	copy(out.Items, items)
	for _, it := range items {
		out.ItemCount += it.Quantity
		out.Subtotal = out.Subtotal.Add(it.LineTotal())
	}
	return out
}

func cloneSnapshot(s domain.Snapshot) domain.Snapshot {
	items := make([]domain.LineItem, len(s.Items))
	copy(items, s.Items)
	s.Items = items
	return s
}

func indexOf(items []domain.LineItem, productID string) int {
	for i, it := range items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}
