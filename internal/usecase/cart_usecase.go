package usecase

import (
	"context"
	"fmt"
	"strconv"

	"storefront-backend/config"
	"storefront-backend/internal/cart"
	"storefront-backend/internal/domain"
	"storefront-backend/internal/session"
	"storefront-backend/pkg/logger"
	"storefront-backend/pkg/metrics"

	"github.com/shopspring/decimal"
)

// ProductLookup resolves the product a shopper is adding.
type ProductLookup interface {
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
}

type CartUsecase struct {
	products ProductLookup
	sessions *session.Registry
	metrics  *metrics.Metrics
	cfg      *config.Config
}

func NewCartUsecase(products ProductLookup, sessions *session.Registry, m *metrics.Metrics, cfg *config.Config) *CartUsecase {
	return &CartUsecase{
		products: products,
		sessions: sessions,
		metrics:  m,
		cfg:      cfg,
	}
}

func (u *CartUsecase) GetCart(sessionID string) domain.Snapshot {
	return u.sessions.Cart(sessionID).Snapshot()
}

// AddToCart adds quantity units of a catalog product, one AddItem per unit,
// the way the product page's quantity picker does.
func (u *CartUsecase) AddToCart(ctx context.Context, sessionID, productID string, quantity int) (snap domain.Snapshot, err error) {
	defer func() { u.metrics.ObserveCartOp("add", err) }()

	store := u.sessions.Cart(sessionID)
	if productID == "" {
		return store.Snapshot(), domain.ErrInvalidProductID
	}
	if quantity < 1 {
		return store.Snapshot(), domain.ErrInvalidQuantity
	}
	if quantity > domain.MaxAddQuantity {
		return store.Snapshot(), fmt.Errorf("at most %d per add: %w", domain.MaxAddQuantity, domain.ErrQuantityLimit)
	}

	product, err := u.products.GetProductByID(ctx, productID)
	if err != nil {
		return store.Snapshot(), err
	}
	if !product.InStock {
		return store.Snapshot(), fmt.Errorf("product %s: %w", productID, domain.ErrProductUnavailable)
	}

	current := store.Snapshot()
	line, _ := current.Find(productID)
	if line.Quantity+quantity > u.cfg.MaxCartQuantity {
		return current, fmt.Errorf("at most %d per product: %w", u.cfg.MaxCartQuantity, domain.ErrQuantityLimit)
	}

	ref := product.Ref()
	snap = current
	for i := 0; i < quantity; i++ {
		snap, err = store.AddItem(ref)
		if err != nil {
			return snap, err
		}
	}

	logger.WithContext(ctx).Debug().
		Str("product_id", productID).
		Int("quantity", quantity).
		Int("item_count", snap.ItemCount).
		Msg("Added to cart")
	return snap, nil
}

// UpdateQuantity sets an absolute quantity. Zero or less removes the line.
func (u *CartUsecase) UpdateQuantity(sessionID, productID string, quantity int) (snap domain.Snapshot, err error) {
	defer func() { u.metrics.ObserveCartOp("set_quantity", err) }()

	store := u.sessions.Cart(sessionID)
	if productID == "" {
		return store.Snapshot(), domain.ErrInvalidProductID
	}
	if quantity > u.cfg.MaxCartQuantity {
		return store.Snapshot(), fmt.Errorf("at most %d per product: %w", u.cfg.MaxCartQuantity, domain.ErrQuantityLimit)
	}
	return store.SetQuantity(productID, quantity)
}

// AdjustQuantity applies the cart screen's +/- control. Dropping to zero
// removes the line; adjusting an absent product changes nothing.
func (u *CartUsecase) AdjustQuantity(sessionID, productID string, delta int) (snap domain.Snapshot, err error) {
	defer func() { u.metrics.ObserveCartOp("adjust", err) }()

	store := u.sessions.Cart(sessionID)
	if productID == "" {
		return store.Snapshot(), domain.ErrInvalidProductID
	}
	current := store.Snapshot()
	line, ok := current.Find(productID)
	if !ok || delta == 0 {
		return current, nil
	}
	next := line.Quantity + delta
	if next > u.cfg.MaxCartQuantity {
		return current, fmt.Errorf("at most %d per product: %w", u.cfg.MaxCartQuantity, domain.ErrQuantityLimit)
	}
	return store.SetQuantity(productID, next)
}

func (u *CartUsecase) RemoveFromCart(sessionID, productID string) (snap domain.Snapshot, err error) {
	defer func() { u.metrics.ObserveCartOp("remove", err) }()
	return u.sessions.Cart(sessionID).RemoveItem(productID)
}

func (u *CartUsecase) ClearCart(sessionID string) (snap domain.Snapshot, err error) {
	defer func() { u.metrics.ObserveCartOp("clear", err) }()
	return u.sessions.Cart(sessionID).Clear()
}

func (u *CartUsecase) GetSummary(sessionID string) domain.CartSummary {
	return u.Summarize(u.GetCart(sessionID))
}

// Watch subscribes l to the session's cart and returns the state at the time
// of subscribing. done is closed when the session ends.
func (u *CartUsecase) Watch(sessionID string, l cart.Listener) (current domain.Snapshot, unsubscribe func(), done <-chan struct{}) {
	store := u.sessions.Cart(sessionID)
	unsubscribe = store.Subscribe(l)
	return store.Snapshot(), unsubscribe, store.Done()
}

// Checkout prices the cart. Payment is not wired up, so a non-empty cart
// always ends in domain.ErrCheckoutUnavailable and stays as it is.
func (u *CartUsecase) Checkout(ctx context.Context, sessionID string) (result *domain.CheckoutResult, err error) {
	defer func() { u.metrics.ObserveCartOp("checkout", err) }()

	snap := u.GetCart(sessionID)
	if snap.IsEmpty() {
		return nil, domain.ErrCartEmpty
	}
	summary := u.Summarize(snap)
	logger.WithContext(ctx).Info().
		Int("item_count", summary.ItemCount).
		Str("total", summary.Total).
		Msg("Checkout requested")
	return &domain.CheckoutResult{
		Message: domain.ErrCheckoutUnavailable.Error(),
		Summary: summary,
	}, domain.ErrCheckoutUnavailable
}

// Summarize renders the badge and footer figures for snap.
func (u *CartUsecase) Summarize(snap domain.Snapshot) domain.CartSummary {
	shipping := decimal.Zero
	if !snap.IsEmpty() {
		shipping = u.cfg.ShippingFee
	}
	shippingLabel := domain.ShippingFreeLabel
	if !u.cfg.ShippingFee.IsZero() {
		shippingLabel = u.cfg.ShippingFee.StringFixed(2)
	}
	return domain.CartSummary{
		ItemCount:    snap.ItemCount,
		Badge:        Badge(snap.ItemCount),
		Subtotal:     snap.Subtotal.StringFixed(2),
		Shipping:     shippingLabel,
		Total:        snap.Subtotal.Add(shipping).StringFixed(2),
		ShowCheckout: snap.ItemCount > 0,
		Revision:     snap.Revision,
	}
}

// Badge is the tab bar label: hidden when empty, capped at "99+".
func Badge(itemCount int) string {
	switch {
	case itemCount <= 0:
		return ""
	case itemCount > domain.BadgeOverflowLimit:
		return domain.BadgeOverflow
	default:
		return strconv.Itoa(itemCount)
	}
}
