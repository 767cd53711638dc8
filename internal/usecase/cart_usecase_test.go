package usecase

import (
	"context"
	"testing"
	"time"

	"storefront-backend/internal/domain"
	memcache "storefront-backend/internal/infrastructure/cache"
	"storefront-backend/internal/session"
	"storefront-backend/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartUsecase(t *testing.T, maxQty int, shipping decimal.Decimal) (*CartUsecase, *metrics.Metrics) {
	t.Helper()
	catalog, _ := newCatalog(t)
	cfg := testConfig()
	cfg.MaxCartQuantity = maxQty
	cfg.ShippingFee = shipping
	m := metrics.NewNop()
	sessions := session.NewRegistry(memcache.NewMemoryCache(time.Hour, time.Minute), time.Hour, m)
	return NewCartUsecase(catalog, sessions, m, cfg), m
}

func TestCart_AddToCartRepeatsAddItem(t *testing.T) {
	uc, m := newCartUsecase(t, 1000, decimal.Zero)

	snap, err := uc.AddToCart(context.Background(), "s1", "1", 3)
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 3, snap.Items[0].Quantity)
	assert.Equal(t, 3, snap.ItemCount)
	assert.True(t, decimal.NewFromInt(897).Equal(snap.Subtotal))
	assert.Equal(t, uint64(3), snap.Revision)
	assert.Equal(t, "Premium Wireless Headphones", snap.Items[0].Name)
	assert.NotEmpty(t, snap.Items[0].ImageRef)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CartOperations.WithLabelValues("add", "ok")))
}

func TestCart_AddToCartRejections(t *testing.T) {
	uc, m := newCartUsecase(t, 1000, decimal.Zero)
	ctx := context.Background()

	tests := []struct {
		name      string
		productID string
		quantity  int
		want      error
	}{
		{"out of stock", "4", 1, domain.ErrProductUnavailable},
		{"unknown product", "404", 1, domain.ErrProductNotFound},
		{"zero quantity", "1", 0, domain.ErrInvalidQuantity},
		{"above picker", "1", domain.MaxAddQuantity + 1, domain.ErrQuantityLimit},
		{"empty id", "", 1, domain.ErrInvalidProductID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := uc.AddToCart(ctx, "s1", tt.productID, tt.quantity)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, snap.IsEmpty())
		})
	}
	assert.Equal(t, float64(len(tests)), testutil.ToFloat64(m.CartOperations.WithLabelValues("add", "error")))
}

func TestCart_AddToCartRespectsCartLimit(t *testing.T) {
	uc, _ := newCartUsecase(t, 5, decimal.Zero)
	ctx := context.Background()

	_, err := uc.AddToCart(ctx, "s1", "2", 3)
	require.NoError(t, err)

	snap, err := uc.AddToCart(ctx, "s1", "2", 3)
	assert.ErrorIs(t, err, domain.ErrQuantityLimit)
	assert.Equal(t, 3, snap.ItemCount)
}

func TestCart_UpdateQuantity(t *testing.T) {
	uc, _ := newCartUsecase(t, 50, decimal.Zero)
	ctx := context.Background()
	_, err := uc.AddToCart(ctx, "s1", "3", 1)
	require.NoError(t, err)

	snap, err := uc.UpdateQuantity("s1", "3", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, snap.ItemCount)

	_, err = uc.UpdateQuantity("s1", "3", 51)
	assert.ErrorIs(t, err, domain.ErrQuantityLimit)

	snap, err = uc.UpdateQuantity("s1", "3", 0)
	require.NoError(t, err)
	assert.True(t, snap.IsEmpty())
}

func TestCart_AdjustQuantity(t *testing.T) {
	uc, _ := newCartUsecase(t, 1000, decimal.Zero)
	ctx := context.Background()
	_, err := uc.AddToCart(ctx, "s1", "5", 1)
	require.NoError(t, err)

	snap, err := uc.AdjustQuantity("s1", "5", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.ItemCount)

	snap, err = uc.AdjustQuantity("s1", "5", -2)
	require.NoError(t, err)
	assert.True(t, snap.IsEmpty())

	snap, err = uc.AdjustQuantity("s1", "5", 1)
	require.NoError(t, err)
	assert.True(t, snap.IsEmpty(), "adjusting an absent product must not create it")
}

func TestCart_RemoveAndClear(t *testing.T) {
	uc, _ := newCartUsecase(t, 1000, decimal.Zero)
	ctx := context.Background()
	_, _ = uc.AddToCart(ctx, "s1", "1", 1)
	_, _ = uc.AddToCart(ctx, "s1", "2", 1)

	snap, err := uc.RemoveFromCart("s1", "1")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.ItemCount)

	snap, err = uc.RemoveFromCart("s1", "1")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.ItemCount)

	snap, err = uc.ClearCart("s1")
	require.NoError(t, err)
	assert.True(t, snap.IsEmpty())
	assert.True(t, snap.Subtotal.IsZero())
}

func TestCart_SessionsAreIsolated(t *testing.T) {
	uc, _ := newCartUsecase(t, 1000, decimal.Zero)
	_, err := uc.AddToCart(context.Background(), "s1", "1", 2)
	require.NoError(t, err)

	assert.True(t, uc.GetCart("s2").IsEmpty())
	assert.Equal(t, 2, uc.GetCart("s1").ItemCount)
}

func TestCart_Summary(t *testing.T) {
	uc, _ := newCartUsecase(t, 1000, decimal.Zero)

	empty := uc.GetSummary("s1")
	assert.Equal(t, domain.CartSummary{
		Badge:    "",
		Subtotal: "0.00",
		Shipping: domain.ShippingFreeLabel,
		Total:    "0.00",
	}, empty)

	_, err := uc.AddToCart(context.Background(), "s1", "3", 2)
	require.NoError(t, err)
	s := uc.GetSummary("s1")
	assert.Equal(t, 2, s.ItemCount)
	assert.Equal(t, "2", s.Badge)
	assert.Equal(t, "178.00", s.Subtotal)
	assert.Equal(t, "178.00", s.Total)
	assert.True(t, s.ShowCheckout)
	assert.Equal(t, uint64(2), s.Revision)
}

func TestCart_SummaryWithShippingFee(t *testing.T) {
	uc, _ := newCartUsecase(t, 1000, decimal.RequireFromString("4.99"))

	_, err := uc.AddToCart(context.Background(), "s1", "1", 1)
	require.NoError(t, err)
	s := uc.GetSummary("s1")
	assert.Equal(t, "4.99", s.Shipping)
	assert.Equal(t, "303.99", s.Total)

	assert.Equal(t, "0.00", uc.GetSummary("s2").Total)
}

func TestCart_SummarizeRoundsOnlyAtPresentation(t *testing.T) {
	uc, _ := newCartUsecase(t, 1000, decimal.Zero)
	snap := domain.Snapshot{
		Items:     []domain.LineItem{{ProductID: "x", UnitPrice: decimal.RequireFromString("0.1"), Quantity: 3}},
		ItemCount: 3,
		Subtotal:  decimal.RequireFromString("0.3"),
	}
	assert.Equal(t, "0.30", uc.Summarize(snap).Subtotal)
}

func TestBadge(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, ""},
		{1, "1"},
		{99, "99"},
		{100, "99+"},
		{2500, "99+"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Badge(tt.count), "count %d", tt.count)
	}
}

func TestCart_Checkout(t *testing.T) {
	uc, _ := newCartUsecase(t, 1000, decimal.Zero)
	ctx := context.Background()

	_, err := uc.Checkout(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrCartEmpty)

	_, err = uc.AddToCart(ctx, "s1", "6", 2)
	require.NoError(t, err)

	result, err := uc.Checkout(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrCheckoutUnavailable)
	require.NotNil(t, result)
	assert.Equal(t, "318.00", result.Summary.Total)
	assert.Equal(t, 2, uc.GetCart("s1").ItemCount, "checkout must not clear the cart")
}

func TestCart_WatchSeesCommittedChanges(t *testing.T) {
	uc, _ := newCartUsecase(t, 1000, decimal.Zero)

	var seen []int
	current, unsubscribe, done := uc.Watch("s1", func(s domain.Snapshot) {
		seen = append(seen, s.ItemCount)
	})
	assert.True(t, current.IsEmpty())
	assert.NotNil(t, done)

	_, err := uc.AddToCart(context.Background(), "s1", "2", 2)
	require.NoError(t, err)
	unsubscribe()
	_, err = uc.ClearCart("s1")
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, seen)
}
