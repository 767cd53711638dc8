package cart_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"storefront-backend/internal/cart"
	"storefront-backend/internal/domain"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
)

type cartTestContext struct {
	store     *cart.Store
	err       error
	observers []*observer
}

type observer struct {
	calls int
	last  domain.Snapshot
}

func (c *cartTestContext) reset() {
	c.store = cart.NewStore()
	c.err = nil
	c.observers = nil
}

func (c *cartTestContext) anEmptyCart() error {
	c.reset()
	return nil
}

func (c *cartTestContext) iAddProduct(id, name string, price int, image string) error {
	_, c.err = c.store.AddItem(domain.ProductRef{
		ProductID: id,
		Name:      name,
		UnitPrice: decimal.NewFromInt(int64(price)),
		ImageRef:  image,
	})
	return nil
}

func (c *cartTestContext) productIsInTheCart(id, name string, price int) error {
	_, err := c.store.AddItem(domain.ProductRef{ProductID: id, Name: name, UnitPrice: decimal.NewFromInt(int64(price))})
	return err
}

func (c *cartTestContext) iSetTheQuantity(id string, quantity int) error {
	_, c.err = c.store.SetQuantity(id, quantity)
	return nil
}

func (c *cartTestContext) iRemoveProduct(id string) error {
	_, c.err = c.store.RemoveItem(id)
	return nil
}

func (c *cartTestContext) iClearTheCart() error {
	_, c.err = c.store.Clear()
	return nil
}

func (c *cartTestContext) subscribersAreWatching(n int) error {
	for i := 0; i < n; i++ {
		o := &observer{}
		c.store.Subscribe(func(snap domain.Snapshot) {
			o.calls++
			o.last = snap
		})
		c.observers = append(c.observers, o)
	}
	return nil
}

func (c *cartTestContext) theCartHasLines(n int) error {
	if got := len(c.store.Snapshot().Items); got != n {
		return fmt.Errorf("expected %d lines, got %d", n, got)
	}
	return nil
}

func (c *cartTestContext) theCartIsEmpty() error {
	return c.theCartHasLines(0)
}

func (c *cartTestContext) productHasQuantity(id string, quantity int) error {
	item, ok := c.store.Snapshot().Find(id)
	if !ok {
		return fmt.Errorf("product %s not in cart", id)
	}
	if item.Quantity != quantity {
		return fmt.Errorf("expected quantity %d, got %d", quantity, item.Quantity)
	}
	return nil
}

func (c *cartTestContext) theItemCountIs(n int) error {
	if got := c.store.Snapshot().ItemCount; got != n {
		return fmt.Errorf("expected item count %d, got %d", n, got)
	}
	return nil
}

func (c *cartTestContext) theSubtotalIs(amount int) error {
	got := c.store.Snapshot().Subtotal
	if !got.Equal(decimal.NewFromInt(int64(amount))) {
		return fmt.Errorf("expected subtotal %d, got %s", amount, got)
	}
	return nil
}

func (c *cartTestContext) noErrorIsReturned() error {
	if c.err != nil {
		return fmt.Errorf("expected no error, got %v", c.err)
	}
	return nil
}

func (c *cartTestContext) theErrorIsReturned(msg string) error {
	if c.err == nil {
		return errors.New("expected an error")
	}
	if !strings.Contains(c.err.Error(), msg) {
		return fmt.Errorf("expected error containing %q, got %q", msg, c.err.Error())
	}
	return nil
}

func (c *cartTestContext) eachSubscriberWasNotified(n int) error {
	for i, o := range c.observers {
		if o.calls != n {
			return fmt.Errorf("subscriber %d: expected %d notifications, got %d", i, n, o.calls)
		}
	}
	return nil
}

func (c *cartTestContext) eachSubscriberLastSawItemCount(n int) error {
	for i, o := range c.observers {
		if o.last.ItemCount != n {
			return fmt.Errorf("subscriber %d: expected item count %d, got %d", i, n, o.last.ItemCount)
		}
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an empty cart$`, tc.anEmptyCart)
	ctx.Step(`^product "([^"]*)" named "([^"]*)" priced (-?\d+) is in the cart$`, tc.productIsInTheCart)
	ctx.Step(`^(\d+) subscribers are watching the cart$`, tc.subscribersAreWatching)

	// When steps
	ctx.Step(`^I add product "([^"]*)" named "([^"]*)" priced (-?\d+) with image "([^"]*)"$`, tc.iAddProduct)
	ctx.Step(`^I set the quantity of product "([^"]*)" to (-?\d+)$`, tc.iSetTheQuantity)
	ctx.Step(`^I remove product "([^"]*)"$`, tc.iRemoveProduct)
	ctx.Step(`^I clear the cart$`, tc.iClearTheCart)

	// Then steps
	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^the cart is empty$`, tc.theCartIsEmpty)
	ctx.Step(`^product "([^"]*)" has quantity (\d+)$`, tc.productHasQuantity)
	ctx.Step(`^the item count is (\d+)$`, tc.theItemCountIs)
	ctx.Step(`^the subtotal is (\d+)$`, tc.theSubtotalIs)
	ctx.Step(`^no error is returned$`, tc.noErrorIsReturned)
	ctx.Step(`^the error "([^"]*)" is returned$`, tc.theErrorIsReturned)
	ctx.Step(`^each subscriber was notified (\d+) times$`, tc.eachSubscriberWasNotified)
	ctx.Step(`^each subscriber last saw an item count of (\d+)$`, tc.eachSubscriberLastSawItemCount)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/cart.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
