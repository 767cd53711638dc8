package domain

import (
	"github.com/shopspring/decimal"
)

// --- Cart Entities ---

// ProductRef is what a consumer hands the cart when a product is added.
// The cart trusts it as-is; catalog lookups happen before it gets here.
type ProductRef struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	ImageRef  string          `json:"imageRef"`
}

type LineItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"` // Fixed when the product was first added
	ImageRef  string          `json:"imageRef"`
	Quantity  int             `json:"quantity"`
}

// LineTotal is UnitPrice * Quantity, unrounded.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Snapshot is a point-in-time read of a cart. Items is owned by the caller.
type Snapshot struct {
	Items     []LineItem      `json:"items"`
	ItemCount int             `json:"itemCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Revision  uint64          `json:"revision"`
}

// IsEmpty reports whether the cart holds no line items.
func (s Snapshot) IsEmpty() bool {
	return len(s.Items) == 0
}

// Find returns the line item for productID, if present.
func (s Snapshot) Find(productID string) (LineItem, bool) {
	for _, it := range s.Items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return LineItem{}, false
}

// CartSummary is the priced view rendered by the cart badge and checkout footer.
// Money fields are rounded to 2 places here and nowhere earlier.
type CartSummary struct {
	ItemCount    int    `json:"itemCount"`
	Badge        string `json:"badge"`
	Subtotal     string `json:"subtotal"`
	Shipping     string `json:"shipping"`
	Total        string `json:"total"`
	ShowCheckout bool   `json:"showCheckout"`
	Revision     uint64 `json:"revision"`
}

type CheckoutResult struct {
	Message string      `json:"message"`
	Summary CartSummary `json:"summary"`
}
