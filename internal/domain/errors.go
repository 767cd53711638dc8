package domain

import "errors"

// Cart validation
var (
	ErrInvalidUnitPrice = errors.New("unit price must not be negative")
	ErrInvalidProductID = errors.New("product id is required")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrQuantityLimit    = errors.New("quantity exceeds maximum limit")
)

// Catalog and checkout
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrProductUnavailable  = errors.New("product unavailable")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrCheckoutUnavailable = errors.New("payment processing is not configured")
	ErrSessionClosed       = errors.New("session closed")
)
