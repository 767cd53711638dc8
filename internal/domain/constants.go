package domain

// Product sort keys
const (
	SortDefault   = ""
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortRating    = "rating"
)

var ProductSorts = []string{
	SortDefault,
	SortPriceAsc,
	SortPriceDesc,
	SortRating,
}

// Cart presentation
const (
	BadgeOverflow      = "99+"
	BadgeOverflowLimit = 99
	ShippingFreeLabel  = "FREE"
	// MaxAddQuantity bounds the quantity picker on the product detail screen.
	MaxAddQuantity = 10
)
