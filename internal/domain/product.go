package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Image        string `json:"image,omitempty"`
	ProductCount int    `json:"productCount"`
}

type Product struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Price          decimal.Decimal   `json:"price"`
	OriginalPrice  *decimal.Decimal  `json:"originalPrice,omitempty"`
	Rating         float64           `json:"rating"`
	Reviews        int               `json:"reviews"`
	Description    string            `json:"description"`
	Features       []string          `json:"features"`
	Specifications map[string]string `json:"specifications"`
	Images         []string          `json:"images"`
	InStock        bool              `json:"inStock"`
	Discount       *int              `json:"discount,omitempty"` // Percent off OriginalPrice
	Category       string            `json:"category"`
	Brand          string            `json:"brand"`
	SKU            string            `json:"sku"`
	IsFeatured     bool              `json:"isFeatured"`
}

// PrimaryImage is the image the cart shows for this product.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Ref converts the catalog entry into the input the cart expects.
func (p Product) Ref() ProductRef {
	return ProductRef{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		ImageRef:  p.PrimaryImage(),
	}
}

type ProductFilter struct {
	Query      string // Case-insensitive substring of Name
	CategoryID string // Case-insensitive match against Product.Category
	InStock    *bool
	IsFeatured *bool
	Sort       string // "", price_asc, price_desc, rating
	Limit      int
	Offset     int
}

// --- Interfaces ---

type ProductRepository interface {
	GetProducts(ctx context.Context, filter ProductFilter) ([]Product, int64, error)
	GetProductByID(ctx context.Context, id string) (*Product, error)
	GetCategories(ctx context.Context) ([]Category, error)
	GetCategoryByID(ctx context.Context, id string) (*Category, error)
}
