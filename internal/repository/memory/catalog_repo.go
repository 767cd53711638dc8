package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"storefront-backend/internal/domain"
)

type catalogRepository struct {
	products   []domain.Product
	categories []domain.Category
}

// NewCatalogRepository serves the built-in mock catalog.
func NewCatalogRepository() domain.ProductRepository {
	return NewCatalogRepositoryFrom(seedProducts, seedCategories)
}

// NewCatalogRepositoryFrom serves the given products and categories.
// Category product counts are derived from products.
func NewCatalogRepositoryFrom(products []domain.Product, categories []domain.Category) domain.ProductRepository {
	r := &catalogRepository{
		products:   append([]domain.Product(nil), products...),
		categories: append([]domain.Category(nil), categories...),
	}
	for i := range r.categories {
		count := 0
		for _, p := range r.products {
			if strings.EqualFold(p.Category, r.categories[i].ID) || strings.EqualFold(p.Category, r.categories[i].Name) {
				count++
			}
		}
		r.categories[i].ProductCount = count
	}
	return r
}

func (r *catalogRepository) GetProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	matched := make([]domain.Product, 0, len(r.products))
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	for _, p := range r.products {
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		if filter.CategoryID != "" && !strings.EqualFold(p.Category, filter.CategoryID) {
			continue
		}
		if filter.InStock != nil && p.InStock != *filter.InStock {
			continue
		}
		if filter.IsFeatured != nil && p.IsFeatured != *filter.IsFeatured {
			continue
		}
		matched = append(matched, p)
	}

	switch filter.Sort {
	case domain.SortPriceAsc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price.LessThan(matched[j].Price) })
	case domain.SortPriceDesc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price.GreaterThan(matched[j].Price) })
	case domain.SortRating:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Rating > matched[j].Rating })
	case domain.SortDefault:
	default:
		return nil, 0, fmt.Errorf("unknown sort %q", filter.Sort)
	}

	total := int64(len(matched))
	start := filter.Offset
	if start < 0 {
		start = 0
	}
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if filter.Limit > 0 && start+filter.Limit < end {
		end = start + filter.Limit
	}
	return matched[start:end], total, nil
}

func (r *catalogRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			out := p
			return &out, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *catalogRepository) GetCategories(ctx context.Context) ([]domain.Category, error) {
	return append([]domain.Category(nil), r.categories...), nil
}

func (r *catalogRepository) GetCategoryByID(ctx context.Context, id string) (*domain.Category, error) {
	for _, c := range r.categories {
		if strings.EqualFold(c.ID, id) {
			out := c
			return &out, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}
