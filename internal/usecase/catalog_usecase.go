package usecase

import (
	"context"
	"fmt"
	"slices"

	"storefront-backend/config"
	"storefront-backend/internal/domain"
	"storefront-backend/pkg/cache"
)

const defaultPageLimit = 20

type CatalogUsecase struct {
	repo  domain.ProductRepository
	cache cache.CacheService
	cfg   *config.Config
}

func NewCatalogUsecase(repo domain.ProductRepository, cache cache.CacheService, cfg *config.Config) *CatalogUsecase {
	return &CatalogUsecase{
		repo:  repo,
		cache: cache,
		cfg:   cfg,
	}
}

// ListProducts runs the explore/search query. page is 1-based; limit falls
// back to defaultPageLimit.
func (u *CatalogUsecase) ListProducts(ctx context.Context, filter domain.ProductFilter, page, limit int) ([]domain.Product, domain.Pagination, error) {
	if !slices.Contains(domain.ProductSorts, filter.Sort) {
		return nil, domain.Pagination{}, fmt.Errorf("unknown sort %q: %w", filter.Sort, ErrInvalidInput)
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	filter.Limit = limit
	filter.Offset = (page - 1) * limit

	products, total, err := u.repo.GetProducts(ctx, filter)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return products, domain.NewPagination(page, limit, total), nil
}

// GetFeatured returns the featured shelf, best rated first.
func (u *CatalogUsecase) GetFeatured(ctx context.Context) ([]domain.Product, error) {
	key := "product:featured"
	if val, found := u.cache.Get(key); found {
		return val.([]domain.Product), nil
	}

	featured := true
	products, _, err := u.repo.GetProducts(ctx, domain.ProductFilter{
		IsFeatured: &featured,
		Sort:       domain.SortRating,
	})
	if err != nil {
		return nil, err
	}

	u.cache.Set(key, products, u.cfg.CacheProductTTL)
	return products, nil
}

func (u *CatalogUsecase) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	key := fmt.Sprintf("product:id:%s", id)
	if val, found := u.cache.Get(key); found {
		return val.(*domain.Product), nil
	}

	product, err := u.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.cache.Set(key, product, u.cfg.CacheProductTTL)
	return product, nil
}

func (u *CatalogUsecase) GetCategories(ctx context.Context) ([]domain.Category, error) {
	key := "category:all"
	if val, found := u.cache.Get(key); found {
		return val.([]domain.Category), nil
	}

	cats, err := u.repo.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	u.cache.Set(key, cats, u.cfg.CacheCategoryTTL)
	return cats, nil
}

// GetCategoryProducts lists one category's products. Unknown categories
// yield domain.ErrCategoryNotFound rather than an empty page.
func (u *CatalogUsecase) GetCategoryProducts(ctx context.Context, categoryID string, filter domain.ProductFilter, page, limit int) (*domain.Category, []domain.Product, domain.Pagination, error) {
	cat, err := u.repo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, nil, domain.Pagination{}, err
	}
	filter.CategoryID = cat.Name
	products, pagination, err := u.ListProducts(ctx, filter, page, limit)
	if err != nil {
		return nil, nil, domain.Pagination{}, err
	}
	return cat, products, pagination, nil
}
