package usecase

import (
	"context"
	"testing"
	"time"

	"storefront-backend/config"
	"storefront-backend/internal/domain"
	memcache "storefront-backend/internal/infrastructure/cache"
	"storefront-backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRepo records how often the product lookup reaches the repository.
type countingRepo struct {
	domain.ProductRepository
	byID int
}

func (r *countingRepo) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	r.byID++
	return r.ProductRepository.GetProductByID(ctx, id)
}

func testConfig() *config.Config {
	cfg := config.FromEnv()
	cfg.CacheProductTTL = time.Minute
	cfg.CacheCategoryTTL = time.Minute
	cfg.MaxCartQuantity = 1000
	return cfg
}

func newCatalog(t *testing.T) (*CatalogUsecase, *countingRepo) {
	t.Helper()
	repo := &countingRepo{ProductRepository: memory.NewCatalogRepository()}
	return NewCatalogUsecase(repo, memcache.NewMemoryCache(time.Minute, time.Minute), testConfig()), repo
}

func ids(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestCatalog_ListProductsPaging(t *testing.T) {
	uc, _ := newCatalog(t)
	ctx := context.Background()

	all, pg, err := uc.ListProducts(ctx, domain.ProductFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 7)
	assert.Equal(t, domain.Pagination{Page: 1, Limit: defaultPageLimit, TotalItems: 7, TotalPages: 1}, pg)

	page2, pg, err := uc.ListProducts(ctx, domain.ProductFilter{}, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "5", "6"}, ids(page2))
	assert.Equal(t, 3, pg.TotalPages)
}

func TestCatalog_ListProductsUnknownSort(t *testing.T) {
	uc, _ := newCatalog(t)
	_, _, err := uc.ListProducts(context.Background(), domain.ProductFilter{Sort: "newest"}, 1, 10)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCatalog_Featured(t *testing.T) {
	uc, _ := newCatalog(t)
	featured, err := uc.GetFeatured(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1", "6", "3", "4", "5"}, ids(featured))
}

func TestCatalog_ProductByIDIsCached(t *testing.T) {
	uc, repo := newCatalog(t)
	ctx := context.Background()

	p, err := uc.GetProductByID(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "3", p.ID)

	_, err = uc.GetProductByID(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.byID)

	_, err = uc.GetProductByID(ctx, "404")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCatalog_CategoryProducts(t *testing.T) {
	uc, _ := newCatalog(t)
	ctx := context.Background()

	cat, products, pg, err := uc.GetCategoryProducts(ctx, "AUDIO", domain.ProductFilter{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "audio", cat.ID)
	assert.Equal(t, []string{"3", "7"}, ids(products))
	assert.Equal(t, int64(2), pg.TotalItems)

	_, _, _, err = uc.GetCategoryProducts(ctx, "garden", domain.ProductFilter{}, 1, 10)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestCatalog_Categories(t *testing.T) {
	uc, _ := newCatalog(t)
	cats, err := uc.GetCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 4)
	assert.Equal(t, 3, cats[1].ProductCount)
}
