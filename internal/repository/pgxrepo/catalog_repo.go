package pgxrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-backend/internal/domain"
	"storefront-backend/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Querier is the subset of pgxpool.Pool the repository needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type catalogRepository struct {
	db Querier
}

// NewCatalogRepository reads products and categories from Postgres.
func NewCatalogRepository(db *pgxpool.Pool) domain.ProductRepository {
	return &catalogRepository{db: db}
}

const productColumns = `
	p.id::text,
	p.name,
	COALESCE(p.description, ''),
	p.price,
	p.original_price,
	COALESCE(c.name, ''),
	COALESCE(p.brand, ''),
	COALESCE(p.sku, ''),
	COALESCE(p.rating, 0)::float8,
	COALESCE(p.review_count, 0),
	COALESCE(p.in_stock, true),
	COALESCE(p.images, '[]'::jsonb),
	COALESCE(p.features, '[]'::jsonb),
	COALESCE(p.specifications, '{}'::jsonb),
	COALESCE(p.is_featured, false),
	NULLIF(p.discount_percentage, 0)`

const listProductsSQL = `
SELECT` + productColumns + `,
	COUNT(*) OVER()
FROM products p
LEFT JOIN categories c ON c.id = p.category_id
WHERE ($1 = '' OR p.name ILIKE '%%' || $1 || '%%')
  AND ($2 = '' OR lower(c.slug) = lower($2) OR lower(c.name) = lower($2))
  AND ($3::boolean IS NULL OR p.in_stock = $3)
  AND ($4::boolean IS NULL OR p.is_featured = $4)
ORDER BY %s
LIMIT $5 OFFSET $6`

const getProductSQL = `
SELECT` + productColumns + `
FROM products p
LEFT JOIN categories c ON c.id = p.category_id
WHERE p.id::text = $1`

const listCategoriesSQL = `
SELECT COALESCE(c.slug, c.id::text), c.name, COALESCE(c.description, ''), COALESCE(c.image_url, ''),
	(SELECT COUNT(*) FROM products p WHERE p.category_id = c.id)::int
FROM categories c
WHERE COALESCE(c.is_active, true)
ORDER BY c.sort_order, c.id`

const getCategorySQL = `
SELECT COALESCE(c.slug, c.id::text), c.name, COALESCE(c.description, ''), COALESCE(c.image_url, ''),
	(SELECT COUNT(*) FROM products p WHERE p.category_id = c.id)::int
FROM categories c
WHERE lower(COALESCE(c.slug, c.id::text)) = lower($1)`

// orderBy maps sort keys onto fixed ORDER BY clauses.
func orderBy(sort string) (string, error) {
	switch sort {
	case domain.SortDefault:
		return "p.id", nil
	case domain.SortPriceAsc:
		return "p.price ASC, p.id", nil
	case domain.SortPriceDesc:
		return "p.price DESC, p.id", nil
	case domain.SortRating:
		return "p.rating DESC NULLS LAST, p.id", nil
	default:
		return "", fmt.Errorf("unknown sort %q", sort)
	}
}

func (r *catalogRepository) GetProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	order, err := orderBy(filter.Sort)
	if err != nil {
		return nil, 0, err
	}
	var limit *int
	if filter.Limit > 0 {
		limit = &filter.Limit
	}

	query := fmt.Sprintf(listProductsSQL, order)
	start := time.Now()
	rows, err := r.db.Query(ctx, query, filter.Query, filter.CategoryID, filter.InStock, filter.IsFeatured, limit, filter.Offset)
	logger.DBQuery("list_products", time.Since(start), err)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	var total int64
	for rows.Next() {
		var row productRow
		if err := rows.Scan(append(row.dest(), &total)...); err != nil {
			return nil, 0, err
		}
		p, err := row.toDomain()
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *catalogRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	var row productRow
	start := time.Now()
	err := r.db.QueryRow(ctx, getProductSQL, id).Scan(row.dest()...)
	logger.DBQuery("get_product", time.Since(start), err)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	p, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *catalogRepository) GetCategories(ctx context.Context) ([]domain.Category, error) {
	start := time.Now()
	rows, err := r.db.Query(ctx, listCategoriesSQL)
	logger.DBQuery("list_categories", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cats := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Image, &c.ProductCount); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *catalogRepository) GetCategoryByID(ctx context.Context, id string) (*domain.Category, error) {
	var c domain.Category
	start := time.Now()
	err := r.db.QueryRow(ctx, getCategorySQL, id).Scan(&c.ID, &c.Name, &c.Description, &c.Image, &c.ProductCount)
	logger.DBQuery("get_category", time.Since(start), err)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// productRow is one scanned products row before JSON columns are decoded.
type productRow struct {
	id, name, description string
	price                 decimal.Decimal
	originalPrice         decimal.NullDecimal
	category, brand, sku  string
	rating                float64
	reviews               int32
	inStock               bool
	images                []byte
	features              []byte
	specifications        []byte
	isFeatured            bool
	discount              *int32
}

func (r *productRow) dest() []any {
	return []any{
		&r.id, &r.name, &r.description, &r.price, &r.originalPrice,
		&r.category, &r.brand, &r.sku, &r.rating, &r.reviews, &r.inStock,
		&r.images, &r.features, &r.specifications, &r.isFeatured, &r.discount,
	}
}

func (r *productRow) toDomain() (domain.Product, error) {
	p := domain.Product{
		ID:          r.id,
		Name:        r.name,
		Description: r.description,
		Price:       r.price,
		Category:    r.category,
		Brand:       r.brand,
		SKU:         r.sku,
		Rating:      r.rating,
		Reviews:     int(r.reviews),
		InStock:     r.inStock,
		IsFeatured:  r.isFeatured,
	}
	if r.originalPrice.Valid {
		op := r.originalPrice.Decimal
		p.OriginalPrice = &op
	}
	if r.discount != nil {
		d := int(*r.discount)
		p.Discount = &d
	}
	if err := json.Unmarshal(r.images, &p.Images); err != nil {
		return p, fmt.Errorf("product %s images: %w", r.id, err)
	}
	if err := json.Unmarshal(r.features, &p.Features); err != nil {
		return p, fmt.Errorf("product %s features: %w", r.id, err)
	}
	if err := json.Unmarshal(r.specifications, &p.Specifications); err != nil {
		return p, fmt.Errorf("product %s specifications: %w", r.id, err)
	}
	return p, nil
}
