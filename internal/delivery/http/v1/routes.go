package v1

import (
	"net/http"
)

// Routes wires the storefront API onto a ServeMux.
type Routes struct {
	Catalog *CatalogHandler
	Cart    *CartHandler
	Health  *HealthHandler
	Metrics http.Handler
	Session func(http.Handler) http.Handler
}

func (rt Routes) Register(mux *http.ServeMux) {
	withSession := func(h http.HandlerFunc) http.Handler {
		return rt.Session(h)
	}

	// Catalog (Public)
	mux.HandleFunc("GET /api/v1/products", rt.Catalog.ListProducts)
	mux.HandleFunc("GET /api/v1/products/featured", rt.Catalog.GetFeatured)
	mux.HandleFunc("GET /api/v1/products/{id}", rt.Catalog.GetProductByID)
	mux.HandleFunc("GET /api/v1/categories", rt.Catalog.GetCategories)
	mux.HandleFunc("GET /api/v1/categories/{id}/products", rt.Catalog.GetCategoryProducts)

	// Cart (Session)
	mux.Handle("GET /api/v1/cart", withSession(rt.Cart.GetCart))
	mux.Handle("POST /api/v1/cart", withSession(rt.Cart.AddToCart))
	mux.Handle("PUT /api/v1/cart", withSession(rt.Cart.UpdateCart))
	mux.Handle("DELETE /api/v1/cart", withSession(rt.Cart.ClearCart))
	mux.Handle("GET /api/v1/cart/summary", withSession(rt.Cart.GetSummary))
	mux.Handle("GET /api/v1/cart/events", withSession(rt.Cart.Events))
	mux.Handle("POST /api/v1/cart/{productId}/adjust", withSession(rt.Cart.AdjustQuantity))
	mux.Handle("DELETE /api/v1/cart/{productId}", withSession(rt.Cart.RemoveFromCart))
	mux.Handle("POST /api/v1/checkout", withSession(rt.Cart.Checkout))

	// Health Check
	mux.Handle("GET /api/v1/health", rt.Health)
	mux.Handle("GET /health", rt.Health)

	if rt.Metrics != nil {
		mux.Handle("GET /metrics", rt.Metrics)
	}
}
