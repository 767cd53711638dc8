package v1

import (
	"net/http"

	"storefront-backend/internal/domain"
	"storefront-backend/internal/usecase"
	"storefront-backend/pkg/utils"
)

type CatalogHandler struct {
	catalogUC *usecase.CatalogUsecase
}

func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalogUC: uc}
}

type productPage struct {
	Data       []domain.Product  `json:"data"`
	Category   *domain.Category  `json:"category,omitempty"`
	Pagination domain.Pagination `json:"pagination"`
}

func (h *CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.catalogUC.GetCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, cats)
}

// parseListQuery reads the explore screen's search, filter, sort and paging params.
func parseListQuery(r *http.Request) (filter domain.ProductFilter, page, limit int) {
	query := r.URL.Query()
	filter = domain.ProductFilter{
		Query:      query.Get("q"),
		CategoryID: query.Get("category"),
		InStock:    utils.ParseOptionalBool(query.Get("in_stock")),
		Sort:       query.Get("sort"),
	}
	return filter, utils.ParseInt(query.Get("page"), 1), utils.ParseInt(query.Get("limit"), 0)
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter, page, limit := parseListQuery(r)

	products, pagination, err := h.catalogUC.ListProducts(r.Context(), filter, page, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, productPage{Data: products, Pagination: pagination})
}

func (h *CatalogHandler) GetFeatured(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogUC.GetFeatured(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"data": products})
}

func (h *CatalogHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "product id required")
		return
	}

	product, err := h.catalogUC.GetProductByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) GetCategoryProducts(w http.ResponseWriter, r *http.Request) {
	filter, page, limit := parseListQuery(r)

	cat, products, pagination, err := h.catalogUC.GetCategoryProducts(r.Context(), r.PathValue("id"), filter, page, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, productPage{Data: products, Category: cat, Pagination: pagination})
}
