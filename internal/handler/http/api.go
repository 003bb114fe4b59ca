package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/pagination"
	"github.com/utafrali/storefront/pkg/validator"
)

// Catalog is the normalized upstream data source.
type Catalog interface {
	FetchProducts(ctx context.Context, page, limit int) (catalog.ListResult, error)
	FetchProductDetails(ctx context.Context, slug string) (domain.ProductDetail, error)
}

// APIHandler serves the normalized catalog as JSON.
type APIHandler struct {
	catalog  Catalog
	pageSize int
	logger   *slog.Logger
}

// NewAPIHandler creates a new JSON API handler.
func NewAPIHandler(c Catalog, pageSize int, logger *slog.Logger) *APIHandler {
	return &APIHandler{
		catalog:  c,
		pageSize: pageSize,
		logger:   logger,
	}
}

// detailQuery holds the query parameters of the detail endpoint.
type detailQuery struct {
	Slug string `query:"slug" validate:"required"`
}

// productListResponse is the data payload of the list endpoint.
type productListResponse struct {
	domain.ProductList
	Pagination pagination.Nav `json:"pagination"`
}

// ListProducts handles GET /api/storefront/products
func (h *APIHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.Parse(r, h.pageSize)
	if err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}
	if err := validator.Validate(params); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	res, err := h.catalog.FetchProducts(r.Context(), params.Page, params.Limit)
	if err != nil {
		httputil.WriteError(w, r, apperrors.Upstream(err), h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: productListResponse{
		ProductList: res.ProductList,
		Pagination:  pagination.Navigate(params, len(res.Products), res.Meta.TotalPages),
	}})
}

// GetProductDetails handles GET /api/storefront/products/details
func (h *APIHandler) GetProductDetails(w http.ResponseWriter, r *http.Request) {
	q := detailQuery{Slug: r.URL.Query().Get("slug")}
	if err := validator.Validate(q); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	d, err := h.catalog.FetchProductDetails(r.Context(), q.Slug)
	if err != nil {
		httputil.WriteError(w, r, apperrors.Upstream(err), h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: d})
}
