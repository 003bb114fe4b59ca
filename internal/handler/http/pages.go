package http

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/internal/view"
	"github.com/utafrali/storefront/pkg/logger"
	"github.com/utafrali/storefront/pkg/pagination"
)

// Storefront builds the page view models.
type Storefront interface {
	ProductListing(ctx context.Context, page int) (*service.ListingPage, error)
	ProductPage(ctx context.Context, slug string) (*service.ProductPage, error)
}

// PageHandler serves the HTML pages.
type PageHandler struct {
	storefront Storefront
	views      *view.Renderer
	pageSize   int
	logger     *slog.Logger
}

// NewPageHandler creates a new page handler.
func NewPageHandler(sf Storefront, views *view.Renderer, pageSize int, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		storefront: sf,
		views:      views,
		pageSize:   pageSize,
		logger:     logger,
	}
}

// Home handles GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r, h.pageSize)
	chrome := view.NewChrome(r.URL.Query().Get("q"))

	page, err := h.storefront.ProductListing(r.Context(), params.Page)
	if err != nil {
		h.fetchFailed(w, r, chrome, err, "Failed to fetch products")
		return
	}

	h.write(w, r, http.StatusOK, func(buf *bytes.Buffer) error {
		return h.views.Listing(buf, chrome, page)
	})
}

// ProductDetails handles GET /product/details?slug=
func (h *PageHandler) ProductDetails(w http.ResponseWriter, r *http.Request) {
	h.product(w, r, r.URL.Query().Get("slug"))
}

// ProductBySlug handles GET /product/{slug}
func (h *PageHandler) ProductBySlug(w http.ResponseWriter, r *http.Request) {
	h.product(w, r, chi.URLParam(r, "slug"))
}

func (h *PageHandler) product(w http.ResponseWriter, r *http.Request, slug string) {
	chrome := view.NewChrome(r.URL.Query().Get("q"))

	if slug == "" {
		h.write(w, r, http.StatusBadRequest, func(buf *bytes.Buffer) error {
			return h.views.Error(buf, chrome, "No product selected", "/")
		})
		return
	}

	page, err := h.storefront.ProductPage(r.Context(), slug)
	if err != nil {
		h.fetchFailed(w, r, chrome, err, "Failed to load product")
		return
	}

	h.write(w, r, http.StatusOK, func(buf *bytes.Buffer) error {
		return h.views.Detail(buf, chrome, page)
	})
}

// Checkout handles GET /checkout
func (h *PageHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, http.StatusOK, func(buf *bytes.Buffer) error {
		return h.views.Checkout(buf, view.NewChrome(""))
	})
}

// NotFound renders the error view for unknown pages.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, http.StatusNotFound, func(buf *bytes.Buffer) error {
		return h.views.Error(buf, view.NewChrome(""), "Page not found", "/")
	})
}

// fetchFailed renders the error view with a Retry link to the same URL.
func (h *PageHandler) fetchFailed(w http.ResponseWriter, r *http.Request, chrome view.Chrome, err error, fallback string) {
	if r.Context().Err() != nil {
		return
	}

	logger.WithContext(r.Context(), h.logger).WarnContext(r.Context(), "page data unavailable",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)

	msg := service.UserMessage(err, fallback)
	h.write(w, r, http.StatusBadGateway, func(buf *bytes.Buffer) error {
		return h.views.Error(buf, chrome, msg, r.URL.RequestURI())
	})
}

// write renders into a buffer first so template failures become a plain 500.
func (h *PageHandler) write(w http.ResponseWriter, r *http.Request, status int, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		logger.WithContext(r.Context(), h.logger).ErrorContext(r.Context(), "failed to render page",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
