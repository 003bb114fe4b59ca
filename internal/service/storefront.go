package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/mattn/go-runewidth"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/upstream"
	"github.com/utafrali/storefront/pkg/pagination"
)

const (
	// maxTitleWidth is the display width of a card title before truncation.
	maxTitleWidth = 60
	// maxThumbnails caps the thumbnail strip on the detail page.
	maxThumbnails = 6
	// maxSpecRows caps the specification table on the detail page.
	maxSpecRows = 20
)

// Catalog is the upstream data source the service renders from.
type Catalog interface {
	FetchProducts(ctx context.Context, page, limit int) (catalog.ListResult, error)
	FetchProductDetails(ctx context.Context, slug string) (domain.ProductDetail, error)
}

// StorefrontService builds the view models for the storefront pages.
type StorefrontService struct {
	catalog  Catalog
	pageSize int
	images   *ImagePolicy
	logger   *slog.Logger
}

// NewStorefrontService creates a new storefront service.
func NewStorefrontService(c Catalog, pageSize int, images *ImagePolicy, logger *slog.Logger) *StorefrontService {
	if pageSize <= 0 {
		pageSize = pagination.DefaultLimit
	}
	if images == nil {
		images = NewImagePolicy(nil)
	}
	return &StorefrontService{
		catalog:  c,
		pageSize: pageSize,
		images:   images,
		logger:   logger,
	}
}

// PageSize returns the number of products requested per listing page.
func (s *StorefrontService) PageSize() int {
	return s.pageSize
}

// ProductCard is one tile of the listing grid.
type ProductCard struct {
	Title        string
	DisplayTitle string
	Price        string
	ImageURL     string
	Href         string
}

// ListingPage is the view model of the product listing.
type ListingPage struct {
	Cards []ProductCard
	Nav   pagination.Nav
}

// ProductListing fetches one page of products and computes the pagination
// controls for it.
func (s *StorefrontService) ProductListing(ctx context.Context, page int) (*ListingPage, error) {
	if page < 1 {
		page = 1
	}

	res, err := s.catalog.FetchProducts(ctx, page, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	cards := make([]ProductCard, 0, len(res.Products))
	for _, p := range res.Products {
		cards = append(cards, ProductCard{
			Title:        p.Title,
			DisplayTitle: runewidth.Truncate(p.Title, maxTitleWidth, "…"),
			Price:        FormatPrice(p.Price),
			ImageURL:     s.images.Resolve(p.ImageURL),
			Href:         DetailHref(p),
		})
	}

	nav := pagination.Navigate(pagination.Params{Page: page, Limit: s.pageSize}, len(res.Products), res.Meta.TotalPages)
	return &ListingPage{Cards: cards, Nav: nav}, nil
}

// SpecRow is one line of the specification table.
type SpecRow struct {
	Name  string
	Value string
}

// ProductPage is the view model of the product detail page.
type ProductPage struct {
	Slug          string
	Title         string
	Description   string
	Price         string
	DiscountBadge string
	MainImage     string
	Gallery       []string
	Thumbnails    []string
	Specs         []SpecRow
}

// ProductPage fetches a product by slug and lays out its detail page.
func (s *StorefrontService) ProductPage(ctx context.Context, slug string) (*ProductPage, error) {
	p, err := s.catalog.FetchProductDetails(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get product %q: %w", slug, err)
	}

	gallery := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		if img == "" {
			continue
		}
		gallery = append(gallery, s.images.Resolve(img))
	}

	main := domain.PlaceholderImage
	switch {
	case len(gallery) > 0:
		main = gallery[0]
	case p.ImageURL != "":
		main = s.images.Resolve(p.ImageURL)
	}

	var thumbs []string
	if len(gallery) > 1 {
		thumbs = gallery[:min(len(gallery), maxThumbnails)]
	}

	return &ProductPage{
		Slug:          p.Slug,
		Title:         p.Title,
		Description:   p.Description,
		Price:         FormatPrice(p.Price),
		DiscountBadge: DiscountBadge(p.Discount),
		MainImage:     main,
		Gallery:       gallery,
		Thumbnails:    thumbs,
		Specs:         SpecRows(p.Specifications),
	}, nil
}

// DetailHref returns the detail page link for a listing card. The slug is
// preferred over the identifier.
func DetailHref(p domain.ProductSummary) string {
	return "/product/details?slug=" + url.QueryEscape(p.LinkSlug())
}

// UserMessage turns a fetch failure into the text shown on the error view.
// Status failures keep their transport message; anything else gets fallback.
func UserMessage(err error, fallback string) string {
	var te *upstream.TransportError
	if errors.As(err, &te) && te.StatusCode != 0 {
		return te.Error()
	}
	return fallback
}
