// Package view renders the storefront HTML pages and serves the embedded
// static assets.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/pagination"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page template names.
const (
	PageListing  = "listing"
	PageDetail   = "detail"
	PageCheckout = "checkout"
	PageError    = "error"
)

var funcs = template.FuncMap{
	"totalPages": func(n pagination.Nav) int {
		if n.TotalPages == nil {
			return 0
		}
		return *n.TotalPages
	},
	"inc": func(i int) int { return i + 1 },
}

// Chrome is the data shared by the header and footer.
type Chrome struct {
	Query string
	Year  int
}

// NewChrome returns header/footer data for the current year.
func NewChrome(query string) Chrome {
	return Chrome{Query: query, Year: time.Now().Year()}
}

type listingData struct {
	Chrome Chrome
	*service.ListingPage
}

type detailData struct {
	Chrome Chrome
	*service.ProductPage
}

type errorData struct {
	Chrome   Chrome
	Message  string
	RetryURL string
}

type checkoutData struct {
	Chrome Chrome
}

// Renderer holds the parsed page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page template together with the shared layout.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{PageListing, PageDetail, PageCheckout, PageError} {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Listing renders the product listing page.
func (r *Renderer) Listing(w io.Writer, c Chrome, page *service.ListingPage) error {
	return r.render(w, PageListing, listingData{Chrome: c, ListingPage: page})
}

// Detail renders the product detail page.
func (r *Renderer) Detail(w io.Writer, c Chrome, page *service.ProductPage) error {
	return r.render(w, PageDetail, detailData{Chrome: c, ProductPage: page})
}

// Checkout renders the checkout stub.
func (r *Renderer) Checkout(w io.Writer, c Chrome) error {
	return r.render(w, PageCheckout, checkoutData{Chrome: c})
}

// Error renders message with a Retry link pointing at retryURL.
func (r *Renderer) Error(w io.Writer, c Chrome, message, retryURL string) error {
	return r.render(w, PageError, errorData{Chrome: c, Message: message, RetryURL: retryURL})
}

// render executes into a buffer so a failing template writes nothing.
func (r *Renderer) render(w io.Writer, name string, data any) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Static returns the embedded asset tree, rooted so that "file.svg" and
// "site.css" are top-level entries.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// StaticHandler serves the embedded assets.
func StaticHandler() http.Handler {
	return http.FileServerFS(Static())
}
