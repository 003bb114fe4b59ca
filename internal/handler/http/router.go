package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/storefront/internal/config"
	sfmiddleware "github.com/utafrali/storefront/internal/middleware"
	"github.com/utafrali/storefront/internal/view"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/middleware"
)

const (
	serviceName = "storefront"

	// staticMaxAge is the Cache-Control max-age of embedded assets.
	staticMaxAge = 24 * 60 * 60
)

// NewRouter creates a chi router with the storefront pages, the JSON API,
// the /api/v3 proxy and the operational endpoints. ctx bounds the rate
// limiter's background cleanup.
func NewRouter(
	ctx context.Context,
	cfg *config.Config,
	pages *PageHandler,
	api *APIHandler,
	upstream http.Handler,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())

	// Metrics and pprof, restricted to internal networks
	r.With(middleware.IPAllowlist(cfg.PprofAllowedCIDRs, logger)).Handle("/metrics", promhttp.Handler())
	middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)

	r.Group(func(r chi.Router) {
		r.Use(chimw.Compress(5))
		r.Use(chimw.Timeout(cfg.UpstreamTimeout + 5*time.Second))
		r.Use(sfmiddleware.RateLimit(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst, logger))

		// Pages
		r.Get("/", pages.Home)
		r.Get("/product/details", pages.ProductDetails)
		r.Get("/product/{slug}", pages.ProductBySlug)
		r.Get("/checkout", pages.Checkout)

		// Embedded assets, also mounted at the root like a public/ directory
		assets := middleware.CacheControl(staticMaxAge)(view.StaticHandler())
		r.Handle("/static/*", http.StripPrefix("/static", assets))
		r.Handle("/file.svg", assets)
		r.Handle("/globe.svg", assets)

		// Normalized catalog as JSON
		r.Route("/api/storefront", func(r chi.Router) {
			r.Use(middleware.CORS(middleware.CORSConfig{
				AllowedOrigins: cfg.CORSAllowedOrigins,
				ExposedHeaders: []string{middleware.CorrelationHeader},
				Environment:    cfg.Environment,
			}))
			r.Use(middleware.NoStore)

			r.Get("/products", api.ListProducts)
			r.Get("/products/details", api.GetProductDetails)
		})

		// Commerce API passthrough
		r.Handle("/api/v3/*", upstream)
	})

	r.NotFound(pages.NotFound)

	return r
}
