package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/utafrali/storefront/internal/config"
	handler "github.com/utafrali/storefront/internal/handler/http"
	"github.com/utafrali/storefront/internal/proxy"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/internal/upstream"
	"github.com/utafrali/storefront/internal/view"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/httpclient"
	"github.com/utafrali/storefront/pkg/tracing"
)

const serviceVersion = "1.0.0"

// App wires together all dependencies and runs the storefront.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
	stop           context.CancelFunc
}

// NewApp creates a new application instance: tracing, the breaker-guarded
// commerce API client, page rendering, the /api/v3 proxy and health checks.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tracerShutdown, err := tracing.InitTracer(initCtx, tracing.Config{
		ServiceName:    "storefront",
		ServiceVersion: serviceVersion,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Commerce API client, one-shot by default and guarded by a breaker.
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.UpstreamTimeout
	httpCfg.MaxRetries = cfg.UpstreamMaxRetries
	cbCfg := httpclient.DefaultCircuitBreakerConfig("commerce-api")
	cbCfg.MaxRequests = cfg.CBMaxRequests
	cbCfg.Interval = time.Duration(cfg.CBInterval) * time.Second
	cbCfg.Timeout = time.Duration(cfg.CBTimeout) * time.Second
	cbCfg.FailureRatio = cfg.CBFailureRatio
	cbCfg.MinRequests = cfg.CBMinRequests
	breaker := httpclient.NewCircuitBreakerClient(httpclient.New(httpCfg), cbCfg, logger)
	client := upstream.NewClient(cfg.UpstreamBaseURL, breaker, logger)

	images := service.NewImagePolicy(cfg.ImageAllowedHosts)
	if origins := images.Origins(); len(origins) > 0 {
		logger.Info("image origins restricted", slog.Any("origins", origins))
	}
	storefront := service.NewStorefrontService(client, cfg.PageSize, images, logger)

	views, err := view.New()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	proxyCfg := proxy.DefaultConfig(cfg.UpstreamBaseURL)
	proxyCfg.ResponseTimeout = cfg.UpstreamTimeout
	upstreamProxy, err := proxy.New(proxyCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init upstream proxy: %w", err)
	}

	healthHandler := health.NewHandler()
	healthHandler.RegisterNonCritical("upstream", health.TCPDial(cfg.UpstreamHost(), 2*time.Second))
	healthHandler.RegisterNonCritical("circuit_breaker", func(context.Context) error {
		if breaker.State() == gobreaker.StateOpen {
			return fmt.Errorf("circuit %s is open", breaker.Name())
		}
		return nil
	})

	runCtx, stop := context.WithCancel(context.Background())
	router := handler.NewRouter(runCtx, cfg,
		handler.NewPageHandler(storefront, views, storefront.PageSize(), logger),
		handler.NewAPIHandler(client, storefront.PageSize(), logger),
		upstreamProxy,
		healthHandler,
		logger,
	)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.UpstreamTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
		stop:           stop,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
			slog.String("upstream", a.cfg.UpstreamBaseURL),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		a.stop()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops the application in order:
// 1. HTTP server (drain in-flight requests)
// 2. Background workers
// 3. Tracer (flush spans from drained requests)
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.stop()

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
