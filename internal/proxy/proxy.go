package proxy

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	nethttputil "net/http/httputil"
	"net/url"
	"time"

	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/logger"
)

// Config controls the upstream transport.
type Config struct {
	Target          string
	DialTimeout     time.Duration
	ResponseTimeout time.Duration
	IdleTimeout     time.Duration
	MaxIdleConns    int
}

// DefaultConfig returns transport settings for target.
func DefaultConfig(target string) Config {
	return Config{
		Target:          target,
		DialTimeout:     5 * time.Second,
		ResponseTimeout: 30 * time.Second,
		IdleTimeout:     90 * time.Second,
		MaxIdleConns:    100,
	}
}

// UpstreamProxy forwards requests unchanged to the commerce API origin.
type UpstreamProxy struct {
	target *url.URL
	proxy  *nethttputil.ReverseProxy
	logger *slog.Logger
}

// New creates a reverse proxy to cfg.Target. Request paths and queries are
// kept as they are, so /api/v3/products maps to {target}/api/v3/products.
func New(cfg Config, logger *slog.Logger) (*UpstreamProxy, error) {
	target, err := url.Parse(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("parse proxy target: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("proxy target %q is not absolute", cfg.Target)
	}

	p := &UpstreamProxy{target: target, logger: logger}
	p.proxy = &nethttputil.ReverseProxy{
		Rewrite: func(pr *nethttputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           (&net.Dialer{Timeout: cfg.DialTimeout}).DialContext,
			MaxIdleConns:          cfg.MaxIdleConns,
			MaxIdleConnsPerHost:   cfg.MaxIdleConns,
			IdleConnTimeout:       cfg.IdleTimeout,
			ResponseHeaderTimeout: cfg.ResponseTimeout,
			TLSHandshakeTimeout:   10 * time.Second,
		},
		ErrorHandler: p.errorHandler,
	}

	logger.Info("registered upstream proxy", slog.String("target", target.String()))
	return p, nil
}

// ServeHTTP implements http.Handler.
func (p *UpstreamProxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.proxy.ServeHTTP(w, r)
}

// errorHandler answers with a JSON 502 unless the client has already gone.
func (p *UpstreamProxy) errorHandler(w http.ResponseWriter, r *http.Request, err error) {
	if r.Context().Err() != nil {
		logger.WithContext(r.Context(), p.logger).DebugContext(r.Context(), "proxy request canceled",
			slog.String("path", r.URL.Path),
		)
		return
	}
	httputil.WriteError(w, r, apperrors.Upstream(fmt.Errorf("proxy to %s: %w", p.target.Host, err)), p.logger)
}
