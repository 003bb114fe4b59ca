package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/httpclient"
	"github.com/utafrali/storefront/pkg/json"
	"github.com/utafrali/storefront/pkg/logger"
	"github.com/utafrali/storefront/pkg/tracing"
)

// maxBodyBytes caps how much of a response the client will decode.
const maxBodyBytes = 10 << 20

const (
	resourceProducts       = "products"
	resourceProductDetails = "product details"
)

// Client fetches catalog data from the commerce API and normalizes it.
type Client struct {
	baseURL string
	http    httpclient.Doer
	tracer  trace.Tracer
	logger  *slog.Logger
}

// NewClient creates a client for the API rooted at baseURL. doer is usually
// an httpclient.CircuitBreakerClient.
func NewClient(baseURL string, doer httpclient.Doer, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    doer,
		tracer:  tracing.Tracer("github.com/utafrali/storefront/internal/upstream"),
		logger:  logger,
	}
}

// FetchProducts requests one page of the catalog.
func (c *Client) FetchProducts(ctx context.Context, page, limit int) (catalog.ListResult, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	body, err := c.get(ctx, resourceProducts, "/api/v3/products?"+q.Encode())
	if err != nil {
		return catalog.ListResult{}, err
	}

	res := catalog.NormalizeProductList(body)
	normalizeShapeTotal.WithLabelValues("list", string(res.Shape)).Inc()
	logger.WithContext(ctx, c.logger).DebugContext(ctx, "products normalized",
		slog.String("shape", string(res.Shape)),
		slog.Int("count", len(res.Products)),
		slog.Int("page", page),
	)
	return res, nil
}

// FetchProductDetails requests a single product by slug.
func (c *Client) FetchProductDetails(ctx context.Context, slug string) (domain.ProductDetail, error) {
	body, err := c.get(ctx, resourceProductDetails, "/api/v3/products/details?slug="+url.QueryEscape(slug))
	if err != nil {
		return domain.ProductDetail{}, err
	}

	res := catalog.ParseProductDetail(body, slug)
	normalizeShapeTotal.WithLabelValues("detail", string(res.Shape)).Inc()
	logger.WithContext(ctx, c.logger).DebugContext(ctx, "product detail normalized",
		slog.String("shape", string(res.Shape)),
		slog.String("slug", slug),
	)
	return res.Product, nil
}

// get performs a GET against path and decodes the JSON body into a generic value.
func (c *Client) get(ctx context.Context, resource, path string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", resource, err)
	}
	req.Header.Set("Accept", "application/json")

	ctx, span := tracing.StartClientSpan(ctx, c.tracer, "upstream "+resource, req)
	defer span.End()

	start := time.Now()
	body, status, err := c.do(ctx, resource, req)
	requestDuration.WithLabelValues(resource).Observe(time.Since(start).Seconds())
	requestsTotal.WithLabelValues(resource, outcome(err)).Inc()
	tracing.RecordResult(span, status, err)

	if err != nil {
		l := logger.WithContext(ctx, c.logger)
		l.WarnContext(ctx, "upstream request failed",
			slog.String("resource", resource),
			slog.Int("status", status),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, resource string, req *http.Request) (any, int, error) {
	resp, err := c.http.Do(ctx, req)
	if err != nil {
		var statusErr *httpclient.StatusError
		if errors.As(err, &statusErr) {
			return nil, statusErr.StatusCode, &TransportError{Resource: resource, StatusCode: statusErr.StatusCode, Err: err}
		}
		return nil, 0, &TransportError{Resource: resource, Err: err}
	}

	status := resp.StatusCode
	if err := httpclient.CheckResponse(resp); err != nil {
		return nil, status, &TransportError{Resource: resource, StatusCode: status, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := json.DecodeAny(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, status, &TransportError{Resource: resource, Err: ctxErr}
		}
		return nil, status, &ParseError{Resource: resource, Err: err}
	}
	return body, status, nil
}

func outcome(err error) string {
	var parseErr *ParseError
	var transportErr *TransportError
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return outcomeCanceled
	case errors.Is(err, httpclient.ErrCircuitOpen):
		return outcomeCircuitOpen
	case errors.As(err, &parseErr):
		return outcomeParse
	case errors.As(err, &transportErr) && transportErr.StatusCode != 0:
		return outcomeStatus
	default:
		return outcomeNetwork
	}
}
