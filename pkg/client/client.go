// Package client provides the core Unleashed API HTTP client together with
// the resource, item, and detail clients built on top of it.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/upOwa/unleashed-py/pkg/endpoint"
	"github.com/upOwa/unleashed-py/pkg/signature"
)

// DefaultBaseURL is the production Unleashed API address.
const DefaultBaseURL = "https://api.unleashedsoftware.com"

// Request headers required by the Unleashed API.
const (
	HeaderAuthID        = "api-auth-id"
	HeaderAuthSignature = "api-auth-signature"
)

// Prometheus metrics for Unleashed client operations.
var (
	unleashedRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "unleashed_requests_total",
		Help: "Total Unleashed requests by resource and status",
	}, []string{"resource", "status"})

	unleashedRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "unleashed_request_duration_seconds",
		Help:    "Unleashed request duration in seconds by resource",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"resource"})

	unleashedErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "unleashed_errors_total",
		Help: "Total Unleashed errors by class",
	}, []string{"class"})

	unleashedPagesFetchedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "unleashed_pages_fetched_total",
		Help: "Total list pages fetched by resource",
	}, []string{"resource"})
)

// Config holds the client configuration.
type Config struct {
	// BaseURL is the API root address.
	BaseURL string

	// AuthID is the account's api-auth-id assigned by Unleashed.
	AuthID string

	// AuthSignature is the account's shared secret used to sign requests.
	AuthSignature string

	// Timeout bounds each HTTP request.
	Timeout time.Duration
}

// DefaultConfig returns a safe default configuration for the given
// credentials, pointing at the production API.
func DefaultConfig(authID, authSignature string) Config {
	return Config{
		BaseURL:       DefaultBaseURL,
		AuthID:        authID,
		AuthSignature: authSignature,
		Timeout:       30 * time.Second,
	}
}

// Client is the core Unleashed API client. It holds credentials fixed at
// construction and builds a fresh immutable signed request for every call;
// no address or header state survives between requests.
//
// Pagination traversals are strictly sequential and a single logical
// operation must not be shared across goroutines.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger
}

// New creates a new Unleashed client.
func New(cfg Config) (*Client, error) {
	if cfg.AuthID == "" {
		return nil, fmt.Errorf("auth id is required")
	}
	if cfg.AuthSignature == "" {
		return nil, fmt.Errorf("auth signature is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	// Credentials must survive ASCII signing; fail at construction rather
	// than on the first request.
	if _, err := signature.Sign("", cfg.AuthSignature); err != nil {
		return nil, fmt.Errorf("validate credentials: %w", err)
	}

	logger := log.With().Str("component", "unleashed-client").Logger()

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		config: cfg,
		logger: logger,
	}, nil
}

// signedRequest is the immutable per-request descriptor: the fully rendered
// address and the signature header value covering the filter string.
type signedRequest struct {
	url       string
	signature string
	resource  string
}

// buildRequest derives a signed request from the endpoint descriptor and
// page. Pure: same descriptor, page, and credentials always yield the same
// value. The signature covers only the filter string, so it is identical
// across pages even though every page renders a different address.
func (c *Client) buildRequest(desc endpoint.Descriptor, page *int) (signedRequest, error) {
	sig, err := signature.Sign(desc.Filter.String(), c.config.AuthSignature)
	if err != nil {
		return signedRequest{}, err
	}
	return signedRequest{
		url:       desc.URL(page),
		signature: sig,
		resource:  desc.Resource,
	}, nil
}

// roundTrip issues the signed request. Transport failures surface as
// *TransportError; the response status is not inspected here.
func (c *Client) roundTrip(ctx context.Context, method string, sr signedRequest, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, sr.url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderAuthID, c.config.AuthID)
	req.Header.Set(HeaderAuthSignature, sr.signature)

	c.logger.Debug().
		Str("resource", sr.resource).
		Str("method", method).
		Str("url", sr.url).
		Msg("Executing Unleashed request")

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	unleashedRequestDuration.WithLabelValues(sr.resource).Observe(time.Since(startTime).Seconds())

	if err != nil {
		c.logger.Error().Err(err).Str("url", sr.url).Msg("HTTP request failed")
		unleashedErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		unleashedRequestsTotal.WithLabelValues(sr.resource, "network_error").Inc()
		return nil, &TransportError{URL: sr.url, Err: err}
	}

	unleashedRequestsTotal.WithLabelValues(sr.resource, fmt.Sprintf("%d", resp.StatusCode)).Inc()
	return resp, nil
}

// do issues the signed request and enforces the 2xx contract. Any non-2xx
// status is a *StatusError; the caller never sees a body for one.
func (c *Client) do(ctx context.Context, method string, sr signedRequest, body io.Reader) (*http.Response, error) {
	resp, err := c.roundTrip(ctx, method, sr, body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Resource:   sr.resource,
		}
		unleashedErrorsTotal.WithLabelValues(string(statusErr.Class())).Inc()
		c.logger.Warn().
			Str("resource", sr.resource).
			Int("status", resp.StatusCode).
			Str("error_class", string(statusErr.Class())).
			Msg("Unleashed request error")
		resp.Body.Close()
		return nil, statusErr
	}

	return resp, nil
}

// get builds a fresh signed request for the descriptor and page and issues
// a GET.
func (c *Client) get(ctx context.Context, desc endpoint.Descriptor, page *int) (*http.Response, error) {
	sr, err := c.buildRequest(desc, page)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodGet, sr, nil)
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}
