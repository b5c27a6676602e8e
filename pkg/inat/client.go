// Package inat provides a rate-limited client for the iNaturalist observation API.
package inat

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.inaturalist.org/v1"

// Client issues observation-service calls. Every call passes through a single
// shared rate gate, so the call budget is global across operations.
type Client interface {
	// SpeciesCounts fetches one page of species-with-counts for a place.
	SpeciesCounts(ctx context.Context, q SpeciesCountsQuery) (*SpeciesCountsPage, error)

	// TaxaAtRank fetches one page of taxa at the given rank level.
	TaxaAtRank(ctx context.Context, rankLevel, perPage, page int) (*TaxaPage, error)

	// ObservationHistogram fetches the month-of-year observation histogram
	// for a single taxon. Keys are 1-indexed month numbers; absent months
	// have no key.
	ObservationHistogram(ctx context.Context, q HistogramQuery) (map[int]int, error)
}

// SpeciesCountsQuery selects a species-counts listing page.
type SpeciesCountsQuery struct {
	PlaceID      int
	QualityGrade string
	PerPage      int
	Page         int
}

// HistogramQuery selects a per-taxon monthly histogram.
type HistogramQuery struct {
	TaxonID      int
	PlaceID      int
	QualityGrade string
}

// Option configures the client.
type Option func(*client)

// WithBaseURL overrides the API base URL (primarily for tests).
func WithBaseURL(u string) Option {
	return func(c *client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *client) {
		c.userAgent = ua
	}
}

// WithRateLimit caps outbound calls at calls per period, shared across all
// operations of this client. Burst stays at 1: calls are evenly spaced at
// period/calls, so no trailing window of the period ever holds more than
// calls invocations.
func WithRateLimit(calls int, period time.Duration) Option {
	return func(c *client) {
		if calls <= 0 || period <= 0 {
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(period/time.Duration(calls)), 1)
	}
}

// WithLimiter injects a prebuilt limiter (tests use rate.NewLimiter(rate.Inf, 1)).
func WithLimiter(l *rate.Limiter) Option {
	return func(c *client) {
		c.limiter = l
	}
}

type client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	log        *zap.Logger
}

// NewClient creates a Client with the given options.
func NewClient(opts ...Option) Client {
	c := &client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		userAgent:  "inat-survey/1.0",
		// iNaturalist asks for at most 60 requests per minute.
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		log:     zap.L().Named("inat"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// gate blocks until the shared call budget allows another request, then logs
// the outbound operation. Errors from the wrapped request propagate unchanged
// to the caller; the gate itself only delays.
func (c *client) gate(ctx context.Context, op string, params url.Values) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	c.log.Debug("api call", zap.String("operation", op), zap.String("params", params.Encode()))
	return nil
}
