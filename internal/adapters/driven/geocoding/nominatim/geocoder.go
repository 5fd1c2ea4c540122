// Package nominatim provides a geocoder adapter for Nominatim-compatible servers.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driven"
	"github.com/custodia-labs/wayfinder-cli/internal/logger"
)

// Ensure Geocoder implements the interface.
var _ driven.Geocoder = (*Geocoder)(nil)

var log = logger.Named("nominatim")

// Default configuration values.
const (
	DefaultBaseURL           = "https://nominatim.openstreetmap.org"
	DefaultUserAgent         = "wayfinder-cli"
	DefaultLanguage          = "en"
	DefaultRequestsPerSecond = 1.0
	DefaultTimeout           = 10 * time.Second
	DefaultSearchLimit       = 5
	maxSearchLimit           = 40
)

// Config holds configuration for the Nominatim geocoder.
type Config struct {
	// BaseURL is the Nominatim server base URL.
	BaseURL string

	// UserAgent identifies the application. The public server requires one.
	UserAgent string

	// Language is sent as Accept-Language.
	Language string

	// RequestsPerSecond throttles outgoing requests (default: 1, the public usage policy).
	RequestsPerSecond float64

	// Timeout is the per-request timeout.
	Timeout time.Duration
}

// Geocoder resolves addresses using the Nominatim API.
type Geocoder struct {
	client    *http.Client
	baseURL   string
	userAgent string
	language  string
	limiter   *RateLimiter
}

// nominatimResponse is a single Nominatim result.
// Coordinates are returned as strings.
type nominatimResponse struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Error       string `json:"error,omitempty"`
}

// NewGeocoder creates a new Nominatim geocoder.
func NewGeocoder(cfg Config) *Geocoder {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Geocoder{
		client:    &http.Client{Timeout: cfg.Timeout},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		language:  cfg.Language,
		limiter:   NewRateLimiter(cfg.RequestsPerSecond),
	}
}

// Reverse returns the display name for a coordinate.
// An "Unable to geocode" answer yields an empty address.
func (g *Geocoder) Reverse(ctx context.Context, coord domain.Coordinate) (string, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coord.Lng, 'f', -1, 64))

	var result nominatimResponse
	if err := g.get(ctx, "/reverse", params, &result); err != nil {
		return "", err
	}
	if result.Error != "" {
		log.Debug("reverse %s: %s", coord, result.Error)
		return "", nil
	}
	return result.DisplayName, nil
}

// Search returns places matching query, best match first.
func (g *Geocoder) Search(ctx context.Context, query string, limit int) ([]domain.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))

	var results []nominatimResponse
	if err := g.get(ctx, "/search", params, &results); err != nil {
		return nil, err
	}

	places := make([]domain.Place, 0, len(results))
	for _, r := range results {
		coord, err := parseLatLon(r.Lat, r.Lon)
		if err != nil {
			log.Debug("skipping result %q: %v", r.DisplayName, err)
			continue
		}
		places = append(places, domain.NewPlace(coord, r.DisplayName))
	}
	return places, nil
}

// get performs a throttled GET and decodes the JSON body into out.
func (g *Geocoder) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrGeocodeFailure, err)
	}

	reqURL := g.baseURL + path + "?" + params.Encode()
	log.Debug("GET %s", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: create request: %w", domain.ErrGeocodeFailure, err)
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept-Language", g.language)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: send request: %w", domain.ErrGeocodeFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		g.limiter.RecordRateLimitError(parseRetryAfter(resp.Header.Get("Retry-After")))
		return fmt.Errorf("%w: rate limited", domain.ErrGeocodeFailure)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", domain.ErrGeocodeFailure, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", domain.ErrGeocodeFailure, err)
	}
	return nil
}

func parseLatLon(lat, lon string) (domain.Coordinate, error) {
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("parse lat: %w", err)
	}
	lo, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("parse lon: %w", err)
	}
	c := domain.Coordinate{Lat: la, Lng: lo}
	if !c.Valid() {
		return domain.Coordinate{}, fmt.Errorf("coordinate out of range: %s", c)
	}
	return c, nil
}

// parseRetryAfter reads a Retry-After header in seconds. HTTP dates are ignored.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
