// Package osrm provides a routing engine adapter for OSRM-compatible servers.
package osrm

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

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driven/geom"
	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driven"
	"github.com/custodia-labs/wayfinder-cli/internal/logger"
)

// Ensure Engine implements the interface.
var _ driven.RoutingEngine = (*Engine)(nil)

var log = logger.Named("osrm")

// Default configuration values.
const (
	DefaultBaseURL = "https://router.project-osrm.org"
	DefaultProfile = domain.ProfileDriving
	DefaultTimeout = 30 * time.Second

	// maxErrorBody caps how much of an error response is kept for messages.
	maxErrorBody = 512
)

// Config holds configuration for the OSRM routing engine.
type Config struct {
	// BaseURL is the OSRM server base URL (default: https://router.project-osrm.org).
	BaseURL string

	// Profile selects the travel mode in the request path (default: driving).
	Profile domain.TravelProfile

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// UserAgent is sent with every request when set.
	UserAgent string
}

// Engine computes routes using the OSRM route service.
type Engine struct {
	client    *http.Client
	baseURL   string
	profile   domain.TravelProfile
	userAgent string
}

// routeResponse is the OSRM route service response format.
type routeResponse struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Routes  []route `json:"routes"`
}

type route struct {
	Geometry *geojson.Geometry `json:"geometry"`
	Distance float64           `json:"distance"`
	Duration float64           `json:"duration"`
}

// NewEngine creates a new OSRM routing engine.
func NewEngine(cfg Config) *Engine {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if !cfg.Profile.IsValid() {
		cfg.Profile = DefaultProfile
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Engine{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		profile:   cfg.Profile,
		userAgent: cfg.UserAgent,
	}
}

// Route returns the fastest route between two coordinates.
//
// Failures are *domain.RouteError: NotFound when a 2xx answer has no
// routes, TransportFailure for network errors, non-2xx statuses and bad bodies.
func (e *Engine) Route(ctx context.Context, from, to domain.Coordinate) (*driven.RoutedPath, error) {
	reqURL := e.routeURL(from, to)
	log.Debug("GET %s", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, transportError(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if e.userAgent != "" {
		req.Header.Set("User-Agent", e.userAgent)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, transportError(fmt.Errorf("send request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Any non-2xx status is a transport failure, including OSRM's
		// 400 NoRoute. Only a 2xx answer without routes means not found.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var parsed routeResponse
		if json.Unmarshal(body, &parsed) == nil && parsed.Code != "" {
			return nil, transportError(fmt.Errorf("osrm error (status %d): %s: %s", resp.StatusCode, parsed.Code, parsed.Message))
		}
		return nil, transportError(fmt.Errorf("osrm error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var parsed routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, transportError(fmt.Errorf("decode response: %w", err))
	}

	if len(parsed.Routes) == 0 {
		return nil, domain.NewRouteError(domain.RouteErrorNotFound, nil)
	}

	best := parsed.Routes[0]
	if best.Geometry == nil {
		return nil, domain.NewRouteError(domain.RouteErrorNotFound, domain.ErrInvalidGeometry)
	}
	line, ok := best.Geometry.Coordinates.(orb.LineString)
	if !ok {
		return nil, transportError(fmt.Errorf("unexpected geometry type %q", best.Geometry.Type))
	}

	log.Debug("route: %d points, %.0fm, %.0fs", len(line), best.Distance, best.Duration)

	return &driven.RoutedPath{
		Geometry:        geom.RouteGeometry(line),
		DistanceMeters:  best.Distance,
		DurationSeconds: best.Duration,
	}, nil
}

// routeURL builds /route/v1/{profile}/{lng1},{lat1};{lng2},{lat2}.
func (e *Engine) routeURL(from, to domain.Coordinate) string {
	coords := formatCoord(from) + ";" + formatCoord(to)
	query := url.Values{
		"overview":   {"full"},
		"geometries": {"geojson"},
	}
	return fmt.Sprintf("%s/route/v1/%s/%s?%s", e.baseURL, e.profile, coords, query.Encode())
}

// Profile returns the travel profile requested from the server.
func (e *Engine) Profile() domain.TravelProfile {
	return e.profile
}

func formatCoord(c domain.Coordinate) string {
	return strconv.FormatFloat(c.Lng, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lat, 'f', -1, 64)
}

func transportError(err error) error {
	return domain.NewRouteError(domain.RouteErrorTransport, err)
}
