package geo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"tripbook/internal/config"
	"tripbook/internal/domain"
)

var (
	// ErrTooFewWaypoints is returned when a route is requested with fewer
	// than two waypoints.
	ErrTooFewWaypoints = errors.New("at least 2 waypoints required")

	// ErrNoRoute is returned when the routing service finds no route
	// between the waypoints.
	ErrNoRoute = errors.New("no route found")
)

// OSRMClient computes driving routes between waypoints.
type OSRMClient struct {
	baseURL   string
	userAgent string
	http      *http.Client
	log       zerolog.Logger
}

// NewOSRMClient creates a new OSRMClient.
func NewOSRMClient(cfg config.GeoConfig, log zerolog.Logger) *OSRMClient {
	return &OSRMClient{
		baseURL:   cfg.OSRMBaseURL,
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: cfg.RequestTimeout},
		log:       log,
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
		Legs     []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

// CalculateRoute asks OSRM for a driving route through the waypoints in
// order, mapping each leg onto a segment between consecutive waypoints.
func (c *OSRMClient) CalculateRoute(ctx context.Context, waypoints []domain.Waypoint) (*domain.Route, error) {
	if len(waypoints) < 2 {
		return nil, ErrTooFewWaypoints
	}

	coords := make([]string, len(waypoints))
	for i, wp := range waypoints {
		coords[i] = fmt.Sprintf("%f,%f", wp.Place.Coordinates.Longitude, wp.Place.Coordinates.Latitude)
	}
	url := fmt.Sprintf("%s/route/v1/driving/%s?overview=false&steps=false", c.baseURL, strings.Join(coords, ";"))

	var resp osrmResponse
	if err := getJSONWithRetry(ctx, c.http, url, c.userAgent, &resp); err != nil {
		return nil, err
	}
	if resp.Code != "Ok" || len(resp.Routes) == 0 {
		return nil, ErrNoRoute
	}

	osrmRoute := resp.Routes[0]
	segments := make([]domain.RouteSegment, 0, len(osrmRoute.Legs))
	for i, leg := range osrmRoute.Legs {
		if i+1 >= len(waypoints) {
			break
		}
		segments = append(segments, domain.RouteSegment{
			From:            waypoints[i],
			To:              waypoints[i+1],
			DistanceKm:      leg.Distance / 1000,
			DurationMinutes: leg.Duration / 60,
		})
	}

	return &domain.Route{
		Waypoints:            waypoints,
		Segments:             segments,
		TotalDistanceKm:      osrmRoute.Distance / 1000,
		TotalDurationMinutes: osrmRoute.Duration / 60,
	}, nil
}

// DistanceBetween returns the driving distance and duration between two
// points.
func (c *OSRMClient) DistanceBetween(ctx context.Context, start, end domain.Coordinates) (distanceKm, durationMinutes float64, err error) {
	url := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=false",
		c.baseURL, start.Longitude, start.Latitude, end.Longitude, end.Latitude)

	var resp osrmResponse
	if err := getJSONWithRetry(ctx, c.http, url, c.userAgent, &resp); err != nil {
		return 0, 0, err
	}
	if resp.Code != "Ok" || len(resp.Routes) == 0 {
		return 0, 0, ErrNoRoute
	}

	return resp.Routes[0].Distance / 1000, resp.Routes[0].Duration / 60, nil
}
