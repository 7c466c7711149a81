package geo

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"tripbook/internal/config"
	"tripbook/internal/domain"
)

// Nominatim's usage policy allows at most one request per second. 1.1s keeps
// a margin.
const nominatimMinInterval = 1100 * time.Millisecond

// NominatimClient searches and reverse-geocodes places against a Nominatim
// instance.
type NominatimClient struct {
	baseURL     string
	userAgent   string
	countryCode string
	http        *http.Client
	log         zerolog.Logger

	mu          sync.Mutex
	lastRequest time.Time
}

// NewNominatimClient creates a new NominatimClient.
func NewNominatimClient(cfg config.GeoConfig, log zerolog.Logger) *NominatimClient {
	return &NominatimClient{
		baseURL:     cfg.NominatimBaseURL,
		userAgent:   cfg.UserAgent,
		countryCode: cfg.CountryCode,
		http:        &http.Client{Timeout: cfg.RequestTimeout},
		log:         log,
	}
}

type nominatimResult struct {
	PlaceID     int64  `json:"place_id"`
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Type        string `json:"type"`
	Address     *struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		State   string `json:"state"`
		Country string `json:"country"`
	} `json:"address"`
}

// SearchPlaces runs a free-text place search, limited to the configured
// country, returning at most 8 candidates.
func (c *NominatimClient) SearchPlaces(ctx context.Context, query string) ([]domain.Place, error) {
	if strings.TrimSpace(query) == "" {
		return []domain.Place{}, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", "8")
	params.Set("countrycodes", c.countryCode)

	c.throttle()
	var results []nominatimResult
	if err := getJSON(ctx, c.http, c.baseURL+"/search?"+params.Encode(), c.userAgent, &results); err != nil {
		return nil, err
	}

	places := make([]domain.Place, 0, len(results))
	for _, result := range results {
		places = append(places, result.toPlace())
	}
	return places, nil
}

// ReverseGeocode resolves coordinates to the nearest place. Returns
// (nil, nil) when the service has no answer.
func (c *NominatimClient) ReverseGeocode(ctx context.Context, coords domain.Coordinates) (*domain.Place, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	params.Set("format", "json")
	params.Set("addressdetails", "1")

	c.throttle()
	var result nominatimResult
	if err := getJSON(ctx, c.http, c.baseURL+"/reverse?"+params.Encode(), c.userAgent, &result); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			c.log.Debug().Int("status", statusErr.Status).Msg("reverse geocode miss")
			return nil, nil
		}
		return nil, err
	}

	place := result.toPlace()
	// Keep the caller's coordinates; the service answers with the matched
	// feature's centroid.
	place.Coordinates = coords
	return &place, nil
}

// throttle enforces the minimum interval between requests.
func (c *NominatimClient) throttle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if wait := nominatimMinInterval - time.Since(c.lastRequest); wait > 0 {
		time.Sleep(wait)
	}
	c.lastRequest = time.Now()
}

func (r nominatimResult) toPlace() domain.Place {
	lat, _ := strconv.ParseFloat(r.Lat, 64)
	lon, _ := strconv.ParseFloat(r.Lon, 64)
	return domain.Place{
		ID:          strconv.FormatInt(r.PlaceID, 10),
		DisplayName: r.DisplayName,
		ShortName:   r.shortName(),
		Coordinates: domain.Coordinates{Latitude: lat, Longitude: lon},
		Type:        r.Type,
	}
}

// shortName condenses a display name like "MG Road, Bengaluru, Karnataka,
// India" down to "Bengaluru, Karnataka".
func (r nominatimResult) shortName() string {
	if r.Address != nil {
		city := r.Address.City
		if city == "" {
			city = r.Address.Town
		}
		if city == "" {
			city = r.Address.Village
		}
		if city != "" && r.Address.State != "" {
			return city + ", " + r.Address.State
		}
		if city != "" {
			return city
		}
		if r.Address.State != "" {
			return r.Address.State
		}
	}

	parts := strings.SplitN(r.DisplayName, ",", 3)
	if len(parts) >= 2 {
		return strings.TrimSpace(parts[0] + "," + parts[1])
	}
	return r.DisplayName
}
