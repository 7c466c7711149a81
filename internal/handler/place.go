package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tripbook/internal/domain"
	"tripbook/internal/geo"
	tbredis "tripbook/internal/redis"
)

// PlaceHandler handles HTTP requests for place search and route calculation.
type PlaceHandler struct {
	nominatim *geo.NominatimClient
	osrm      *geo.OSRMClient
	recent    *tbredis.RecentSearchStore
}

// NewPlaceHandler creates a new PlaceHandler. recent may be nil when Redis is
// not configured.
func NewPlaceHandler(nominatim *geo.NominatimClient, osrm *geo.OSRMClient, recent *tbredis.RecentSearchStore) *PlaceHandler {
	return &PlaceHandler{
		nominatim: nominatim,
		osrm:      osrm,
		recent:    recent,
	}
}

// PlaceListResponse is the HTTP response for place search and recent searches.
type PlaceListResponse struct {
	Places []*domain.Place `json:"places"`
	Count  int             `json:"count"`
}

// CalculateRouteRequest is the HTTP request body for route calculation.
type CalculateRouteRequest struct {
	Waypoints []domain.Waypoint `json:"waypoints" binding:"required"`
}

// SearchPlaces handles GET /v1/places/search?q=
func (h *PlaceHandler) SearchPlaces(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "query parameter q is required"})
		return
	}

	places, err := h.nominatim.SearchPlaces(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]*domain.Place, len(places))
	for i := range places {
		results[i] = &places[i]
	}
	respondJSON(c, http.StatusOK, PlaceListResponse{Places: results, Count: len(results)})
}

// ReverseGeocode handles GET /v1/places/reverse?lat=&lon=
func (h *PlaceHandler) ReverseGeocode(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "query parameters lat and lon are required"})
		return
	}

	place, err := h.nominatim.ReverseGeocode(c.Request.Context(), domain.Coordinates{Latitude: lat, Longitude: lon})
	if err != nil {
		respondError(c, err)
		return
	}
	if place == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no place found at coordinates"})
		return
	}
	respondJSON(c, http.StatusOK, place)
}

// AddRecentSearch handles POST /v1/places/recent
//
// The client calls this when the driver picks a search result, so the place
// lands at the head of the recent list.
func (h *PlaceHandler) AddRecentSearch(c *gin.Context) {
	if h.recent == nil {
		c.Status(http.StatusNoContent)
		return
	}

	var place domain.Place
	if err := c.ShouldBindJSON(&place); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.recent.Add(c.Request.Context(), &place); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListRecentSearches handles GET /v1/places/recent
func (h *PlaceHandler) ListRecentSearches(c *gin.Context) {
	if h.recent == nil {
		respondJSON(c, http.StatusOK, PlaceListResponse{Places: []*domain.Place{}, Count: 0})
		return
	}

	places, err := h.recent.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, PlaceListResponse{Places: places, Count: len(places)})
}

// ClearRecentSearches handles DELETE /v1/places/recent
func (h *PlaceHandler) ClearRecentSearches(c *gin.Context) {
	if h.recent != nil {
		if err := h.recent.Clear(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
	}
	c.Status(http.StatusNoContent)
}

// CalculateRoute handles POST /v1/routes
func (h *PlaceHandler) CalculateRoute(c *gin.Context) {
	var req CalculateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	route, err := h.osrm.CalculateRoute(c.Request.Context(), req.Waypoints)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, route)
}
