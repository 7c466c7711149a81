package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripbook/internal/geo"
	"tripbook/internal/repository"
	"tripbook/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, geo.ErrNoRoute):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidTripID),
		errors.Is(err, service.ErrInvalidVehicleID),
		errors.Is(err, service.ErrInvalidVehicleRates),
		errors.Is(err, service.ErrOdometerBeforeStart),
		errors.Is(err, geo.ErrTooFewWaypoints):
		return http.StatusBadRequest

	// Conflict errors: the trip is not in a status that permits the
	// requested transition, or someone else changed it first
	case errors.Is(err, service.ErrTripNotProposed),
		errors.Is(err, service.ErrTripNotConfirmed),
		errors.Is(err, service.ErrTripNotActive),
		errors.Is(err, service.ErrTripCompleted),
		errors.Is(err, repository.ErrStaleUpdate):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
