package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tripbook/internal/domain"
	"tripbook/internal/service"
)

// TripHandler handles HTTP requests for trips.
type TripHandler struct {
	tripService *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// CreateTripRequest is the HTTP request body for creating a trip proposal.
// Numeric form fields arrive as strings, matching the client's form state;
// malformed values fall back to defaults instead of rejecting the proposal.
type CreateTripRequest struct {
	CustomerName        string        `json:"customerName" binding:"required"`
	CustomerPhone       string        `json:"customerPhone,omitempty"`
	VehicleID           string        `json:"vehicleId" binding:"required"`
	ProposedStartDate   time.Time     `json:"proposedStartDate"`
	NumberOfDays        string        `json:"numberOfDays,omitempty"`
	BataPerDay          string        `json:"bataPerDay,omitempty"`
	EstimatedTolls      string        `json:"estimatedTolls,omitempty"`
	Discount            string        `json:"discount,omitempty"`
	RatePerKmOverride   string        `json:"ratePerKmOverride,omitempty"`
	MinKmPerDayOverride string        `json:"minKmPerDayOverride,omitempty"`
	Notes               string        `json:"notes,omitempty"`
	Route               *domain.Route `json:"route,omitempty"`
	EstimatedDistanceKm float64       `json:"estimatedDistanceKm"`
	IsRoundTrip         bool          `json:"isRoundTrip"`
}

// UpdateTripRequest is the HTTP request body for editing a proposal. Absent
// fields keep their current values.
type UpdateTripRequest struct {
	NumberOfDays   *int     `json:"numberOfDays,omitempty"`
	BataPerDay     *float64 `json:"bataPerDay,omitempty"`
	EstimatedTolls *float64 `json:"estimatedTolls,omitempty"`
	Discount       *float64 `json:"discount,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
}

// ConfirmTripRequest is the HTTP request body for confirming a proposal.
type ConfirmTripRequest struct {
	ConfirmedStartTime time.Time  `json:"confirmedStartTime" binding:"required"`
	ConfirmedEndTime   *time.Time `json:"confirmedEndTime,omitempty"`
}

// StartTripRequest is the HTTP request body for starting a confirmed trip.
type StartTripRequest struct {
	OdometerStart   float64   `json:"odometerStart"`
	ActualStartTime time.Time `json:"actualStartTime"`
}

// AddTollRequest is the HTTP request body for recording a toll.
type AddTollRequest struct {
	Amount   float64 `json:"amount"`
	Location string  `json:"location,omitempty"`
}

// AddAdvanceRequest is the HTTP request body for recording an advance payment.
type AddAdvanceRequest struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason,omitempty"`
}

// CompleteTripRequest is the HTTP request body for completing an active trip.
type CompleteTripRequest struct {
	OdometerEnd   float64   `json:"odometerEnd"`
	ActualEndTime time.Time `json:"actualEndTime"`
}

// TripListResponse is the HTTP response for listing trips.
type TripListResponse struct {
	Trips []*domain.Trip `json:"trips"`
	Count int            `json:"count"`
}

// CreateTrip handles POST /v1/trips
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	estimatedDistance := req.EstimatedDistanceKm
	if estimatedDistance == 0 && req.Route != nil {
		estimatedDistance = req.Route.TotalDistanceKm
	}

	trip, err := h.tripService.CreateProposal(c.Request.Context(), service.CreateProposalRequest{
		Form: service.ProposalForm{
			CustomerName:        req.CustomerName,
			CustomerPhone:       req.CustomerPhone,
			VehicleID:           req.VehicleID,
			ProposedStartDate:   req.ProposedStartDate,
			NumberOfDays:        req.NumberOfDays,
			BataPerDay:          req.BataPerDay,
			EstimatedTolls:      req.EstimatedTolls,
			Discount:            req.Discount,
			RatePerKmOverride:   req.RatePerKmOverride,
			MinKmPerDayOverride: req.MinKmPerDayOverride,
			Notes:               req.Notes,
		},
		Route:               req.Route,
		EstimatedDistanceKm: estimatedDistance,
		IsRoundTrip:         req.IsRoundTrip,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, trip)
}

// ListTrips handles GET /v1/trips
func (h *TripHandler) ListTrips(c *gin.Context) {
	var (
		trips []*domain.Trip
		err   error
	)

	if status := c.Query("status"); status != "" {
		switch domain.TripStatus(status) {
		case domain.TripStatusProposed, domain.TripStatusConfirmed, domain.TripStatusActive,
			domain.TripStatusCompleted, domain.TripStatusCancelled:
		default:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown trip status"})
			return
		}
		trips, err = h.tripService.GetTripsByStatus(c.Request.Context(), domain.TripStatus(status))
	} else {
		trips, err = h.tripService.GetAllTrips(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, TripListResponse{Trips: trips, Count: len(trips)})
}

// GetTrip handles GET /v1/trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	trip, err := h.tripService.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, trip)
}

// UpdateTrip handles PATCH /v1/trips/:id
func (h *TripHandler) UpdateTrip(c *gin.Context) {
	var req UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.tripService.UpdateProposal(c.Request.Context(), c.Param("id"), service.UpdateProposalRequest{
		NumberOfDays:   req.NumberOfDays,
		BataPerDay:     req.BataPerDay,
		EstimatedTolls: req.EstimatedTolls,
		Discount:       req.Discount,
		Notes:          req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, trip)
}

// ConfirmTrip handles POST /v1/trips/:id/confirm
func (h *TripHandler) ConfirmTrip(c *gin.Context) {
	var req ConfirmTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.tripService.ConfirmTrip(c.Request.Context(), c.Param("id"), service.ConfirmTripRequest{
		ConfirmedStartTime: req.ConfirmedStartTime,
		ConfirmedEndTime:   req.ConfirmedEndTime,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, trip)
}

// StartTrip handles POST /v1/trips/:id/start
func (h *TripHandler) StartTrip(c *gin.Context) {
	var req StartTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.ActualStartTime.IsZero() {
		req.ActualStartTime = time.Now()
	}

	trip, err := h.tripService.StartTrip(c.Request.Context(), c.Param("id"), service.StartTripRequest{
		OdometerStart:   req.OdometerStart,
		ActualStartTime: req.ActualStartTime,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, trip)
}

// AddToll handles POST /v1/trips/:id/tolls
func (h *TripHandler) AddToll(c *gin.Context) {
	var req AddTollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.tripService.AddTollEntry(c.Request.Context(), c.Param("id"), req.Amount, req.Location)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, trip)
}

// AddAdvance handles POST /v1/trips/:id/advances
func (h *TripHandler) AddAdvance(c *gin.Context) {
	var req AddAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.tripService.AddAdvancePayment(c.Request.Context(), c.Param("id"), req.Amount, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, trip)
}

// CompleteTrip handles POST /v1/trips/:id/complete
func (h *TripHandler) CompleteTrip(c *gin.Context) {
	var req CompleteTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.ActualEndTime.IsZero() {
		req.ActualEndTime = time.Now()
	}

	trip, err := h.tripService.CompleteTrip(c.Request.Context(), c.Param("id"), service.CompleteTripRequest{
		OdometerEnd:   req.OdometerEnd,
		ActualEndTime: req.ActualEndTime,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, trip)
}

// CancelTrip handles POST /v1/trips/:id/cancel
func (h *TripHandler) CancelTrip(c *gin.Context) {
	trip, err := h.tripService.CancelTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, trip)
}

// DeleteTrip handles DELETE /v1/trips/:id
//
// Only proposed and cancelled trips may be deleted; trips that reached
// confirmed keep their record for the earnings history.
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	id := c.Param("id")

	trip, err := h.tripService.GetTrip(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if trip.Status != domain.TripStatusProposed && trip.Status != domain.TripStatusCancelled {
		c.JSON(http.StatusConflict, ErrorResponse{Error: "only proposed or cancelled trips can be deleted"})
		return
	}

	if err := h.tripService.DeleteTrip(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
