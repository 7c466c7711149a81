package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripbook/internal/domain"
	"tripbook/internal/service"
)

// VehicleHandler handles HTTP requests for the vehicle registry.
type VehicleHandler struct {
	vehicleService *service.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicleService *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// VehicleRequest is the HTTP request body for creating or updating a vehicle.
// Rates arrive as form strings, like the trip proposal's numeric fields.
type VehicleRequest struct {
	Name        string `json:"name" binding:"required"`
	CarSize     string `json:"carSize" binding:"required,oneof=Hatchback Sedan SUV MUV Luxury"`
	FuelType    string `json:"fuelType" binding:"required,oneof=Petrol Diesel CNG Electric Hybrid"`
	ACOption    string `json:"acOption" binding:"required,oneof=AC Non-AC"`
	MinKmPerDay string `json:"minKmPerDay,omitempty"`
	RatePerKm   string `json:"ratePerKm,omitempty"`
}

// VehicleListResponse is the HTTP response for listing vehicles.
type VehicleListResponse struct {
	Vehicles []*domain.Vehicle `json:"vehicles"`
	Count    int               `json:"count"`
}

func (r VehicleRequest) toForm() service.VehicleForm {
	return service.VehicleForm{
		Name:        r.Name,
		CarSize:     domain.CarSize(r.CarSize),
		FuelType:    domain.FuelType(r.FuelType),
		ACOption:    domain.ACOption(r.ACOption),
		MinKmPerDay: r.MinKmPerDay,
		RatePerKm:   r.RatePerKm,
	}
}

// CreateVehicle handles POST /v1/vehicles
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	vehicle, err := h.vehicleService.AddVehicle(c.Request.Context(), req.toForm())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, vehicle)
}

// ListVehicles handles GET /v1/vehicles
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	vehicles, err := h.vehicleService.GetAllVehicles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, VehicleListResponse{Vehicles: vehicles, Count: len(vehicles)})
}

// GetVehicle handles GET /v1/vehicles/:id
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicle, err := h.vehicleService.GetVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, vehicle)
}

// UpdateVehicle handles PUT /v1/vehicles/:id
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Request.Context(), c.Param("id"), req.toForm())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, vehicle)
}

// DeleteVehicle handles DELETE /v1/vehicles/:id
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	if err := h.vehicleService.DeleteVehicle(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
