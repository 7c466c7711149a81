package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripbook/internal/domain"
	"tripbook/internal/service"
)

// SettingsHandler handles HTTP requests for driver settings.
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// SaveSettingsRequest is the HTTP request body for saving driver settings.
type SaveSettingsRequest struct {
	Name              string  `json:"name"`
	Phone             string  `json:"phone"`
	DefaultBataPerDay float64 `json:"defaultBataPerDay" binding:"gte=0"`
}

// GetSettings handles GET /v1/settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, settings)
}

// SaveSettings handles PUT /v1/settings
func (h *SettingsHandler) SaveSettings(c *gin.Context) {
	var req SaveSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	settings := &domain.DriverSettings{
		Name:              req.Name,
		Phone:             req.Phone,
		DefaultBataPerDay: req.DefaultBataPerDay,
	}
	if err := h.settingsService.SaveSettings(c.Request.Context(), settings); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, settings)
}
