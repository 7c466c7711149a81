package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripbook/internal/service"
)

// EarningsHandler handles HTTP requests for the earnings summary.
type EarningsHandler struct {
	earningsService *service.EarningsService
}

// NewEarningsHandler creates a new EarningsHandler.
func NewEarningsHandler(earningsService *service.EarningsService) *EarningsHandler {
	return &EarningsHandler{earningsService: earningsService}
}

// GetSummary handles GET /v1/earnings
func (h *EarningsHandler) GetSummary(c *gin.Context) {
	summary, err := h.earningsService.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, summary)
}
