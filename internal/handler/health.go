package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthResponse reports liveness plus the state of each widget section.
type HealthResponse struct {
	Status  string `json:"status"`
	Price   string `json:"price"`
	History string `json:"history"`
}

// Health godoc
// @Summary      Health check
// @Description  Returns the health status of the service and whether price data has loaded
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	snap := h.priceService.Snapshot()
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Price:   string(snap.Price.Status),
		History: string(snap.History.Status),
	})
}
