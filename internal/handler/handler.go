package handler

import (
	"sol-ticker/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type Handler struct {
	tracer       trace.Tracer
	priceService *service.PriceService
	chartWidth   int
	chartHeight  int
}

// New creates the API handlers. chartWidth and chartHeight are the canvas
// size used by /api/chart when the request does not specify one.
func New(tracer trace.Tracer, priceService *service.PriceService, chartWidth, chartHeight int) *Handler {
	return &Handler{
		tracer:       tracer,
		priceService: priceService,
		chartWidth:   chartWidth,
		chartHeight:  chartHeight,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/api/price", h.GetPrice)
	r.GET("/api/history", h.GetHistory)
	r.GET("/api/chart", h.GetChart)
}
