package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"sol-ticker/internal/chart"
	"sol-ticker/internal/domain"
	"sol-ticker/internal/provider"
	"sol-ticker/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

const maxCanvasSize = 4096

// PriceResponse is the current price of the tracked asset.
type PriceResponse struct {
	Asset     string    `json:"asset"`
	Symbol    string    `json:"symbol"`
	Currency  string    `json:"currency"`
	Price     float64   `json:"price"`
	Label     string    `json:"label"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HistoryResponse is the 30-day price series, oldest first.
type HistoryResponse struct {
	Asset     string             `json:"asset"`
	Currency  string             `json:"currency"`
	Days      int                `json:"days"`
	Prices    domain.PriceSeries `json:"prices"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// ErrorResponse describes the last failed fetch.
type ErrorResponse struct {
	Error      string `json:"error"`
	Kind       string `json:"kind,omitempty"`
	Failure    string `json:"failure,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
}

// StatusResponse is returned while the first fetch is still pending.
type StatusResponse struct {
	Status string `json:"status"`
}

// GetPrice godoc
// @Summary      Get the current price
// @Description  Returns the most recently fetched USD price of the tracked asset
// @Tags         prices
// @Produce      json
// @Success      200  {object}  PriceResponse
// @Failure      502  {object}  ErrorResponse
// @Failure      503  {object}  StatusResponse
// @Router       /api/price [get]
func (h *Handler) GetPrice(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-price")
	defer span.End()

	state := h.priceService.GetCurrentPrice(ctx)
	span.SetAttributes(attribute.String("price.status", string(state.Status)))

	switch state.Status {
	case service.StatusLoading:
		c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: string(state.Status)})
	case service.StatusError:
		c.JSON(http.StatusBadGateway, newErrorResponse(state.Err))
	default:
		c.JSON(http.StatusOK, PriceResponse{
			Asset:     domain.AssetID,
			Symbol:    domain.AssetSymbol,
			Currency:  domain.Currency,
			Price:     state.Price,
			Label:     chart.FormatPriceLabel(state.Price),
			UpdatedAt: state.UpdatedAt,
		})
	}
}

// GetHistory godoc
// @Summary      Get the 30-day price history
// @Description  Returns the historical series fetched at startup
// @Tags         prices
// @Produce      json
// @Success      200  {object}  HistoryResponse
// @Failure      502  {object}  ErrorResponse
// @Failure      503  {object}  StatusResponse
// @Router       /api/history [get]
func (h *Handler) GetHistory(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-history")
	defer span.End()

	state := h.priceService.GetHistory(ctx)
	span.SetAttributes(attribute.String("history.status", string(state.Status)))

	switch state.Status {
	case service.StatusLoading:
		c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: string(state.Status)})
	case service.StatusError:
		c.JSON(http.StatusBadGateway, newErrorResponse(state.Err))
	default:
		prices := state.Series
		if prices == nil {
			prices = domain.PriceSeries{}
		}
		c.JSON(http.StatusOK, HistoryResponse{
			Asset:     domain.AssetID,
			Currency:  domain.Currency,
			Days:      domain.HistoryDays,
			Prices:    prices,
			UpdatedAt: state.UpdatedAt,
		})
	}
}

// GetChart godoc
// @Summary      Get chart geometry
// @Description  Returns axes, projected points and labels for drawing the history on a canvas
// @Tags         chart
// @Produce      json
// @Param        width    query  int     false  "Canvas width in pixels"   default(600)
// @Param        height   query  int     false  "Canvas height in pixels"  default(300)
// @Param        padding  query  number  false  "Padding in pixels"        default(20)
// @Success      200  {object}  chart.Layout
// @Failure      400  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Failure      503  {object}  StatusResponse
// @Router       /api/chart [get]
func (h *Handler) GetChart(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-chart")
	defer span.End()

	width, ok := canvasParam(c, "width", h.chartWidth)
	if !ok {
		return
	}
	height, ok := canvasParam(c, "height", h.chartHeight)
	if !ok {
		return
	}
	padding := chart.DefaultPadding
	if v := c.Query("padding"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil || p < 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid padding: " + v})
			return
		}
		padding = p
	}
	span.SetAttributes(
		attribute.Int("chart.width", width),
		attribute.Int("chart.height", height),
	)

	layout, state := h.priceService.GetChart(ctx, float64(width), float64(height), padding)
	switch state.Status {
	case service.StatusLoading:
		c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: string(state.Status)})
	case service.StatusError:
		c.JSON(http.StatusBadGateway, newErrorResponse(state.Err))
	default:
		c.JSON(http.StatusOK, layout)
	}
}

func canvasParam(c *gin.Context, name string, def int) (int, bool) {
	v := c.Query(name)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 || n > maxCanvasSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name + ": " + v})
		return 0, false
	}
	return n, true
}

func newErrorResponse(err error) ErrorResponse {
	if err == nil {
		return ErrorResponse{Error: "unknown error"}
	}
	resp := ErrorResponse{Error: err.Error()}
	var fe *provider.FetchError
	if errors.As(err, &fe) {
		resp.Kind = string(fe.Kind)
		resp.Failure = fe.Failure.String()
		resp.StatusCode = fe.StatusCode
	}
	return resp
}
