package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sol-ticker/internal/chart"
	"sol-ticker/internal/domain"
	"sol-ticker/internal/provider"
	"sol-ticker/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

func newTestRouter(t *testing.T) (*gin.Engine, *service.PriceService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tracer := trace.NewNoopTracerProvider().Tracer("handler-test")
	svc := service.NewPriceService(tracer)
	h := New(tracer, svc, 600, 300)

	r := gin.New()
	h.RegisterRoutes(r)
	return r, svc
}

func doGet(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func testSeries() domain.PriceSeries {
	return domain.PriceSeries{
		{Timestamp: time.UnixMilli(1625097600000).UTC(), Price: 35.23},
		{Timestamp: time.UnixMilli(1625184000000).UTC(), Price: 34.5},
	}
}

func TestGetPriceLoading(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doGet(r, "/api/price")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	var body StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.Status != "loading" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestGetPriceSuccess(t *testing.T) {
	r, svc := newTestRouter(t)
	svc.OnPriceUpdate(142.5871, nil)

	w := doGet(r, "/api/price")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body PriceResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Price != 142.5871 || body.Label != "$142.59" || body.Asset != domain.AssetID {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestGetPriceError(t *testing.T) {
	r, svc := newTestRouter(t)
	svc.OnPriceUpdate(0, &provider.FetchError{
		Kind:       provider.KindPrice,
		Failure:    provider.FailureUpstream,
		Message:    "CoinGecko API error: You've exceeded the Rate Limit",
		StatusCode: 429,
	})

	w := doGet(r, "/api/price")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.StatusCode != 429 || body.Kind != "PriceFetchError" || body.Failure != "upstream" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestGetPricePlainError(t *testing.T) {
	r, svc := newTestRouter(t)
	svc.OnPriceUpdate(0, errors.New("boom"))

	w := doGet(r, "/api/price")
	var body ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if w.Code != http.StatusBadGateway || body.Error != "boom" || body.Kind != "" {
		t.Fatalf("unexpected response %d: %s", w.Code, w.Body.String())
	}
}

func TestGetHistory(t *testing.T) {
	r, svc := newTestRouter(t)
	svc.OnHistoryUpdate(testSeries(), nil)

	w := doGet(r, "/api/history")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body HistoryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Days != 30 || len(body.Prices) != 2 || body.Prices[0].Price != 35.23 {
		t.Fatalf("unexpected body: %+v", body)
	}
	if !body.Prices[1].Timestamp.Equal(time.UnixMilli(1625184000000)) {
		t.Fatalf("unexpected timestamp: %v", body.Prices[1].Timestamp)
	}
}

func TestGetChart(t *testing.T) {
	r, svc := newTestRouter(t)
	svc.OnHistoryUpdate(testSeries(), nil)

	w := doGet(r, "/api/chart?width=400&height=200&padding=10")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var layout chart.Layout
	if err := json.Unmarshal(w.Body.Bytes(), &layout); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if layout.Dimensions.Width != 400 || layout.Dimensions.InnerHeight != 180 {
		t.Fatalf("unexpected dimensions: %+v", layout.Dimensions)
	}
	if len(layout.Points) != 2 || layout.Points[0].X != 10 || layout.Points[1].X != 390 {
		t.Fatalf("unexpected points: %+v", layout.Points)
	}
	if layout.PriceLabels[0].Text != "$35.23" || layout.PriceLabels[1].Text != "$34.50" {
		t.Fatalf("unexpected price labels: %+v", layout.PriceLabels)
	}
}

func TestGetChartDefaultsAndEmptySeries(t *testing.T) {
	r, svc := newTestRouter(t)
	svc.OnHistoryUpdate(domain.PriceSeries{}, nil)

	w := doGet(r, "/api/chart")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var layout chart.Layout
	if err := json.Unmarshal(w.Body.Bytes(), &layout); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if layout.Dimensions.Width != 600 || layout.Dimensions.Height != 300 || layout.Dimensions.Padding != 20 {
		t.Fatalf("unexpected defaults: %+v", layout.Dimensions)
	}
	if !layout.Empty() {
		t.Fatalf("expected no points, got %+v", layout.Points)
	}
}

func TestGetChartBadParams(t *testing.T) {
	r, svc := newTestRouter(t)
	svc.OnHistoryUpdate(testSeries(), nil)

	for _, path := range []string{
		"/api/chart?width=abc",
		"/api/chart?width=0",
		"/api/chart?height=100000",
		"/api/chart?padding=-1",
	} {
		if w := doGet(r, path); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, w.Code)
		}
	}
}

func TestGetChartHistoryError(t *testing.T) {
	r, svc := newTestRouter(t)
	svc.OnHistoryUpdate(nil, &provider.FetchError{
		Kind:    provider.KindHistory,
		Failure: provider.FailureUnknownShape,
		Message: "failed to fetch historical data: unknown response format",
	})

	if w := doGet(r, "/api/chart"); w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
	if w := doGet(r, "/api/history"); w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}
