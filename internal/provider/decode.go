package provider

import (
	"math"
	"time"

	"sol-ticker/internal/domain"

	"github.com/tidwall/gjson"
)

const maxSnippetBytes = 200

// decodeCurrentPrice matches {"<asset>": {"usd": number}}.
func decodeCurrentPrice(body []byte) (float64, bool) {
	usd := gjson.GetBytes(body, domain.AssetID+"."+domain.Currency)
	if usd.Type != gjson.Number {
		return 0, false
	}
	price := usd.Float()
	if !validPrice(price) {
		return 0, false
	}
	return price, true
}

// decodeHistoricalPrices matches {"prices": [[epochMillis, price], ...]}.
// A single malformed pair rejects the whole body.
func decodeHistoricalPrices(body []byte) (domain.PriceSeries, bool) {
	prices := gjson.GetBytes(body, "prices")
	if !prices.IsArray() {
		return nil, false
	}

	pairs := prices.Array()
	series := make(domain.PriceSeries, 0, len(pairs))
	for _, pair := range pairs {
		if !pair.IsArray() {
			return nil, false
		}
		v := pair.Array()
		if len(v) != 2 || v[0].Type != gjson.Number || v[1].Type != gjson.Number {
			return nil, false
		}
		price := v[1].Float()
		if !validPrice(price) {
			return nil, false
		}
		series = append(series, domain.PricePoint{
			Timestamp: time.UnixMilli(v[0].Int()),
			Price:     price,
		})
	}
	return series, true
}

// decodeUpstreamError matches {"status": {"error_code": number, "error_message": string}}.
func decodeUpstreamError(body []byte) (*UpstreamError, bool) {
	status := gjson.GetBytes(body, "status")
	if !status.IsObject() {
		return nil, false
	}
	code := status.Get("error_code")
	msg := status.Get("error_message")
	if code.Type != gjson.Number || msg.Type != gjson.String {
		return nil, false
	}
	return &UpstreamError{Code: int(code.Int()), Message: msg.String()}, true
}

// validPrice rejects negatives and literals that overflow float64.
func validPrice(p float64) bool {
	return p >= 0 && !math.IsInf(p, 0) && !math.IsNaN(p)
}

func snippet(body []byte) string {
	if len(body) > maxSnippetBytes {
		return string(body[:maxSnippetBytes]) + "..."
	}
	return string(body)
}
