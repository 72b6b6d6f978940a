package provider

import (
	"context"
	"fmt"
	"net/http"

	"sol-ticker/internal/domain"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const coingeckoBaseURL = "https://api.coingecko.com/api/v3"

// CoinGeckoClient fetches the current price and the 30-day chart for the
// configured asset. Every failure is returned as a *FetchError.
type CoinGeckoClient struct {
	transport Transport
	baseURL   string
	tracer    trace.Tracer
}

// NewCoinGeckoClient creates a client over transport. An empty baseURL uses
// the public CoinGecko API.
func NewCoinGeckoClient(tracer trace.Tracer, transport Transport, baseURL string) *CoinGeckoClient {
	if baseURL == "" {
		baseURL = coingeckoBaseURL
	}
	return &CoinGeckoClient{
		transport: transport,
		baseURL:   baseURL,
		tracer:    tracer,
	}
}

// FetchCurrentPrice returns the asset's USD price.
func (c *CoinGeckoClient) FetchCurrentPrice(ctx context.Context) (float64, error) {
	ctx, span := c.tracer.Start(ctx, "coingecko.fetch-current-price")
	defer span.End()

	url := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=%s",
		c.baseURL, domain.AssetID, domain.Currency)

	resp, err := c.get(ctx, span, KindPrice, url)
	if err != nil {
		return 0, err
	}

	price, ok := decodeCurrentPrice(resp.Body)
	if !ok {
		return 0, recordFailure(span, mismatch(KindPrice, resp))
	}

	span.SetAttributes(attribute.Float64("price.usd", price))
	return price, nil
}

// FetchHistoricalPrices returns the 30-day chart, oldest point first.
func (c *CoinGeckoClient) FetchHistoricalPrices(ctx context.Context) (domain.PriceSeries, error) {
	ctx, span := c.tracer.Start(ctx, "coingecko.fetch-historical-prices")
	defer span.End()

	url := fmt.Sprintf("%s/coins/%s/market_chart?vs_currency=%s&days=%d",
		c.baseURL, domain.AssetID, domain.Currency, domain.HistoryDays)

	resp, err := c.get(ctx, span, KindHistory, url)
	if err != nil {
		return nil, err
	}

	series, ok := decodeHistoricalPrices(resp.Body)
	if !ok {
		return nil, recordFailure(span, mismatch(KindHistory, resp))
	}

	span.SetAttributes(attribute.Int("series.length", len(series)))
	return series, nil
}

// get performs the request and rejects bodies that are not JSON at all.
func (c *CoinGeckoClient) get(ctx context.Context, span trace.Span, kind ErrorKind, url string) (*Response, error) {
	resp, err := c.transport.Get(ctx, url)
	if err != nil {
		return nil, recordFailure(span, newFetchError(kind, FailureTransport, 0, err.Error(), err))
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if !gjson.ValidBytes(resp.Body) {
		cause := fmt.Errorf("%w: %q", ErrMalformedJSON, snippet(resp.Body))
		return nil, recordFailure(span, newFetchError(kind, FailureParse, httpStatus(resp), ErrMalformedJSON.Error(), cause))
	}
	return resp, nil
}

// mismatch handles valid JSON that is not the expected success shape:
// either CoinGecko's own error body or something unrecognised.
func mismatch(kind ErrorKind, resp *Response) *FetchError {
	if upstream, ok := decodeUpstreamError(resp.Body); ok {
		return newUpstreamFetchError(kind, upstream)
	}
	cause := fmt.Errorf("%w: %s", ErrUnknownFormat, snippet(resp.Body))
	return newFetchError(kind, FailureUnknownShape, httpStatus(resp), ErrUnknownFormat.Error(), cause)
}

func recordFailure(span trace.Span, fe *FetchError) error {
	span.RecordError(fe)
	span.SetStatus(codes.Error, fe.Message)
	span.SetAttributes(attribute.String("fetch.failure", fe.Failure.String()))
	return fe
}

// httpStatus exposes non-2xx statuses on errors that have no upstream code.
func httpStatus(resp *Response) int {
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return 0
	}
	return resp.StatusCode
}
