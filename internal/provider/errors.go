package provider

import (
	"errors"
	"fmt"
)

// ErrorKind names which fetch produced a FetchError.
type ErrorKind string

const (
	KindPrice   ErrorKind = "PriceFetchError"
	KindHistory ErrorKind = "HistoryFetchError"
)

var (
	// ErrPriceFetch matches every FetchError of KindPrice via errors.Is.
	ErrPriceFetch = errors.New("price fetch failed")
	// ErrHistoryFetch matches every FetchError of KindHistory via errors.Is.
	ErrHistoryFetch = errors.New("historical data fetch failed")

	ErrMalformedJSON = errors.New("response body is not valid JSON")
	ErrUnknownFormat = errors.New("unknown response format")
)

// Failure classifies where in the pipeline a fetch failed.
type Failure int

const (
	FailureTransport Failure = iota + 1
	FailureParse
	FailureUpstream
	FailureUnknownShape
)

func (f Failure) String() string {
	switch f {
	case FailureTransport:
		return "transport"
	case FailureParse:
		return "parse"
	case FailureUpstream:
		return "upstream"
	case FailureUnknownShape:
		return "unknown_shape"
	default:
		return "unknown"
	}
}

// UpstreamError is the structured error body CoinGecko returns, e.g. on rate limiting:
// {"status": {"error_code": 429, "error_message": "..."}}
type UpstreamError struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_message"`
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("coingecko error %d: %s", e.Code, e.Message)
}

// FetchError is returned by every failed CoinGeckoClient call.
// StatusCode is zero when neither the body nor the HTTP status carried one.
type FetchError struct {
	Kind       ErrorKind
	Failure    Failure
	Message    string
	StatusCode int
	Cause      error
}

func (e *FetchError) Error() string {
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

func (e *FetchError) Is(target error) bool {
	switch e.Kind {
	case KindPrice:
		return target == ErrPriceFetch
	case KindHistory:
		return target == ErrHistoryFetch
	default:
		return false
	}
}

func (k ErrorKind) prefix() string {
	if k == KindHistory {
		return "failed to fetch historical data"
	}
	return "failed to fetch price"
}

func newFetchError(kind ErrorKind, failure Failure, statusCode int, reason string, cause error) *FetchError {
	return &FetchError{
		Kind:       kind,
		Failure:    failure,
		Message:    kind.prefix() + ": " + reason,
		StatusCode: statusCode,
		Cause:      cause,
	}
}

func newUpstreamFetchError(kind ErrorKind, upstream *UpstreamError) *FetchError {
	return &FetchError{
		Kind:       kind,
		Failure:    FailureUpstream,
		Message:    "CoinGecko API error: " + upstream.Message,
		StatusCode: upstream.Code,
		Cause:      upstream,
	}
}
