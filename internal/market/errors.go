package market

import "errors"

// Every fetch failure resolves to exactly one of these classes, so the
// engine and the metrics can tell a dead network from a misbehaving API.
var (
	ErrTransport         = errors.New("market API request failed")
	ErrTimeout           = errors.New("market API request timed out")
	ErrMalformedResponse = errors.New("malformed market API response")
	ErrBadResponse       = errors.New("market API response missing expected data")
	ErrInvalidPrice      = errors.New("market API returned an invalid price")
)

// Classify maps a fetch error to a short label for logs and metric labels.
func Classify(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed"
	case errors.Is(err, ErrBadResponse):
		return "bad_response"
	case errors.Is(err, ErrInvalidPrice):
		return "invalid_price"
	default:
		return "unknown"
	}
}
