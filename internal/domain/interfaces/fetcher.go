package interfaces

import "context"

// PriceFetcher retrieves the tracked item's current base price from the
// remote market API. Implementations resolve every call to exactly one
// outcome: a positive, floored price or a classified error.
type PriceFetcher interface {
	FetchPrice(ctx context.Context) (int64, error)
}
