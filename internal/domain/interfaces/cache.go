package interfaces

import "context"

// PriceCache persists the last-known-good price so the engine can survive
// API outages.
//
// Save overwrites the stored record with a fresh timestamp. Load returns the
// stored price only while the record is still within its TTL; a stale or
// unreadable record is reported as absent, never as an error.
type PriceCache interface {
	Save(ctx context.Context, price int64) error
	Load(ctx context.Context) (int64, bool)
}
