package pricecache

import (
	"encoding/json"
	"fmt"
)

// record is the persisted last-known-good price. On the wire it is keyed by
// the tracked item's ID: {"<itemId>": <price>, "gameMode": "pve",
// "lastUpdate": <unix seconds>}.
type record struct {
	ItemID     string
	Price      int64
	GameMode   string
	LastUpdate int64
}

// MarshalJSON flattens the record into the item-keyed wire shape.
func (r record) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		r.ItemID:     r.Price,
		"gameMode":   r.GameMode,
		"lastUpdate": r.LastUpdate,
	})
}

// decodeRecord parses the wire shape back into a record for the given item.
func decodeRecord(data []byte, itemID string) (record, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return record{}, fmt.Errorf("malformed cache record: %w", err)
	}

	price, ok := raw[itemID].(float64)
	if !ok {
		return record{}, fmt.Errorf("cache record has no numeric price for item %s", itemID)
	}

	rec := record{
		ItemID: itemID,
		Price:  int64(price),
	}
	if mode, ok := raw["gameMode"].(string); ok {
		rec.GameMode = mode
	}
	if ts, ok := raw["lastUpdate"].(float64); ok {
		rec.LastUpdate = int64(ts)
	} else {
		return record{}, fmt.Errorf("cache record has no lastUpdate timestamp")
	}

	return rec, nil
}
