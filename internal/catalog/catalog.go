package catalog

import (
	"tarkov-price-sync/internal/domain/entities"
)

// TrackedItemID is the catalog identifier of the item whose price the sync
// engine maintains (Physical Bitcoin).
const TrackedItemID = "59faff1d86f7746c51718c9c"

// Catalog is the host-side item registry. The sync core only ever looks one
// item up in it; the rest of the records exist so the tracked item lives
// inside a realistic host structure rather than as a lone global.
type Catalog struct {
	items map[string]*entities.Item
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		items: make(map[string]*entities.Item),
	}
}

// NewWithDefaults creates a catalog pre-seeded with the host's built-in
// item records.
func NewWithDefaults() *Catalog {
	c := New()
	c.Add(entities.NewItem(TrackedItemID, "Physical Bitcoin", "0.2BTC", 100000))
	c.Add(entities.NewItem("5d235b4d86f7742e017bc88a", "GP coin", "GP", 9000))
	c.Add(entities.NewItem("59faf7ca86f7740dbe19f6c2", "Roler Submariner gold wrist watch", "Roler", 53324))
	return c
}

// Add registers an item, replacing any record with the same ID.
func (c *Catalog) Add(item *entities.Item) {
	if item == nil {
		return
	}
	c.items[item.ID] = item
}

// Lookup returns the item with the given ID, or false if the catalog does
// not contain it.
func (c *Catalog) Lookup(id string) (*entities.Item, bool) {
	item, ok := c.items[id]
	return item, ok
}

// Size returns the number of registered items.
func (c *Catalog) Size() int {
	return len(c.items)
}
