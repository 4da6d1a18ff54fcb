package entities

// Item represents a tradable item from the host catalog. The sync engine
// never creates or removes items; it only mutates BasePrice on the one item
// it tracks.
type Item struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	BasePrice int64  `json:"basePrice"`
}

// NewItem creates a catalog item with its initial base price.
func NewItem(id, name, shortName string, basePrice int64) *Item {
	return &Item{
		ID:        id,
		Name:      name,
		ShortName: shortName,
		BasePrice: basePrice,
	}
}
