package catalog

import "time"

type ItemType string

const (
	TypeProduct ItemType = "PRODUCT"
	TypeEvent   ItemType = "EVENT"
)

func (t ItemType) Valid() bool {
	return t == TypeProduct || t == TypeEvent
}

// Item is the catalog's view of something that can be put in a cart.
// Stock changes only through AdjustStock, never through cart operations.
type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        ItemType `json:"type"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Description string   `json:"description,omitempty"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	Category    string   `json:"category,omitempty"`

	// Event-only fields, empty for PRODUCT items.
	EventDate *time.Time `json:"eventDate,omitempty"`
	Location  string     `json:"location,omitempty"`
	Artist    string     `json:"artist,omitempty"`
	Venue     string     `json:"venue,omitempty"`
}
