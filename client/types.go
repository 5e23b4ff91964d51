package client

import (
	"errors"
	"fmt"
	"time"
)

// Wire types for the storefront API. They mirror the server's JSON
// contract so external consumers never import the service internals.

type ItemType string

const (
	TypeProduct ItemType = "PRODUCT"
	TypeEvent   ItemType = "EVENT"
)

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

	EventDate *time.Time `json:"eventDate,omitempty"`
	Location  string     `json:"location,omitempty"`
	Artist    string     `json:"artist,omitempty"`
	Venue     string     `json:"venue,omitempty"`
}

type CartLine struct {
	ItemID    string   `json:"itemId"`
	Name      string   `json:"name"`
	Type      ItemType `json:"type"`
	Quantity  int      `json:"quantity"`
	UnitPrice float64  `json:"unitPrice"`
	Subtotal  float64  `json:"subtotal"`
	Thumbnail string   `json:"thumbnail,omitempty"`
}

type Cart struct {
	ID            string     `json:"id"`
	SessionID     string     `json:"sessionId"`
	Lines         []CartLine `json:"items"`
	TotalQuantity int        `json:"totalQuantity"`
	TotalPrice    float64    `json:"totalPrice"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Equal reports whether two cart snapshots carry the same line set for
// the same session. Useful for deciding whether a refresh changed
// anything worth re-rendering.
func (c Cart) Equal(other Cart) bool {
	if c.SessionID != other.SessionID || len(c.Lines) != len(other.Lines) {
		return false
	}
	for i := range c.Lines {
		a, b := c.Lines[i], other.Lines[i]
		if a.ItemID != b.ItemID || a.Quantity != b.Quantity || a.UnitPrice != b.UnitPrice {
			return false
		}
	}
	return true
}

// Rejection kinds, matching the server's closed set.
const (
	KindStockExceeded = "STOCK_EXCEEDED"
	KindItemNotInCart = "ITEM_NOT_IN_CART"
	KindItemNotFound  = "ITEM_NOT_FOUND"
	KindBadRequest    = "BAD_REQUEST"
)

// Rejection is a typed, non-exceptional mutation failure reported by the
// server. The cart was not changed, locally or remotely.
type Rejection struct {
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	ItemID    string `json:"itemId,omitempty"`
	Available int    `json:"available,omitempty"`
	Requested int    `json:"requested,omitempty"`

	Status int `json:"-"`
}

func (r *Rejection) Error() string {
	if r.Message != "" {
		return r.Message
	}
	return fmt.Sprintf("request rejected: %s", r.Kind)
}

// IsStockExceeded reports whether err is a stock-bound rejection, giving
// the caller the available quantity to show.
func IsStockExceeded(err error) (*Rejection, bool) {
	var rej *Rejection
	if errors.As(err, &rej) && rej.Kind == KindStockExceeded {
		return rej, true
	}
	return nil, false
}

// TransportError wraps a network, status or decode failure reaching the
// storefront API. The local cache is never touched when one occurs.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
