package events

import "time"

// CartLineSnapshot mirrors one cart line as carried in events, so
// consumers do not depend on the service's internal types.
type CartLineSnapshot struct {
	ItemID    string  `json:"itemId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// CartSnapshot is the payload of cart.updated and cart.cleared events.
type CartSnapshot struct {
	CartID        string             `json:"cartId"`
	SessionID     string             `json:"sessionId"`
	Items         []CartLineSnapshot `json:"items"`
	TotalQuantity int                `json:"totalQuantity"`
	TotalPrice    float64            `json:"totalPrice"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// StockAdjusted is the payload of stock.adjusted events.
type StockAdjusted struct {
	ItemID string `json:"itemId"`
	Stock  int    `json:"stock"`
}
