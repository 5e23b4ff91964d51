package cart

import (
	"time"

	"github.com/SebastianBC09/shopping-cart/internal/catalog"
)

// Line is one item's quantity and price snapshot inside a cart. The unit
// price is captured when the item is added so a catalog price change does
// not silently reprice a cart mid-session.
type Line struct {
	ItemID    string           `json:"itemId"`
	Name      string           `json:"name"`
	Type      catalog.ItemType `json:"type"`
	Quantity  int              `json:"quantity"`
	UnitPrice float64          `json:"unitPrice"`
	Subtotal  float64          `json:"subtotal"`
	Thumbnail string           `json:"thumbnail,omitempty"`
}

// Cart is the per-session aggregate. Lines are insertion-ordered and
// unique per item id. TotalQuantity and TotalPrice are derived from the
// lines and recomputed after every change, never patched.
type Cart struct {
	ID            string    `json:"id"`
	SessionID     string    `json:"sessionId"`
	Lines         []Line    `json:"items"`
	TotalQuantity int       `json:"totalQuantity"`
	TotalPrice    float64   `json:"totalPrice"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// lineIndex returns the position of itemID in c.Lines, or -1.
func (c *Cart) lineIndex(itemID string) int {
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			return i
		}
	}
	return -1
}

// Quantity reports the current quantity of itemID, 0 if absent.
func (c *Cart) Quantity(itemID string) int {
	if i := c.lineIndex(itemID); i >= 0 {
		return c.Lines[i].Quantity
	}
	return 0
}

// recompute rederives subtotals and cart totals from the lines.
func (c *Cart) recompute() {
	totalQty := 0
	totalPrice := 0.0
	for i := range c.Lines {
		c.Lines[i].Subtotal = float64(c.Lines[i].Quantity) * c.Lines[i].UnitPrice
		totalQty += c.Lines[i].Quantity
		totalPrice += c.Lines[i].Subtotal
	}
	c.TotalQuantity = totalQty
	c.TotalPrice = totalPrice
}

// clone returns a copy whose line slice does not alias the receiver's.
func (c Cart) clone() Cart {
	cp := c
	cp.Lines = make([]Line, len(c.Lines))
	copy(cp.Lines, c.Lines)
	return cp
}

// Equal reports deep equality of two cart snapshots: same session and
// the same line set. Timestamps and derived totals are not compared;
// equal lines imply equal totals.
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
