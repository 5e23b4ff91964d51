package cart

import "fmt"

// Rejection kinds as they appear on the wire.
const (
	KindStockExceeded = "STOCK_EXCEEDED"
	KindItemNotInCart = "ITEM_NOT_IN_CART"
	KindItemNotFound  = "ITEM_NOT_FOUND"
)

// StockExceededError rejects a mutation whose resulting quantity would
// exceed the stock observed at validation time. The cart is untouched.
type StockExceededError struct {
	ItemID    string
	Available int
	Requested int
}

func (e *StockExceededError) Error() string {
	return fmt.Sprintf("stock exceeded for item %s: requested %d, available %d",
		e.ItemID, e.Requested, e.Available)
}

// ItemNotInCartError rejects an update that referenced a line the cart
// does not have.
type ItemNotInCartError struct {
	ItemID string
}

func (e *ItemNotInCartError) Error() string {
	return fmt.Sprintf("item %s is not in the cart", e.ItemID)
}

// ItemNotFoundError rejects a mutation whose item has no catalog entry.
type ItemNotFoundError struct {
	ItemID string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item %s does not exist", e.ItemID)
}
