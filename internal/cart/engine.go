package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SebastianBC09/shopping-cart/internal/catalog"
)

// CatalogReader is the engine's read-only dependency on the catalog.
type CatalogReader interface {
	Get(ctx context.Context, itemID string) (catalog.Item, error)
}

// Engine applies cart mutations. Every operation takes a cart snapshot
// and returns a new one; the input is never modified, so a rejection
// leaves the caller's cart exactly as it was.
//
// Stock validation is a gate against the stock observed at mutation
// time, not a reservation: two concurrent adds against the same stock
// can both pass. Serializing concurrent writes to one session is the
// storage layer's job.
type Engine struct {
	catalog CatalogReader
}

func NewEngine(catalog CatalogReader) *Engine {
	return &Engine{catalog: catalog}
}

// AddItem merges quantity into an existing line or appends a new one.
// The line's unit price is refreshed from the catalog on every add.
func (e *Engine) AddItem(ctx context.Context, c Cart, itemID string, quantity int) (Cart, error) {
	if quantity < 1 {
		return c, fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}

	item, err := e.lookup(ctx, itemID)
	if err != nil {
		return c, err
	}

	requested := c.Quantity(itemID) + quantity
	if requested > item.Stock {
		return c, &StockExceededError{ItemID: itemID, Available: item.Stock, Requested: requested}
	}

	next := c.clone()
	if i := next.lineIndex(itemID); i >= 0 {
		next.Lines[i].Quantity = requested
		next.Lines[i].UnitPrice = item.Price
	} else {
		next.Lines = append(next.Lines, Line{
			ItemID:    item.ID,
			Name:      item.Name,
			Type:      item.Type,
			Quantity:  quantity,
			UnitPrice: item.Price,
			Thumbnail: item.Thumbnail,
		})
	}
	next.recompute()
	next.UpdatedAt = time.Now().UTC()
	return next, nil
}

// UpdateQuantity replaces a line's quantity, keeping its price snapshot.
// A quantity of zero removes the line.
func (e *Engine) UpdateQuantity(ctx context.Context, c Cart, itemID string, quantity int) (Cart, error) {
	if quantity < 0 {
		return c, fmt.Errorf("quantity must not be negative, got %d", quantity)
	}
	if quantity == 0 {
		return e.RemoveItem(c, itemID), nil
	}

	i := c.lineIndex(itemID)
	if i < 0 {
		return c, &ItemNotInCartError{ItemID: itemID}
	}

	item, err := e.lookup(ctx, itemID)
	if err != nil {
		return c, err
	}
	if quantity > item.Stock {
		return c, &StockExceededError{ItemID: itemID, Available: item.Stock, Requested: quantity}
	}

	next := c.clone()
	next.Lines[i].Quantity = quantity
	next.recompute()
	next.UpdatedAt = time.Now().UTC()
	return next, nil
}

// RemoveItem drops the line for itemID. Removing an absent item is a
// no-op, not an error; concurrent removals are expected.
func (e *Engine) RemoveItem(c Cart, itemID string) Cart {
	i := c.lineIndex(itemID)
	if i < 0 {
		return c
	}

	next := c.clone()
	next.Lines = append(next.Lines[:i], next.Lines[i+1:]...)
	next.recompute()
	next.UpdatedAt = time.Now().UTC()
	return next
}

// Clear empties the cart's lines. Identity and creation time survive;
// clearing does not start a new session.
func (e *Engine) Clear(c Cart) Cart {
	next := c
	next.Lines = []Line{}
	next.recompute()
	next.UpdatedAt = time.Now().UTC()
	return next
}

// lookup resolves the item or turns a missing catalog row into a typed
// rejection. A failing catalog is a hard error here: the engine never
// guesses a stock ceiling when the catalog cannot answer.
func (e *Engine) lookup(ctx context.Context, itemID string) (catalog.Item, error) {
	item, err := e.catalog.Get(ctx, itemID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return catalog.Item{}, &ItemNotFoundError{ItemID: itemID}
		}
		return catalog.Item{}, fmt.Errorf("catalog lookup for %s: %w", itemID, err)
	}
	return item, nil
}
