package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SebastianBC09/shopping-cart/internal/cart"
	"github.com/SebastianBC09/shopping-cart/internal/catalog"
)

// CartService is the cart surface the handlers need; satisfied by
// *cart.Service and mocked in tests.
type CartService interface {
	GetCart(ctx context.Context, sessionID string) (*cart.Cart, error)
	AddItem(ctx context.Context, sessionID, itemID string, quantity int) (*cart.Cart, error)
	UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*cart.Cart, error)
	RemoveItem(ctx context.Context, sessionID, itemID string) (*cart.Cart, error)
	ClearCart(ctx context.Context, sessionID string) (*cart.Cart, error)
}

// StockEventsPublisher announces external stock adjustments.
type StockEventsPublisher interface {
	PublishStockAdjusted(ctx context.Context, itemID string, stock int) error
}

type Handler struct {
	carts       CartService
	catalog     catalog.Repository
	stockEvents StockEventsPublisher
	logger      *log.Logger
}

func NewHandler(carts CartService, cat catalog.Repository, stockEvents StockEventsPublisher, logger *log.Logger) *Handler {
	return &Handler{carts: carts, catalog: cat, stockEvents: stockEvents, logger: logger}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// --- catalog ---

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	typeFilter := catalog.ItemType(r.URL.Query().Get("type"))
	if typeFilter != "" && !typeFilter.Valid() {
		writeBadRequest(w, "unknown item type")
		return
	}

	items, err := h.catalog.List(r.Context(), typeFilter)
	if err != nil {
		h.internalError(w, "list items", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")
	item, err := h.catalog.Get(r.Context(), itemID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeRejection(w, http.StatusNotFound, rejectionBody{
				Kind:    cart.KindItemNotFound,
				Message: "item " + itemID + " does not exist",
				ItemID:  itemID,
			})
			return
		}
		h.internalError(w, "get item", err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

type adjustStockRequest struct {
	Stock int `json:"stock"`
}

func (h *Handler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	var req adjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid json")
		return
	}
	if req.Stock < 0 {
		writeBadRequest(w, "stock must not be negative")
		return
	}

	if err := h.catalog.AdjustStock(r.Context(), itemID, req.Stock); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeRejection(w, http.StatusNotFound, rejectionBody{
				Kind:    cart.KindItemNotFound,
				Message: "item " + itemID + " does not exist",
				ItemID:  itemID,
			})
			return
		}
		h.internalError(w, "adjust stock", err)
		return
	}

	if h.stockEvents != nil {
		if err := h.stockEvents.PublishStockAdjusted(r.Context(), itemID, req.Stock); err != nil {
			h.logger.Printf("publish stock adjusted for %s: %v", itemID, err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// --- cart ---

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	c, err := h.carts.GetCart(r.Context(), sessionID)
	if err != nil {
		h.internalError(w, "get cart", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type addItemRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid json")
		return
	}
	if req.ItemID == "" {
		writeBadRequest(w, "itemId is required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 {
		writeBadRequest(w, "quantity must be at least 1")
		return
	}

	c, err := h.carts.AddItem(r.Context(), sessionID, req.ItemID, req.Quantity)
	if err != nil {
		h.writeCartError(w, "add item", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	itemID := chi.URLParam(r, "itemId")

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid json")
		return
	}
	if req.Quantity < 0 {
		writeBadRequest(w, "quantity must not be negative")
		return
	}

	c, err := h.carts.UpdateQuantity(r.Context(), sessionID, itemID, req.Quantity)
	if err != nil {
		h.writeCartError(w, "update quantity", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	itemID := chi.URLParam(r, "itemId")

	c, err := h.carts.RemoveItem(r.Context(), sessionID, itemID)
	if err != nil {
		h.internalError(w, "remove item", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	c, err := h.carts.ClearCart(r.Context(), sessionID)
	if err != nil {
		h.internalError(w, "clear cart", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// --- responses ---

// rejectionBody is the wire form of a typed rejection. The client SDK
// decodes it back into the same closed set of variants.
type rejectionBody struct {
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	ItemID    string `json:"itemId,omitempty"`
	Available *int   `json:"available,omitempty"`
	Requested *int   `json:"requested,omitempty"`
}

func (h *Handler) writeCartError(w http.ResponseWriter, op string, err error) {
	var (
		stockErr    *cart.StockExceededError
		notInCart   *cart.ItemNotInCartError
		notFoundErr *cart.ItemNotFoundError
	)
	switch {
	case errors.As(err, &stockErr):
		writeRejection(w, http.StatusConflict, rejectionBody{
			Kind:      cart.KindStockExceeded,
			Message:   stockErr.Error(),
			ItemID:    stockErr.ItemID,
			Available: &stockErr.Available,
			Requested: &stockErr.Requested,
		})
	case errors.As(err, &notInCart):
		writeRejection(w, http.StatusNotFound, rejectionBody{
			Kind:    cart.KindItemNotInCart,
			Message: notInCart.Error(),
			ItemID:  notInCart.ItemID,
		})
	case errors.As(err, &notFoundErr):
		writeRejection(w, http.StatusNotFound, rejectionBody{
			Kind:    cart.KindItemNotFound,
			Message: notFoundErr.Error(),
			ItemID:  notFoundErr.ItemID,
		})
	default:
		h.internalError(w, op, err)
	}
}

func (h *Handler) internalError(w http.ResponseWriter, op string, err error) {
	h.logger.Printf("%s: %v", op, err)
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"error": map[string]string{"kind": "INTERNAL", "message": "internal error"},
	})
}

func writeRejection(w http.ResponseWriter, status int, body rejectionBody) {
	writeJSON(w, status, map[string]any{"error": body})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error": map[string]string{"kind": "BAD_REQUEST", "message": msg},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
