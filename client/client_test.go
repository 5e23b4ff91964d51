package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetCartDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/v1/cart/s1", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Cart{
			ID:        "c1",
			SessionID: "s1",
			Lines: []CartLine{
				{ItemID: "widget", Name: "Widget", Quantity: 2, UnitPrice: 9.99, Subtotal: 19.98},
			},
			TotalQuantity: 2,
			TotalPrice:    19.98,
		})
	}))
	defer srv.Close()

	api, err := New(srv.URL, nil)
	require.NoError(t, err)

	cart, err := api.GetCart(context.Background(), "s1")
	require.NoError(t, err)
	require.Equal(t, "c1", cart.ID)
	require.Len(t, cart.Lines, 1)
	require.Equal(t, 2, cart.TotalQuantity)
}

func TestAddItemSendsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/cart/s1/items", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "widget", body["itemId"])
		require.Equal(t, float64(3), body["quantity"])

		_ = json.NewEncoder(w).Encode(Cart{SessionID: "s1", TotalQuantity: 3})
	}))
	defer srv.Close()

	api, err := New(srv.URL, nil)
	require.NoError(t, err)

	cart, err := api.AddItem(context.Background(), "s1", "widget", 3)
	require.NoError(t, err)
	require.Equal(t, 3, cart.TotalQuantity)
}

func TestRejectionIsTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":{"kind":"STOCK_EXCEEDED","message":"stock exceeded for item widget: requested 6, available 5","itemId":"widget","available":5,"requested":6}}`))
	}))
	defer srv.Close()

	api, err := New(srv.URL, nil)
	require.NoError(t, err)

	_, err = api.AddItem(context.Background(), "s1", "widget", 6)
	require.Error(t, err)

	rej, ok := IsStockExceeded(err)
	require.True(t, ok, "expected a stock-exceeded rejection, got %v", err)
	require.Equal(t, "widget", rej.ItemID)
	require.Equal(t, 5, rej.Available)
	require.Equal(t, 6, rej.Requested)
	require.Equal(t, http.StatusConflict, rej.Status)

	var transportErr *TransportError
	require.False(t, errors.As(err, &transportErr), "rejection must not be a transport error")
}

func TestUnexpectedStatusIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream broke"))
	}))
	defer srv.Close()

	api, err := New(srv.URL, nil)
	require.NoError(t, err)

	_, err = api.GetCart(context.Background(), "s1")

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr), "expected TransportError, got %v", err)
}

func TestNetworkFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	api, err := New(srv.URL, nil)
	require.NoError(t, err)

	_, err = api.GetCart(context.Background(), "s1")

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr), "expected TransportError, got %v", err)
}

func TestListItemsFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/items", r.URL.Path)
		require.Equal(t, "EVENT", r.URL.Query().Get("type"))
		_ = json.NewEncoder(w).Encode([]Item{{ID: "gig", Type: TypeEvent}})
	}))
	defer srv.Close()

	api, err := New(srv.URL, nil)
	require.NoError(t, err)

	items, err := api.ListItems(context.Background(), TypeEvent)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "gig", items[0].ID)
}
