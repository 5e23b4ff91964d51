package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Client is a typed HTTP client for the storefront API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// New builds a client against baseURL. Pass nil to use
// http.DefaultClient; timeouts and retries belong to the caller's
// http.Client, not to this package.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: u, http: httpClient}, nil
}

// --- catalog ---

func (c *Client) ListItems(ctx context.Context, typeFilter ItemType) ([]Item, error) {
	path := "/api/v1/items"
	rawQuery := ""
	if typeFilter != "" {
		rawQuery = "type=" + url.QueryEscape(string(typeFilter))
	}

	var items []Item
	if err := c.do(ctx, http.MethodGet, path, rawQuery, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetItem(ctx context.Context, itemID string) (Item, error) {
	var item Item
	err := c.do(ctx, http.MethodGet, "/api/v1/items/"+url.PathEscape(itemID), "", nil, &item)
	return item, err
}

// --- cart ---

func (c *Client) GetCart(ctx context.Context, sessionID string) (Cart, error) {
	var cart Cart
	err := c.do(ctx, http.MethodGet, c.cartPath(sessionID), "", nil, &cart)
	return cart, err
}

func (c *Client) AddItem(ctx context.Context, sessionID, itemID string, quantity int) (Cart, error) {
	body := map[string]any{"itemId": itemID, "quantity": quantity}
	var cart Cart
	err := c.do(ctx, http.MethodPost, c.cartPath(sessionID)+"/items", "", body, &cart)
	return cart, err
}

func (c *Client) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (Cart, error) {
	body := map[string]any{"quantity": quantity}
	var cart Cart
	err := c.do(ctx, http.MethodPatch, c.cartPath(sessionID)+"/items/"+url.PathEscape(itemID), "", body, &cart)
	return cart, err
}

func (c *Client) RemoveItem(ctx context.Context, sessionID, itemID string) (Cart, error) {
	var cart Cart
	err := c.do(ctx, http.MethodDelete, c.cartPath(sessionID)+"/items/"+url.PathEscape(itemID), "", nil, &cart)
	return cart, err
}

func (c *Client) ClearCart(ctx context.Context, sessionID string) (Cart, error) {
	var cart Cart
	err := c.do(ctx, http.MethodDelete, c.cartPath(sessionID), "", nil, &cart)
	return cart, err
}

func (c *Client) cartPath(sessionID string) string {
	return "/api/v1/cart/" + url.PathEscape(sessionID)
}

// do performs one request and decodes the response into out. Non-2xx
// responses with a rejection body come back as *Rejection; everything
// else (network failure, unexpected status, broken body) is a
// *TransportError.
func (c *Client) do(ctx context.Context, method, path, rawQuery string, body any, out any) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(buf)
	}

	rel := &url.URL{Path: path, RawQuery: rawQuery}
	u := c.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
		return nil
	}

	var payload struct {
		Error Rejection `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Error.Kind == "" {
		return &TransportError{Op: op, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	rej := payload.Error
	rej.Status = resp.StatusCode
	return &rej
}
