package client

import (
	"context"
	"sync"
)

// Synchronizer keeps a local copy of one session's cart in step with the
// server. The server is authoritative: every successful mutation
// replaces the whole cached cart with the server's response, and a
// rejection or transport failure leaves the cache exactly as it was.
// The cache lives with the Synchronizer, not at package level, so its
// lifetime is the session's, not the process's.
//
// Replacement is last-response-wins. Two mutations in flight at once may
// land out of send order; callers that need stronger ordering must
// serialize their requests.
type Synchronizer struct {
	api     *Client
	session string

	mu     sync.Mutex
	cached *Cart
}

func NewSynchronizer(api *Client, sessionID string) *Synchronizer {
	return &Synchronizer{api: api, session: sessionID}
}

// SessionID returns the session this synchronizer is bound to.
func (s *Synchronizer) SessionID() string {
	return s.session
}

// Cached returns the local copy without touching the network.
func (s *Synchronizer) Cached() (Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached == nil {
		return Cart{}, false
	}
	return *s.cached, true
}

// Cart returns the cached cart, fetching from the server first when no
// local copy exists yet. Staleness after that is resolved by the next
// mutation's full replacement.
func (s *Synchronizer) Cart(ctx context.Context) (Cart, error) {
	if c, ok := s.Cached(); ok {
		return c, nil
	}
	return s.Refresh(ctx)
}

// Refresh fetches the server's cart and replaces the cache.
func (s *Synchronizer) Refresh(ctx context.Context) (Cart, error) {
	c, err := s.api.GetCart(ctx, s.session)
	if err != nil {
		return Cart{}, err
	}
	s.replace(c)
	return c, nil
}

func (s *Synchronizer) AddItem(ctx context.Context, itemID string, quantity int) (Cart, error) {
	c, err := s.api.AddItem(ctx, s.session, itemID, quantity)
	if err != nil {
		return Cart{}, err
	}
	s.replace(c)
	return c, nil
}

func (s *Synchronizer) UpdateQuantity(ctx context.Context, itemID string, quantity int) (Cart, error) {
	c, err := s.api.UpdateQuantity(ctx, s.session, itemID, quantity)
	if err != nil {
		return Cart{}, err
	}
	s.replace(c)
	return c, nil
}

func (s *Synchronizer) RemoveItem(ctx context.Context, itemID string) (Cart, error) {
	c, err := s.api.RemoveItem(ctx, s.session, itemID)
	if err != nil {
		return Cart{}, err
	}
	s.replace(c)
	return c, nil
}

func (s *Synchronizer) ClearCart(ctx context.Context) (Cart, error) {
	c, err := s.api.ClearCart(ctx, s.session)
	if err != nil {
		return Cart{}, err
	}
	s.replace(c)
	return c, nil
}

// Invalidate drops the local copy; the next read fetches fresh state.
func (s *Synchronizer) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
}

func (s *Synchronizer) replace(c Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = &c
}
