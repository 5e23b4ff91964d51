package cart

import (
	"context"
	"fmt"
	"log"
	"time"
)

// EventPublisher emits cart lifecycle events. Publishing is best-effort:
// the service logs failures and never fails a mutation over them.
type EventPublisher interface {
	PublishCartUpdated(ctx context.Context, c *Cart) error
	PublishCartCleared(ctx context.Context, c *Cart) error
}

// Service is the authoritative entry point for cart state: it loads the
// session's snapshot, runs the engine, and persists the result. Each
// call is atomic; a rejection leaves the stored cart untouched.
type Service struct {
	repo      Repository
	engine    *Engine
	publisher EventPublisher
	logger    *log.Logger
}

func NewService(repo Repository, engine *Engine, publisher EventPublisher, logger *log.Logger) *Service {
	return &Service{repo: repo, engine: engine, publisher: publisher, logger: logger}
}

// GetCart returns the session's cart, creating an empty one on first
// access so the session's creation timestamp is fixed from then on.
func (s *Service) GetCart(ctx context.Context, sessionID string) (*Cart, error) {
	return s.getOrCreate(ctx, sessionID)
}

func (s *Service) AddItem(ctx context.Context, sessionID, itemID string, quantity int) (*Cart, error) {
	c, err := s.getOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	next, err := s.engine.AddItem(ctx, *c, itemID, quantity)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, &next); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	s.publishUpdated(ctx, &next)
	return &next, nil
}

func (s *Service) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*Cart, error) {
	c, err := s.getOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	next, err := s.engine.UpdateQuantity(ctx, *c, itemID, quantity)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, &next); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	s.publishUpdated(ctx, &next)
	return &next, nil
}

// RemoveItem never rejects: removing an item the cart does not hold
// returns the cart as-is without touching storage.
func (s *Service) RemoveItem(ctx context.Context, sessionID, itemID string) (*Cart, error) {
	c, err := s.getOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.Quantity(itemID) == 0 {
		return c, nil
	}

	next := s.engine.RemoveItem(*c, itemID)
	if err := s.repo.Upsert(ctx, &next); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	s.publishUpdated(ctx, &next)
	return &next, nil
}

// ClearCart empties the lines while keeping the cart's identity.
func (s *Service) ClearCart(ctx context.Context, sessionID string) (*Cart, error) {
	c, err := s.getOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	next := s.engine.Clear(*c)
	if err := s.repo.Upsert(ctx, &next); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishCartCleared(ctx, &next); err != nil {
			s.logger.Printf("publish cart cleared for session %s: %v", next.SessionID, err)
		}
	}
	return &next, nil
}

func (s *Service) getOrCreate(ctx context.Context, sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	c, err := s.repo.GetBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if c != nil {
		return c, nil
	}

	now := time.Now().UTC()
	c = &Cart{
		SessionID: sessionID,
		Lines:     []Line{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Upsert(ctx, c); err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	return c, nil
}

func (s *Service) publishUpdated(ctx context.Context, c *Cart) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishCartUpdated(ctx, c); err != nil {
		s.logger.Printf("publish cart updated for session %s: %v", c.SessionID, err)
	}
}
