package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/SebastianBC09/shopping-cart/internal/cart"
)

// RabbitPublisher emits storefront events to the topic exchange. Each
// cart event carries a per-session sequence number so a consumer can
// reorder deliveries for one session.
type RabbitPublisher struct {
	ch        *amqp.Channel
	sequences SequenceRepository
}

func NewRabbitPublisher(conn *amqp.Connection, sequences SequenceRepository) (*RabbitPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &RabbitPublisher{ch: ch, sequences: sequences}, nil
}

func (p *RabbitPublisher) Close() error {
	return p.ch.Close()
}

func (p *RabbitPublisher) PublishCartUpdated(ctx context.Context, c *cart.Cart) error {
	return p.publishCartEvent(ctx, "cart.updated", CartUpdatedRoutingKey, c)
}

func (p *RabbitPublisher) PublishCartCleared(ctx context.Context, c *cart.Cart) error {
	return p.publishCartEvent(ctx, "cart.cleared", CartClearedRoutingKey, c)
}

func (p *RabbitPublisher) PublishStockAdjusted(ctx context.Context, itemID string, stock int) error {
	env := EventEnvelope[StockAdjusted]{
		EventName:    "stock.adjusted",
		EventVersion: 1,
		EventID:      uuid.NewString(),
		Producer:     producerName,
		PartitionKey: itemID,
		OccurredAt:   time.Now().UTC(),
		Schema:       StockAdjustedRoutingKey,
		Payload:      StockAdjusted{ItemID: itemID, Stock: stock},
	}

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal stock.adjusted: %w", err)
	}
	return p.publishJSON(ctx, StockAdjustedRoutingKey, body)
}

func (p *RabbitPublisher) publishCartEvent(ctx context.Context, name, routingKey string, c *cart.Cart) error {
	seq, err := p.sequences.NextSequence(ctx, c.SessionID)
	if err != nil {
		return fmt.Errorf("next sequence for %s: %w", c.SessionID, err)
	}

	env := EventEnvelope[CartSnapshot]{
		EventName:    name,
		EventVersion: 1,
		EventID:      uuid.NewString(),
		Producer:     producerName,
		PartitionKey: c.SessionID,
		Sequence:     &seq,
		OccurredAt:   time.Now().UTC(),
		Schema:       routingKey,
		Payload:      snapshotCart(c),
	}

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	return p.publishJSON(ctx, routingKey, body)
}

func (p *RabbitPublisher) publishJSON(ctx context.Context, routingKey string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

func snapshotCart(c *cart.Cart) CartSnapshot {
	snap := CartSnapshot{
		CartID:        c.ID,
		SessionID:     c.SessionID,
		Items:         make([]CartLineSnapshot, 0, len(c.Lines)),
		TotalQuantity: c.TotalQuantity,
		TotalPrice:    c.TotalPrice,
		UpdatedAt:     c.UpdatedAt,
	}
	for _, ln := range c.Lines {
		snap.Items = append(snap.Items, CartLineSnapshot{
			ItemID:    ln.ItemID,
			Quantity:  ln.Quantity,
			UnitPrice: ln.UnitPrice,
		})
	}
	return snap
}
