package events

import (
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventsExchange          = "storefront.events"
	CartUpdatedRoutingKey   = "cart.updated.v1"
	CartClearedRoutingKey   = "cart.cleared.v1"
	StockAdjustedRoutingKey = "stock.adjusted.v1"

	producerName = "storefront"
)

func MustDialRabbit(url string) *amqp.Connection {
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	return conn
}

func declareEventsExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}
