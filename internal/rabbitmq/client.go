package rabbitmq

import (
	"context"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	recruiting_exchange_name = "recruiting"
	exchange_type_topic      = "topic"

	BookingCreatedKey = "booking.created"
	CallReceivedKey   = "call.received"
)

type (
	MQClient interface {
		Publish(ctx context.Context, routingKey string, body []byte) error
	}

	recruitingMQClient struct {
		ch *amqp.Channel
	}
)

func (rc *recruitingMQClient) Publish(ctx context.Context, routingKey string, body []byte) error {
	return rc.ch.PublishWithContext(ctx,
		recruiting_exchange_name,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		})
}

func declareExchange(ch *amqp.Channel, name string) {
	err := ch.ExchangeDeclare(name, exchange_type_topic, true, false, false, false, nil)
	failOnError(err, fmt.Sprintf("failed to declare exchange: %s\n", name))
}

func failOnError(err error, msg string) {
	if err != nil {
		log.Panicf("%s: %s", msg, err)
	}
}

func NewRecruitingMQClient(amqpConn *amqp.Connection) MQClient {
	ch, err := amqpConn.Channel()
	failOnError(err, "failed to create message channel")

	declareExchange(ch, recruiting_exchange_name)
	return &recruitingMQClient{ch}
}
