package queue

import (
	"fmt"

	"github.com/streadway/amqp"
)

// Dial connects to the broker and opens a channel. Close the connection to release both.
func Dial(url string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("error dialling rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("error opening rabbitmq channel: %w", err)
	}
	return conn, ch, nil
}
