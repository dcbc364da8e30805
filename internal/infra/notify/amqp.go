package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"facility-booking/internal/pkg/config"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher wraps a topic exchange on RabbitMQ. A downstream mailer consumes
// the messages and renders the actual emails.
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewPublisher(cfg config.AMQPConfig) (*Publisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: cfg.Exchange}, nil
}

func (p *Publisher) PublishJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        b,
	})
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// message is the wire shape consumed by the mailer.
type message struct {
	Recipient string         `json:"recipient"`
	Template  string         `json:"template"`
	Data      map[string]any `json:"data,omitempty"`
	SentAt    time.Time      `json:"sent_at"`
}

// AMQPNotifier adapts the publisher to the lifecycle's notifier port. The
// routing key is "booking.<template>" so consumers can bind per template.
type AMQPNotifier struct {
	pub *Publisher
}

func NewAMQPNotifier(pub *Publisher) *AMQPNotifier {
	return &AMQPNotifier{pub: pub}
}

func (n *AMQPNotifier) Notify(ctx context.Context, recipient, template string, data map[string]any) error {
	return n.pub.PublishJSON(ctx, "booking."+template, message{
		Recipient: recipient,
		Template:  template,
		Data:      data,
		SentAt:    time.Now().UTC(),
	})
}
