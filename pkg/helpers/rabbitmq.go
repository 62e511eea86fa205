package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrPublishNacked is returned when the broker refuses a message.
var ErrPublishNacked = errors.New("rabbitmq: message nacked by broker")

// RabbitPublisher publishes JSON messages to one durable queue with publisher
// confirms enabled. It is safe for concurrent use.
type RabbitPublisher struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

func NewRabbitPublisher(url, queue string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if err := DeclareQueue(ch, queue); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq confirm mode: %w", err)
	}
	return &RabbitPublisher{conn: conn, ch: ch, queue: queue}, nil
}

// DeadLetterQueue names the queue rejected messages of queue are routed to.
func DeadLetterQueue(queue string) string { return queue + ".dead" }

// DeclareQueue declares queue and its dead letter queue. Publisher and consumers
// must declare with the same arguments.
func DeclareQueue(ch *amqp.Channel, queue string) error {
	dead := DeadLetterQueue(queue)
	if _, err := ch.QueueDeclare(dead, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", dead, err)
	}
	args := amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": dead,
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, args); err != nil {
		return fmt.Errorf("declare %s: %w", queue, err)
	}
	return nil
}

func (p *RabbitPublisher) Queue() string { return p.queue }

func (p *RabbitPublisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// PublishJSON sends body as a persistent message and waits for the broker
// confirm. msgType goes into the AMQP type property.
func (p *RabbitPublisher) PublishJSON(ctx context.Context, msgType string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s: %w", msgType, err)
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Type:         msgType,
		Timestamp:    time.Now().UTC(),
		Body:         payload,
	}

	p.mu.Lock()
	confirm, err := p.ch.PublishWithDeferredConfirmWithContext(ctx, "", p.queue, false, false, msg)
	p.mu.Unlock()
	if err != nil {
		return fmt.Errorf("publish %s: %w", msgType, err)
	}
	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("confirm %s: %w", msgType, err)
	}
	if !acked {
		return ErrPublishNacked
	}
	return nil
}
