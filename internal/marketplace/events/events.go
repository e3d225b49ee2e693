// Package events publishes domain events for downstream consumers
// (analytics, notifications). Publishing is best effort: a broker outage
// never fails a user request.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/aussiebroadwan/estate/pkg/slogx"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Routing keys.
const (
	OTPIssued        = "otp.issued"
	UserCreated      = "user.created"
	UserLoggedIn     = "user.logged_in"
	UserDeleted      = "user.deleted"
	PropertyCreated  = "property.created"
	PropertyApproved = "property.approved"
	PaymentCreated   = "payment.created"
	PaymentVerified  = "payment.verified"
	PaymentFailed    = "payment.failed"
)

// Envelope is the wire form of every event.
type Envelope struct {
	Event      string    `json:"event"`
	Version    int       `json:"version"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

type Publisher interface {
	Publish(ctx context.Context, event string, data any) error
	Close() error
}

// AMQP publishes JSON envelopes to a durable topic exchange.
type AMQP struct {
	mu       sync.Mutex // amqp channels are not safe for concurrent publish
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewAMQP(url, exchange string) (*AMQP, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQP{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *AMQP) Publish(ctx context.Context, event string, data any) error {
	body, err := json.Marshal(Envelope{Event: event, Version: 1, OccurredAt: time.Now().UTC(), Data: data})
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(ctx, p.exchange, event, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
}

func (p *AMQP) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Log writes events to the request logger instead of a broker.
type Log struct{}

func (Log) Publish(ctx context.Context, event string, data any) error {
	slogx.FromContext(ctx).Debug("event", "event", event, "data", data)
	return nil
}

func (Log) Close() error { return nil }

// Recorder keeps published events in memory, for tests.
type Recorder struct {
	mu     sync.Mutex
	events []Envelope
}

func (r *Recorder) Publish(_ context.Context, event string, data any) error {
	r.mu.Lock()
	r.events = append(r.events, Envelope{Event: event, Version: 1, OccurredAt: time.Now().UTC(), Data: data})
	r.mu.Unlock()
	return nil
}

func (r *Recorder) Close() error { return nil }

// Names returns the routing keys published so far, in order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Event
	}
	return out
}

// Emit publishes and logs failures instead of returning them.
func Emit(ctx context.Context, p Publisher, event string, data any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event, data); err != nil {
		slogx.FromContext(ctx).Warn("failed to publish event", "event", event, "error", err)
	}
}
