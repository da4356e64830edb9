// Package notify publishes stored submissions to a message broker so that
// downstream consumers (mailers, chat bots) can react to new donations and
// contact messages.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"

	"donation-api/internal/domain"
	"donation-api/internal/metrics"
)

const (
	defaultBacklog      = 256
	defaultDrainTimeout = 5 * time.Second
)

var (
	// ErrBacklogFull is returned when the broker is not keeping up and the
	// event was dropped.
	ErrBacklogFull = errors.New("amqp: publish backlog full")
	// ErrPublisherClosed is returned by Publish after Close.
	ErrPublisherClosed = errors.New("amqp: publisher closed")
)

// amqpChannel is the part of *amqp.Channel the publisher uses.
type amqpChannel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher sends submission events to a durable queue on the default
// exchange. Publish only enqueues; a single worker talks to the broker, so a
// blocked broker never holds up the caller.
type AMQPPublisher struct {
	mu      sync.Mutex
	closed  bool
	backlog chan amqp.Publishing
	done    chan struct{}

	conn         *amqp.Connection
	ch           amqpChannel
	queue        string
	drainTimeout time.Duration
	logger       zerolog.Logger
	metrics      *metrics.Metrics
}

// DialAMQP connects to url and declares queue. An empty url returns a nil
// publisher, which Publish treats as disabled.
func DialAMQP(url, queue string, logger zerolog.Logger, m *metrics.Metrics) (*AMQPPublisher, error) {
	if strings.TrimSpace(url) == "" {
		return nil, nil
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp: open channel: %w", err)
	}
	q, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("amqp: declare queue %s: %w", queue, err)
	}
	p := newAMQPPublisher(ch, q.Name, defaultBacklog, logger, m)
	p.conn = conn
	return p, nil
}

func newAMQPPublisher(ch amqpChannel, queue string, backlog int, logger zerolog.Logger, m *metrics.Metrics) *AMQPPublisher {
	p := &AMQPPublisher{
		backlog:      make(chan amqp.Publishing, backlog),
		done:         make(chan struct{}),
		ch:           ch,
		queue:        queue,
		drainTimeout: defaultDrainTimeout,
		logger:       logger,
		metrics:      m,
	}
	go p.run()
	return p
}

func (p *AMQPPublisher) run() {
	defer close(p.done)
	for msg := range p.backlog {
		if err := p.ch.Publish("", p.queue, false, false, msg); err != nil {
			p.metrics.NotifyFailed()
			p.logger.Warn().Err(err).Str("type", msg.Type).Str("record_id", msg.MessageId).Msg("amqp publish failed")
		}
	}
}

// Publish encodes event as JSON and queues it as a persistent message. It
// never blocks: when the backlog is full the event is dropped with
// ErrBacklogFull.
func (p *AMQPPublisher) Publish(ctx context.Context, event domain.SubmissionEvent) error {
	if p == nil || p.ch == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := newPublishing(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPublisherClosed
	}
	select {
	case p.backlog <- msg:
		return nil
	default:
		return fmt.Errorf("%w: dropped %s %s", ErrBacklogFull, event.Kind, event.RecordID)
	}
}

// Close stops accepting events, waits up to the drain timeout for queued ones
// to reach the broker, then closes the channel and the connection.
func (p *AMQPPublisher) Close() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	if p.backlog != nil {
		close(p.backlog)
	}
	p.mu.Unlock()

	if p.done != nil {
		select {
		case <-p.done:
		case <-time.After(p.drainTimeout):
			p.logger.Warn().Int("pending", len(p.backlog)).Msg("amqp drain timed out")
		}
	}

	var firstErr error
	if p.ch != nil {
		firstErr = p.ch.Close()
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func newPublishing(event domain.SubmissionEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("amqp: encode %s: %w", event.Kind, err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.RecordID,
		Type:         "submission." + string(event.Kind),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}, nil
}

var _ domain.SubmissionPublisher = (*AMQPPublisher)(nil)
