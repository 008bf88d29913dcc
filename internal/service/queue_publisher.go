// Package queue_publisher publishes domain events to RabbitMQ.  Publishing
// is best effort: errors are returned so callers can log them, but they
// never undo the action that produced the event.
package queue_publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/stagex-boxoffice/internal/logger"
	"github.com/iliyamo/stagex-boxoffice/internal/model"
	q "github.com/iliyamo/stagex-boxoffice/internal/queue"
	"github.com/iliyamo/stagex-boxoffice/internal/ticket"
)

// defaultDialTimeout bounds connect and handshake when ctx has no deadline.
const defaultDialTimeout = 30 * time.Second

// Publish sends body as a persistent JSON message to queue through the
// default exchange.  Each call dials its own connection; redemptions are
// rare enough that pooling is not worth the reconnect handling.  The TCP
// connect and AMQP handshake are bounded by ctx's deadline.
func Publish(ctx context.Context, url, queue string, body []byte) error {
	conn, err := amqp.DialConfig(url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(dialTimeout(ctx)),
	})
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}

func dialTimeout(ctx context.Context) time.Duration {
	dl, ok := ctx.Deadline()
	if !ok {
		return defaultDialTimeout
	}
	return max(time.Until(dl), time.Millisecond)
}

// PublishTicketRedeemed publishes event to the ticket.redeemed queue.
func PublishTicketRedeemed(ctx context.Context, url string, event q.TicketRedeemedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return Publish(ctx, url, q.TicketRedeemedQueue, body)
}

// RedemptionNotifier is the ticket.Notifier backed by RabbitMQ.  Failures
// are returned for the redeemer to log.
type RedemptionNotifier struct {
	URL     string
	Timeout time.Duration
	publish func(ctx context.Context, url string, event q.TicketRedeemedEvent) error
}

var _ ticket.Notifier = (*RedemptionNotifier)(nil)

// NewRedemptionNotifier publishes to the broker at url with a 3s budget
// per redemption.
func NewRedemptionNotifier(url string) *RedemptionNotifier {
	return &RedemptionNotifier{URL: url, Timeout: 3 * time.Second, publish: PublishTicketRedeemed}
}

// TicketRedeemed publishes the redemption within n.Timeout, dial included,
// so a slow broker cannot hold up the scanner's response.
func (n *RedemptionNotifier) TicketRedeemed(ctx context.Context, t model.Ticket) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.Timeout)
	defer cancel()

	ev := q.NewTicketRedeemedEvent(t, logger.RequestID(ctx))
	if err := n.publish(ctx, n.URL, ev); err != nil {
		return fmt.Errorf("publish %s: %w", q.TicketRedeemedQueue, err)
	}
	return nil
}
