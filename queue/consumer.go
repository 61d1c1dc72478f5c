package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go-storefront/utils"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer drains the notification queue, retrying each email a bounded
// number of times before dropping it
type Consumer struct {
	url         string
	queue       string
	mailer      utils.Mailer
	maxAttempts int
	retryDelay  time.Duration
}

// NewConsumer creates a Consumer that delivers through mailer
func NewConsumer(url, queue string, mailer utils.Mailer, maxAttempts int, retryDelay time.Duration) *Consumer {
	if maxAttempts < 1 {
		maxAttempts = 5
	}
	return &Consumer{
		url:         url,
		queue:       queue,
		mailer:      mailer,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
	}
}

// Run consumes until ctx is cancelled, reconnecting with backoff when the
// broker goes away
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			slog.Warn("notification-consumer: failed to dial broker", "error", err, "retry_in", backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		slog.Warn("notification-consumer: consume loop ended; reconnecting", "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(10, 0, false); err != nil {
		slog.Warn("notification-consumer: set QoS failed", "error", err)
	}
	if _, err := declare(ch, c.queue); err != nil {
		return err
	}
	msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			retry, err := c.process(ctx, d.Body)
			if err != nil {
				slog.Error("notification-consumer: bad message", "error", err)
				_ = d.Nack(false, false) // do not requeue garbage
				continue
			}
			if retry != nil {
				if err := c.republish(ctx, ch, *retry); err != nil {
					_ = d.Nack(false, true)
					return err
				}
			}
			_ = d.Ack(false)
		}
	}
}

// process delivers one job. A non-nil job means it should be tried again.
func (c *Consumer) process(ctx context.Context, body []byte) (*NotificationJob, error) {
	var job NotificationJob
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if job.Email.To == "" {
		return nil, errors.New("job has no recipient")
	}

	err := c.mailer.SendEmail(ctx, job.Email)
	if err == nil {
		slog.Info("notification-consumer: delivered", "to", job.Email.To, "subject", job.Email.Subject)
		return nil, nil
	}

	job.Attempts++
	if job.Attempts >= c.maxAttempts {
		slog.Error("notification-consumer: giving up", "to", job.Email.To, "subject", job.Email.Subject,
			"attempts", job.Attempts, "error", err)
		return nil, nil
	}
	slog.Warn("notification-consumer: delivery failed", "to", job.Email.To, "attempts", job.Attempts, "error", err)
	return &job, nil
}

func (c *Consumer) republish(ctx context.Context, ch *amqp.Channel, job NotificationJob) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.retryDelay):
	}
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	return ch.PublishWithContext(ctx, "", c.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}
