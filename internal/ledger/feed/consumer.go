// Package feed consumes upstream transactions from an AMQP queue.
package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/model"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

const consumerTag = "ledger-listener"

type (
	Channel interface {
		Qos(prefetchCount, prefetchSize int, global bool) error
		QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
		Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
		Cancel(consumer string, noWait bool) error
	}
)

// Message is one upstream delivery. Err is set when the body could not be decoded.
type Message struct {
	Transaction model.Transaction
	Err         error

	delivery amqp.Delivery
}

// NewMessage decodes d into a Message.
func NewMessage(d amqp.Delivery) Message {
	msg := Message{delivery: d}
	msg.Transaction, msg.Err = Decode(d.Body)
	return msg
}

// TxID returns the decoded transaction id, if any.
func (m Message) TxID() string {
	return m.Transaction.TxID
}

// Ack confirms the message.
func (m Message) Ack() error {
	return m.delivery.Ack(false)
}

// Reject drops the message, or hands it back to the queue when requeue is set.
func (m Message) Reject(requeue bool) error {
	return m.delivery.Reject(requeue)
}

// Consumer reads transactions from a durable queue with manual acknowledgement.
type Consumer struct {
	ch       Channel
	queue    string
	prefetch int
	logger   *zap.Logger
}

// NewConsumer returns a Consumer reading queue through ch with at most prefetch
// unacknowledged deliveries.
func NewConsumer(ch Channel, queue string, prefetch int, logger *zap.Logger) (*Consumer, error) {
	if queue == "" {
		return nil, errors.New("feed queue is required")
	}
	if prefetch <= 0 {
		prefetch = 1
	}
	return &Consumer{ch: ch, queue: queue, prefetch: prefetch, logger: logger}, nil
}

// Messages starts consuming. The returned channel is closed when ctx is done or the
// broker closes the delivery stream.
func (c *Consumer) Messages(ctx context.Context) (<-chan Message, error) {
	if err := c.ch.Qos(c.prefetch, 0, false); err != nil {
		return nil, fmt.Errorf("set qos: %w", err)
	}
	if _, err := c.ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare queue %s: %w", c.queue, err)
	}
	deliveries, err := c.ch.Consume(c.queue, consumerTag, false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("consume queue %s: %w", c.queue, err)
	}

	out := make(chan Message)
	go func() {
		defer close(out)
		defer func() {
			if err := c.ch.Cancel(consumerTag, false); err != nil {
				c.logger.Debug("cancel feed consumer", zap.Error(err))
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					c.logger.Warn("feed delivery stream closed", zap.String("queue", c.queue))
					return
				}
				select {
				case out <- NewMessage(d):
				case <-ctx.Done():
					// unacknowledged deliveries are redelivered by the broker
					return
				}
			}
		}
	}()
	return out, nil
}

// Dial connects to url and returns a consumer of queue together with a function
// releasing the connection.
func Dial(url, queue string, prefetch int, logger *zap.Logger) (*Consumer, func() error, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open amqp channel: %w", err)
	}
	consumer, err := NewConsumer(ch, queue, prefetch, logger)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return consumer, conn.Close, nil
}

// DialWithRetry calls Dial until it succeeds, attempts run out or ctx is done, waiting
// backoff between attempts.
func DialWithRetry(
	ctx context.Context,
	url, queue string,
	prefetch, attempts int,
	backoff time.Duration,
	logger *zap.Logger,
) (*Consumer, func() error, error) {
	dial := func() (*Consumer, func() error, error) {
		return Dial(url, queue, prefetch, logger)
	}
	return redial(ctx, dial, attempts, backoff, clock.SleepWithContext, logger)
}

func redial(
	ctx context.Context,
	dial func() (*Consumer, func() error, error),
	attempts int,
	backoff time.Duration,
	sleep func(context.Context, time.Duration) error,
	logger *zap.Logger,
) (*Consumer, func() error, error) {
	if attempts <= 0 {
		attempts = 1
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		var (
			consumer *Consumer
			closeFn  func() error
		)
		consumer, closeFn, err = dial()
		if err == nil {
			return consumer, closeFn, nil
		}
		if attempt == attempts {
			break
		}
		logger.Warn("feed dial failed",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)
		if err := sleep(ctx, backoff); err != nil {
			return nil, nil, err
		}
	}
	return nil, nil, fmt.Errorf("dial feed after %d attempts: %w", attempts, err)
}
