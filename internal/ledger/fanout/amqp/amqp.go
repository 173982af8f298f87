// Package amqp publishes ledger notifications to a topic exchange of an AMQP broker.
package amqp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/streadway/amqp"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

const (
	transportName   = "amqp"
	channelHeader   = "x-ledger-channel"
	contentTypeJSON = "application/json"
)

type (
	Channel interface {
		Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	}
)

// Transport publishes envelopes to exchange with the notification channel as routing key.
type Transport struct {
	ch       Channel
	exchange string
	now      func() time.Time
}

// NewTransport returns a Transport publishing through ch.
func NewTransport(ch Channel, exchange string) *Transport {
	return &Transport{ch: ch, exchange: exchange, now: time.Now}
}

// Name implements fanout.Transport.
func (t *Transport) Name() string {
	return transportName
}

// Send implements fanout.Transport.
func (t *Transport) Send(ctx context.Context, channel string, envelope []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := amqp.Publishing{
		Headers:      amqp.Table{channelHeader: channel},
		ContentType:  contentTypeJSON,
		DeliveryMode: amqp.Persistent,
		Timestamp:    t.now(),
		Body:         envelope,
	}
	if err := t.ch.Publish(t.exchange, RoutingKey(channel), false, false, msg); err != nil {
		return fmt.Errorf("publish to exchange %s: %w", t.exchange, err)
	}
	return nil
}

// RoutingKey maps a notification channel onto a topic routing key, "ledger:ADDR" becoming
// "ledger.ADDR".
func RoutingKey(channel string) string {
	return strings.ReplaceAll(channel, ":", ".")
}

// Dial connects to url, declares the durable topic exchange and returns a transport
// bound to it together with a function releasing the connection.
func Dial(url, exchange string) (*Transport, func() error, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open amqp channel: %w", err)
	}
	if err = ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	closeFn := func() error {
		_ = ch.Close()
		return conn.Close()
	}
	return NewTransport(ch, exchange), closeFn, nil
}
