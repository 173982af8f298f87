// Package fanout delivers committed ledger events to every configured transport.
package fanout

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/model"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

const defaultTimeout = 5 * time.Second

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type (
	// Transport hands an encoded envelope to subscribers of channel.
	Transport interface {
		Name() string
		Send(ctx context.Context, channel string, envelope []byte) error
	}
	Metrics interface {
		ObservePublish(transport string, err error, started time.Time)
	}
)

// Envelope is the wire form shared by all transports.
type Envelope struct {
	Channel string              `json:"channel"`
	Data    jsoniter.RawMessage `json:"data"`
	Ext     map[string]string   `json:"ext,omitempty"`
}

// Fanout publishes events to its transports. It never retries.
type Fanout struct {
	transports []Transport
	secret     string
	timeout    time.Duration
	metrics    Metrics
	logger     *zap.Logger
}

// New constructs a Fanout. Every published event carries secret as its password extension.
func New(secret string, timeout time.Duration, metrics Metrics, logger *zap.Logger, transports ...Transport) (*Fanout, error) {
	if secret == "" {
		return nil, errors.New("notification secret is required")
	}
	if metrics == nil {
		return nil, errors.New("fanout metrics is required")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Fanout{
		transports: transports,
		secret:     secret,
		timeout:    timeout,
		metrics:    metrics,
		logger:     logger,
	}, nil
}

// Publish sends event through every transport concurrently. Failures and timeouts are
// returned as joined *model.DeliveryError values.
func (f *Fanout) Publish(ctx context.Context, event model.NotificationEvent) error {
	envelope, err := f.encode(event)
	if err != nil {
		return &model.DeliveryError{Channel: event.Channel, Err: err}
	}

	errs := make([]error, len(f.transports))
	var wg sync.WaitGroup
	for i, transport := range f.transports {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = f.send(ctx, transport, event.Channel, envelope)
		}()
	}
	wg.Wait()

	return errors.Join(errs...)
}

func (f *Fanout) encode(event model.NotificationEvent) ([]byte, error) {
	ext := make(map[string]string, len(event.Extensions)+1)
	maps.Copy(ext, event.Extensions)
	ext[model.PasswordExtension] = f.secret

	data := event.Payload
	if len(data) == 0 {
		data = []byte("null")
	}
	envelope, err := json.Marshal(Envelope{Channel: event.Channel, Data: data, Ext: ext})
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	return envelope, nil
}

// send bounds a transport call by the timeout even when the transport ignores ctx.
func (f *Fanout) send(ctx context.Context, transport Transport, channel string, envelope []byte) (err error) {
	started := time.Now()
	defer func() {
		f.metrics.ObservePublish(transport.Name(), err, started)
	}()

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- transport.Send(ctx, channel, envelope)
	}()

	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err == nil {
		return nil
	}

	f.logger.Warn("notification delivery failed",
		zap.String("transport", transport.Name()),
		zap.String("channel", channel),
		zap.Error(err),
	)
	return &model.DeliveryError{Channel: channel, Err: fmt.Errorf("transport %s: %w", transport.Name(), err)}
}
