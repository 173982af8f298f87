// Package centrifuge serves ledger notifications to websocket subscribers through an
// in-process centrifuge node.
package centrifuge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/centrifugal/centrifuge"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const (
	transportName  = "centrifuge"
	websocketPath  = "/connection/websocket"
	shutdownPeriod = 5 * time.Second
)

// Node is the part of *centrifuge.Node used to publish.
type Node interface {
	Publish(channel string, data []byte, opts ...centrifuge.PublishOption) (centrifuge.PublishResult, error)
}

// Transport publishes envelopes to a centrifuge channel of the same name.
type Transport struct {
	node Node
}

// NewTransport wraps node as a fanout transport.
func NewTransport(node Node) *Transport {
	return &Transport{node: node}
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
	if _, err := t.node.Publish(channel, envelope); err != nil {
		return fmt.Errorf("publish to %s: %w", channel, err)
	}
	return nil
}

// NewNode creates and runs a centrifuge node whose clients may only subscribe to
// channels under channelPrefix.
func NewNode(channelPrefix string, logger *zap.Logger) (*centrifuge.Node, error) {
	node, err := centrifuge.New(centrifuge.Config{
		LogLevel: centrifuge.LogLevelInfo,
		LogHandler: func(e centrifuge.LogEntry) {
			logger.Info(e.Message, zap.Any("fields", e.Fields))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create centrifuge node: %w", err)
	}

	node.OnConnecting(func(ctx context.Context, e centrifuge.ConnectEvent) (centrifuge.ConnectReply, error) {
		return centrifuge.ConnectReply{
			Credentials: &centrifuge.Credentials{UserID: ""},
		}, nil
	})

	node.OnConnect(func(client *centrifuge.Client) {
		client.OnSubscribe(func(e centrifuge.SubscribeEvent, cb centrifuge.SubscribeCallback) {
			if !AllowedChannel(channelPrefix, e.Channel) {
				cb(centrifuge.SubscribeReply{}, centrifuge.ErrorPermissionDenied)
				return
			}
			cb(centrifuge.SubscribeReply{}, nil)
		})
		client.OnDisconnect(func(e centrifuge.DisconnectEvent) {
			logger.Debug("subscriber disconnected", zap.String("client", client.ID()), zap.String("reason", e.Disconnect.Reason))
		})
		logger.Debug("subscriber connected", zap.String("client", client.ID()), zap.String("transport", client.Transport().Name()))
	})

	if err := node.Run(); err != nil {
		return nil, fmt.Errorf("run centrifuge node: %w", err)
	}
	return node, nil
}

// AllowedChannel reports whether channel is an account channel under prefix.
func AllowedChannel(prefix, channel string) bool {
	address, ok := strings.CutPrefix(channel, prefix+":")
	return ok && address != ""
}

// Handler returns the websocket endpoint of node wrapped with permissive CORS.
func Handler(node *centrifuge.Node) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(websocketPath, centrifuge.NewWebsocketHandler(node, centrifuge.WebsocketConfig{
		ReadBufferSize:     1024,
		UseWriteBufferPool: true,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}))
	return cors.AllowAll().Handler(mux)
}

// Serve runs the websocket endpoint on addr until ctx is done, then shuts down the
// server and the node.
func Serve(ctx context.Context, addr string, node *centrifuge.Node, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           Handler(node),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("websocket server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve websocket: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown websocket server: %w", err))
	}
	if err := node.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown centrifuge node: %w", err))
	}
	return errors.Join(errs...)
}
