// Package natstracker publishes asset-tracking tuples to a NATS JetStream
// subject, for deployments that centralize asset tracking instead of
// keeping it in the local log.
package natstracker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	natsclient "github.com/nats-io/nats.go"
	"go.uber.org/zap"

	internalnats "github.com/wehubfusion/scriptfilter/internal/nats"
)

// Tuple is the wire form of one asset-tracking record.
type Tuple struct {
	Service   string    `json:"service"`
	Asset     string    `json:"asset"`
	Event     string    `json:"event"`
	Timestamp time.Time `json:"timestamp"`
}

// Config holds the tracker's connection and publishing configuration.
type Config struct {
	// Connection is the NATS connection configuration.
	Connection *internalnats.ConnectionConfig

	// Stream is the JetStream stream tracking tuples are published to.
	Stream string

	// Subject is the subject tracking tuples are published under.
	Subject string
}

// DefaultConfig returns a tracker configuration with sensible defaults.
func DefaultConfig(url string) *Config {
	return &Config{
		Connection: internalnats.DefaultConnectionConfig(url),
		Stream:     "ASSET_TRACKING",
		Subject:    "asset.tracking",
	}
}

// Tracker records asset-tracking tuples by publishing them to JetStream.
// It satisfies the filter package's Tracker interface. Publish failures
// are logged and swallowed: telemetry must never disturb the pipeline.
type Tracker struct {
	config *Config
	conn   *natsclient.Conn
	js     natsclient.JetStreamContext
	logger *zap.Logger
}

// New creates a tracker with the given configuration. The tracker must be
// connected with Connect before use.
func New(config *Config, logger *zap.Logger) (*Tracker, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if config.Subject == "" {
		return nil, fmt.Errorf("subject cannot be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{config: config, logger: logger}, nil
}

// Connect establishes the NATS connection and the JetStream context, and
// ensures the tracking stream exists.
func (t *Tracker) Connect(ctx context.Context) error {
	conn, err := internalnats.Connect(ctx, t.config.Connection, t.logger)
	if err != nil {
		return err
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to initialize JetStream context: %w", err)
	}

	if _, err := js.StreamInfo(t.config.Stream); err != nil {
		_, err = js.AddStream(&natsclient.StreamConfig{
			Name:     t.config.Stream,
			Subjects: []string{t.config.Subject},
		})
		if err != nil {
			conn.Close()
			return fmt.Errorf("failed to ensure stream %q exists: %w", t.config.Stream, err)
		}
	}

	t.conn = conn
	t.js = js
	return nil
}

// Record implements the filter Tracker interface. The tuple is published
// asynchronously from the caller's perspective; errors are only logged.
func (t *Tracker) Record(service, asset, event string) {
	if t.js == nil {
		t.logger.Warn("tracker not connected, dropping tuple",
			zap.String("service", service),
			zap.String("asset", asset))
		return
	}

	payload, err := json.Marshal(Tuple{
		Service:   service,
		Asset:     asset,
		Event:     event,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		t.logger.Error("failed to marshal tracking tuple", zap.Error(err))
		return
	}

	if _, err := t.js.Publish(t.config.Subject, payload); err != nil {
		t.logger.Error("failed to publish tracking tuple",
			zap.String("subject", t.config.Subject),
			zap.Error(err))
	}
}

// Close drains the underlying NATS connection.
func (t *Tracker) Close() error {
	return internalnats.Close(t.conn)
}
