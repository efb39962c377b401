package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"
)

// JetStreamConfig holds the NATS JetStream publisher settings.
type JetStreamConfig struct {
	URL           string
	StreamName    string
	SubjectPrefix string
	MaxReconnects int
	ReconnectWait time.Duration
	MaxAge        time.Duration
}

// DefaultJetStreamConfig returns settings suitable for a local broker.
func DefaultJetStreamConfig() JetStreamConfig {
	return JetStreamConfig{
		URL:           nats.DefaultURL,
		StreamName:    "ACTIVITY_EVENTS",
		SubjectPrefix: "activity.events",
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
		MaxAge:        7 * 24 * time.Hour,
	}
}

// JetStreamPublisher publishes activity events to a JetStream stream.
type JetStreamPublisher struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	config JetStreamConfig
}

// NewJetStreamPublisher connects to NATS and ensures the stream exists.
func NewJetStreamPublisher(ctx context.Context, cfg JetStreamConfig) (*JetStreamPublisher, error) {
	opts := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     cfg.StreamName,
		Subjects: []string{cfg.SubjectPrefix + ".>"},
		MaxAge:   cfg.MaxAge,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("ensure stream %s: %w", cfg.StreamName, err)
	}

	return &JetStreamPublisher{nc: nc, js: js, config: cfg}, nil
}

// Publish sends the event to <prefix>.<event type>. The event id doubles
// as the message id for broker-side duplicate detection.
func (p *JetStreamPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	subject := fmt.Sprintf("%s.%s", p.config.SubjectPrefix, event.Type)
	_, err = p.js.Publish(ctx, subject, payload, jetstream.WithMsgID(event.ID.String()))
	if err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}
	return nil
}

// Close drains the connection.
func (p *JetStreamPublisher) Close() error {
	return p.nc.Drain()
}
