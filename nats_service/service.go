package nats_service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/olyvenbayani/guestbook/config"
	"github.com/olyvenbayani/guestbook/models"
)

// entriesSubject is where accepted guestbook entries are published.
const entriesSubject = config.SubjectPrefix + ".entries"

type NatsService struct {
	js     jetstream.JetStream
	nc     *nats.Conn
	logger *slog.Logger
}

// NewNatsService connects to NATS and ensures the entry stream exists.
func NewNatsService(url string, logger *slog.Logger) (*NatsService, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create jetstream context: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err = js.Stream(ctx, config.StreamName); err != nil {
		streamCfg := jetstream.StreamConfig{
			Name:        config.StreamName,
			Description: "Guestbook entry feed",
			Subjects:    []string{fmt.Sprintf("%s.*", config.SubjectPrefix)},
			MaxAge:      24 * time.Hour, // feed history only; the log is the source of truth
			Storage:     jetstream.FileStorage,
		}
		if _, err = js.CreateStream(ctx, streamCfg); err != nil {
			nc.Close()
			return nil, fmt.Errorf("failed to create stream '%s': %w", config.StreamName, err)
		}
		logger.Info("created entry stream", "stream", config.StreamName)
	}

	return &NatsService{js: js, nc: nc, logger: logger}, nil
}

// Close NATS connection
func (s *NatsService) Close() {
	if s.nc != nil {
		s.nc.Close()
	}
}

// PublishEntry sends an accepted entry to the feed subject.
func (s *NatsService) PublishEntry(ctx context.Context, msg *models.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	if _, err = s.js.Publish(ctx, entriesSubject, data); err != nil {
		return fmt.Errorf("failed to publish entry to subject '%s': %w", entriesSubject, err)
	}
	s.logger.Debug("published entry", "subject", entriesSubject, "id", msg.ID)
	return nil
}

// SubscribeEntries calls handler for every entry published after the
// subscription starts. Earlier entries are on the rendered page already, so
// the consumer is ephemeral and delivers new messages only.
func (s *NatsService) SubscribeEntries(ctx context.Context, handler func(msg *models.Message)) (jetstream.ConsumeContext, error) {
	cons, err := s.js.CreateOrUpdateConsumer(ctx, config.StreamName, jetstream.ConsumerConfig{
		FilterSubject: entriesSubject,
		DeliverPolicy: jetstream.DeliverNewPolicy,
		AckPolicy:     jetstream.AckNonePolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer for subject '%s': %w", entriesSubject, err)
	}

	consumeCtx, err := cons.Consume(func(jsMsg jetstream.Msg) {
		var msg models.Message
		if err := json.Unmarshal(jsMsg.Data(), &msg); err != nil {
			s.logger.Warn("failed to unmarshal entry", "subject", jsMsg.Subject(), "error", err)
			return
		}
		handler(&msg)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming from subject '%s': %w", entriesSubject, err)
	}

	return consumeCtx, nil
}
