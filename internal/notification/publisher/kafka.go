package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"govdesk/internal/notification/models"
	"govdesk/pkg/platform/sentinel"
)

// DefaultTopic carries every raised notification.
const DefaultTopic = "govdesk.notifications"

// KafkaPublisher mirrors notifications onto a topic for downstream delivery
// channels (SMS, email). Records are keyed by recipient so one user's
// notifications stay ordered within a partition.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

type Option func(*KafkaPublisher)

func WithTopic(topic string) Option {
	return func(p *KafkaPublisher) {
		if topic != "" {
			p.topic = topic
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *KafkaPublisher) {
		p.logger = logger
	}
}

// NewKafka connects a producer to brokers.
func NewKafka(brokers []string, opts ...Option) (*KafkaPublisher, error) {
	p := &KafkaPublisher{topic: DefaultTopic, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(p.topic),
		kgo.AllowAutoTopicCreation(),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	p.client = client
	return p, nil
}

// Topic returns the destination topic.
func (p *KafkaPublisher) Topic() string {
	return p.topic
}

// Publish produces one record and waits for the broker acknowledgement.
func (p *KafkaPublisher) Publish(ctx context.Context, n *models.Notification) error {
	value, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	rec := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(n.UserEmail),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "notification-type", Value: []byte(n.Type)},
			{Key: "notification-id", Value: []byte(n.ID)},
		},
	}
	if err := p.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("%w: produce notification: %v", sentinel.ErrUnavailable, err)
	}
	p.logger.DebugContext(ctx, "notification published",
		"notification_id", n.ID,
		"topic", p.topic,
	)
	return nil
}

// Close flushes buffered records and closes the client.
func (p *KafkaPublisher) Close() {
	p.client.Close()
}
