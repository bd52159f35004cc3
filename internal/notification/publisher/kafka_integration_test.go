//go:build integration

package publisher_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"govdesk/internal/notification/models"
	"govdesk/internal/notification/publisher"
	"govdesk/pkg/testutil/containers"
)

type KafkaPublisherSuite struct {
	suite.Suite
	redpanda *containers.RedpandaContainer
}

func TestKafkaPublisherSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaPublisherSuite))
}

func (s *KafkaPublisherSuite) SetupSuite() {
	s.redpanda = containers.GetManager().GetRedpanda(s.T())
}

func (s *KafkaPublisherSuite) TestPublishIsConsumable() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	topic := "govdesk.test.notifications"
	s.Require().NoError(s.redpanda.CreateTopic(ctx, topic))

	pub, err := publisher.NewKafka([]string{s.redpanda.Broker}, publisher.WithTopic(topic))
	s.Require().NoError(err)
	defer pub.Close()

	n := models.NewNotification(models.Message{
		UserEmail:   "Asha@Example.in",
		Title:       "Application Expired",
		Message:     "please fill it again",
		Type:        models.TypeWarning,
		ServiceName: "Ration Card",
	}, time.Now())
	s.Require().NoError(pub.Publish(ctx, n))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.redpanda.Broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	s.Require().NoError(fetches.Err())
	records := fetches.Records()
	s.Require().NotEmpty(records)

	rec := records[0]
	s.Equal("asha@example.in", string(rec.Key))
	var got models.Notification
	s.Require().NoError(json.Unmarshal(rec.Value, &got))
	s.Equal(n.ID, got.ID)
	s.Equal(models.TypeWarning, got.Type)
	s.Equal("Ration Card", got.ServiceName)
}
