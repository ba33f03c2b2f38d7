//go:build integration

package kafka_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	platformkafka "unitconv/internal/platform/kafka"
	audit "unitconv/pkg/platform/audit"
	"unitconv/pkg/platform/audit/store/kafka"
	"unitconv/pkg/testutil/containers"
)

type KafkaStoreSuite struct {
	suite.Suite
	redpanda *containers.RedpandaContainer
}

func TestKafkaStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaStoreSuite))
}

func (s *KafkaStoreSuite) SetupSuite() {
	s.redpanda = containers.GetManager().GetRedpanda(s.T())
}

func (s *KafkaStoreSuite) TestAppendIsConsumable() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	topic := "audit-" + time.Now().Format("150405.000000")

	producer, err := kgo.NewClient(kgo.SeedBrokers(s.redpanda.Brokers...))
	s.Require().NoError(err)
	defer producer.Close()
	s.Require().NoError(platformkafka.EnsureTopic(ctx, producer, topic))

	store := kafka.New(producer, topic)
	s.Require().NoError(store.Append(ctx, audit.Event{
		Action:    audit.EventConversionPerformed,
		Dimension: "length",
		Input:     "10mm",
		Result:    "1cm",
	}))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.redpanda.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	s.Require().Empty(fetches.Errors())
	records := fetches.Records()
	s.Require().Len(records, 1)

	event, err := kafka.Decode(records[0].Value)
	s.Require().NoError(err)
	s.Equal("10mm", event.Input)
	s.Equal("1cm", event.Result)
}
