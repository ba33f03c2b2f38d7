// Package kafka builds franz-go clients for the audit topic.
package kafka

import (
	"context"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"unitconv/internal/platform/config"
)

// New creates a producer client for cfg.Topic and makes sure the topic
// exists. Returns nil, nil when no brokers are configured.
func New(ctx context.Context, cfg config.KafkaConfig) (*kgo.Client, error) {
	if len(cfg.Brokers) == 0 {
		return nil, nil
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ClientID(cfg.ClientID),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("kafka ping failed: %w", err)
	}
	if err := EnsureTopic(ctx, client, cfg.Topic); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

// EnsureTopic creates topic with broker defaults unless it already exists.
func EnsureTopic(ctx context.Context, client *kgo.Client, topic string) error {
	adm := kadm.NewClient(client)
	resp, err := adm.CreateTopic(ctx, -1, -1, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", topic, resp.Err)
	}
	return nil
}
