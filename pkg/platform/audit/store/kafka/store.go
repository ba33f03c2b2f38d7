// Package kafka publishes audit events as JSON records with franz-go.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	audit "unitconv/pkg/platform/audit"
)

// Producer is the subset of *kgo.Client the store needs.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Store writes each event to topic, keyed by dimension so one dimension's
// events keep their order within a partition.
type Store struct {
	producer Producer
	topic    string
}

func New(producer Producer, topic string) *Store {
	return &Store{producer: producer, topic: topic}
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.Dimension),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "action", Value: []byte(event.Action)},
			{Key: "category", Value: []byte(event.Category)},
		},
	}
	if err := s.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

// Decode parses a record value written by Append.
func Decode(value []byte) (audit.Event, error) {
	var event audit.Event
	if err := json.Unmarshal(value, &event); err != nil {
		return audit.Event{}, fmt.Errorf("decode audit event: %w", err)
	}
	return event, nil
}
