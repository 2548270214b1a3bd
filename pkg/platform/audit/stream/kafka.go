// Package stream publishes audit entries to Kafka for downstream consumers
// (SIEM, warehousing, tamper-evidence anchoring). The stream is a mirror of
// the primary store, never the system of record.
package stream

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	audit "arbiter/pkg/platform/audit"
)

// Sink is anything that can receive audit entries asynchronously.
type Sink interface {
	Publish(ctx context.Context, entry audit.Entry) error
	Close()
}

// KafkaSink publishes entries as JSON records keyed by decision ID so all
// entries for one decision land in the same partition, preserving their order.
type KafkaSink struct {
	client *kgo.Client
	topic  string
}

// NewKafkaSink connects to the given brokers. The topic must already exist or
// broker auto-creation must be enabled.
func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaSink{client: client, topic: topic}, nil
}

// Publish produces one entry synchronously with respect to the caller, which
// is the background worker rather than the request path.
func (s *KafkaSink) Publish(ctx context.Context, entry audit.Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}

	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(entry.DecisionID),
		Value: payload,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit entry: %w", err)
	}
	return nil
}

// Close flushes and releases the client.
func (s *KafkaSink) Close() {
	s.client.Close()
}
