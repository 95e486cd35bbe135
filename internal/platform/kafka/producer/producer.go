// Package producer wraps the franz-go client for fire-and-forget audit
// publishing.
package producer

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Producer is a thin wrapper over a kgo client scoped to produce-only use.
type Producer struct {
	client *kgo.Client
}

// New connects to the given seed brokers. Returns nil when no brokers are
// configured (Kafka disabled).
func New(brokers []string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, nil
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &Producer{client: client}, nil
}

// ProduceSync publishes one record and blocks until the broker acks it.
func (p *Producer) ProduceSync(ctx context.Context, topic string, key, value []byte) error {
	record := &kgo.Record{Topic: topic, Key: key, Value: value}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce to %s: %w", topic, err)
	}
	return nil
}

// Close flushes buffered records and releases the client.
func (p *Producer) Close() {
	if p == nil {
		return
	}
	p.client.Close()
}
