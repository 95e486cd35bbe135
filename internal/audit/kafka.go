package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"boardkeep/internal/platform/kafka/producer"
)

// KafkaPublisher ships events to a Kafka topic as JSON records keyed by
// owner, so one owner's events stay ordered within a partition.
type KafkaPublisher struct {
	producer *producer.Producer
	topic    string
}

func NewKafkaPublisher(p *producer.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: p, topic: topic}
}

func (p *KafkaPublisher) Emit(ctx context.Context, event Event) error {
	event = Stamp(event)
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}
	return p.producer.ProduceSync(ctx, p.topic, []byte(event.Owner), payload)
}
