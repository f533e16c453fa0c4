package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pitchside/transfer-market-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

type DefaultKafkaPublisher struct {
	writer *kafka.Writer
}

func NewDefaultKafkaPublisher(brokers []string) *DefaultKafkaPublisher {
	return &DefaultKafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (k *DefaultKafkaPublisher) Publish(topic string, msgs ...domain.Message) error {
	var km []kafka.Message
	for _, m := range msgs {
		km = append(km, kafka.Message{
			Key:   m.Key,
			Value: m.Value,
			Time:  time.Now(),
			Topic: topic,
		})
	}

	return k.writer.WriteMessages(context.Background(), km...)
}

func (k *DefaultKafkaPublisher) PublishRosterReady(event RosterReadyEvent) error {
	event.Event = EventRosterReady
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return k.Publish(RosterEventsTopic, domain.Message{Key: []byte(event.UserID), Value: v})
}

func (k *DefaultKafkaPublisher) PublishTradeCompleted(event TradeCompletedEvent) error {
	event.Event = EventTradeCompleted
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}

	// Keyed by buyer so one party's events stay ordered per partition.
	return k.Publish(TradeEventsTopic, domain.Message{Key: []byte(event.BuyerUserID), Value: v})
}
