package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/Shopify/sarama"
)

type KafkaPublisher struct {
	topic string
	conn  sarama.SyncProducer
}

func NewKafkaProducer(brokers []string) (sarama.SyncProducer, error) {
	saramaConf := sarama.NewConfig()
	saramaConf.Producer.Return.Successes = true
	saramaConf.Producer.Return.Errors = true
	saramaConf.Producer.RequiredAcks = sarama.WaitForAll

	client, err := sarama.NewClient(brokers, saramaConf)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}

	conn, err := sarama.NewSyncProducerFromClient(client)
	if err != nil {
		if cerr := client.Close(); cerr != nil {
			log.Printf("Failed to close kafka client: %v", cerr)
		}
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return &clientProducer{SyncProducer: conn, client: client}, nil
}

// clientProducer owns the client its producer was built from; sarama leaves
// closing that client to the caller.
type clientProducer struct {
	sarama.SyncProducer
	client sarama.Client
}

func (p *clientProducer) Close() error {
	return errors.Join(p.SyncProducer.Close(), p.client.Close())
}

func NewKafkaPublisher(conn sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{conn: conn, topic: topic}
}

// Publish keys messages by order id so one order's events stay ordered
// within a partition.
func (p *KafkaPublisher) Publish(ctx context.Context, event OrderEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, _, err = p.conn.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.OrderID),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("publish %s for order %s: %w", event.Type, event.OrderID, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.conn.Close()
}
