package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gani-23/Oauth4.0/config"
)

// Producer is the subset of *kafka.Conn the services write through. Tests
// substitute an in-memory recorder.
type Producer interface {
	WriteMessages(msgs ...kafka.Message) (int, error)
}

func CreateKafkaReader(config *config.Config, topic string, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:          []string{config.KafkaConfig.BrokerAddress},
		Topic:            topic,
		Partition:        config.KafkaConfig.BrokerPartition,
		MinBytes:         1e3, // 1KB
		MaxBytes:         1e6, // 1MB
		MaxWait:          100 * time.Millisecond,
		ReadLagInterval:  -1,
		StartOffset:      kafka.LastOffset,
		GroupID:          groupID,
		QueueCapacity:    1000,
		ReadBatchTimeout: 10 * time.Millisecond,
	})
}

func CreateKafkaProducer(config *config.Config, topic string) *kafka.Conn {
	conn, err := kafka.DialLeader(context.Background(), "tcp", config.KafkaConfig.BrokerAddress, topic, config.KafkaConfig.BrokerPartition)
	if err != nil {
		panic(err)
	}

	return conn
}
