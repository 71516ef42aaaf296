package worker

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/alltools-tech/true-pdf/internal/entity"
	"github.com/alltools-tech/true-pdf/internal/service"
	"github.com/segmentio/kafka-go"
)

// StartCompressConsumer читает задачи сжатия из Kafka и обрабатывает их.
// Каждый документ сжимается одним независимым вызовом; разные документы
// могут обрабатываться параллельно, общего состояния у вызовов нет.
func StartCompressConsumer(brokers []string, topic, groupID string, svc service.CompressService) {

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
		StartOffset:    kafka.FirstOffset,
	})

	defer reader.Close()

	log.Println("Compression consumer started...")
	log.Printf("Connected to Kafka brokers: %s", brokers)

	for {
		ctx := context.Background()
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			log.Printf("Error reading message from Kafka: %v", err)
			continue
		}

		log.Printf("Received message from topic %s [partition %d, offset %d]: %s\n",
			msg.Topic, msg.Partition, msg.Offset, string(msg.Value))

		var task entity.CompressionTask
		if err := json.Unmarshal(msg.Value, &task); err != nil {
			log.Printf("Failed to parse task: %v\n", err)
			continue
		}

		go func(t entity.CompressionTask) {
			if _, err := svc.Compress(t.DocumentID, t.Quality, t.Scheme); err != nil {
				log.Printf("Compression failed for %s: %v\n", t.DocumentID, err)
			} else {
				log.Printf("Successfully compressed document: %s", t.DocumentID)
			}
		}(task)
	}
}
