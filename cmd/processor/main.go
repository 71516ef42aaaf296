package main

import (
	"github.com/alltools-tech/true-pdf/config"
	"github.com/alltools-tech/true-pdf/internal/database"
	"github.com/alltools-tech/true-pdf/internal/pkg/engine"
	"github.com/alltools-tech/true-pdf/internal/pkg/kafka"
	"github.com/alltools-tech/true-pdf/internal/pkg/optimizer"
	"github.com/alltools-tech/true-pdf/internal/pkg/rasterizer"
	"github.com/alltools-tech/true-pdf/internal/pkg/storage"
	"github.com/alltools-tech/true-pdf/internal/service"
	"github.com/alltools-tech/true-pdf/internal/worker"
)

func main() {
	fileStorage := storage.NewFileStorage(config.GetEnv("STORAGE_PATH", "./storage"))
	docRepo := database.NewDocumentRepository(fileStorage)

	brokers := config.GetEnv("KAFKA_BROKERS", "localhost:9094")
	topic := config.GetEnv("KAFKA_TOPIC", "document-compression")

	compressService := service.NewCompressService(
		docRepo,
		kafka.NewProducer(brokers, topic),
		engine.NewRecompressEngine(),
		optimizer.NewOptimizer(),
		rasterizer.NewRasterizer(),
		topic,
	)

	worker.StartCompressConsumer(
		[]string{brokers},
		topic,
		config.GetEnv("KAFKA_GROUP_ID", "pdf-compressor-service"),
		compressService,
	)
}
