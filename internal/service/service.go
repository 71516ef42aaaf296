package service

import (
	"mime/multipart"

	"github.com/alltools-tech/true-pdf/internal/database"
	"github.com/alltools-tech/true-pdf/internal/entity"
	"github.com/alltools-tech/true-pdf/internal/pkg/engine"
	"github.com/alltools-tech/true-pdf/internal/pkg/kafka"
	"github.com/alltools-tech/true-pdf/internal/pkg/optimizer"
	"github.com/alltools-tech/true-pdf/internal/pkg/rasterizer"
)

type CompressService interface {
	StoreOriginal(id string, file *multipart.FileHeader, quality int, scheme string) error
	Upload(id string, file *multipart.FileHeader, quality int, scheme string) (string, error)
	Compress(id string, quality int, scheme string) (*entity.CompressionResult, error)
	GetDocument(id string) (*entity.Document, error)
	DeleteDocument(id string) error
	OptimizePDF(id string) (*entity.CompressionResult, error)
	PagesToImages(id string, quality int) (int, error)
	FilePath(id string, kind string) string
}

type compressService struct {
	repo       database.DocumentRepository
	producer   kafka.Producer
	engine     engine.RecompressEngine
	optimizer  optimizer.Optimizer
	rasterizer rasterizer.Rasterizer
	topic      string
}

func NewCompressService(
	repo database.DocumentRepository,
	producer kafka.Producer,
	eng engine.RecompressEngine,
	opt optimizer.Optimizer,
	rast rasterizer.Rasterizer,
	topic string,
) CompressService {
	return &compressService{
		repo:       repo,
		producer:   producer,
		engine:     eng,
		optimizer:  opt,
		rasterizer: rast,
		topic:      topic,
	}
}
