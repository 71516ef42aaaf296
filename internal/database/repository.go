package database

import (
	"io"

	"github.com/alltools-tech/true-pdf/internal/entity"
	"github.com/alltools-tech/true-pdf/internal/pkg/storage"
)

type DocumentRepository interface {
	Save(doc *entity.Document) error
	FindByID(id string) (*entity.Document, error)
	Delete(id string) error
	SaveFile(id string, kind string, file io.Reader) error
	FilePath(id string, kind string) string
	FullFilePath(id string, kind string) string
	FileSize(id string, kind string) (int64, error)
}

type fileDocumentRepository struct {
	storage storage.FileStorage
}
