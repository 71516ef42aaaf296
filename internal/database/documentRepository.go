package database

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/alltools-tech/true-pdf/internal/entity"
	"github.com/alltools-tech/true-pdf/internal/pkg/storage"
)

func NewDocumentRepository(storage storage.FileStorage) DocumentRepository {
	return &fileDocumentRepository{storage: storage}
}

func (r *fileDocumentRepository) Save(doc *entity.Document) error {
	metadataPath := r.getMetadataPath(doc.ID)

	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	return r.storage.Save(metadataPath, bytes.NewReader(data))
}

func (r *fileDocumentRepository) FindByID(id string) (*entity.Document, error) {
	metadataPath := r.getMetadataPath(id)

	reader, err := r.storage.Get(metadataPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, entity.ErrDocumentNotFound
		}
		return nil, err
	}
	defer reader.Close()

	var doc entity.Document
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

func (r *fileDocumentRepository) Delete(id string) error {
	metadataPath := r.getMetadataPath(id)
	if err := r.storage.Delete(metadataPath); err != nil && !os.IsNotExist(err) {
		return err
	}

	for _, kind := range []string{"original", "compressed", "pages"} {
		if err := r.storage.Delete(r.FilePath(id, kind)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

func (r *fileDocumentRepository) SaveFile(id string, kind string, file io.Reader) error {
	return r.storage.Save(r.FilePath(id, kind), file)
}

// FilePath возвращает путь файла относительно корня хранилища
func (r *fileDocumentRepository) FilePath(id string, kind string) string {
	return filepath.Join(kind, id)
}

// FullFilePath возвращает абсолютный путь для коллабораторов,
// работающих с файлом напрямую (контейнер, pdfcpu)
func (r *fileDocumentRepository) FullFilePath(id string, kind string) string {
	return r.storage.FullPath(r.FilePath(id, kind))
}

func (r *fileDocumentRepository) FileSize(id string, kind string) (int64, error) {
	return r.storage.Size(r.FilePath(id, kind))
}

func (r *fileDocumentRepository) getMetadataPath(id string) string {
	return filepath.Join("metadata", id+".json")
}
