package service

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"os"

	"github.com/alltools-tech/true-pdf/internal/entity"
	"github.com/alltools-tech/true-pdf/internal/pkg/container"
)

// StoreOriginal сохраняет загруженный файл и запись о документе
func (s *compressService) StoreOriginal(id string, file *multipart.FileHeader, quality int, scheme string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	// Создаем запись в репозитории
	doc := &entity.Document{
		ID:      id,
		Name:    file.Filename,
		Status:  entity.StatusProcessing,
		Quality: quality,
		Scheme:  scheme,
	}

	if err := s.repo.Save(doc); err != nil {
		return err
	}

	// Сохраняем оригинал
	return s.repo.SaveFile(id, "original", src)
}

func (s *compressService) Upload(id string, file *multipart.FileHeader, quality int, scheme string) (string, error) {
	if err := s.StoreOriginal(id, file, quality, scheme); err != nil {
		return "", err
	}

	// Отправляем в Kafka для обработки
	task := entity.CompressionTask{
		DocumentID: id,
		Quality:    quality,
		Scheme:     scheme,
	}

	if err := s.producer.SendMessage(s.topic, task); err != nil {
		return "", err
	}

	return id, nil
}

// Compress перекодирует изображения сохраненного документа и пишет
// результат со сборкой мусора и сжатием потоков. Один вызов владеет
// документом целиком; при фатальной ошибке вывод не создается.
func (s *compressService) Compress(id string, quality int, scheme string) (*entity.CompressionResult, error) {
	result, err := s.compress(id, quality, scheme)
	if err != nil {
		s.markFailed(id, err)
		return nil, err
	}

	if doc, ferr := s.repo.FindByID(id); ferr == nil {
		doc.Status = entity.StatusCompleted
		doc.Result = result
		if serr := s.repo.Save(doc); serr != nil {
			return result, serr
		}
	}

	return result, nil
}

func (s *compressService) compress(id string, quality int, scheme string) (*entity.CompressionResult, error) {
	doc, err := container.Open(s.repo.FullFilePath(id, "original"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrDocumentCorrupt, err)
	}

	switch scheme {
	case entity.SchemeLevel:
		err = s.engine.RecompressLevel(doc, quality)
	default:
		err = s.engine.RecompressPercent(doc, quality)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrEncodeFailed, err)
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf, true, true); err != nil {
		return nil, err
	}
	if err := s.repo.SaveFile(id, "compressed", &buf); err != nil {
		return nil, err
	}

	return s.buildResult(id)
}

func (s *compressService) GetDocument(id string) (*entity.Document, error) {
	return s.repo.FindByID(id)
}

func (s *compressService) DeleteDocument(id string) error {
	return s.repo.Delete(id)
}

// OptimizePDF - структурная оптимизация настоящего PDF через pdfcpu,
// без перекодирования изображений
func (s *compressService) OptimizePDF(id string) (*entity.CompressionResult, error) {
	tmp, err := os.CreateTemp("", "optimized-*.pdf")
	if err != nil {
		return nil, err
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := s.optimizer.OptimizeFile(s.repo.FullFilePath(id, "original"), tmpPath); err != nil {
		s.markFailed(id, err)
		return nil, err
	}

	out, err := os.Open(tmpPath)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	if err := s.repo.SaveFile(id, "compressed", out); err != nil {
		return nil, err
	}

	result, err := s.buildResult(id)
	if err != nil {
		return nil, err
	}

	if doc, ferr := s.repo.FindByID(id); ferr == nil {
		doc.Status = entity.StatusCompleted
		doc.Result = result
		_ = s.repo.Save(doc)
	}

	return result, nil
}

// PagesToImages рендерит страницы PDF в JPEG и сохраняет zip-архив
func (s *compressService) PagesToImages(id string, quality int) (int, error) {
	var buf bytes.Buffer
	pages, err := s.rasterizer.PagesToZip(s.repo.FullFilePath(id, "original"), quality, &buf)
	if err != nil {
		return 0, err
	}

	if err := s.repo.SaveFile(id, "pages", &buf); err != nil {
		return 0, err
	}
	return pages, nil
}

func (s *compressService) FilePath(id string, kind string) string {
	return s.repo.FullFilePath(id, kind)
}

func (s *compressService) buildResult(id string) (*entity.CompressionResult, error) {
	originalSize, err := s.repo.FileSize(id, "original")
	if err != nil {
		return nil, err
	}
	compressedSize, err := s.repo.FileSize(id, "compressed")
	if err != nil {
		return nil, err
	}

	result := &entity.CompressionResult{
		OriginalSize:   originalSize,
		CompressedSize: compressedSize,
	}
	result.CalculateRatio()
	return result, nil
}

func (s *compressService) markFailed(id string, cause error) {
	doc, err := s.repo.FindByID(id)
	if err != nil {
		return
	}
	doc.Status = entity.StatusFailed
	doc.Error = cause.Error()
	_ = s.repo.Save(doc)
}
