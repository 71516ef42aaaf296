package engine

import (
	"fmt"
	"log"

	"github.com/alltools-tech/true-pdf/internal/pkg/codec"
	"github.com/alltools-tech/true-pdf/internal/pkg/container"
)

// Ресурсы меньше порога не трогаем: выигрыш ничтожен, а деградация заметна
const minResourceBytes = 30000

type RecompressEngine interface {
	RecompressLevel(doc *container.Document, level int) error
	RecompressPercent(doc *container.Document, percent int) error
}

type recompressEngine struct{}

func NewRecompressEngine() RecompressEngine {
	return &recompressEngine{}
}

func (e *recompressEngine) RecompressLevel(doc *container.Document, level int) error {
	return e.recompress(doc, ParamsForLevel(level))
}

func (e *recompressEngine) RecompressPercent(doc *container.Document, percent int) error {
	return e.recompress(doc, ParamsForPercent(percent))
}

// recompress обходит страницы документа и перекодирует подходящие
// изображения в уменьшенный JPEG. Документ мутируется на месте.
// Обход строго последовательный: корректность замены зависит от
// стабильного порядка страниц и ресурсов.
func (e *recompressEngine) recompress(doc *container.Document, params Params) error {
	for pno, page := range doc.Pages() {
		// снимок списка до замен: вставки не должны попадать в обход
		images := page.Images()
		for _, res := range images {
			raw, err := doc.ExtractRawImage(res.ID)
			if err != nil {
				return fmt.Errorf("page %d: extract image %s: %w", pno, res.ID, err)
			}
			if len(raw) < minResourceBytes {
				continue
			}

			pix, err := codec.Decode(raw)
			if err != nil {
				return fmt.Errorf("page %d: decode image %s: %w", pno, res.ID, err)
			}
			if pix.Components() >= 4 {
				pix = pix.Flatten()
			}

			newW := int(float64(pix.Width()) * params.Scale)
			newH := int(float64(pix.Height()) * params.Scale)
			if newW < 1 || newH < 1 {
				// вырожденный размер - оставляем оригинал
				continue
			}

			pix = pix.Resample(newW, newH)

			jpg, err := pix.EncodeJPEG(params.JPEGQuality)
			if err != nil {
				return fmt.Errorf("page %d: re-encode image %s: %w", pno, res.ID, err)
			}

			e.place(page, res.ID, jpg)
		}
	}
	return nil
}

// place вставляет новые байты поверх всего прямоугольника страницы.
// Сначала ищем исходный ресурс повторным сканом; если он не найден
// или вставка не удалась - безусловное размещение на всю страницу.
func (e *recompressEngine) place(page *container.Page, id string, jpg []byte) {
	for _, cur := range page.Images() {
		if cur.ID == id {
			if err := page.InsertImage(page.Rect(), jpg); err == nil {
				return
			}
			break
		}
	}

	if err := page.InsertImage(page.Rect(), jpg); err != nil {
		log.Printf("fallback placement failed for resource %s: %v", id, err)
	}
}
