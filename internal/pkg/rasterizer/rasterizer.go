package rasterizer

import (
	"archive/zip"
	"fmt"
	"image/jpeg"
	"io"

	"github.com/gen2brain/go-fitz"
	"github.com/klauspost/compress/flate"
)

// Rasterizer рендерит страницы PDF в JPEG и упаковывает их в zip-архив
type Rasterizer interface {
	PagesToZip(pdfPath string, quality int, w io.Writer) (int, error)
}

type fitzRasterizer struct{}

func NewRasterizer() Rasterizer {
	return &fitzRasterizer{}
}

func (r *fitzRasterizer) PagesToZip(pdfPath string, quality int, w io.Writer) (int, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return 0, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	total := doc.NumPage()
	for n := 0; n < total; n++ {
		img, err := doc.Image(n)
		if err != nil {
			return 0, fmt.Errorf("render page %d: %w", n+1, err)
		}

		entry, err := zw.Create(fmt.Sprintf("page_%d.jpg", n+1))
		if err != nil {
			return 0, err
		}
		if err := jpeg.Encode(entry, img, &jpeg.Options{Quality: quality}); err != nil {
			return 0, fmt.Errorf("encode page %d: %w", n+1, err)
		}
	}

	if err := zw.Close(); err != nil {
		return 0, err
	}
	return total, nil
}
