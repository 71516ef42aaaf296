package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"

	_ "image/gif" // первый кадр через image.Decode
	_ "image/png"

	_ "golang.org/x/image/tiff"

	"github.com/disintegration/imaging"
)

// Pixmap - декодированный пиксельный буфер с числом компонент n.
// 1 = gray, 3 = RGB, 4 = CMYK или RGB+alpha.
type Pixmap struct {
	img        image.Image
	components int
}

func NewPixmap(img image.Image) *Pixmap {
	return &Pixmap{img: img, components: componentsOf(img)}
}

// Decode декодирует сырые байты изображения (JPEG, PNG, GIF, TIFF)
func Decode(data []byte) (*Pixmap, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return NewPixmap(img), nil
}

func (p *Pixmap) Width() int {
	return p.img.Bounds().Dx()
}

func (p *Pixmap) Height() int {
	return p.img.Bounds().Dy()
}

func (p *Pixmap) Components() int {
	return p.components
}

func (p *Pixmap) Image() image.Image {
	return p.img
}

// Flatten сбрасывает четвертую плоскость (alpha или K) и приводит буфер
// к трем компонентам. Преобразование без цветового профиля, с потерями.
func (p *Pixmap) Flatten() *Pixmap {
	if p.components < 4 {
		return p
	}

	dst := image.NewNRGBA(image.Rect(0, 0, p.Width(), p.Height()))
	draw.Draw(dst, dst.Bounds(), p.img, p.img.Bounds().Min, draw.Src)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return &Pixmap{img: dst, components: 3}
}

// Resample изменяет размер буфера до целочисленных размеров
func (p *Pixmap) Resample(width, height int) *Pixmap {
	resized := imaging.Resize(p.img, width, height, imaging.Lanczos)
	return &Pixmap{img: resized, components: p.components}
}

// EncodeJPEG кодирует буфер в JPEG с заданным качеством 1-100
func (p *Pixmap) EncodeJPEG(quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, p.img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func componentsOf(img image.Image) int {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.CMYK:
		return 4
	case *image.YCbCr:
		return 3
	case *image.Paletted:
		return 3 // индексированные цвета разворачиваются в RGB
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return 3
	}
	return 4
}
