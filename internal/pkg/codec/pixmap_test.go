package codec

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"
)

func noisePix(width, height int, seed int64, opaque bool) *image.NRGBA {
	rnd := rand.New(rand.NewSource(seed))
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = uint8(rnd.Intn(256))
	}
	if opaque {
		for i := 3; i < len(img.Pix); i += 4 {
			img.Pix[i] = 0xff
		}
	}
	return img
}

// TestDecodeComponents тестирует определение числа компонент по формату
func TestDecodeComponents(t *testing.T) {
	tests := []struct {
		name           string
		encode         func(t *testing.T) []byte
		wantComponents int
	}{
		{
			name: "jpeg decodes as 3-component RGB",
			encode: func(t *testing.T) []byte {
				var buf bytes.Buffer
				require.NoError(t, jpeg.Encode(&buf, noisePix(50, 40, 1, true), &jpeg.Options{Quality: 90}))
				return buf.Bytes()
			},
			wantComponents: 3,
		},
		{
			name: "grayscale png decodes as 1 component",
			encode: func(t *testing.T) []byte {
				img := image.NewGray(image.Rect(0, 0, 30, 30))
				var buf bytes.Buffer
				require.NoError(t, png.Encode(&buf, img))
				return buf.Bytes()
			},
			wantComponents: 1,
		},
		{
			name: "png with alpha decodes as 4 components",
			encode: func(t *testing.T) []byte {
				var buf bytes.Buffer
				require.NoError(t, png.Encode(&buf, noisePix(30, 30, 2, false)))
				return buf.Bytes()
			},
			wantComponents: 4,
		},
		{
			name: "indexed png decodes as 3 components",
			encode: func(t *testing.T) []byte {
				palette := color.Palette{color.Black, color.White, color.RGBA{R: 255, A: 255}}
				img := image.NewPaletted(image.Rect(0, 0, 30, 30), palette)
				var buf bytes.Buffer
				require.NoError(t, png.Encode(&buf, img))
				return buf.Bytes()
			},
			wantComponents: 3,
		},
		{
			name: "tiff decodes through x/image",
			encode: func(t *testing.T) []byte {
				var buf bytes.Buffer
				require.NoError(t, tiff.Encode(&buf, noisePix(30, 30, 3, true), nil))
				return buf.Bytes()
			},
			wantComponents: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pix, err := Decode(tt.encode(t))
			require.NoError(t, err)
			assert.Equal(t, tt.wantComponents, pix.Components())
		})
	}
}

// TestDecodeRejectsGarbage тестирует декодирование непригодных байтов
func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not an image at all"))
	require.Error(t, err)
}

// TestFlatten тестирует сброс четвертой плоскости
func TestFlatten(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
	}{
		{name: "cmyk buffer", img: image.NewCMYK(image.Rect(0, 0, 40, 20))},
		{name: "rgba with alpha", img: noisePix(40, 20, 4, false)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pix := NewPixmap(tt.img)
			require.Equal(t, 4, pix.Components())

			flat := pix.Flatten()

			assert.Equal(t, 3, flat.Components())
			assert.Equal(t, 40, flat.Width())
			assert.Equal(t, 20, flat.Height())

			// альфа-плоскость должна быть полностью непрозрачной
			nrgba, ok := flat.Image().(*image.NRGBA)
			require.True(t, ok)
			for i := 3; i < len(nrgba.Pix); i += 4 {
				require.Equal(t, uint8(0xff), nrgba.Pix[i])
			}
		})
	}
}

// TestFlattenIsNoopForRGB тестирует, что трехкомпонентный буфер не меняется
func TestFlattenIsNoopForRGB(t *testing.T) {
	pix := NewPixmap(noisePix(20, 20, 5, true))
	require.Equal(t, 3, pix.Components())
	assert.Same(t, pix, pix.Flatten())
}

// TestResample тестирует изменение размеров буфера
func TestResample(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		height    int
		newWidth  int
		newHeight int
	}{
		{name: "downscale", width: 100, height: 80, newWidth: 50, newHeight: 40},
		{name: "same size", width: 64, height: 64, newWidth: 64, newHeight: 64},
		{name: "single pixel", width: 10, height: 10, newWidth: 1, newHeight: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pix := NewPixmap(noisePix(tt.width, tt.height, 6, true))

			resized := pix.Resample(tt.newWidth, tt.newHeight)

			assert.Equal(t, tt.newWidth, resized.Width())
			assert.Equal(t, tt.newHeight, resized.Height())
			assert.Equal(t, pix.Components(), resized.Components())
		})
	}
}

// TestEncodeJPEGQuality тестирует влияние качества на размер вывода
func TestEncodeJPEGQuality(t *testing.T) {
	pix := NewPixmap(noisePix(300, 300, 7, true))

	high, err := pix.EncodeJPEG(90)
	require.NoError(t, err)
	low, err := pix.EncodeJPEG(20)
	require.NoError(t, err)

	assert.Less(t, len(low), len(high))

	// результат должен декодироваться обратно
	decoded, err := Decode(high)
	require.NoError(t, err)
	assert.Equal(t, 300, decoded.Width())
	assert.Equal(t, 3, decoded.Components())
}
