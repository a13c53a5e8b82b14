package imageprocessor

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x += 10 {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestShouldProcess(t *testing.T) {
	p := NewProcessor(1000, 80, 500*1024)

	assert.False(t, p.ShouldProcess(100*1024))
	assert.False(t, p.ShouldProcess(500*1024))
	assert.True(t, p.ShouldProcess(500*1024+1))
}

func TestProcessDownscalesLargeImage(t *testing.T) {
	p := NewProcessor(1000, 80, 500*1024)

	data := encodePNG(t, 1600, 900)

	out, contentType, err := p.Process(data)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 1000, img.Bounds().Dx())
	// 900 * 1000/1600
	assert.Equal(t, 562, img.Bounds().Dy())
}

func TestProcessKeepsSmallDimensions(t *testing.T) {
	p := NewProcessor(1000, 80, 500*1024)

	data := encodePNG(t, 400, 300)

	out, contentType, err := p.Process(data)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestProcessRejectsGarbage(t *testing.T) {
	p := NewProcessor(1000, 80, 500*1024)

	_, _, err := p.Process([]byte("definitely not an image"))
	assert.Error(t, err)
}

func TestIsValidImage(t *testing.T) {
	assert.True(t, IsValidImage(encodePNG(t, 10, 10)))
	assert.False(t, IsValidImage([]byte{0x00, 0x01, 0x02}))
}
