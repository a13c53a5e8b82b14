package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// Processor re-encodes uploaded images before they reach object storage.
// Images above SizeThreshold are downscaled so the longest side does not
// exceed MaxDimension, then encoded to JPEG at the configured quality.
type Processor struct {
	maxDimension  int
	quality       int
	sizeThreshold int64
}

// NewProcessor creates a new image processor
func NewProcessor(maxDimension, quality int, sizeThreshold int64) *Processor {
	if maxDimension <= 0 {
		maxDimension = 1000
	}
	if quality <= 0 || quality > 100 {
		quality = 80
	}
	if sizeThreshold <= 0 {
		sizeThreshold = 500 * 1024
	}
	return &Processor{
		maxDimension:  maxDimension,
		quality:       quality,
		sizeThreshold: sizeThreshold,
	}
}

// ShouldProcess reports whether a file of the given size needs re-encoding
func (p *Processor) ShouldProcess(size int64) bool {
	return size > p.sizeThreshold
}

// Process decodes, downscales and re-encodes an image to JPEG.
// Returns the encoded bytes and the resulting content type.
func (p *Processor) Process(data []byte) ([]byte, string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	resized := p.downscale(img)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, "", fmt.Errorf("failed to encode JPEG: %w", err)
	}

	return buf.Bytes(), "image/jpeg", nil
}

// downscale resizes an image maintaining aspect ratio so that the longest
// side is at most maxDimension; smaller images pass through untouched
func (p *Processor) downscale(img image.Image) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= p.maxDimension && height <= p.maxDimension {
		return img
	}

	newWidth := width
	newHeight := height
	if width > height {
		newHeight = int(float64(height) * float64(p.maxDimension) / float64(width))
		newWidth = p.maxDimension
	} else {
		newWidth = int(float64(width) * float64(p.maxDimension) / float64(height))
		newHeight = p.maxDimension
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	return dst
}

// IsValidImage checks if the data contains a decodable image
func IsValidImage(data []byte) bool {
	_, _, err := image.Decode(bytes.NewReader(data))
	return err == nil
}
