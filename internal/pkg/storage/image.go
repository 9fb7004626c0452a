package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	"github.com/disintegration/imaging"
)

const jpegQuality = 80

// ImageProcessor resizes uploaded pictures.
type ImageProcessor struct{}

// NewImageProcessor creates a new ImageProcessor.
func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{}
}

// Decode reads an image honouring its EXIF orientation.
func (p *ImageProcessor) Decode(content io.Reader) (image.Image, error) {
	img, err := imaging.Decode(content, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// FitJPEG scales img down to fit within maxWidth x maxHeight and encodes it as JPEG.
// Images already inside the box are only re-encoded.
func (p *ImageProcessor) FitJPEG(img image.Image, maxWidth, maxHeight int) (*bytes.Buffer, error) {
	b := img.Bounds()
	if b.Dx() > maxWidth || b.Dy() > maxHeight {
		img = imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf, nil
}

// GenerateThumbnail creates a JPEG thumbnail bounded by maxWidth x maxHeight.
func (p *ImageProcessor) GenerateThumbnail(content io.Reader, maxWidth, maxHeight int) (io.Reader, error) {
	img, err := p.Decode(content)
	if err != nil {
		return nil, err
	}
	return p.FitJPEG(img, maxWidth, maxHeight)
}
