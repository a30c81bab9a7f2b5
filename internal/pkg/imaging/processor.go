package imaging

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// ProcessedImage is a photo re-encoded as JPEG.
type ProcessedImage struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}

// Config for image processing
type Config struct {
	MaxWidth  int // 0 keeps the original width
	MaxHeight int // 0 keeps the original height
	Quality   int // JPEG quality 1-100
}

// DefaultConfig keeps the original resolution.
func DefaultConfig() Config {
	return Config{
		Quality: 95,
	}
}

// Processor handles image processing
type Processor struct {
	config Config
}

// NewProcessor creates image processor
func NewProcessor(config Config) *Processor {
	if config.Quality <= 0 || config.Quality > 100 {
		config.Quality = DefaultConfig().Quality
	}
	return &Processor{config: config}
}

// ToJPEG decodes data, applies EXIF orientation, shrinks it to the configured
// bounds and encodes it as JPEG. Photos are stored under ".jpg" names, so
// PNG or WebP variants are converted on the way.
func (p *Processor) ToJPEG(data []byte) (*ProcessedImage, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	maxW, maxH := p.config.MaxWidth, p.config.MaxHeight
	if maxW <= 0 {
		maxW = w
	}
	if maxH <= 0 {
		maxH = h
	}
	if w > maxW || h > maxH {
		img = imaging.Fit(img, maxW, maxH, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(p.config.Quality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &ProcessedImage{
		Data:        buf.Bytes(),
		ContentType: "image/jpeg",
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
	}, nil
}
