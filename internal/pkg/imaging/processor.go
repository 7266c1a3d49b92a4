package imaging

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
)

// ErrUndecodable is returned when image bytes pass the type sniff but cannot be decoded
var ErrUndecodable = errors.New("image could not be decoded")

// Config for room photo processing
type Config struct {
	MaxWidth  int // Max width of the stored photo (default 1600)
	MaxHeight int // Max height of the stored photo (default 1200)
	Quality   int // JPEG quality 1-100 (default 85)
}

// DefaultConfig returns default processing config
func DefaultConfig() Config {
	return Config{
		MaxWidth:  1600,
		MaxHeight: 1200,
		Quality:   85,
	}
}

// Processor fits room photos inside the display bounds before they are stored
type Processor struct {
	config Config
}

// NewProcessor creates image processor
func NewProcessor(config Config) *Processor {
	return &Processor{config: config}
}

// Fit decodes JPEG and PNG photos, applies EXIF orientation and scales them down
// to the configured bounds. Other types are returned unchanged.
func (p *Processor) Fit(data []byte, mimeType string) ([]byte, error) {
	format, ok := formatFor(mimeType)
	if !ok {
		return data, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= p.config.MaxWidth && bounds.Dy() <= p.config.MaxHeight {
		return data, nil
	}

	resized := imaging.Fit(img, p.config.MaxWidth, p.config.MaxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(p.config.Quality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func formatFor(mimeType string) (imaging.Format, bool) {
	switch mimeType {
	case "image/jpeg":
		return imaging.JPEG, true
	case "image/png":
		return imaging.PNG, true
	default:
		return 0, false
	}
}
