// Package imagecheck validates uploaded submission images before they are
// sent to any recognizer.
package imagecheck

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrEmptyImage       = errors.New("image is empty")
	ErrImageTooLarge    = errors.New("image is too large")
	ErrUnsupportedImage = errors.New("image format is not supported")
	ErrCorruptImage     = errors.New("image cannot be decoded")
)

var allowed = []string{"image/png", "image/jpeg", "image/gif"}

// Info describes a valid image.
type Info struct {
	MIMEType string
	Width    int
	Height   int
}

// Check sniffs the content type of data and decodes its header. maxBytes <= 0
// disables the size limit.
func Check(data []byte, maxBytes int) (Info, error) {
	if len(data) == 0 {
		return Info{}, ErrEmptyImage
	}
	if maxBytes > 0 && len(data) > maxBytes {
		return Info{}, fmt.Errorf("%w: %d bytes, limit %d", ErrImageTooLarge, len(data), maxBytes)
	}

	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), allowed...) {
		return Info{}, fmt.Errorf("%w: %s", ErrUnsupportedImage, mt.String())
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrCorruptImage, err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return Info{}, fmt.Errorf("%w: zero size", ErrCorruptImage)
	}

	return Info{MIMEType: mt.String(), Width: cfg.Width, Height: cfg.Height}, nil
}
