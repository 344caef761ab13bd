package imagecheck

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCheck(t *testing.T) {
	info, err := Check(pngBytes(t, 4, 3), 0)
	require.NoError(t, err)
	assert.Equal(t, Info{MIMEType: "image/png", Width: 4, Height: 3}, info)
}

func TestCheck_Rejects(t *testing.T) {
	valid := pngBytes(t, 2, 2)

	_, err := Check(nil, 0)
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, err = Check(valid, 10)
	assert.ErrorIs(t, err, ErrImageTooLarge)

	_, err = Check([]byte("just some text, not a picture"), 0)
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	// PNG signature followed by garbage
	corrupt := append([]byte{}, valid[:8]...)
	corrupt = append(corrupt, bytes.Repeat([]byte{0xff}, 32)...)
	_, err = Check(corrupt, 0)
	assert.ErrorIs(t, err, ErrCorruptImage)
}
