package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestBound(t *testing.T) {
	w, h := Bound(2400, 1200, 1200)
	assert.Equal(t, 1200, w)
	assert.Equal(t, 600, h)

	w, h = Bound(500, 1000, 300)
	assert.Equal(t, 150, w)
	assert.Equal(t, 300, h)

	// Already inside the bound: untouched, never upscaled.
	w, h = Bound(200, 100, 1200)
	assert.Equal(t, 200, w)
	assert.Equal(t, 100, h)
}

func TestDownscaleProducesBoundedJPEG(t *testing.T) {
	out, err := Downscale(pngBytes(t, 2400, 1200, color.NRGBA{R: 10, G: 20, B: 30, A: 255}), 1200)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 1200, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
}

func TestDownscaleFlattensTransparencyToWhite(t *testing.T) {
	// Fully transparent source must come out white, not black.
	out, err := Downscale(pngBytes(t, 64, 64, color.NRGBA{A: 0}), 300)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	r, g, b, _ := img.At(32, 32).RGBA()
	assert.Greater(t, r, uint32(0xf000))
	assert.Greater(t, g, uint32(0xf000))
	assert.Greater(t, b, uint32(0xf000))
}

func TestDownscaleRejectsNonImage(t *testing.T) {
	_, err := Downscale([]byte("definitely not pixels"), 300)
	assert.ErrorIs(t, err, ErrNotAnImage)
}
