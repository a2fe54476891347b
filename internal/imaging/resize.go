// Package imaging downscales uploaded images before they leave the gateway:
// bound the dimensions while preserving aspect ratio, flatten transparency
// onto a white background, and re-encode as JPEG at a fixed quality.  It is
// used for event banners and partner logos.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	_ "image/png" // register PNG so partner logo uploads decode

	xdraw "golang.org/x/image/draw"
)

// JPEGQuality is the fixed re-encode quality factor.
const JPEGQuality = 80

// Default dimension bounds per upload kind.
const (
	MaxBannerDim = 1200 // event banners (recommended aspect bound 600x300)
	MaxLogoDim   = 300  // partner logos and avatars
)

var ErrNotAnImage = errors.New("file is not a decodable image")

// Downscale decodes data, scales it so that neither dimension exceeds
// maxDim (never upscaling), draws it onto a white background and returns
// the JPEG bytes.  A decode or encode failure is an error; the caller must
// reject the upload rather than forward undecodable bytes upstream.
func Downscale(data []byte, maxDim int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrNotAnImage
	}

	b := src.Bounds()
	w, h := Bound(b.Dx(), b.Dy(), maxDim)

	// White fill first so transparent PNG regions flatten to white instead
	// of black when encoded as JPEG.
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, dst, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("re-encode: %w", err)
	}
	return out.Bytes(), nil
}

// Bound computes the scaled dimensions of a w×h image so that neither side
// exceeds maxDim, preserving aspect ratio.  Images already inside the bound
// keep their dimensions.
func Bound(w, h, maxDim int) (int, int) {
	if w <= maxDim && h <= maxDim {
		return w, h
	}
	if w >= h {
		nh := h * maxDim / w
		if nh < 1 {
			nh = 1
		}
		return maxDim, nh
	}
	nw := w * maxDim / h
	if nw < 1 {
		nw = 1
	}
	return nw, maxDim
}
