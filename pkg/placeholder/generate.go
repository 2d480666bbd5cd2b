package placeholder

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"

	_ "image/gif" // Register GIF format decoder

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/go-drift/driftimg/pkg/errors"
)

// gradientStops are the diagonal gray stops of the default placeholder.
var gradientStops = []struct {
	offset float64
	hex    string
}{
	{0, "#f0f0f0"},
	{0.5, "#e0e0e0"},
	{1, "#d0d0d0"},
}

// blurSigma is the Gaussian radius applied to downscaled source pixels.
const blurSigma = 1.0

// DefaultGenerator synthesizes a low-quality diagonal gray gradient JPEG.
// It returns "" if encoding fails.
func DefaultGenerator(width, height int) string {
	if width <= 0 {
		width = DefaultSize
	}
	if height <= 0 {
		height = DefaultSize
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	stops := make([]colorful.Color, len(gradientStops))
	for i, s := range gradientStops {
		c, err := colorful.Hex(s.hex)
		if err != nil {
			return ""
		}
		stops[i] = c
	}

	// Project each pixel center onto the (0,0)→(w,h) axis.
	dx, dy := float64(width), float64(height)
	denom := dx*dx + dy*dy
	for y := range height {
		for x := range width {
			t := ((float64(x)+0.5)*dx + (float64(y)+0.5)*dy) / denom
			img.Set(x, y, gradientAt(stops, t))
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 10}); err != nil {
		errors.Report(&errors.ImageError{
			Op:   "placeholder.DefaultGenerator",
			Kind: errors.KindPlaceholder,
			Err:  fmt.Errorf("failed to encode gradient: %w", err),
		})
		return ""
	}
	return dataURL("image/jpeg", buf.Bytes())
}

func gradientAt(stops []colorful.Color, t float64) color.Color {
	t = max(0, min(1, t))
	for i := 1; i < len(gradientStops); i++ {
		lo, hi := gradientStops[i-1], gradientStops[i]
		if t <= hi.offset {
			span := hi.offset - lo.offset
			local := 0.0
			if span > 0 {
				local = (t - lo.offset) / span
			}
			return stops[i-1].BlendRgb(stops[i], local).Clamped()
		}
	}
	return stops[len(stops)-1]
}

// NoopGenerator never produces a payload. Use it where image synthesis is
// unavailable or undesired.
func NoopGenerator(width, height int) string {
	return ""
}

// FromImage builds a blur payload from real pixels: src is downscaled to
// width pixels wide (aspect preserved), Gaussian-blurred and encoded as a PNG
// data URL.
func FromImage(src image.Image, width int) (string, error) {
	if src == nil || src.Bounds().Empty() {
		return "", fmt.Errorf("placeholder: empty source image")
	}
	if width <= 0 {
		width = DefaultSize
	}
	small := imaging.Resize(src, width, 0, imaging.Lanczos)
	blurred := blur.Gaussian(small, blurSigma)

	var buf bytes.Buffer
	if err := png.Encode(&buf, blurred); err != nil {
		return "", fmt.Errorf("placeholder: encode: %w", err)
	}
	return dataURL("image/png", buf.Bytes()), nil
}

// FromFile decodes the image at path (PNG, JPEG, GIF or WebP) and returns
// FromImage of it.
func FromFile(path string, width int) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("placeholder: %w", err)
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("placeholder: failed to decode %s: %w", path, err)
	}
	return FromImage(img, width)
}

func dataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
