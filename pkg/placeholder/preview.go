package placeholder

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"
)

// DecodeDataURL decodes a base64 image data URL produced by a Generator,
// FromImage or FromFile.
func DecodeDataURL(data string) (image.Image, error) {
	rest, ok := strings.CutPrefix(data, "data:image/")
	if !ok {
		return nil, fmt.Errorf("placeholder: not an image data URL")
	}
	_, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return nil, fmt.Errorf("placeholder: data URL is not base64 encoded")
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("placeholder: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("placeholder: decode payload: %w", err)
	}
	return img, nil
}

// Preview decodes a payload and scales it to width×height, approximating how
// a browser stretches the placeholder across the image box before the blur
// filter applies.
func Preview(data string, width, height int) (image.Image, error) {
	src, err := DecodeDataURL(data)
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("placeholder: invalid preview size %dx%d", width, height)
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}
