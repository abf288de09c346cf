// Package imaging decodes chart rasters returned by the fetcher and
// re-encodes them for inline display in the terminal.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"strings"
)

// Decode turns the fetcher's base64 image payload into a decoded raster.
// The payload is expected to be PNG, but any registered format is accepted.
func Decode(b64 string) (image.Image, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(b64))
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image data: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("undecodable image data: %w", err)
	}
	return img, nil
}

// EncodePNG re-encodes a raster as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("png encode: %w", err)
	}
	return buf.Bytes(), nil
}
