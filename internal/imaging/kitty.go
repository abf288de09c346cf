package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// chunkSize is the kitty protocol's maximum escape payload per chunk.
const chunkSize = 4096

// Encoder turns a decoded chart raster into a kitty graphics protocol
// payload sized to a terminal region. Render is a pure function of its
// inputs so a cached artifact can be re-encoded on every resize.
type Encoder struct{}

// Render scales the raster to fit the region without distortion and emits
// the inline-image escape sequence. The image is only ever scaled down;
// upscaling past the source resolution would just blur the chart.
func (Encoder) Render(img image.Image, geom Geometry) ([]byte, error) {
	if geom.Cols <= 0 || geom.Rows <= 0 {
		return nil, fmt.Errorf("empty target region %dx%d cells", geom.Cols, geom.Rows)
	}
	if geom.CellWidth <= 0 || geom.CellHeight <= 0 {
		return nil, fmt.Errorf("unknown cell size %dx%d", geom.CellWidth, geom.CellHeight)
	}

	scaled := fit(img, geom.PixelWidth(), geom.PixelHeight())
	data, err := EncodePNG(scaled)
	if err != nil {
		return nil, err
	}

	w := scaled.Bounds().Dx()
	h := scaled.Bounds().Dy()
	cols := ceilDiv(w, geom.CellWidth)
	rows := ceilDiv(h, geom.CellHeight)

	var buf bytes.Buffer
	buf.Write(DeleteSequence())
	writeChunks(&buf, data, cols, rows)
	return buf.Bytes(), nil
}

// DeleteSequence clears every visible image placement. Emitted before each
// transmission and when an overlay opens over the chart region.
func DeleteSequence() []byte {
	return []byte("\x1b_Ga=d,q=2\x1b\\")
}

// writeChunks emits the base64 payload in 4096-byte chunks. The first chunk
// carries the transmission keys (a=T direct PNG, c/r placement size),
// continuation chunks carry only the m key.
func writeChunks(buf *bytes.Buffer, data []byte, cols, rows int) {
	encoded := base64.StdEncoding.EncodeToString(data)
	first := true
	for len(encoded) > 0 {
		n := chunkSize
		if n > len(encoded) {
			n = len(encoded)
		}
		chunk := encoded[:n]
		encoded = encoded[n:]
		more := 0
		if len(encoded) > 0 {
			more = 1
		}
		if first {
			fmt.Fprintf(buf, "\x1b_Ga=T,f=100,q=2,c=%d,r=%d,m=%d;%s\x1b\\", cols, rows, more, chunk)
			first = false
		} else {
			fmt.Fprintf(buf, "\x1b_Gm=%d;%s\x1b\\", more, chunk)
		}
	}
}

// fit scales img down to fill maxW x maxH while preserving aspect ratio.
// Images already within bounds are returned untouched.
func fit(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	if srcW == 0 || srcH == 0 {
		return img
	}

	scale := 1.0
	if wr := float64(maxW) / float64(srcW); wr < scale {
		scale = wr
	}
	if hr := float64(maxH) / float64(srcH); hr < scale {
		scale = hr
	}
	if scale >= 1.0 {
		return img
	}

	dstW := int(float64(srcW) * scale)
	dstH := int(float64(srcH) * scale)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
