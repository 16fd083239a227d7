package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	watermarkText = "Vindra AI"
	// Offset of the text baseline from the bottom-right corner.
	watermarkMargin = 16
)

// watermarkColor is semi-transparent white drawn over the image.
var watermarkColor = color.RGBA{R: 255, G: 255, B: 255, A: 160}

// ApplyWatermark redraws the image with a fixed text overlay near the
// bottom-right corner and re-encodes it as PNG. The transform is pure
// and synchronous; the only failure mode is a payload that does not
// decode.
func ApplyWatermark(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	bounds := src.Bounds()
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, src, bounds.Min, draw.Src)

	face := basicfont.Face7x13
	textWidth := font.MeasureString(face, watermarkText).Ceil()
	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(watermarkColor),
		Face: face,
		Dot:  fixed.P(bounds.Max.X-textWidth-watermarkMargin, bounds.Max.Y-watermarkMargin),
	}
	d.DrawString(watermarkText)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encoding watermarked image: %w", err)
	}
	return buf.Bytes(), nil
}
