package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// ThumbnailFile is the scaled WebP preview written next to the chart.
const ThumbnailFile = "activity_thumb.webp"

// ThumbnailWidth is the preview width in pixels; the height keeps the chart's aspect ratio.
const ThumbnailWidth = 400

// Thumbnail scales a rendered PNG chart down to ThumbnailWidth and encodes it as WebP.
func Thumbnail(chartPNG []byte) (*bytes.Buffer, error) {
	img, err := png.Decode(bytes.NewReader(chartPNG))
	if err != nil {
		return nil, fmt.Errorf("failed to decode chart: %w", err)
	}

	bounds := img.Bounds()
	width := min(ThumbnailWidth, bounds.Dx())
	height := bounds.Dy() * width / bounds.Dx()

	resized := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	buf := new(bytes.Buffer)
	if err := nativewebp.Encode(buf, resized, nil); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf, nil
}
