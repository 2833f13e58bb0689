// Package screen holds helpers shared by the Surface adapters for handling
// captured screen images.
package screen

import (
	"image"

	"golang.org/x/image/draw"
)

// Crop copies region (screen coordinates relative to the image origin) into a
// 0-origin RGBA image. An empty region copies the whole image.
func Crop(src image.Image, region image.Rectangle) image.Image {
	b := src.Bounds()
	r := b
	if !region.Empty() {
		r = region.Add(b.Min).Intersect(b)
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), src, r.Min, draw.Src)
	return dst
}
