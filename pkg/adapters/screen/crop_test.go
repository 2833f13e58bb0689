package screen_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/aretw0/marionette/pkg/adapters/screen"
	"github.com/stretchr/testify/assert"
)

func TestCrop(t *testing.T) {
	red := color.RGBA{R: 0xff, A: 0xff}
	src := image.NewRGBA(image.Rect(10, 20, 50, 50))
	src.Set(13, 24, red)

	tests := []struct {
		name   string
		region image.Rectangle
		bounds image.Rectangle
		red    image.Point
	}{
		{"Whole Screen", image.Rectangle{}, image.Rect(0, 0, 40, 30), image.Pt(3, 4)},
		{"Region", image.Rect(2, 3, 6, 8), image.Rect(0, 0, 4, 5), image.Pt(1, 1)},
		{"Clipped", image.Rect(38, 28, 60, 60), image.Rect(0, 0, 2, 2), image.Pt(-1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := screen.Crop(src, tt.region)
			assert.Equal(t, tt.bounds, got.Bounds())
			if tt.red.X >= 0 {
				assert.Equal(t, red, color.RGBAModel.Convert(got.At(tt.red.X, tt.red.Y)))
			}
		})
	}
}
