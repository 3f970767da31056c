// Package sampler reads single pixel colors out of a decoded image.
package sampler

import (
	"fmt"
	"image"
	"math"

	"github.com/mhrbek/facetone/internal/faceapi"
)

// RGB holds an 8-bit color value.
type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// OutOfBoundsError reports a sample coordinate outside the image.
type OutOfBoundsError struct {
	X, Y          int
	Width, Height int
}

func (e OutOfBoundsError) Error() string {
	return fmt.Sprintf("sample point (%d, %d) outside image bounds %dx%d", e.X, e.Y, e.Width, e.Height)
}

// At reads the color at pt. Fractional coordinates are truncated toward
// the top-left neighbor (floor) — that is the sampling policy, not an
// accident. Coordinates on or past the width/height edge are an error;
// clamping would silently sample the wrong skin region.
func At(img image.Image, pt faceapi.Point) (RGB, error) {
	x := int(math.Floor(pt.X))
	y := int(math.Floor(pt.Y))

	b := img.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return RGB{}, OutOfBoundsError{X: x, Y: y, Width: b.Dx(), Height: b.Dy()}
	}

	r, g, bl, _ := img.At(x, y).RGBA()
	return RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)}, nil
}
