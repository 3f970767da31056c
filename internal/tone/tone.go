// Package tone converts sampled pixel colors to HSL and aggregates them
// into a single representative skin tone.
package tone

import (
	"errors"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/mhrbek/facetone/internal/sampler"
)

// HSL is the aggregation unit: hue in degrees [0, 360), saturation and
// lightness in percent [0, 100].
type HSL struct {
	H float64 `json:"hue"`
	S float64 `json:"saturation"`
	L float64 `json:"lightness"`
}

// Hex renders the color back as an sRGB hex string for display.
func (c HSL) Hex() string {
	return colorful.Hsl(c.H, c.S/100, c.L/100).Hex()
}

// HueMean selects how the hue channel is averaged.
type HueMean int

const (
	// HueMeanArithmetic averages hue like any other channel. This is
	// numerically wrong near the 0/360 wrap (350 and 10 average to 180)
	// but kept as the default because downstream consumers depend on
	// the historical numbers; skin hues cluster far from the wrap.
	HueMeanArithmetic HueMean = iota
	// HueMeanCircular averages hue as the circular quantity it is.
	HueMeanCircular
)

// ParseHueMean maps a config string to a HueMean. Anything other than
// "circular" keeps the arithmetic default.
func ParseHueMean(s string) HueMean {
	if s == "circular" {
		return HueMeanCircular
	}
	return HueMeanArithmetic
}

// ErrNoColors is returned when an average over zero colors is requested.
var ErrNoColors = errors.New("cannot average zero colors")

// FromRGB converts an 8-bit RGB sample to HSL.
func FromRGB(c sampler.RGB) HSL {
	h, s, l := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hsl()
	return HSL{H: h, S: s * 100, L: l * 100}
}

// Average returns the unweighted per-channel mean of colors using the
// arithmetic hue mean.
func Average(colors []HSL) (HSL, error) {
	return AverageWith(colors, HueMeanArithmetic)
}

// AverageWith returns the unweighted per-channel mean of colors, in
// input order. Empty input is an error, never a NaN result.
func AverageWith(colors []HSL, mode HueMean) (HSL, error) {
	if len(colors) == 0 {
		return HSL{}, ErrNoColors
	}

	var s, l float64
	for _, c := range colors {
		s += c.S
		l += c.L
	}
	n := float64(len(colors))

	return HSL{
		H: meanHue(colors, mode),
		S: s / n,
		L: l / n,
	}, nil
}

func meanHue(colors []HSL, mode HueMean) float64 {
	if mode == HueMeanCircular {
		var sinSum, cosSum float64
		for _, c := range colors {
			rad := c.H * math.Pi / 180
			sinSum += math.Sin(rad)
			cosSum += math.Cos(rad)
		}
		h := math.Atan2(sinSum, cosSum) * 180 / math.Pi
		if h < 0 {
			h += 360
		}
		return h
	}

	var sum float64
	for _, c := range colors {
		sum += c.H
	}
	return sum / float64(len(colors))
}
