// Package mask computes per-pixel boolean selections over an image.
// A policy inspects each pixel's HSV or RGB channels against its
// thresholds; the resulting Mask gates the recolor transforms.
package mask

import (
	"image"
	"math"

	"icnsmark/colorspace"
)

// Mask is a per-pixel boolean selection, transient and recomputed per
// bitmap per transform.
type Mask struct {
	w, h int
	bits []bool
}

func New(w, h int) *Mask {
	return &Mask{w: w, h: h, bits: make([]bool, w*h)}
}

func (m *Mask) At(x, y int) bool {
	return m.bits[y*m.w+x]
}

func (m *Mask) Set(x, y int, v bool) {
	m.bits[y*m.w+x] = v
}

// Count returns the number of selected pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}

	return n
}

// Policy selects pixels from an image.
type Policy interface {
	Select(img *image.NRGBA) *Mask
}

// HueBand selects pixels whose hue lies within a circular band, with
// floor thresholds on saturation and value. Hue comparisons happen on
// the wrapped 0-255 unit scale.
type HueBand struct {
	Center        uint8 // hue units
	HalfWidth     uint8 // hue units
	MinSaturation uint8
	MinValue      uint8
}

func (p HueBand) Select(img *image.NRGBA) *Mask {
	return eachPixel(img, func(r, g, b, a uint8) bool {
		if a == 0 {
			return false
		}

		h, s, v := hsvUnits(r, g, b)
		if s < p.MinSaturation || v < p.MinValue {
			return false
		}

		return colorspace.HueDistance(h, p.Center) <= p.HalfWidth
	})
}

// Colored selects saturated, visibly colored pixels while excluding
// near-white highlights that would otherwise pass the plain bounds.
type Colored struct {
	MinSaturation     uint8
	MinValue          uint8
	MaxValue          uint8 // upper cap below pure white
	WhitishValue      uint8
	GrayishSaturation uint8
}

func (p Colored) Select(img *image.NRGBA) *Mask {
	return eachPixel(img, func(r, g, b, a uint8) bool {
		if a == 0 {
			return false
		}

		_, s, v := hsvUnits(r, g, b)
		if s < p.MinSaturation || v < p.MinValue || v > p.MaxValue {
			return false
		}

		// Highlight exclusion: bright and barely saturated is white-ish,
		// not colored.
		if v >= p.WhitishValue && s <= p.GrayishSaturation {
			return false
		}

		return true
	})
}

// NearWhite selects pixels whose RGB channels all sit within Tolerance
// of pure white. Operates on RGB directly. The bound is inclusive one
// step past the tolerance: with Tolerance 15 a channel of 239 still
// matches, 238 does not.
type NearWhite struct {
	Tolerance uint8
}

func (p NearWhite) Select(img *image.NRGBA) *Mask {
	floor := 255 - int(p.Tolerance) - 1

	return eachPixel(img, func(r, g, b, a uint8) bool {
		return a > 0 && int(r) >= floor && int(g) >= floor && int(b) >= floor
	})
}

func eachPixel(img *image.NRGBA, pred func(r, g, b, a uint8) bool) *Mask {
	bounds := img.Bounds()
	m := New(bounds.Dx(), bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := img.PixOffset(x, y)
			r, g, b, a := img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]
			m.Set(x-bounds.Min.X, y-bounds.Min.Y, pred(r, g, b, a))
		}
	}

	return m
}

// hsvUnits converts a pixel to HSV on the 0-255 scale used by the
// threshold parameters.
func hsvUnits(r, g, b uint8) (h, s, v uint8) {
	hd, sf, vf := colorspace.RGBToHSV(r, g, b)

	return colorspace.DegreesToHueUnit(hd),
		uint8(math.Round(sf * 255)),
		uint8(math.Round(vf * 255))
}
