package mask

import (
	"image"
	"image/color"
	"testing"

	"icnsmark/colorspace"
)

// onePixel builds a 1x1 image holding a single color.
func onePixel(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, c)
	return img
}

func nrgbaForHSV(h float64, s, v float64, a uint8) color.NRGBA {
	r, g, b := colorspace.HSVToRGB(h, s, v)
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

func TestHueBandCenterSelected(t *testing.T) {
	band := HueBand{
		Center:        colorspace.DegreesToHueUnit(120),
		HalfWidth:     20,
		MinSaturation: 60,
		MinValue:      40,
	}

	// Exactly at the band center, saturation and value well above minimums.
	img := onePixel(nrgbaForHSV(120, 1, 1, 255))
	if !band.Select(img).At(0, 0) {
		t.Error("pixel at band center not selected")
	}
}

func TestHueBandOutsideWidthRejected(t *testing.T) {
	center := colorspace.DegreesToHueUnit(120)
	band := HueBand{Center: center, HalfWidth: 20, MinSaturation: 60, MinValue: 40}

	// center + width + 1 hue units.
	outside := colorspace.HueUnitToDegrees(center + 21)
	img := onePixel(nrgbaForHSV(outside, 1, 1, 255))
	if band.Select(img).At(0, 0) {
		t.Error("pixel one unit past the band edge selected")
	}
}

func TestHueBandWraparound(t *testing.T) {
	// Center near the wrap point: hue 5 with half-width 10 must select
	// hue 250 (circular distance 10) and reject hue 240 (distance 20).
	band := HueBand{Center: 5, HalfWidth: 10, MinSaturation: 60, MinValue: 40}

	in := onePixel(nrgbaForHSV(colorspace.HueUnitToDegrees(250), 1, 1, 255))
	if !band.Select(in).At(0, 0) {
		t.Error("hue 250 not selected for band centered at 5")
	}

	out := onePixel(nrgbaForHSV(colorspace.HueUnitToDegrees(240), 1, 1, 255))
	if band.Select(out).At(0, 0) {
		t.Error("hue 240 selected for band centered at 5")
	}
}

func TestHueBandThresholds(t *testing.T) {
	band := HueBand{Center: colorspace.DegreesToHueUnit(120), HalfWidth: 20, MinSaturation: 60, MinValue: 40}

	tests := []struct {
		name string
		px   color.NRGBA
		want bool
	}{
		{"washed out", nrgbaForHSV(120, 0.1, 1, 255), false},
		{"too dark", nrgbaForHSV(120, 1, 0.05, 255), false},
		{"transparent", nrgbaForHSV(120, 1, 1, 0), false},
		{"solid green", nrgbaForHSV(120, 1, 1, 255), true},
	}

	for _, tt := range tests {
		if got := band.Select(onePixel(tt.px)).At(0, 0); got != tt.want {
			t.Errorf("%s: selected = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestColored(t *testing.T) {
	p := Colored{
		MinSaturation:     25,
		MinValue:          40,
		MaxValue:          250,
		WhitishValue:      240,
		GrayishSaturation: 30,
	}

	tests := []struct {
		name string
		px   color.NRGBA
		want bool
	}{
		{"saturated red", color.NRGBA{200, 30, 30, 255}, true},
		{"saturated blue", color.NRGBA{30, 30, 200, 255}, true},
		{"pure white", color.NRGBA{255, 255, 255, 255}, false},
		{"near white highlight", nrgbaForHSV(0, 0.1, 0.96, 255), false},
		{"gray", color.NRGBA{128, 128, 128, 255}, false},
		{"black", color.NRGBA{0, 0, 0, 255}, false},
		{"transparent red", color.NRGBA{200, 30, 30, 0}, false},
	}

	for _, tt := range tests {
		if got := p.Select(onePixel(tt.px)).At(0, 0); got != tt.want {
			t.Errorf("%s: selected = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNearWhiteBoundary(t *testing.T) {
	p := NearWhite{Tolerance: 15}

	tests := []struct {
		px   color.NRGBA
		want bool
	}{
		{color.NRGBA{255, 255, 255, 255}, true},
		{color.NRGBA{239, 255, 255, 255}, true},
		{color.NRGBA{238, 255, 255, 255}, false},
		{color.NRGBA{255, 255, 255, 0}, false}, // transparent never matches
		{color.NRGBA{239, 239, 239, 1}, true},
		{color.NRGBA{0, 0, 0, 255}, false},
	}

	for _, tt := range tests {
		if got := p.Select(onePixel(tt.px)).At(0, 0); got != tt.want {
			t.Errorf("NearWhite(%v) = %v, want %v", tt.px, got, tt.want)
		}
	}
}

func TestMaskCount(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if x < 2 {
				img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{0, 0, 0, 255})
			}
		}
	}

	m := NearWhite{Tolerance: 15}.Select(img)
	if m.Count() != 8 {
		t.Errorf("Count() = %d, want 8", m.Count())
	}
}
