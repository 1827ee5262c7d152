package colorspace

import (
	"errors"
	"strings"
	"testing"
)

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		input   string
		r, g, b uint8
		wantErr bool
	}{
		{"#ffffff", 255, 255, 255, false},
		{"ffffff", 255, 255, 255, false},
		{"#000000", 0, 0, 0, false},
		{"#262C2A", 38, 44, 42, false},
		{"262c2a", 38, 44, 42, false},
		{"#f80", 255, 136, 0, false},
		{"f80", 255, 136, 0, false},
		{"", 0, 0, 0, true},
		{"#", 0, 0, 0, true},
		{"#ffff", 0, 0, 0, true},
		{"#fffffff", 0, 0, 0, true},
		{"#gggggg", 0, 0, 0, true},
		{"12345z", 0, 0, 0, true},
	}

	for _, tt := range tests {
		r, g, b, err := HexToRGB(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("HexToRGB(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidColorFormat) {
				t.Errorf("HexToRGB(%q) error = %v, want ErrInvalidColorFormat", tt.input, err)
			}
			continue
		}
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("HexToRGB(%q) = (%d,%d,%d), want (%d,%d,%d)", tt.input, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, hex := range []string{"#000000", "#ffffff", "#262c2a", "#12ab9f", "#0000ff"} {
		r, g, b, err := HexToRGB(hex)
		if err != nil {
			t.Fatalf("HexToRGB(%q): %v", hex, err)
		}
		if got := RGBToHex(r, g, b); !strings.EqualFold(got, hex) {
			t.Errorf("round trip %q = %q", hex, got)
		}
	}
}

func TestDegreesToHueUnit(t *testing.T) {
	tests := []struct {
		deg  float64
		want uint8
	}{
		{0, 0},
		{360, 0},
		{720, 0},
		{-360, 0},
		{180, 128},
		{-180, 128},
		{90, 64},
		{450, 64},
		{359.9, 0}, // rounds up and wraps
	}

	for _, tt := range tests {
		if got := DegreesToHueUnit(tt.deg); got != tt.want {
			t.Errorf("DegreesToHueUnit(%v) = %d, want %d", tt.deg, got, tt.want)
		}
	}
}

func TestHueDistance(t *testing.T) {
	tests := []struct {
		a, b, want uint8
	}{
		{0, 0, 0},
		{10, 20, 10},
		{20, 10, 10},
		{0, 255, 0},   // adjacent across the wrap
		{5, 250, 10},  // crosses the wrap point
		{250, 5, 10},
		{0, 128, 127}, // min(128, 127)
	}

	for _, tt := range tests {
		if got := HueDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("HueDistance(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestHSVKnownValues(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		h, s, v float64
	}{
		{255, 0, 0, 0, 1, 1},
		{0, 255, 0, 120, 1, 1},
		{0, 0, 255, 240, 1, 1},
		{255, 255, 255, 0, 0, 1},
		{0, 0, 0, 0, 0, 0},
		{128, 128, 128, 0, 0, 128.0 / 255},
	}

	for _, tt := range tests {
		h, s, v := RGBToHSV(tt.r, tt.g, tt.b)
		if absF(h-tt.h) > 0.01 || absF(s-tt.s) > 0.01 || absF(v-tt.v) > 0.01 {
			t.Errorf("RGBToHSV(%d,%d,%d) = (%v,%v,%v), want (%v,%v,%v)",
				tt.r, tt.g, tt.b, h, s, v, tt.h, tt.s, tt.v)
		}
	}
}

// Exhaustive over all 16.7M RGB triples; the defining correctness
// property of the recolor feature.
func TestHSVRoundTripExhaustive(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive round trip skipped in short mode")
	}

	for r := 0; r < 256; r++ {
		for g := 0; g < 256; g++ {
			for b := 0; b < 256; b++ {
				h, s, v := RGBToHSV(uint8(r), uint8(g), uint8(b))
				r2, g2, b2 := HSVToRGB(h, s, v)
				if absI(int(r2)-r) > 1 || absI(int(g2)-g) > 1 || absI(int(b2)-b) > 1 {
					t.Fatalf("round trip (%d,%d,%d) -> (%v,%v,%v) -> (%d,%d,%d)",
						r, g, b, h, s, v, r2, g2, b2)
				}
			}
		}
	}
}

func TestHSVToRGBWraps(t *testing.T) {
	r1, g1, b1 := HSVToRGB(30, 1, 1)
	r2, g2, b2 := HSVToRGB(390, 1, 1)
	r3, g3, b3 := HSVToRGB(-330, 1, 1)
	if r1 != r2 || g1 != g2 || b1 != b2 || r1 != r3 || g1 != g3 || b1 != b3 {
		t.Errorf("hue wrap mismatch: (%d,%d,%d) vs (%d,%d,%d) vs (%d,%d,%d)",
			r1, g1, b1, r2, g2, b2, r3, g3, b3)
	}
}

func absF(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func absI(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
