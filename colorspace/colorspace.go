// Package colorspace holds the color conversions the recolor masks are
// built on: hex parsing, RGB/HSV mapping and the wrapped 0-255 hue-unit
// scale used for circular hue comparisons.
package colorspace

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidColorFormat = errors.New("invalid color format")

// HexToRGB parses a 3- or 6-digit hex color, with or without a leading '#'.
// The 3-digit form duplicates each digit (e.g. "f80" -> "ff8800").
func HexToRGB(hex string) (r, g, b uint8, err error) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}

	switch len(hex) {
	case 3:
		expanded := make([]byte, 6)
		for i := 0; i < 3; i++ {
			expanded[2*i] = hex[i]
			expanded[2*i+1] = hex[i]
		}
		hex = string(expanded)
	case 6:
		//
	default:
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidColorFormat, hex)
	}

	var channels [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexDigit(hex[2*i])
		lo, ok2 := hexDigit(hex[2*i+1])
		if !ok1 || !ok2 {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidColorFormat, hex)
		}

		channels[i] = hi<<4 | lo
	}

	return channels[0], channels[1], channels[2], nil
}

// RGBToHex encodes a color as a lowercase 6-digit hex string with a
// leading '#'.
func RGBToHex(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}

	return 0, false
}

// DegreesToHueUnit maps an angle in degrees onto the wrapped 0-255 hue
// scale. Any input is normalized modulo 360 first, so negative and
// out-of-range angles are accepted.
func DegreesToHueUnit(deg float64) uint8 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}

	return uint8(int(math.Round(deg*256/360)) % 256)
}

// HueUnitToDegrees is the inverse mapping of DegreesToHueUnit.
func HueUnitToDegrees(u uint8) float64 {
	return float64(u) * 360 / 256
}

// HueDistance is the circular distance between two hues on the wrapped
// 0-255 scale. A plain |a-b| is wrong near the wrap point.
func HueDistance(a, b uint8) uint8 {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	if 255-d < d {
		d = 255 - d
	}

	return uint8(d)
}

// RGBToHSV converts 8-bit RGB to HSV with hue in degrees [0,360) and
// saturation/value in [0,1].
func RGBToHSV(r, g, b uint8) (h, s, v float64) {
	rf := float64(r) / 255
	gf := float64(g) / 255
	bf := float64(b) / 255

	maxC := math.Max(rf, math.Max(gf, bf))
	minC := math.Min(rf, math.Min(gf, bf))
	delta := maxC - minC

	switch {
	case delta == 0:
		h = 0
	case maxC == rf:
		h = 60 * math.Mod((gf-bf)/delta, 6)
	case maxC == gf:
		h = 60 * ((bf-rf)/delta + 2)
	default:
		h = 60 * ((rf-gf)/delta + 4)
	}
	if h < 0 {
		h += 360
	}

	if maxC > 0 {
		s = delta / maxC
	}

	return h, s, maxC
}

// HSVToRGB converts HSV (hue in degrees, saturation/value in [0,1]) back
// to 8-bit RGB. Out-of-range hues wrap; saturation and value clamp.
func HSVToRGB(h, s, v float64) (r, g, b uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = clamp01(s)
	v = clamp01(v)

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var rf, gf, bf float64
	switch int(h / 60) {
	case 0:
		rf, gf, bf = c, x, 0
	case 1:
		rf, gf, bf = x, c, 0
	case 2:
		rf, gf, bf = 0, c, x
	case 3:
		rf, gf, bf = 0, x, c
	case 4:
		rf, gf, bf = x, 0, c
	default:
		rf, gf, bf = c, 0, x
	}

	r = uint8(math.Round((rf + m) * 255))
	g = uint8(math.Round((gf + m) * 255))
	b = uint8(math.Round((bf + m) * 255))
	return r, g, b
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}

	return f
}
