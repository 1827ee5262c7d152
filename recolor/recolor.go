// Package recolor applies mask-gated color replacements to an image
// buffer in place. Alpha is never written; unmasked pixels are never
// touched.
package recolor

import (
	"image"
	"image/color"

	"icnsmark/colorspace"
	"icnsmark/mask"
)

// HueReplace overwrites the hue of every masked pixel with the hue of
// target, preserving each pixel's saturation and value. This keeps
// shading and gradients while changing the color identity.
func HueReplace(img *image.NRGBA, m *mask.Mask, target color.NRGBA) {
	targetHue, _, _ := colorspace.RGBToHSV(target.R, target.G, target.B)

	apply(img, m, func(r, g, b uint8) (uint8, uint8, uint8) {
		_, s, v := colorspace.RGBToHSV(r, g, b)
		return colorspace.HSVToRGB(targetHue, s, v)
	})
}

// RGBReplace overwrites the R, G and B channels of every masked pixel
// with target's channels.
func RGBReplace(img *image.NRGBA, m *mask.Mask, target color.NRGBA) {
	apply(img, m, func(_, _, _ uint8) (uint8, uint8, uint8) {
		return target.R, target.G, target.B
	})
}

func apply(img *image.NRGBA, m *mask.Mask, f func(r, g, b uint8) (uint8, uint8, uint8)) {
	bounds := img.Bounds()

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if !m.At(x-bounds.Min.X, y-bounds.Min.Y) {
				continue
			}

			i := img.PixOffset(x, y)
			r, g, b := f(img.Pix[i], img.Pix[i+1], img.Pix[i+2])
			img.Pix[i], img.Pix[i+1], img.Pix[i+2] = r, g, b
		}
	}
}
