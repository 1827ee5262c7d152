// Package watermark composites text onto an icon bitmap, anchored to the
// bottom-right corner with size and padding derived from the bitmap's
// dimensions.
package watermark

import (
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/fogleman/gg"
)

// Config controls a single watermark rendering pass.
type Config struct {
	Text            string
	Color           color.NRGBA
	PaddingFraction float64
	MinFontSize     int
	// FontHeightDivisor sizes the font as height/divisor; zero means 7.
	FontHeightDivisor int
}

// Render draws cfg.Text onto img in place. The font size is
// max(MinFontSize, height/divisor); padding from the bottom-right corner
// is max(10, width*PaddingFraction), applied equally to both axes.
// Pixels outside the glyph coverage are untouched.
func Render(img *image.NRGBA, cfg Config) {
	if cfg.Text == "" {
		return
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	divisor := cfg.FontHeightDivisor
	if divisor <= 0 {
		divisor = 7
	}
	size := height / divisor
	if size < cfg.MinFontSize {
		size = cfg.MinFontSize
	}

	face := loadFace(float64(size))
	if closer, ok := face.(io.Closer); ok {
		defer closer.Close()
	}

	// Glyphs are rendered on a transparent overlay and composited over
	// the bitmap, so only glyph-covered pixels change.
	dc := gg.NewContext(width, height)
	dc.SetFontFace(face)

	textWidth, textHeight := dc.MeasureString(cfg.Text)

	padding := float64(width) * cfg.PaddingFraction
	if padding < 10 {
		padding = 10
	}

	x := float64(width) - textWidth - padding
	y := float64(height) - textHeight - padding

	dc.SetColor(cfg.Color)
	// DrawString positions the baseline, so drop down by the text height.
	dc.DrawString(cfg.Text, x, y+textHeight)

	// Composite only glyph-covered pixels; everything else stays
	// bit-for-bit untouched.
	overlay, ok := dc.Image().(*image.RGBA)
	if !ok {
		region := image.Rect(int(x)-1, int(y)-1, width, height).Add(bounds.Min)
		draw.Draw(img, region, dc.Image(), image.Pt(int(x)-1, int(y)-1), draw.Over)
		return
	}
	rect := image.Rect(int(x)-1, int(y)-1, width, height).Intersect(overlay.Bounds())
	blendOver(img, rect, overlay)
}

// blendOver composites the premultiplied overlay onto dst within rect,
// given in the overlay's coordinate space. Overlay pixels with zero alpha
// are skipped entirely, so destination bytes outside glyph coverage keep
// their exact values, including RGB under full transparency.
func blendOver(dst *image.NRGBA, rect image.Rectangle, overlay *image.RGBA) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			si := overlay.PixOffset(x, y)
			sa := uint32(overlay.Pix[si+3])
			if sa == 0 {
				continue
			}
			di := dst.PixOffset(dst.Rect.Min.X+x, dst.Rect.Min.Y+y)
			if sa == 255 {
				dst.Pix[di+0] = overlay.Pix[si+0]
				dst.Pix[di+1] = overlay.Pix[si+1]
				dst.Pix[di+2] = overlay.Pix[si+2]
				dst.Pix[di+3] = 255
				continue
			}
			da := uint32(dst.Pix[di+3])
			oa := sa + da*(255-sa)/255
			for c := 0; c < 3; c++ {
				s := uint32(overlay.Pix[si+c])
				d := uint32(dst.Pix[di+c]) * da / 255
				dst.Pix[di+c] = uint8((s + d*(255-sa)/255) * 255 / oa)
			}
			dst.Pix[di+3] = uint8(oa)
		}
	}
}
