package defaults

// Default build-time variables.
// These values are overridden by ldflags
var (
	// IconName is the icon resource looked up inside an app bundle's
	// Contents/Resources directory.
	IconName = "FM12App.icns"

	// TextColor is the watermark fill color.
	TextColor = "#262C2A"
)

const (
	// MinVariantSize is the shorter-side threshold below which an icon
	// variant passes through the pipeline untouched.
	MinVariantSize = 64

	// FontHeightDivisor sizes the watermark font relative to the variant
	// height (height / FontHeightDivisor, floored).
	FontHeightDivisor = 7

	// MinFontSize is the smallest watermark font size in pixels.
	MinFontSize = 8

	// PaddingFraction of the variant width kept between the watermark
	// and the bottom-right corner, with a 10px floor.
	PaddingFraction = 0.2

	// NearWhiteTolerance is the per-channel distance from pure white that
	// still counts as background.
	NearWhiteTolerance = 15

	// TintHalfWidthDeg is the default hue-band half-width, in degrees.
	TintHalfWidthDeg = 40.0

	// TintMinSaturation is the saturation floor (0-255 scale) for a pixel
	// to count as colored and be retinted.
	TintMinSaturation = 25

	// TintBandMinSaturation replaces TintMinSaturation when the tint is
	// restricted to a hue band, where looser hues need a stricter floor.
	TintBandMinSaturation = 60

	// TintMinValue and TintMaxValue bound the brightness of retintable
	// pixels, excluding near-black outlines and specular highlights.
	TintMinValue = 40
	TintMaxValue = 250

	// TintWhitishValue is the brightness above which a low-saturation
	// pixel is treated as white rather than colored.
	TintWhitishValue = 240

	// TintGrayishSaturation is the saturation below which a bright pixel
	// is treated as gray rather than colored.
	TintGrayishSaturation = 30
)
