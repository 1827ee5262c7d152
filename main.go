package main

import (
	"fmt"
	"image/color"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"icnsmark/colorspace"
	"icnsmark/container"
	"icnsmark/defaults"
	"icnsmark/pipeline"
	"icnsmark/watermark"
)

const Version = "1"

var flags struct {
	appPath    string
	text       string
	tint       string
	tintHue    float64
	tintBand   float64
	background string
	textColor  string
	source     string
	output     string
	iconName   string
	minSize    int
	verbose    bool
}

func main() {
	root := &cobra.Command{
		Use:   "icnsmark [app-path] [watermark-text]",
		Short: "Watermark and recolor the icon of a macOS application bundle",
		Long: `icnsmark extracts the icon family from an application bundle's .icns
resource, applies the configured transforms to each resolution variant
(tint, background recolor, watermark, in that order) and repacks the
result. Without an output path the bundle's icon is updated in place
via fileicon; with one, the icon is written there instead.`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	root.Flags().StringVar(&flags.text, "text", "", "watermark text (typically a number)")
	root.Flags().StringVar(&flags.tint, "tint", "", "retint colored regions to this hex color")
	root.Flags().Float64Var(&flags.tintHue, "tint-hue", -1, "restrict the tint to a hue band centered at this angle, in degrees")
	root.Flags().Float64Var(&flags.tintBand, "tint-band", defaults.TintHalfWidthDeg, "half-width of the tint hue band, in degrees")
	root.Flags().StringVar(&flags.background, "background", "", "replace near-white background with this hex color")
	root.Flags().StringVar(&flags.textColor, "text-color", defaults.TextColor, "watermark text color (hex)")
	root.Flags().StringVar(&flags.source, "source", "", "explicit .icns file instead of a bundle lookup")
	root.Flags().StringVarP(&flags.output, "output", "o", "", "write the result here instead of updating the bundle")
	root.Flags().StringVar(&flags.iconName, "icon", defaults.IconName, "icon resource name inside the bundle")
	root.Flags().IntVar(&flags.minSize, "min-size", defaults.MinVariantSize, "variants with a shorter side below this pass through untouched")
	root.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		flags.appPath = args[0]
	}
	if len(args) > 1 && flags.text == "" {
		flags.text = args[1]
	}

	level := zerolog.InfoLevel
	if flags.verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Str("version", Version).Logger()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p := pipeline.New(container.Detect(log), log)
	result, err := p.Run(cfg)
	if err != nil {
		return err
	}

	for _, v := range result.Variants {
		if v.Status != pipeline.VariantProcessed {
			log.Info().Str("variant", v.Name).Str("status", string(v.Status)).Send()
		}
	}

	return nil
}

// buildConfig validates every color up front, so malformed hex input
// aborts before any pipeline work.
func buildConfig() (pipeline.Config, error) {
	cfg := pipeline.Config{
		BundlePath: flags.appPath,
		IconName:   flags.iconName,
		SourcePath: flags.source,
		OutputPath: flags.output,
		MinSize:    flags.minSize,
	}

	if flags.tint != "" {
		target, err := parseColor(flags.tint)
		if err != nil {
			return cfg, err
		}
		tint := &pipeline.TintConfig{
			Target:            target,
			MinSaturation:     defaults.TintMinSaturation,
			MinValue:          defaults.TintMinValue,
			MaxValue:          defaults.TintMaxValue,
			WhitishValue:      defaults.TintWhitishValue,
			GrayishSaturation: defaults.TintGrayishSaturation,
		}
		if flags.tintHue >= 0 {
			tint.Band = &pipeline.HueBandConfig{
				CenterDeg:    flags.tintHue,
				HalfWidthDeg: flags.tintBand,
			}
			tint.MinSaturation = defaults.TintBandMinSaturation
		}
		cfg.Tint = tint
	}

	if flags.background != "" {
		target, err := parseColor(flags.background)
		if err != nil {
			return cfg, err
		}
		cfg.Background = &pipeline.BackgroundConfig{
			Target:    target,
			Tolerance: defaults.NearWhiteTolerance,
		}
	}

	if flags.text != "" {
		textColor, err := parseColor(flags.textColor)
		if err != nil {
			return cfg, err
		}
		cfg.Watermark = &watermark.Config{
			Text:              flags.text,
			Color:             textColor,
			PaddingFraction:   defaults.PaddingFraction,
			MinFontSize:       defaults.MinFontSize,
			FontHeightDivisor: defaults.FontHeightDivisor,
		}
	}

	return cfg, nil
}

func parseColor(hex string) (color.NRGBA, error) {
	r, g, b, err := colorspace.HexToRGB(hex)
	if err != nil {
		return color.NRGBA{}, err
	}

	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
