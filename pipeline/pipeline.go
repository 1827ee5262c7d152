// Package pipeline orchestrates one icon-editing run: locate the source
// container, unpack it, transform each variant in a fixed order, repack,
// and deliver the result.
package pipeline

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"icnsmark/colorspace"
	"icnsmark/container"
	"icnsmark/defaults"
	"icnsmark/mask"
	"icnsmark/recolor"
	"icnsmark/watermark"
)

var ErrContainerNotFound = errors.New("icon container not found")

// Config describes one run. The three transform configs are each
// optional; a nil config skips that step. Transforms always apply in the
// order tint, background recolor, watermark.
type Config struct {
	// BundlePath is an .app bundle whose Contents/Resources holds the
	// icon, and the delivery target when no output path is given.
	BundlePath string
	// IconName is the resource filename inside the bundle; empty means
	// defaults.IconName.
	IconName string
	// SourcePath is an explicit .icns path, taking precedence over the
	// bundle lookup.
	SourcePath string
	// SourceData is a raw .icns buffer, taking precedence over both.
	SourceData []byte
	// OutputPath, when set, receives the packed container instead of the
	// bundle.
	OutputPath string
	// MinSize is the shorter-side threshold below which variants pass
	// through untouched; zero means defaults.MinVariantSize.
	MinSize int

	Tint       *TintConfig
	Background *BackgroundConfig
	Watermark  *watermark.Config
}

// TintConfig retints colored regions to the target's hue, keeping each
// pixel's saturation and value.
type TintConfig struct {
	Target color.NRGBA
	// Band restricts the retint to a hue band; nil retints every
	// sufficiently colored region.
	Band *HueBandConfig

	MinSaturation     uint8
	MinValue          uint8
	MaxValue          uint8
	WhitishValue      uint8
	GrayishSaturation uint8
}

// HueBandConfig is a hue arc in degrees.
type HueBandConfig struct {
	CenterDeg    float64
	HalfWidthDeg float64
}

// BackgroundConfig replaces near-white background pixels outright.
type BackgroundConfig struct {
	Target color.NRGBA
	// Tolerance is the per-channel distance from pure white; zero means
	// defaults.NearWhiteTolerance.
	Tolerance uint8
}

// VariantReport records what happened to one variant.
type VariantReport struct {
	Name    string
	Nominal int // size tag parsed from the filename, 0 if unknown
	Status  VariantStatus
	Err     error
}

type VariantStatus string

const (
	VariantProcessed VariantStatus = "processed"
	VariantSkipped   VariantStatus = "skipped"
	VariantFailed    VariantStatus = "failed"
)

// Result describes where the packed container ended up.
type Result struct {
	// OutputPath is the written .icns file; empty when the icon was
	// applied to the bundle instead.
	OutputPath string
	// AppliedToBundle reports delivery through the bundle icon setter.
	AppliedToBundle bool
	Variants        []VariantReport
}

// Pipeline runs icon-editing passes through a container adapter. It
// holds no state across runs.
type Pipeline struct {
	adapter container.Adapter
	setter  Setter
	log     zerolog.Logger
}

func New(adapter container.Adapter, log zerolog.Logger) *Pipeline {
	return &Pipeline{adapter: adapter, setter: Fileicon{}, log: log}
}

// WithSetter overrides the bundle icon setter, mainly for tests.
func (p *Pipeline) WithSetter(s Setter) *Pipeline {
	p.setter = s
	return p
}

// Run executes one pass. Per-variant transform failures are logged and
// reported but do not fail the run; locate, unpack and pack failures do.
func (p *Pipeline) Run(cfg Config) (*Result, error) {
	tmp, err := os.MkdirTemp("", "icnsmark-")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	srcPath, err := p.locate(cfg, tmp)
	if err != nil {
		return nil, err
	}
	p.log.Debug().Str("source", srcPath).Msg("located icon container")

	iconset := filepath.Join(tmp, "icon.iconset")
	if err := os.Mkdir(iconset, 0o755); err != nil {
		return nil, fmt.Errorf("create iconset dir: %w", err)
	}
	if err := p.adapter.Unpack(srcPath, iconset); err != nil {
		return nil, err
	}

	reports := p.transformVariants(iconset, cfg)

	packed := filepath.Join(tmp, "packed.icns")
	if err := p.adapter.Pack(iconset, packed); err != nil {
		return nil, err
	}

	result, err := p.deliver(cfg, srcPath, packed)
	if err != nil {
		return nil, err
	}
	result.Variants = reports

	return result, nil
}

func (p *Pipeline) locate(cfg Config, tmp string) (string, error) {
	if len(cfg.SourceData) > 0 {
		path := filepath.Join(tmp, "source.icns")
		if err := os.WriteFile(path, cfg.SourceData, 0o644); err != nil {
			return "", fmt.Errorf("write source buffer: %w", err)
		}
		return path, nil
	}

	if cfg.SourcePath != "" {
		if _, err := os.Stat(cfg.SourcePath); err != nil {
			return "", fmt.Errorf("%w: %s", ErrContainerNotFound, cfg.SourcePath)
		}
		return cfg.SourcePath, nil
	}

	if cfg.BundlePath == "" {
		return "", fmt.Errorf("%w: no bundle, path or buffer given", ErrContainerNotFound)
	}

	name := cfg.IconName
	if name == "" {
		name = defaults.IconName
	}
	path := filepath.Join(cfg.BundlePath, "Contents", "Resources", name)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrContainerNotFound, path)
	}

	return path, nil
}

func (p *Pipeline) transformVariants(iconset string, cfg Config) []VariantReport {
	minSize := cfg.MinSize
	if minSize <= 0 {
		minSize = defaults.MinVariantSize
	}

	names := pngEntries(iconset)

	reports := make([]VariantReport, 0, len(names))
	for _, name := range names {
		nominal, _ := container.VariantSize(name)
		report := VariantReport{Name: name, Nominal: nominal}

		path := filepath.Join(iconset, name)
		img, err := loadNRGBA(path)
		if err != nil {
			report.Status = VariantFailed
			report.Err = err
			p.log.Warn().Str("variant", name).Err(err).Msg("variant unreadable, passing through")
			reports = append(reports, report)
			continue
		}

		short := img.Bounds().Dx()
		if h := img.Bounds().Dy(); h < short {
			short = h
		}
		if short < minSize {
			report.Status = VariantSkipped
			p.log.Info().Str("variant", name).Int("px", short).Msg("too small, passing through")
			reports = append(reports, report)
			continue
		}

		applyTransforms(img, cfg)

		if err := saveNRGBA(path, img); err != nil {
			report.Status = VariantFailed
			report.Err = err
			p.log.Warn().Str("variant", name).Err(err).Msg("variant not written, passing through")
			reports = append(reports, report)
			continue
		}

		report.Status = VariantProcessed
		p.log.Debug().Str("variant", name).Msg("transformed")
		reports = append(reports, report)
	}

	return reports
}

// applyTransforms mutates img in the fixed order tint, background
// recolor, watermark. The watermark is drawn last so it stays the most
// visible layer, and the background recolor runs after the tint so the
// two masks cannot fight over boundary pixels.
func applyTransforms(img *image.NRGBA, cfg Config) {
	if cfg.Tint != nil {
		m := cfg.Tint.policy().Select(img)
		recolor.HueReplace(img, m, cfg.Tint.Target)
	}

	if cfg.Background != nil {
		tol := cfg.Background.Tolerance
		if tol == 0 {
			tol = defaults.NearWhiteTolerance
		}
		m := mask.NearWhite{Tolerance: tol}.Select(img)
		recolor.RGBReplace(img, m, cfg.Background.Target)
	}

	if cfg.Watermark != nil {
		watermark.Render(img, *cfg.Watermark)
	}
}

func (t *TintConfig) policy() mask.Policy {
	if t.Band != nil {
		half := math.Round(t.Band.HalfWidthDeg * 256 / 360)
		if half < 0 {
			half = 0
		}
		if half > 127 {
			half = 127
		}
		return mask.HueBand{
			Center:        colorspace.DegreesToHueUnit(t.Band.CenterDeg),
			HalfWidth:     uint8(half),
			MinSaturation: t.MinSaturation,
			MinValue:      t.MinValue,
		}
	}

	return mask.Colored{
		MinSaturation:     t.MinSaturation,
		MinValue:          t.MinValue,
		MaxValue:          t.MaxValue,
		WhitishValue:      t.WhitishValue,
		GrayishSaturation: t.GrayishSaturation,
	}
}

// Tags names the transforms this config applies, in pipeline order.
func (cfg Config) Tags() []string {
	var tags []string
	if cfg.Tint != nil {
		tags = append(tags, "tinted")
	}
	if cfg.Background != nil {
		tags = append(tags, "recolored")
	}
	if cfg.Watermark != nil && cfg.Watermark.Text != "" {
		tags = append(tags, "watermarked")
	}
	if len(tags) == 0 {
		tags = []string{"repacked"}
	}

	return tags
}

func pngEntries(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".png" {
			names = append(names, entry.Name())
		}
	}

	// Nominal size order, small to large, for stable reporting.
	sort.Slice(names, func(i, j int) bool {
		a, _ := container.VariantSize(names[i])
		b, _ := container.VariantSize(names[j])
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})

	return names
}

func loadNRGBA(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		return nil, err
	}

	if img, ok := decoded.(*image.NRGBA); ok {
		return img, nil
	}

	img := image.NewNRGBA(decoded.Bounds())
	draw.Draw(img, img.Bounds(), decoded, decoded.Bounds().Min, draw.Src)

	return img, nil
}

func saveNRGBA(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
