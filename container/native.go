package container

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"

	"github.com/disintegration/imaging"
	"github.com/jackmordaunt/icns/v3"
)

// nativeSizes are the square iconset entries the fallback regenerates,
// matching what iconutil emits for a full icon family.
var nativeSizes = []struct {
	name string
	px   int
}{
	{"icon_16x16.png", 16},
	{"icon_16x16@2x.png", 32},
	{"icon_32x32.png", 32},
	{"icon_32x32@2x.png", 64},
	{"icon_128x128.png", 128},
	{"icon_128x128@2x.png", 256},
	{"icon_256x256.png", 256},
	{"icon_256x256@2x.png", 512},
	{"icon_512x512.png", 512},
	{"icon_512x512@2x.png", 1024},
}

// Native is a pure-Go adapter used where iconutil is unavailable.
//
// The icns codec decodes the best-quality embedded image, so Unpack
// regenerates the smaller variants from it by Lanczos downscaling, and
// Pack re-encodes the family from the largest variant present. Unlike
// iconutil, per-variant pixel differences below the largest size do not
// survive a round trip.
type Native struct{}

func (Native) Unpack(icnsPath, dir string) error {
	f, err := os.Open(icnsPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnpackFailed, err)
	}
	defer f.Close()

	best, err := icns.Decode(f)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnpackFailed, err)
	}

	bestSide := best.Bounds().Dx()
	if side := best.Bounds().Dy(); side < bestSide {
		bestSide = side
	}

	for _, entry := range nativeSizes {
		if entry.px > bestSide {
			continue
		}

		variant := imaging.Resize(best, entry.px, entry.px, imaging.Lanczos)
		if err := imaging.Save(variant, filepath.Join(dir, entry.name)); err != nil {
			return fmt.Errorf("%w: %v", ErrUnpackFailed, err)
		}
	}

	return nil
}

func (Native) Pack(dir, icnsPath string) error {
	largest, err := largestVariant(dir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPackFailed, err)
	}

	out, err := os.Create(icnsPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPackFailed, err)
	}
	defer out.Close()

	if err := icns.Encode(out, largest); err != nil {
		return fmt.Errorf("%w: %v", ErrPackFailed, err)
	}

	return nil
}

func largestVariant(dir string) (image.Image, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".png" {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no variants in %s", dir)
	}

	sort.Slice(names, func(i, j int) bool {
		a, _ := VariantSize(names[i])
		b, _ := VariantSize(names[j])
		return a > b
	})

	return imaging.Open(filepath.Join(dir, names[0]))
}
