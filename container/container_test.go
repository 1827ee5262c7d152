package container

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func TestVariantSize(t *testing.T) {
	tests := []struct {
		name string
		size int
		ok   bool
	}{
		{"icon_16x16.png", 16, true},
		{"icon_16x16@2x.png", 32, true},
		{"icon_128x128.png", 128, true},
		{"icon_512x512@2x.png", 1024, true},
		{"icon_16x32.png", 0, false},
		{"icon_x.png", 0, false},
		{"readme.txt", 0, false},
		{"icon_0x0.png", 0, false},
	}

	for _, tt := range tests {
		size, ok := VariantSize(tt.name)
		if ok != tt.ok || size != tt.size {
			t.Errorf("VariantSize(%q) = (%d, %v), want (%d, %v)", tt.name, size, ok, tt.size, tt.ok)
		}
	}
}

func TestNativeRoundTrip(t *testing.T) {
	tmp := t.TempDir()

	// Build a 256px source image with a recognizable pattern.
	src := image.NewNRGBA(image.Rect(0, 0, 256, 256))
	for y := 0; y < 256; y++ {
		for x := 0; x < 256; x++ {
			src.SetNRGBA(x, y, color.NRGBA{uint8(x), uint8(y), 80, 255})
		}
	}
	srcDir := filepath.Join(tmp, "src.iconset")
	if err := os.Mkdir(srcDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := imaging.Save(src, filepath.Join(srcDir, "icon_256x256.png")); err != nil {
		t.Fatal(err)
	}

	adapter := Native{}

	icnsPath := filepath.Join(tmp, "out.icns")
	if err := adapter.Pack(srcDir, icnsPath); err != nil {
		t.Fatalf("Pack: %v", err)
	}

	outDir := filepath.Join(tmp, "out.iconset")
	if err := os.Mkdir(outDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := adapter.Unpack(icnsPath, outDir); err != nil {
		t.Fatalf("Unpack: %v", err)
	}

	// All entries at or below the source size must exist.
	for _, name := range []string{"icon_16x16.png", "icon_32x32.png", "icon_128x128.png", "icon_256x256.png"} {
		img, err := imaging.Open(filepath.Join(outDir, name))
		if err != nil {
			t.Fatalf("missing variant %s: %v", name, err)
		}
		want, _ := VariantSize(name)
		if img.Bounds().Dx() != want {
			t.Errorf("%s decoded to %dpx, want %d", name, img.Bounds().Dx(), want)
		}
	}
}

func TestNativeUnpackMissingFile(t *testing.T) {
	err := Native{}.Unpack(filepath.Join(t.TempDir(), "nope.icns"), t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing container")
	}
}
