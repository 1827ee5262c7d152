package watermark

import (
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// systemFontPaths is the lookup chain tried in order before falling back
// to the embedded Go font.
var systemFontPaths = []string{
	"/System/Library/Fonts/Helvetica.ttc",
	"/System/Library/Fonts/SFNSDisplay.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

// loadFace returns a font face at the given pixel size. Every candidate
// is allowed to fail; the final basicfont fallback cannot.
func loadFace(size float64) font.Face {
	for _, path := range systemFontPaths {
		if face := faceFromFile(path, size); face != nil {
			return face
		}
	}

	if parsed, err := opentype.Parse(goregular.TTF); err == nil {
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			return face
		}
	}

	return basicfont.Face7x13
}

func faceFromFile(path string, size float64) font.Face {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var parsed *opentype.Font
	if strings.HasSuffix(path, ".ttc") {
		collection, err := opentype.ParseCollection(data)
		if err != nil || collection.NumFonts() == 0 {
			return nil
		}
		parsed, err = collection.Font(0)
		if err != nil {
			return nil
		}
	} else {
		parsed, err = opentype.Parse(data)
		if err != nil {
			return nil
		}
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil
	}

	return face
}
