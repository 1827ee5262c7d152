// Command convert builds an .icns container from a flat image file
// (png, jpeg, gif, bmp, webp or ico), handy for fabricating test icons.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/jackmordaunt/icns/v3"
	"github.com/mat/besticon/v3/ico"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

func main() {
	err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	out := fs.String("o", "", "output .icns path (default: input name with .icns)")
	size := fs.Int("size", 0, "resize the source to a square of this many pixels first")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		return errors.New("usage: convert [-o output.icns] [-size px] <image>")
	}
	input := fs.Arg(0)

	img, err := decode(input)
	if err != nil {
		return err
	}

	if *size > 0 {
		img = imaging.Resize(img, *size, *size, imaging.Lanczos)
	}

	outPath := *out
	if outPath == "" {
		outPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".icns"
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}

	if err := icns.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", outPath)

	return nil
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// The stdlib sniffer misreads some .ico files, so route those to the
	// dedicated decoder.
	if strings.EqualFold(filepath.Ext(path), ".ico") {
		return ico.Decode(f)
	}

	img, _, err := image.Decode(f)

	return img, err
}
