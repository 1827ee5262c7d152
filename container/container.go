// Package container is the boundary to the packed .icns representation.
// An Adapter unpacks a container into a directory of PNG variants and
// packs such a directory back into a container. On macOS the system
// iconutil binary does the work; elsewhere a pure-Go fallback keeps the
// tool usable.
package container

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

var (
	ErrUnpackFailed = errors.New("could not unpack icon container")
	ErrPackFailed   = errors.New("could not pack icon container")
)

// Adapter converts between an .icns container and a directory of
// lossless, alpha-capable bitmap variants named icon_<N>x<N>[@2x].png.
type Adapter interface {
	// Unpack writes the container's variants into dir as PNG files.
	Unpack(icnsPath, dir string) error
	// Pack builds a container at icnsPath from the PNG files in dir.
	Pack(dir, icnsPath string) error
}

// Detect returns the iconutil adapter when the binary is on PATH, and
// the native fallback otherwise.
func Detect(log zerolog.Logger) Adapter {
	if _, err := exec.LookPath("iconutil"); err == nil {
		return Iconutil{}
	}

	log.Debug().Msg("iconutil not found, using native icns codec")

	return Native{}
}

// Iconutil shells out to the macOS iconutil binary.
type Iconutil struct{}

func (Iconutil) Unpack(icnsPath, dir string) error {
	if err := runIconutil("iconset", icnsPath, dir); err != nil {
		return fmt.Errorf("%w: %s", ErrUnpackFailed, err)
	}

	return nil
}

func (Iconutil) Pack(dir, icnsPath string) error {
	if err := runIconutil("icns", dir, icnsPath); err != nil {
		return fmt.Errorf("%w: %s", ErrPackFailed, err)
	}

	return nil
}

func runIconutil(kind, in, out string) error {
	var stderr bytes.Buffer

	cmd := exec.Command("iconutil", "--convert", kind, in, "-o", out)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%v (%s)", err, msg)
		}

		return err
	}

	return nil
}

// VariantSize extracts the nominal pixel size from an iconset entry name
// such as "icon_128x128@2x.png" (256 effective pixels). The name is used
// only to sort and report; filtering decisions read actual image bounds.
func VariantSize(name string) (int, bool) {
	base := strings.TrimSuffix(name, ".png")
	base = strings.TrimPrefix(base, "icon_")

	scale := 1
	if strings.HasSuffix(base, "@2x") {
		scale = 2
		base = strings.TrimSuffix(base, "@2x")
	}

	parts := strings.SplitN(base, "x", 2)
	if len(parts) != 2 {
		return 0, false
	}

	n, err := strconv.Atoi(parts[0])
	if err != nil || n <= 0 || parts[0] != parts[1] {
		return 0, false
	}

	return n * scale, true
}
