package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrSetterMissing reports that the optional bundle icon setter is not
// installed. It is never fatal; delivery falls back to a file.
var ErrSetterMissing = errors.New("fileicon not found")

// Setter applies a packed container as a bundle's icon.
type Setter interface {
	Apply(bundlePath, icnsPath string) error
}

// Fileicon shells out to the fileicon tool (brew install fileicon).
type Fileicon struct{}

func (Fileicon) Apply(bundlePath, icnsPath string) error {
	if _, err := exec.LookPath("fileicon"); err != nil {
		return fmt.Errorf("%w: install it with `brew install fileicon`", ErrSetterMissing)
	}

	var stderr bytes.Buffer
	cmd := exec.Command("fileicon", "set", bundlePath, icnsPath)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("fileicon set: %v (%s)", err, msg)
		}
		return fmt.Errorf("fileicon set: %v", err)
	}

	return nil
}

// deliver places the packed container: explicit output path first, then
// the bundle setter with an on-disk fallback, then a default location
// next to the source with the applied transforms encoded in the name.
func (p *Pipeline) deliver(cfg Config, srcPath, packed string) (*Result, error) {
	if cfg.OutputPath != "" {
		if err := copyFile(packed, cfg.OutputPath); err != nil {
			return nil, fmt.Errorf("write output: %w", err)
		}
		p.log.Info().Str("output", cfg.OutputPath).Msg("icon written")
		return &Result{OutputPath: cfg.OutputPath}, nil
	}

	if cfg.BundlePath != "" {
		if err := p.setter.Apply(cfg.BundlePath, packed); err != nil {
			p.log.Warn().Err(err).Msg("bundle icon not applied, writing fallback file")

			fallback := fallbackPath(srcPath, cfg)
			if err := copyFile(packed, fallback); err != nil {
				return nil, fmt.Errorf("write fallback: %w", err)
			}
			p.log.Info().Str("output", fallback).Msg("icon written")
			return &Result{OutputPath: fallback}, nil
		}

		p.log.Info().Str("bundle", cfg.BundlePath).Msg("bundle icon applied")
		return &Result{AppliedToBundle: true}, nil
	}

	dir := filepath.Dir(srcPath)
	if len(cfg.SourceData) > 0 {
		// The source lives in the temp dir; keep the output around.
		dir = "."
	}
	out := filepath.Join(dir, taggedName(srcPath, cfg))
	if err := copyFile(packed, out); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}
	p.log.Info().Str("output", out).Msg("icon written")

	return &Result{OutputPath: out}, nil
}

// fallbackPath is the well-known location used when the bundle setter is
// unavailable or fails: the user's Desktop, or the working directory
// when no home is known.
func fallbackPath(srcPath string, cfg Config) string {
	name := taggedName(srcPath, cfg)

	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}

	return filepath.Join(home, "Desktop", name)
}

func taggedName(srcPath string, cfg Config) string {
	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	return base + "_" + strings.Join(cfg.Tags(), "_") + ".icns"
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
