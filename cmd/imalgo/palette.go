package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/esimov/imalgo"
	"github.com/esimov/imalgo/palette"
)

type PaletteCmd struct {
	In     string  `help:"Source RIFF palette (.pal) or strip image" short:"i" required:"" type:"existingfile"`
	Out    string  `help:"Destination RIFF palette (.pal) or strip image" short:"o" required:""`
	Length int     `help:"Number of colors to keep; 0 keeps them all"`
	Sigma  float64 `help:"Gaussian blur strength; 0 disables it" short:"s"`
	Height int     `help:"Height of the strip image written for non palette outputs" default:"32"`
}

func (c *PaletteCmd) Validate() error {
	switch {
	case c.Length < 0:
		return fmt.Errorf("invalid length: %d", c.Length)
	case c.Sigma < 0:
		return fmt.Errorf("invalid sigma: %g", c.Sigma)
	case c.Height <= 0:
		return fmt.Errorf("invalid strip height: %d", c.Height)
	}
	return nil
}

func (c *PaletteCmd) Run(env *runEnv) error {
	logger := slog.Default().With("file", c.In)

	colors, err := readColors(c.In)
	if err != nil {
		return err
	}
	logger.Info("palette loaded", "colors", len(colors))

	if c.Sigma > 0 {
		colors = imalgo.BlurColors(colors, c.Sigma)
	}
	if c.Length > 0 {
		colors = imalgo.ResampleColors(colors, c.Length)
	}

	if err := writeColors(c.Out, colors, c.Height, env.cfg.Output.Quality); err != nil {
		return err
	}
	logger.Info("palette saved", "dst", c.Out, "colors", len(colors))
	return nil
}

func isPal(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pal")
}

func readColors(path string) ([]imalgo.Color8u, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open palette source: %w", err)
	}
	defer f.Close()

	if isPal(path) {
		return palette.Read(f)
	}
	img, _, err := imalgo.Decode(f)
	if err != nil {
		return nil, err
	}
	return palette.FromStrip(imalgo.FromImage(img, 3)), nil
}

func writeColors(path string, colors []imalgo.Color8u, height, quality int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create palette destination: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if isPal(path) {
		return palette.Write(f, colors)
	}

	format, err := imalgo.FormatFromPath(path)
	if err != nil {
		return err
	}
	strip, err := palette.ToStrip(colors, height)
	if err != nil {
		return err
	}
	return imalgo.Encode(f, strip.ToImage(), format, quality)
}
