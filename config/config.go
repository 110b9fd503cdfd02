// Package config loads and saves the YAML configuration of the imalgo command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/esimov/imalgo"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Resample parameters
	Resample struct {
		// Width and Height of the output; zero keeps the aspect ratio
		Width  int `yaml:"width"`
		Height int `yaml:"height"`

		// Percentage interprets Width and Height as percents of the source size
		Percentage bool `yaml:"percentage"`
	} `yaml:"resample"`

	// Blur parameters
	Blur struct {
		// Sigma is the Gaussian standard deviation; zero disables the blur
		Sigma float64 `yaml:"sigma"`
	} `yaml:"blur"`

	// Output parameters
	Output struct {
		Grayscale bool `yaml:"grayscale"`

		// Quality of JPEG output, 1 to 100
		Quality int `yaml:"quality"`

		// Format forces the output format; empty selects it from the file extension
		Format string `yaml:"format"`
	} `yaml:"output"`

	// Exec parameters
	Exec struct {
		// Workers bounds the number of files processed concurrently
		Workers int `yaml:"workers"`
	} `yaml:"exec"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Output.Quality = imalgo.DefaultQuality
	cfg.Exec.Workers = runtime.NumCPU()
	return cfg
}

// Load loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %q: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file, creating its directory if needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// Validate checks the values for ranges the processor accepts.
func (c *Config) Validate() error {
	switch {
	case c.Resample.Width < 0:
		return fmt.Errorf("invalid resample width: %d", c.Resample.Width)
	case c.Resample.Height < 0:
		return fmt.Errorf("invalid resample height: %d", c.Resample.Height)
	case c.Resample.Percentage && (c.Resample.Width > 100 || c.Resample.Height > 100):
		return fmt.Errorf("resample percentage above 100: %dx%d", c.Resample.Width, c.Resample.Height)
	case c.Blur.Sigma < 0:
		return fmt.Errorf("invalid blur sigma: %g", c.Blur.Sigma)
	case c.Output.Quality < 1 || c.Output.Quality > 100:
		return fmt.Errorf("invalid output quality: %d", c.Output.Quality)
	case c.Exec.Workers < 0:
		return fmt.Errorf("invalid number of workers: %d", c.Exec.Workers)
	}

	switch c.Output.Format {
	case "", imalgo.FormatJPEG, imalgo.FormatPNG, imalgo.FormatBMP, imalgo.FormatTIFF:
	default:
		return fmt.Errorf("unsupported output format: %q", c.Output.Format)
	}
	return nil
}

// Processor builds the processor options described by the configuration.
func (c *Config) Processor() *imalgo.Processor {
	return &imalgo.Processor{
		NewWidth:   c.Resample.Width,
		NewHeight:  c.Resample.Height,
		Percentage: c.Resample.Percentage,
		BlurSigma:  c.Blur.Sigma,
		Grayscale:  c.Output.Grayscale,
		Quality:    c.Output.Quality,
		Format:     c.Output.Format,
	}
}
