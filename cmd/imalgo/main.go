package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/esimov/imalgo"
	"github.com/esimov/imalgo/config"
	"github.com/esimov/imalgo/utils"
	"golang.org/x/term"
)

const HelpBanner = `
┬┌┬┐┌─┐┬  ┌─┐┌─┐
││││├─┤│  │ ┬│ │
┴┴ ┴┴ ┴┴─┘└─┘└─┘

Image resampling and Gaussian blur.
    Version: %s
`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version = "dev"

type CLI struct {
	Config  string           `help:"YAML configuration file; missing files fall back to defaults" default:"imalgo.yaml" type:"path"`
	Workers int              `help:"Number of files to process concurrently" default:"0"`
	Verbose bool             `help:"Log every processed file" short:"v"`
	Version kong.VersionFlag `help:"Print version and exit"`

	Resample ResampleCmd `cmd:"" help:"Downsample an image, a URL or a directory of images"`
	Blur     BlurCmd     `cmd:"" help:"Gaussian blur an image, a URL or a directory of images"`
	Palette  PaletteCmd  `cmd:"" help:"Resample and blur a color sequence stored as a RIFF palette or a strip image"`
}

// runEnv carries the state shared by every command.
type runEnv struct {
	ctx     context.Context
	cfg     *config.Config
	workers int
	spinner *utils.Spinner
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("imalgo"),
		kong.Description(fmt.Sprintf(HelpBanner, Version)),
		kong.UsageOnError(),
		kong.Vars{"version": Version},
	)

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(cli.Config)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := &runEnv{ctx: ctx, cfg: cfg, workers: cfg.Exec.Workers}
	if cli.Workers > 0 {
		env.workers = cli.Workers
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		env.spinner = utils.NewSpinner(os.Stderr,
			utils.StatusLine(kctx.Command(), "working...", utils.DefaultMessage),
			80*time.Millisecond, true)
		defer env.spinner.RestoreCursor()
	}

	err = kctx.Run(env)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
		os.Exit(1)
	}
}

// IOFlags are the source and destination flags shared by the image commands.
type IOFlags struct {
	In  string `help:"Source image, URL, directory or - for stdin" short:"i" default:"-"`
	Out string `help:"Destination image, directory or - for stdout" short:"o" default:"-"`
}

// OutputFlags override the output section of the configuration.
type OutputFlags struct {
	Grayscale bool   `help:"Convert to grayscale" short:"g"`
	Quality   int    `help:"JPEG quality"`
	Format    string `help:"Force the output format (jpeg, png, bmp, tiff)"`
}

func (o OutputFlags) apply(cfg *config.Config) {
	if o.Grayscale {
		cfg.Output.Grayscale = true
	}
	if o.Quality > 0 {
		cfg.Output.Quality = o.Quality
	}
	if o.Format != "" {
		cfg.Output.Format = o.Format
	}
}

type ResampleCmd struct {
	IOFlags
	OutputFlags

	Width      int     `help:"New width; 0 keeps the aspect ratio"`
	Height     int     `help:"New height; 0 keeps the aspect ratio"`
	Percentage bool    `help:"Interpret width and height as percents of the source" name:"perc"`
	Sigma      float64 `help:"Gaussian pre-filter strength; 0 disables it"`
}

func (c *ResampleCmd) Validate() error {
	switch {
	case c.Width < 0:
		return fmt.Errorf("invalid width: %d", c.Width)
	case c.Height < 0:
		return fmt.Errorf("invalid height: %d", c.Height)
	case c.Percentage && (c.Width > 100 || c.Height > 100):
		return fmt.Errorf("percentage above 100: %dx%d", c.Width, c.Height)
	case c.Sigma < 0:
		return fmt.Errorf("invalid sigma: %g", c.Sigma)
	}
	return nil
}

func (c *ResampleCmd) Run(env *runEnv) error {
	cfg := *env.cfg
	if c.Width > 0 || c.Height > 0 {
		cfg.Resample.Width, cfg.Resample.Height = c.Width, c.Height
	}
	if c.Percentage {
		cfg.Resample.Percentage = true
	}
	if c.Sigma > 0 {
		cfg.Blur.Sigma = c.Sigma
	}
	c.OutputFlags.apply(&cfg)
	if cfg.Resample.Width == 0 && cfg.Resample.Height == 0 {
		return fmt.Errorf("no resample dimensions given")
	}
	return execute(env, &cfg, c.IOFlags)
}

type BlurCmd struct {
	IOFlags
	OutputFlags

	Sigma float64 `help:"Gaussian standard deviation" short:"s" required:""`
}

func (c *BlurCmd) Validate() error {
	if !(c.Sigma > 0) {
		return fmt.Errorf("sigma must be positive: %g", c.Sigma)
	}
	return nil
}

func (c *BlurCmd) Run(env *runEnv) error {
	cfg := *env.cfg
	cfg.Resample.Width, cfg.Resample.Height, cfg.Resample.Percentage = 0, 0, false
	cfg.Blur.Sigma = c.Sigma
	c.OutputFlags.apply(&cfg)
	return execute(env, &cfg, c.IOFlags)
}

func execute(env *runEnv, cfg *config.Config, flags IOFlags) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	proc := cfg.Processor()
	proc.Spinner = env.spinner

	return proc.Execute(env.ctx, &imalgo.Ops{
		Src:      flags.In,
		Dst:      flags.Out,
		PipeName: pipeName,
		Workers:  env.workers,
	})
}
