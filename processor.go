package imalgo

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/esimov/imalgo/utils"
	"github.com/pkg/errors"
)

// Processor options
type Processor struct {
	NewWidth   int
	NewHeight  int
	BlurSigma  float64
	Quality    int
	Format     string
	Spinner    *utils.Spinner
	Percentage bool
	Grayscale  bool
}

// TargetSize computes the output dimensions for a srcW x srcH source.
// With Percentage set the requested sizes are percents of the source.
// A zero width or height follows the aspect ratio of the other one, and
// both zero keeps the source size. Enlargement is rejected.
func (p *Processor) TargetSize(srcW, srcH int) (int, int, error) {
	if srcW <= 0 || srcH <= 0 {
		return 0, 0, fmt.Errorf("invalid source size %dx%d", srcW, srcH)
	}
	if p.NewWidth < 0 || p.NewHeight < 0 {
		return 0, 0, fmt.Errorf("invalid target size %dx%d", p.NewWidth, p.NewHeight)
	}

	nw, nh := p.NewWidth, p.NewHeight
	if p.Percentage {
		if nw > 100 || nh > 100 {
			return 0, 0, errors.New("cannot use the percentage flag for image enlargement")
		}
		nw = percentOf(srcW, nw)
		nh = percentOf(srcH, nh)
	}

	switch {
	case nw == 0 && nh == 0:
		return srcW, srcH, nil
	case nw == 0:
		nw = utils.Max(1, int(math.Round(float64(srcW)*float64(nh)/float64(srcH))))
	case nh == 0:
		nh = utils.Max(1, int(math.Round(float64(srcH)*float64(nw)/float64(srcW))))
	}

	if nw > srcW || nh > srcH {
		return 0, 0, fmt.Errorf("target size %dx%d exceeds the source size %dx%d", nw, nh, srcW, srcH)
	}
	return nw, nh, nil
}

func percentOf(size, pct int) int {
	if pct == 0 {
		return 0
	}
	return utils.Max(1, int(math.Round(float64(size)*float64(pct)/100)))
}

// Apply runs the raster pipeline over img: optional grayscale conversion,
// blur as a pre-filter and the resample to the target size.
func (p *Processor) Apply(img *Image8u) (res *Image8u, err error) {
	defer func() {
		if r := recover(); r != nil {
			cerr, ok := AsContractError(r)
			if !ok {
				panic(r)
			}
			res, err = nil, errors.Wrap(cerr, "processing failed")
		}
	}()

	w, h, err := p.TargetSize(img.Width(), img.Height())
	if err != nil {
		return nil, err
	}

	res = img
	if p.Grayscale {
		res = Grayscale(res)
	}
	if p.BlurSigma > 0 {
		res = Blur(res, p.BlurSigma)
	}
	if w != res.Width() || h != res.Height() {
		res = Resample(res, w, h)
	}
	return res, nil
}

// Process decodes the image read from r, runs it through Apply and
// encodes the result into w. The output format is the Format option,
// or the extension of w when it is a named file, or PNG otherwise.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	src, _, err := Decode(r)
	if err != nil {
		return err
	}

	channels := 3
	if p.Grayscale {
		channels = 1
	}
	res, err := p.Apply(FromImage(src, channels))
	if err != nil {
		return err
	}

	format, err := p.outputFormat(w)
	if err != nil {
		return err
	}
	return Encode(w, res.ToImage(), format, p.Quality)
}

func (p *Processor) outputFormat(w io.Writer) (string, error) {
	if p.Format != "" {
		return p.Format, nil
	}
	if f, ok := w.(*os.File); ok && filepath.Ext(f.Name()) != "" {
		return FormatFromPath(f.Name())
	}
	return FormatPNG, nil
}
