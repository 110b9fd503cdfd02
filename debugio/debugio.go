// Package debugio dumps intermediate images from tests for visual inspection.
// Dumps are written only when the IMALGO_DEBUG_DIR environment variable is set.
package debugio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/esimov/imalgo"
	"github.com/pkg/errors"
)

// EnvDir names the environment variable holding the dump root directory.
const EnvDir = "IMALGO_DEBUG_DIR"

// bandHeight is the height in pixels of one band rendered by Bands.
const bandHeight = 16

// CaseDir returns the dump directory of the running test, creating it.
// It returns an empty string when dumping is disabled.
func CaseDir(t testing.TB) string {
	t.Helper()

	root := os.Getenv(EnvDir)
	if root == "" {
		return ""
	}
	dir := filepath.Join(root, strings.ReplaceAll(t.Name(), "/", "_"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("could not create debug directory: %v", err)
	}
	return dir
}

// Dump writes img as a PNG file named name inside dir. It does nothing
// when dir is empty.
func Dump[T imalgo.Elem](dir, name string, img *imalgo.Image[T]) (err error) {
	if dir == "" {
		return nil
	}

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return errors.Wrap(err, "could not create debug image")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "could not close debug image")
		}
	}()

	return imalgo.Encode(f, img.ToImage(), imalgo.FormatPNG, 0)
}

// Bands stacks color sequences into one RGB image, each sequence drawn as
// a horizontal band. Shorter sequences are stretched to the longest one by
// nearest neighbour lookup.
func Bands(rows ...[]imalgo.Color8u) *imalgo.Image8u {
	width := 1
	for _, r := range rows {
		width = max(width, len(r))
	}
	img := imalgo.NewImage[uint8](width, max(1, len(rows))*bandHeight, 3)

	for b, r := range rows {
		if len(r) == 0 {
			continue
		}
		for x := 0; x < width; x++ {
			c := r[x*len(r)/width]
			var rgb [3]uint8
			if c.Channels() == 1 {
				rgb = [3]uint8{c.At(0), c.At(0), c.At(0)}
			} else {
				rgb = [3]uint8{c.At(0), c.At(1), c.At(2)}
			}
			for y := b * bandHeight; y < (b+1)*bandHeight; y++ {
				for ch, v := range rgb {
					img.Set(y, x, ch, v)
				}
			}
		}
	}
	return img
}
