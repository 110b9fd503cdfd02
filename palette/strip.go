package palette

import (
	"errors"
	"fmt"

	"github.com/esimov/imalgo"
)

// FromStrip reads the first row of img as a color sequence.
func FromStrip(img *imalgo.Image8u) []imalgo.Color8u {
	colors := make([]imalgo.Color8u, img.Width())
	for x := range colors {
		if img.Channels() == 1 {
			colors[x] = imalgo.Gray(img.At(0, x, 0))
		} else {
			colors[x] = imalgo.RGB(img.At(0, x, 0), img.At(0, x, 1), img.At(0, x, 2))
		}
	}
	return colors
}

// ToStrip renders colors as an image one pixel wide per color and height rows tall.
func ToStrip(colors []imalgo.Color8u, height int) (*imalgo.Image8u, error) {
	if len(colors) == 0 {
		return nil, errors.New("empty color sequence")
	}
	if height <= 0 {
		return nil, fmt.Errorf("invalid strip height: %d", height)
	}

	ch := colors[0].Channels()
	if ch != 1 && ch != 3 {
		return nil, fmt.Errorf("unsupported color channels: %d", ch)
	}
	img := imalgo.NewImage[uint8](len(colors), height, ch)
	for x, c := range colors {
		if c.Channels() != ch {
			return nil, fmt.Errorf("color %d has %d channels, want %d", x, c.Channels(), ch)
		}
		for y := 0; y < height; y++ {
			for i := 0; i < ch; i++ {
				img.Set(y, x, i, c.At(i))
			}
		}
	}
	return img, nil
}
