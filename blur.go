package imalgo

import (
	"github.com/esimov/imalgo/utils"
)

// Blur applies a separable Gaussian blur of standard deviation sigma.
// Rows are convolved first into a float scratch buffer, then columns are
// convolved from that buffer and narrowed back to T. Samples outside the
// image repeat the nearest edge sample. A sigma that is not positive
// yields an unchanged copy without validating img.
func Blur[T Elem](img *Image[T], sigma float64) *Image[T] {
	if !(sigma > 0) {
		return img.Clone()
	}
	must(img.width > 0 && img.height > 0, CodeBlurSource, "blur source %dx%d", img.width, img.height)
	must(validChannels(img.channels), CodeBlurChannels, "blur source channels %d", img.channels)

	kernel := NewKernel(sigma)
	if kernel.Identity() {
		return img.Clone()
	}

	w, h, ch := img.width, img.height, img.channels
	scratch := make([]float64, len(img.Pix))

	for y := 0; y < h; y++ {
		src := img.Row(y)
		off := y * w * ch
		for x := 0; x < w; x++ {
			for c := 0; c < ch; c++ {
				var sum float64
				for k, wt := range kernel.Weights {
					sx := utils.Clamp(x+k-kernel.Radius, 0, w-1)
					sum += wt * toFloat(src[sx*ch+c])
				}
				scratch[off+x*ch+c] = sum
			}
		}
	}

	dst := NewImage[T](w, h, ch)
	stride := w * ch
	for y := 0; y < h; y++ {
		out := dst.Row(y)
		for x := 0; x < w; x++ {
			for c := 0; c < ch; c++ {
				var sum float64
				for k, wt := range kernel.Weights {
					sy := utils.Clamp(y+k-kernel.Radius, 0, h-1)
					sum += wt * scratch[sy*stride+x*ch+c]
				}
				out[x*ch+c] = fromFloat[T](sum)
			}
		}
	}
	return dst
}

// BlurColors applies a 1D Gaussian blur of standard deviation sigma to an
// ordered color sequence, channel by channel. Every color must carry the
// same channel count, 1 or 3. A sigma that is not positive yields an
// unchanged copy without validating the colors.
func BlurColors[T Elem](colors []Color[T], sigma float64) []Color[T] {
	n := len(colors)
	if n == 0 {
		return []Color[T]{}
	}
	dst := make([]Color[T], n)
	copy(dst, colors)
	if !(sigma > 0) {
		return dst
	}

	ch := colors[0].n
	must(validChannels(ch), CodeBlurColors, "blur sequence channels %d", ch)
	for i, c := range colors {
		must(c.n == ch, CodeBlurColors, "blur sequence color %d has %d channels, want %d", i, c.n, ch)
	}

	kernel := NewKernel(sigma)
	if kernel.Identity() {
		return dst
	}

	scratch := make([][]float64, ch)
	for c := range scratch {
		vals := make([]float64, n)
		for i := range vals {
			var sum float64
			for k, wt := range kernel.Weights {
				si := utils.Clamp(i+k-kernel.Radius, 0, n-1)
				sum += wt * toFloat(colors[si].v[c])
			}
			vals[i] = sum
		}
		scratch[c] = vals
	}

	for i := range dst {
		var v [3]T
		for c := 0; c < ch; c++ {
			v[c] = fromFloat[T](scratch[c][i])
		}
		dst[i] = colorOf(ch, v)
	}
	return dst
}
