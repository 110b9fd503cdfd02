package imalgo_test

import (
	"math"
	"testing"

	"github.com/esimov/imalgo"
	"github.com/esimov/imalgo/debugio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(n int) []imalgo.Color8u {
	colors := make([]imalgo.Color8u, n)
	for i := range colors {
		v := uint8(i * 255 / (n - 1))
		colors[i] = imalgo.RGB(v, 255-v, uint8(i))
	}
	return colors
}

func TestBlur_ZeroStrengthShouldBeIdentity(t *testing.T) {
	src := gradient(64)
	for _, sigma := range []float64{0, -1, math.NaN()} {
		dst := imalgo.BlurColors(src, sigma)
		assert.Equal(t, src, dst, "sigma %v", sigma)
	}

	img := imalgo.NewImage[uint8](8, 8, 3)
	for i := range img.Pix {
		img.Pix[i] = uint8(i)
	}
	dst := imalgo.Blur(img, 0)
	assert.Equal(t, img.Pix, dst.Pix)

	dst.Fill(0)
	assert.Equal(t, uint8(5), img.Pix[5], "identity result must not alias the source")
}

func TestBlur_ShouldSpreadImpulseEnergy(t *testing.T) {
	src := make([]imalgo.Color8u, 81)
	for i := range src {
		src[i] = imalgo.Gray[uint8](0)
	}
	src[40] = imalgo.Gray[uint8](255)

	dst := imalgo.BlurColors(src, 3.0)
	require.Len(t, dst, 81)

	assert.Less(t, dst[40].At(0), uint8(255))
	assert.Greater(t, dst[39].At(0), uint8(0))
	assert.Greater(t, dst[41].At(0), uint8(0))
	for k := 1; k <= 10; k++ {
		l, r := int(dst[40-k].At(0)), int(dst[40+k].At(0))
		assert.InDelta(t, l, r, 2, "offset %d", k)
	}

	require.NoError(t, debugio.Dump(debugio.CaseDir(t), "impulse.png", debugio.Bands(src, dst)))
}

func TestBlur_ImageImpulseShouldDecay(t *testing.T) {
	img := imalgo.NewImage[float32](61, 61, 1)
	img.Set(30, 30, 0, 255)

	dst := imalgo.Blur(img, 3.0)

	center := dst.At(30, 30, 0)
	assert.Less(t, center, float32(255))
	assert.Greater(t, center, dst.At(30, 31, 0))
	assert.Greater(t, dst.At(30, 31, 0), dst.At(30, 35, 0))
	assert.InDelta(t, dst.At(30, 31, 0), dst.At(31, 30, 0), 1e-4)

	var sum float64
	for _, v := range dst.Pix {
		sum += float64(v)
	}
	assert.InDelta(t, 255, sum, 1e-2, "blur must preserve the total energy away from edges")
}

func TestBlur_ShouldMixAcrossColorBoundary(t *testing.T) {
	const w, h = 20, 10
	img := imalgo.NewImage[uint8](w, h, 3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				img.Set(y, x, 0, 255)
			} else {
				img.Set(y, x, 1, 255)
			}
		}
	}

	dst := imalgo.Blur(img, 2.5)

	dir := debugio.CaseDir(t)
	require.NoError(t, debugio.Dump(dir, "source.png", img))
	require.NoError(t, debugio.Dump(dir, "blurred.png", dst))

	for y := 0; y < h; y++ {
		for _, x := range []int{w/2 - 1, w / 2} {
			assert.Greater(t, dst.At(y, x, 0), uint8(0), "red at (%d,%d)", y, x)
			assert.Greater(t, dst.At(y, x, 1), uint8(0), "green at (%d,%d)", y, x)
		}
	}
	// Clamped edges stay saturated far from the boundary.
	assert.Equal(t, uint8(255), dst.At(0, 0, 0))
	assert.Equal(t, uint8(0), dst.At(0, 0, 1))
	assert.Equal(t, uint8(255), dst.At(h-1, w-1, 1))
}

func TestBlur_ConstantInputShouldStayConstant(t *testing.T) {
	img := imalgo.NewImage[int32](7, 5, 1)
	img.Fill(-42)
	dst := imalgo.Blur(img, 4)
	for _, v := range dst.Pix {
		assert.Equal(t, int32(-42), v)
	}

	src := make([]imalgo.Color8u, 12)
	for i := range src {
		src[i] = imalgo.RGB[uint8](10, 200, 255)
	}
	assert.Equal(t, src, imalgo.BlurColors(src, 1.7))
}

func TestBlur_SinglePixelShouldBeUnchanged(t *testing.T) {
	img := imalgo.NewImage[uint8](1, 1, 3)
	img.Set(0, 0, 0, 12)
	img.Set(0, 0, 1, 34)
	img.Set(0, 0, 2, 56)

	dst := imalgo.Blur(img, 5)
	assert.Equal(t, img.Pix, dst.Pix)
}

func TestBlur_ShouldKeepSequenceChannels(t *testing.T) {
	dst := imalgo.BlurColors(gradient(16), 1)
	for _, c := range dst {
		assert.Equal(t, 3, c.Channels())
	}
	assert.Empty(t, imalgo.BlurColors([]imalgo.Color8u{}, 2))
}

func TestBlur_ShouldRejectMixedChannels(t *testing.T) {
	src := []imalgo.Color8u{imalgo.Gray[uint8](1), imalgo.RGB[uint8](1, 2, 3)}
	assertContractPanic(t, imalgo.CodeBlurColors, func() { imalgo.BlurColors(src, 1) })

	assertContractPanic(t, imalgo.CodeBlurColors, func() {
		imalgo.BlurColors(make([]imalgo.Color8u, 3), 1)
	})
}

func TestBlur_ShouldRejectEmptyImage(t *testing.T) {
	assertContractPanic(t, imalgo.CodeBlurSource, func() {
		imalgo.Blur(&imalgo.Image32f{}, 1)
	})
}

func TestBlur_ZeroStrengthShouldSkipValidation(t *testing.T) {
	src := make([]imalgo.Color8u, 3)
	var dst []imalgo.Color8u
	require.NotPanics(t, func() { dst = imalgo.BlurColors(src, 0) })
	assert.Equal(t, src, dst)

	require.NotPanics(t, func() { imalgo.Blur(&imalgo.Image32f{}, 0) })
	require.NotPanics(t, func() { imalgo.Blur(&imalgo.Image32f{}, math.NaN()) })
}
