package imalgo

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	img.SetNRGBA(2, 0, color.NRGBA{B: 255, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{R: 177, G: 177, B: 177, A: 255})
	img.SetNRGBA(2, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	return img
}

func TestCodec_FromImageShouldCopyChannels(t *testing.T) {
	img := FromImage(sampleNRGBA(), 3)

	require.Equal(t, 3, img.Width())
	require.Equal(t, 2, img.Height())
	require.Equal(t, 3, img.Channels())
	assert.Equal(t, []uint8{255, 0, 0, 0, 255, 0, 0, 0, 255}, img.Row(0))
	assert.Equal(t, []uint8{10, 20, 30, 177, 177, 177, 255, 255, 255}, img.Row(1))
}

func TestCodec_FromImageShouldComputeLuminance(t *testing.T) {
	img := FromImage(sampleNRGBA(), 1)

	require.Equal(t, 1, img.Channels())
	assert.Equal(t, []uint8{76, 150, 29}, img.Row(0))
	assert.Equal(t, uint8(177), img.At(1, 1, 0))
}

func TestCodec_FromImageShouldHandleOffsetBounds(t *testing.T) {
	src := image.NewGray(image.Rect(5, 5, 7, 6))
	src.SetGray(6, 5, color.Gray{Y: 200})

	img := FromImage(src, 3)
	assert.Equal(t, 2, img.Width())
	assert.Equal(t, 1, img.Height())
	assert.Equal(t, []uint8{0, 0, 0, 200, 200, 200}, img.Row(0))
}

func TestCodec_ToImageShouldRestoreColors(t *testing.T) {
	src := sampleNRGBA()
	dst, ok := FromImage(src, 3).ToImage().(*image.NRGBA)
	require.True(t, ok)
	assert.Equal(t, src.Pix, dst.Pix)

	gray, ok := FromImage(src, 1).ToImage().(*image.Gray)
	require.True(t, ok)
	assert.Equal(t, uint8(150), gray.GrayAt(1, 0).Y)
}

func TestCodec_ToImageShouldSaturate(t *testing.T) {
	img := NewImage[float32](3, 1, 1)
	img.Pix = []float32{-5, 127.6, 300}

	gray := img.ToImage().(*image.Gray)
	assert.Equal(t, []uint8{0, 128, 255}, gray.Pix)
}

func TestCodec_ToImageShouldMapNaNToBlack(t *testing.T) {
	img := NewImage[float32](2, 1, 3)
	img.Pix = []float32{float32(math.NaN()), 10, 20, 30, float32(math.NaN()), 50}

	rgba := img.ToImage().(*image.NRGBA)
	assert.Equal(t, []uint8{0, 10, 20, 255, 30, 0, 50, 255}, rgba.Pix)
}

func TestCodec_ShouldEncodeAndDecode(t *testing.T) {
	for _, format := range []string{FormatPNG, FormatBMP, FormatTIFF} {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, sampleNRGBA(), format, 0), format)

		img, name, err := Decode(&buf)
		require.NoError(t, err, format)
		assert.Equal(t, format, name)
		assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
		assert.Equal(t, FromImage(sampleNRGBA(), 3).Pix, FromImage(img, 3).Pix, format)
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleNRGBA(), FormatJPEG, 80))
	_, name, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, FormatJPEG, name)
}

func TestCodec_ShouldRejectUnknownFormats(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Encode(&buf, sampleNRGBA(), "gif", 0))

	_, _, err := Decode(bytes.NewReader([]byte("definitely not an image")))
	assert.Error(t, err)
}

func TestCodec_FormatFromPath(t *testing.T) {
	cases := map[string]string{
		"out":           FormatJPEG,
		"out.jpg":       FormatJPEG,
		"dir/out.JPEG":  FormatJPEG,
		"out.png":       FormatPNG,
		"out.bmp":       FormatBMP,
		"out.tif":       FormatTIFF,
		"/tmp/out.tiff": FormatTIFF,
	}
	for path, want := range cases {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFromPath("out.webp")
	assert.Error(t, err)
}
