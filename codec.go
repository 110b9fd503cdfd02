package imalgo

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	// Registers the webp decoder with the image package.
	_ "golang.org/x/image/webp"
)

// Supported output formats.
const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
)

// DefaultQuality is the JPEG quality used when none is given.
const DefaultQuality = 95

// Decode reads an image and applies the EXIF orientation, if any.
// It returns the decoded image and the name of its format.
func Decode(r io.Reader) (image.Image, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", errors.Wrap(err, "could not read the source image")
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", errors.Wrap(err, "could not decode the source image")
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", errors.Wrap(err, "could not decode the source image")
	}
	return img, format, nil
}

// Encode writes img to w in the given format. Quality applies to JPEG only.
func Encode(w io.Writer, img image.Image, format string, quality int) error {
	var err error
	switch format {
	case FormatJPEG:
		if quality <= 0 || quality > 100 {
			quality = DefaultQuality
		}
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return errors.Errorf("unsupported image format %q", format)
	}
	return errors.Wrapf(err, "could not encode the %s image", format)
}

// FormatFromPath returns the output format matching the file extension.
// An empty extension maps to JPEG.
func FormatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "", ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	default:
		return "", errors.Errorf("unsupported image extension %q", ext)
	}
}

// FromImage converts any image to an 8-bit raster with 1 or 3 channels.
// Alpha is dropped; a single channel result holds the luminance.
func FromImage(src image.Image, channels int) *Image8u {
	must(validChannels(channels), CodeImageChannels, "image channels %d", channels)

	nrgba := imaging.Clone(src)
	w, h := nrgba.Bounds().Dx(), nrgba.Bounds().Dy()
	rgb := NewImage[uint8](w, h, 3)
	for y := 0; y < h; y++ {
		si := nrgba.PixOffset(0, y)
		row := rgb.Row(y)
		for x := 0; x < w; x++ {
			copy(row[x*3:x*3+3], nrgba.Pix[si+x*4:si+x*4+3])
		}
	}
	if channels == 1 {
		return Grayscale(rgb)
	}
	return rgb
}

// ToImage converts the raster to a standard library image. Elements are
// saturated to [0, 255] first. Single channel rasters become *image.Gray,
// three channel rasters *image.NRGBA.
func (img *Image[T]) ToImage() image.Image {
	rect := image.Rect(0, 0, img.width, img.height)
	if img.channels == 1 {
		dst := image.NewGray(rect)
		for y := 0; y < img.height; y++ {
			row := img.Row(y)
			for x, v := range row {
				dst.SetGray(x, y, color.Gray{Y: fromFloat[uint8](toFloat(v))})
			}
		}
		return dst
	}

	dst := image.NewNRGBA(rect)
	for y := 0; y < img.height; y++ {
		row := img.Row(y)
		di := dst.PixOffset(0, y)
		for x := 0; x < img.width; x++ {
			for c := 0; c < 3; c++ {
				dst.Pix[di+x*4+c] = fromFloat[uint8](toFloat(row[x*3+c]))
			}
			dst.Pix[di+x*4+3] = 0xff
		}
	}
	return dst
}
