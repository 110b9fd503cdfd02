package imalgo

// Elem is the set of element types an Image or Color can hold.
type Elem interface {
	uint8 | int32 | float32
}

// Image is a row-major raster with 1 or 3 interleaved channels per pixel.
// The element at (row, col, ch) lives at Pix[(row*width+col)*channels+ch].
type Image[T Elem] struct {
	Pix      []T
	width    int
	height   int
	channels int
}

// Image8u, Image32f and Image32i are the supported instantiations.
type (
	Image8u  = Image[uint8]
	Image32f = Image[float32]
	Image32i = Image[int32]
)

// NewImage allocates a zero-filled image. Width and height must be positive
// and channels must be 1 or 3.
func NewImage[T Elem](width, height, channels int) *Image[T] {
	must(width > 0 && height > 0, CodeImageSize, "image size %dx%d", width, height)
	must(validChannels(channels), CodeImageChannels, "image channels %d", channels)

	return &Image[T]{
		Pix:      make([]T, width*height*channels),
		width:    width,
		height:   height,
		channels: channels,
	}
}

// Width returns the number of columns.
func (img *Image[T]) Width() int { return img.width }

// Height returns the number of rows.
func (img *Image[T]) Height() int { return img.height }

// Channels returns the number of elements per pixel.
func (img *Image[T]) Channels() int { return img.channels }

func (img *Image[T]) offset(row, col, ch int) int {
	return (row*img.width+col)*img.channels + ch
}

// At returns the element at (row, col, ch).
func (img *Image[T]) At(row, col, ch int) T {
	return img.Pix[img.offset(row, col, ch)]
}

// Set writes the element at (row, col, ch).
func (img *Image[T]) Set(row, col, ch int, v T) {
	img.Pix[img.offset(row, col, ch)] = v
}

// Row returns the elements of one row, channels interleaved.
// The slice aliases the image storage.
func (img *Image[T]) Row(row int) []T {
	start := img.offset(row, 0, 0)
	return img.Pix[start : start+img.width*img.channels]
}

// Fill sets every element to v.
func (img *Image[T]) Fill(v T) {
	for i := range img.Pix {
		img.Pix[i] = v
	}
}

// Clone creates a deep copy of the image.
func (img *Image[T]) Clone() *Image[T] {
	clone := *img
	clone.Pix = make([]T, len(img.Pix))
	copy(clone.Pix, img.Pix)
	return &clone
}

// SameSize reports whether both images have the same dimensions and channel count.
func SameSize[T, U Elem](a *Image[T], b *Image[U]) bool {
	return a.width == b.width && a.height == b.height && a.channels == b.channels
}
