package imalgo

import (
	"math"
	"slices"

	"github.com/esimov/imalgo/utils"
)

// mapIndex returns the source index that output index i of an m-long axis
// takes its value from, when the source axis is n long. Endpoints map to
// endpoints; a single output sample takes the source midpoint n/2.
func mapIndex(i, n, m int) int {
	if m == 1 {
		return n / 2
	}
	idx := int(math.Round(float64(i) * float64(n-1) / float64(m-1)))
	return utils.Clamp(idx, 0, n-1)
}

func indexMap(n, m int) []int {
	idx := make([]int, m)
	for i := range idx {
		idx[i] = mapIndex(i, n, m)
	}
	return idx
}

// Resample maps img to width x height by nearest index selection.
// Each axis is mapped independently and every channel of the chosen
// source pixel is copied unchanged.
func Resample[T Elem](img *Image[T], width, height int) *Image[T] {
	must(width > 0 && height > 0, CodeResampleTarget, "resample target %dx%d", width, height)
	must(img.width > 0 && img.height > 0, CodeResampleSource, "resample source %dx%d", img.width, img.height)
	must(validChannels(img.channels), CodeResampleChannel, "resample source channels %d", img.channels)

	cols := indexMap(img.width, width)
	rows := indexMap(img.height, height)

	ch := img.channels
	dst := NewImage[T](width, height, ch)
	for y, sy := range rows {
		srcRow := img.Row(sy)
		dstRow := dst.Row(y)
		for x, sx := range cols {
			copy(dstRow[x*ch:(x+1)*ch], srcRow[sx*ch:(sx+1)*ch])
		}
	}
	return dst
}

// ResampleColors reduces colors to length samples. A non-positive length or
// an empty input gives an empty result; a length not below len(colors)
// gives a copy of the input.
func ResampleColors[T Elem](colors []Color[T], length int) []Color[T] {
	n := len(colors)
	if length <= 0 || n == 0 {
		return []Color[T]{}
	}
	if length >= n {
		return slices.Clone(colors)
	}

	dst := make([]Color[T], length)
	for i := range dst {
		dst[i] = colors[mapIndex(i, n, length)]
	}
	return dst
}
