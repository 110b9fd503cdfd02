package imalgo

// Grayscale converts a three channel image to a single luminance channel
// using the 0.299, 0.587, 0.114 weights. A single channel image is cloned.
func Grayscale[T Elem](img *Image[T]) *Image[T] {
	must(validChannels(img.channels), CodeGrayChannels, "grayscale source channels %d", img.channels)

	if img.channels == 1 {
		return img.Clone()
	}

	dst := NewImage[T](img.width, img.height, 1)
	for y := 0; y < img.height; y++ {
		src := img.Row(y)
		out := dst.Row(y)
		for x := range out {
			r, g, b := toFloat(src[x*3]), toFloat(src[x*3+1]), toFloat(src[x*3+2])
			out[x] = fromFloat[T](r*0.299 + g*0.587 + b*0.114)
		}
	}
	return dst
}
