package imalgo

// Color is a single sample of an ordered color sequence: either one
// intensity value or an RGB triple. Colors are comparable with ==.
type Color[T Elem] struct {
	v [3]T
	n int
}

// Color8u, Color32f and Color32i are the supported instantiations.
type (
	Color8u  = Color[uint8]
	Color32f = Color[float32]
	Color32i = Color[int32]
)

// Gray returns a single channel color.
func Gray[T Elem](v T) Color[T] {
	return Color[T]{v: [3]T{v}, n: 1}
}

// RGB returns a three channel color.
func RGB[T Elem](r, g, b T) Color[T] {
	return Color[T]{v: [3]T{r, g, b}, n: 3}
}

// Channels returns 1 or 3, or 0 for the zero value.
func (c Color[T]) Channels() int { return c.n }

// At returns channel ch.
func (c Color[T]) At(ch int) T {
	must(ch >= 0 && ch < c.n, CodeColorChannels, "channel %d of a %d channel color", ch, c.n)
	return c.v[ch]
}

// Values returns the channel values as a fresh slice.
func (c Color[T]) Values() []T {
	return append([]T(nil), c.v[:c.n]...)
}

func colorOf[T Elem](ch int, v [3]T) Color[T] {
	if ch == 1 {
		return Color[T]{v: [3]T{v[0]}, n: 1}
	}
	return Color[T]{v: v, n: 3}
}
