package imalgo

import (
	"math"

	"github.com/esimov/imalgo/utils"
)

// toFloat widens an element for accumulation.
func toFloat[T Elem](v T) float64 {
	return float64(v)
}

// fromFloat narrows an accumulated value back to the element type.
// uint8 saturates to [0, 255] before rounding, int32 rounds and float32 passes through.
// NaN narrows to 0 for the integer types.
func fromFloat[T Elem](v float64) T {
	var zero T
	if math.IsNaN(v) {
		if _, ok := any(zero).(float32); !ok {
			return zero
		}
	}
	switch any(zero).(type) {
	case uint8:
		return T(math.Round(utils.Clamp(v, 0, 255)))
	case int32:
		return T(math.Round(v))
	default:
		return T(v)
	}
}
