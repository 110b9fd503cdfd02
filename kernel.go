package imalgo

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// minSigma is the smallest standard deviation a kernel is built with.
const minSigma = 0.001

// Kernel is a normalized, truncated 1D Gaussian. Weights has length 2*Radius+1
// and Weights[Radius] is the center tap.
type Kernel struct {
	Weights []float64
	Radius  int
}

// NewKernel builds the kernel for standard deviation sigma. Sigma below
// 0.001 is raised to it; the radius is ceil(3*sigma).
func NewKernel(sigma float64) Kernel {
	s := math.Max(sigma, minSigma)
	radius := int(math.Ceil(3 * s))

	weights := make([]float64, 2*radius+1)
	denom := 2 * s * s
	for k := -radius; k <= radius; k++ {
		weights[k+radius] = math.Exp(-float64(k*k) / denom)
	}
	if sum := floats.Sum(weights); sum > 0 {
		floats.Scale(1/sum, weights)
	}
	return Kernel{Weights: weights, Radius: radius}
}

// Identity reports whether convolving with the kernel is a no-op.
func (k Kernel) Identity() bool {
	return k.Radius == 0
}
