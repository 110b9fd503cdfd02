/*
Package imalgo provides two image algorithms over generic rasters and ordered
color sequences: nearest index resampling to a smaller resolution and a
separable, truncated Gaussian blur. Both are pure functions returning newly
allocated results and work on uint8, int32 and float32 elements with one or
three channels.

Precondition violations, like a non-positive target size or an unsupported
channel count, panic with a *ContractError carrying a diagnostic code.

The package also ships the plumbing used by the imalgo command: decoding and
encoding through the standard image types, a Processor chaining grayscale,
blur and resample, and a batch executor for files, pipes, URLs and directories.

	package main

	import (
		"fmt"
		"github.com/esimov/imalgo"
	)

	func main() {
		p := &imalgo.Processor{
			NewWidth:  320,
			BlurSigma: 1.5,
		}

		if err := p.Process(in, out); err != nil {
			fmt.Printf("Error processing image: %s", err.Error())
		}
	}
*/
package imalgo
