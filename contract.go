package imalgo

import "fmt"

// Diagnostic codes carried by contract violations, one per call site.
const (
	CodeImageSize       = 1001 // NewImage: width or height not positive
	CodeImageChannels   = 1002 // NewImage: channel count not 1 or 3
	CodeColorChannels   = 1003 // Color constructed or read with a bad channel index
	CodeResampleTarget  = 2001 // Resample: requested width or height not positive
	CodeResampleSource  = 2002 // Resample: source width or height not positive
	CodeResampleChannel = 2003 // Resample: source channel count not 1 or 3
	CodeBlurSource      = 3001 // Blur: source width or height not positive
	CodeBlurChannels    = 3002 // Blur: source channel count not 1 or 3
	CodeBlurColors      = 3003 // BlurColors: sequence channel count not 1 or 3, or mixed
	CodeGrayChannels    = 4001 // Grayscale: source channel count not 1 or 3
)

// ContractError reports a violated precondition. It signals a programming
// error on the caller's side and is raised with panic, never returned.
type ContractError struct {
	Code int
	Msg  string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("imalgo: contract violation #%d: %s", e.Code, e.Msg)
}

// AsContractError extracts a *ContractError from a value obtained with recover.
// It reports false for any other panic value.
func AsContractError(recovered any) (*ContractError, bool) {
	err, ok := recovered.(*ContractError)
	return err, ok
}

// must panics with a *ContractError when cond does not hold.
func must(cond bool, code int, format string, args ...any) {
	if !cond {
		panic(&ContractError{Code: code, Msg: fmt.Sprintf(format, args...)})
	}
}

func validChannels(ch int) bool {
	return ch == 1 || ch == 3
}
