package runner

import "errors"

var (
	ErrBadInput  = errors.New("runner: input is not an integer in the machine's domain")
	ErrStepLimit = errors.New("runner: step limit exceeded")
)
