package program

import "errors"

var (
	ErrDuplicateLabel = errors.New("program: duplicate label")
	ErrMalformedNode  = errors.New("program: malformed syntax node")
)
