package compiler

import "errors"

// Configuration errors
var (
	ErrDomainSize = errors.New("compiler: domain size must be at least 1")
	ErrStateLimit = errors.New("compiler: generated state count exceeds the configured limit")
)

// Program errors detected during compilation
var (
	ErrUnknownInstruction = errors.New("compiler: unrecognized instruction kind")
	ErrUnknownLabel       = errors.New("compiler: goto names a label the program never declares")
	ErrUnknownVariable    = errors.New("compiler: expression reads an unbound variable")
	ErrUnknownOperator    = errors.New("compiler: unrecognized expression operator")
	ErrBadOperand         = errors.New("compiler: expression operand has the wrong type")
	ErrBadOutputOperand   = errors.New("compiler: output operand is neither a string literal nor a bound variable")
	ErrDivisionByZero     = errors.New("compiler: division by zero")
)
