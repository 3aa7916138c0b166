package ability

import (
	"errors"
	"fmt"
)

// Compile failure reasons. A CompileError wraps exactly one of them.
var (
	ErrMissingName    = errors.New("ability has neither name nor script")
	ErrUnknownAbility = errors.New("unknown ability name")
	ErrScriptAttach   = errors.New("cannot attach ability script")
	ErrMalformedArea  = errors.New("malformed area shape")
)

// CompileError reports a single ability that could not be compiled.
// The ability is dropped; its siblings keep compiling.
type CompileError struct {
	Context string // creature (or shared table) the ability belongs to
	Ability string // ability name or script name
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: ability %q: %v", e.Context, e.Ability, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// reason returns the metrics label for a compile failure.
func reason(err error) string {
	switch {
	case errors.Is(err, ErrMissingName):
		return "missing_name"
	case errors.Is(err, ErrUnknownAbility):
		return "unknown_name"
	case errors.Is(err, ErrScriptAttach):
		return "script"
	case errors.Is(err, ErrMalformedArea):
		return "malformed_area"
	default:
		return "other"
	}
}
