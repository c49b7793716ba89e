package comment

import (
	"errors"
	"fmt"
)

var (
	// ErrDocCodeTypeMismatch is returned when @constant names a type that
	// differs from the type inferred from code.
	ErrDocCodeTypeMismatch = errors.New("type in doc & code do not match")

	// ErrDocCodeNameMismatch is returned when @constant names a constant that
	// differs from the name inferred from code.
	ErrDocCodeNameMismatch = errors.New("name in doc & code do not match")

	// ErrNoSuchParam is returned when a sub-param refers to an undeclared
	// param.
	ErrNoSuchParam = errors.New("no param")

	// ErrParentNotObjectType is returned when a sub-param's parent is not
	// typed Object.
	ErrParentNotObjectType = errors.New("param is not an object")

	// ErrNoMasterReturn is returned for a sub-return without a @return.
	ErrNoMasterReturn = errors.New("no master return")

	// ErrReturnNotObject is returned when a sub-return's parent is not typed
	// Object.
	ErrReturnNotObject = errors.New("return is not an object")
)

// LineError annotates an error with the 1-based line within the comment
// block that caused it.
type LineError struct {
	Err  error
	Line int
}

func (e *LineError) Error() string {
	return fmt.Sprintf("comment line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
