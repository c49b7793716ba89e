package jsdoc

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound is returned when a source file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrReadInput is returned when a source file cannot be read.
	ErrReadInput = errors.New("read input")

	// ErrReadManifest is returned when a package manifest exists but cannot
	// be read or decoded.
	ErrReadManifest = errors.New("read manifest")

	// ErrInvalidOption is returned for invalid parser options or arguments.
	ErrInvalidOption = errors.New("invalid option")
)

// FileError annotates a comment parse error with the source file and the
// 1-based line within it.
type FileError struct {
	Err  error
	Path string
	Line int
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
