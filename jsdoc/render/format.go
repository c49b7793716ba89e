package render

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownFormat is returned for unsupported output formats.
	ErrUnknownFormat = errors.New("unknown format")

	// ErrWriteOutput is returned when rendered output cannot be encoded or
	// written.
	ErrWriteOutput = errors.New("write output")
)

// Format is an output format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// ParseFormat parses a format name. Matching is case-insensitive and "md"
// and "yml" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Formats returns the names of all supported formats.
func Formats() []string {
	return []string{string(FormatMarkdown), string(FormatJSON), string(FormatYAML)}
}

// Ext returns the file extension used for f, including the dot.
func (f Format) Ext() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatYAML:
		return ".yaml"
	default:
		return ".json"
	}
}

// mainFile returns the name of the file holding a root document.
func (f Format) mainFile() string {
	if f == FormatMarkdown {
		return "README.md"
	}

	return "main" + f.Ext()
}
