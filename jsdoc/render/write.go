package render

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// WriteOption configures [Write].
type WriteOption func(*writeOptions)

type writeOptions struct {
	clean bool
}

// WithClean removes the output directory before writing.
func WithClean(clean bool) WriteOption {
	return func(o *writeOptions) {
		o.clean = clean
	}
}

// Write writes files below dir, creating directories as needed.
//
// With [WithClean], dir is removed first so stale namespace files do not
// survive a rerun. Cleaning is refused for the current directory and the
// filesystem root.
func Write(dir string, files []File, opts ...WriteOption) error {
	var o writeOptions
	for _, opt := range opts {
		opt(&o)
	}

	if dir == "" {
		return fmt.Errorf("%w: empty output directory", ErrWriteOutput)
	}

	dir = filepath.Clean(dir)

	if o.clean {
		if slices.Contains([]string{".", string(filepath.Separator), filepath.VolumeName(dir) + string(filepath.Separator)}, dir) {
			return fmt.Errorf("%w: refusing to clean %q", ErrWriteOutput, dir)
		}

		err := os.RemoveAll(dir)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	}

	for _, f := range files {
		target := filepath.Join(dir, filepath.FromSlash(f.Name))

		err := os.MkdirAll(filepath.Dir(target), 0o755)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}

		err = os.WriteFile(target, f.Data, 0o644) //nolint:gosec // Documentation output is world readable.
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	}

	return nil
}
