package jsdoc

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Reader is the filesystem the parser reads sources and manifests from.
type Reader interface {
	ReadFile(name string) ([]byte, error)
	Stat(name string) (fs.FileInfo, error)
}

type osReader struct{}

func (osReader) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name) //nolint:gosec // Paths come from the CLI and from local requires.
}

func (osReader) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// OSReader returns a [Reader] backed by the local filesystem.
func OSReader() Reader {
	return osReader{}
}

// IsLocal reports whether a require specifier refers to a local file rather
// than a package.
func IsLocal(spec string) bool {
	return strings.HasPrefix(spec, "./") ||
		strings.HasPrefix(spec, "../") ||
		strings.HasPrefix(spec, "/")
}

// Resolve resolves a local require specifier relative to fromDir. The bare
// path is tried first, then with .js appended, then as a directory holding
// index.js. It returns an empty string for package specifiers and when no
// file exists.
func Resolve(r Reader, spec, fromDir string) string {
	if !IsLocal(spec) {
		return ""
	}

	p := filepath.FromSlash(spec)
	if !strings.HasPrefix(spec, "/") {
		p = filepath.Join(fromDir, p)
	}

	for _, candidate := range []string{p, p + ".js", filepath.Join(p, "index.js")} {
		info, err := r.Stat(candidate)
		if err == nil && info.Mode().IsRegular() {
			return filepath.Clean(candidate)
		}
	}

	return ""
}

// DocName derives a documentation name from a source path: the file name
// without its .js extension, or the parent directory name for index files.
func DocName(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), ".js")
	if name == "index" {
		name = filepath.Base(filepath.Dir(path))
	}

	return name
}
