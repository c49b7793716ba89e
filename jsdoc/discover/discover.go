// Package discover finds the JavaScript sources of a project.
//
// The walk skips dependency and VCS directories, hidden files and
// directories, paths matched by the project's .gitignore, and paths matched
// by any of the caller's exclude globs. Globs use doublestar syntax, so
// "test/**" excludes a whole tree.
package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// ErrInvalidPattern is returned for malformed exclude globs.
var ErrInvalidPattern = errors.New("invalid exclude pattern")

var skipDirs = map[string]struct{}{
	"node_modules":     {},
	"bower_components": {},
	"coverage":         {},
}

// Extension is the source file extension that is discovered.
const Extension = ".js"

// Files returns the slash-separated paths, relative to root, of every
// source file under root, sorted.
func Files(root string, exclude []string) ([]string, error) {
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
		}
	}

	gi := loadGitignore(root)

	var results []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}

			return nil
		}

		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil //nolint:nilerr // Unrelatable paths are skipped.
		}

		rel = filepath.ToSlash(rel)
		name := d.Name()

		if d.IsDir() {
			if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}

			if ignored(gi, rel+"/") || excluded(exclude, rel) {
				return filepath.SkipDir
			}

			return nil
		}

		if strings.HasPrefix(name, ".") || filepath.Ext(name) != Extension {
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		if ignored(gi, rel) || excluded(exclude, rel) {
			return nil
		}

		results = append(results, rel)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	slices.Sort(results)

	return results, nil
}

func excluded(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		// Patterns are validated up front.
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}

	return false
}

func ignored(gi *ignore.GitIgnore, rel string) bool {
	return gi != nil && gi.MatchesPath(rel)
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}

	return gi
}
