package discover_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/nodedoc/jsdoc/discover"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestFiles(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		files   map[string]string
		exclude []string
		want    []string
	}{
		"js files only": {
			files: map[string]string{
				"index.js":     "",
				"lib/a.js":     "",
				"lib/b.txt":    "",
				"package.json": "{}",
			},
			want: []string{"index.js", "lib/a.js"},
		},
		"skips dependencies and hidden paths": {
			files: map[string]string{
				"index.js":                "",
				"node_modules/dep/dep.js": "",
				".cache/x.js":             "",
				"lib/.hidden.js":          "",
			},
			want: []string{"index.js"},
		},
		"honours gitignore": {
			files: map[string]string{
				".gitignore":     "build/\n*.min.js\n",
				"index.js":       "",
				"build/out.js":   "",
				"lib/app.min.js": "",
				"lib/app.js":     "",
			},
			want: []string{"index.js", "lib/app.js"},
		},
		"exclude globs": {
			files: map[string]string{
				"index.js":          "",
				"test/a.test.js":    "",
				"test/deep/b.js":    "",
				"lib/util.spec.js":  "",
				"lib/util.js":       "",
				"examples/demo.js":  "",
				"examples/other.js": "",
			},
			exclude: []string{"test/**", "**/*.spec.js", "examples/demo.js"},
			want:    []string{"examples/other.js", "index.js", "lib/util.js"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			writeFiles(t, root, tc.files)

			got, err := discover.Files(root, tc.exclude)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFilesInvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := discover.Files(t.TempDir(), []string{"[unclosed"})
	require.ErrorIs(t, err, discover.ErrInvalidPattern)
}

func TestFilesMissingRoot(t *testing.T) {
	t.Parallel()

	_, err := discover.Files(filepath.Join(t.TempDir(), "missing"), nil)
	require.Error(t, err)
}
