package jsdoc_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/nodedoc/jsdoc"
	"go.jacobcolvin.com/nodedoc/jsdoc/model"
	"go.jacobcolvin.com/nodedoc/stringtest"
)

func TestParseAuthor(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want  *model.Author
		input string
	}{
		"empty": {
			input: "  ",
			want:  nil,
		},
		"name only": {
			input: "Jane Doe",
			want:  &model.Author{Name: "Jane Doe"},
		},
		"name and email": {
			input: "Jane Doe <jane@example.com>",
			want:  &model.Author{Name: "Jane Doe", Email: "jane@example.com"},
		},
		"all parts": {
			input: "Jane Doe <jane@example.com> (https://example.com)",
			want:  &model.Author{Name: "Jane Doe", Email: "jane@example.com", Website: "https://example.com"},
		},
		"website before email": {
			input: "Jane Doe (https://example.com) <jane@example.com>",
			want:  &model.Author{Name: "Jane Doe", Email: "jane@example.com", Website: "https://example.com"},
		},
		"website only": {
			input: "Jane (example.com)",
			want:  &model.Author{Name: "Jane", Website: "example.com"},
		},
		"unclosed bracket": {
			input: "Jane <jane@example.com",
			want:  &model.Author{Name: "Jane <jane@example.com"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, jsdoc.ParseAuthor(tc.input))
		})
	}
}

func TestParseManifest(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want *jsdoc.Manifest
		path string
		data string
		err  bool
	}{
		"json with author string": {
			path: "package.json",
			data: stringtest.Input(`
				{
					"name": "pkg",
					"description": "A package.",
					"version": "1.2.3",
					"license": "MIT",
					"main": "lib/index.js",
					"author": "Jane <jane@example.com>",
					"dependencies": {"left-pad": "^1.0.0"}
				}
			`),
			want: &jsdoc.Manifest{
				Name:        "pkg",
				Description: "A package.",
				Version:     "1.2.3",
				License:     "MIT",
				Main:        "lib/index.js",
				Author:      &model.Author{Name: "Jane", Email: "jane@example.com"},
			},
		},
		"json with author object": {
			path: "package.json",
			data: `{"name": "pkg", "author": {"name": "Jane", "email": "j@x.io", "url": "https://x.io"}}`,
			want: &jsdoc.Manifest{
				Name:   "pkg",
				Author: &model.Author{Name: "Jane", Email: "j@x.io", Website: "https://x.io"},
			},
		},
		"yaml": {
			path: "package.yaml",
			data: stringtest.Input(`
				name: pkg
				version: 0.1.0
				author:
				  name: Jane
				  url: https://x.io
			`),
			want: &jsdoc.Manifest{
				Name:    "pkg",
				Version: "0.1.0",
				Author:  &model.Author{Name: "Jane", Website: "https://x.io"},
			},
		},
		"yml author string": {
			path: "pkg.yml",
			data: "name: pkg\nauthor: Jane (https://x.io)\n",
			want: &jsdoc.Manifest{
				Name:   "pkg",
				Author: &model.Author{Name: "Jane", Website: "https://x.io"},
			},
		},
		"invalid json": {
			path: "package.json",
			data: `{"name": `,
			err:  true,
		},
		"invalid yaml": {
			path: "package.yaml",
			data: "name: [unclosed\n",
			err:  true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := jsdoc.ParseManifest(tc.path, []byte(tc.data))
			if tc.err {
				require.ErrorIs(t, err, jsdoc.ErrReadManifest)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReadManifest(t *testing.T) {
	t.Parallel()

	dir := stringtest.Files(t, t.TempDir(), `
		-- package.json --
		{"name": "pkg", "version": "2.0.0"}
		-- dir.json/keep --
	`)

	m, err := jsdoc.ReadManifest(jsdoc.OSReader(), filepath.Join(dir, "package.json"))
	require.NoError(t, err)
	assert.Equal(t, &jsdoc.Manifest{Name: "pkg", Version: "2.0.0"}, m)

	m, err = jsdoc.ReadManifest(jsdoc.OSReader(), filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, &jsdoc.Manifest{}, m)

	_, err = jsdoc.ReadManifest(jsdoc.OSReader(), filepath.Join(dir, "dir.json"))
	require.ErrorIs(t, err, jsdoc.ErrReadManifest)
}
