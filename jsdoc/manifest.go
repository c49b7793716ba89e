package jsdoc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"go.jacobcolvin.com/nodedoc/jsdoc/model"
)

// Manifest is the package metadata used for root documents.
type Manifest struct {
	Author      *model.Author
	Name        string
	Description string
	License     string
	Version     string
	// Main is the entry file, relative to the manifest.
	Main string
}

type rawManifest struct {
	Author      any    `json:"author"      yaml:"author"`
	Name        string `json:"name"        yaml:"name"`
	Description string `json:"description" yaml:"description"`
	License     string `json:"license"     yaml:"license"`
	Version     string `json:"version"     yaml:"version"`
	Main        string `json:"main"        yaml:"main"`
}

// ReadManifest reads a package manifest (package.json, or a YAML rendition
// such as package.yaml). A missing manifest yields an empty [Manifest].
func ReadManifest(r Reader, path string) (*Manifest, error) {
	data, err := r.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Manifest{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadManifest, err)
	}

	return ParseManifest(path, data)
}

// ParseManifest decodes manifest data. The format is chosen by the file
// extension of path: .yaml and .yml are decoded as YAML, anything else as
// JSON.
func ParseManifest(path string, data []byte) (*Manifest, error) {
	var raw rawManifest

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err := yaml.Unmarshal(data, &raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrReadManifest, path, err)
		}

	default:
		err := json.Unmarshal(data, &raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrReadManifest, path, err)
		}
	}

	m := &Manifest{
		Name:        raw.Name,
		Description: raw.Description,
		License:     raw.License,
		Version:     raw.Version,
		Main:        raw.Main,
	}

	switch a := raw.Author.(type) {
	case string:
		m.Author = ParseAuthor(a)
	case map[string]any:
		m.Author = &model.Author{
			Name:    stringValue(a["name"]),
			Email:   stringValue(a["email"]),
			Website: stringValue(a["url"]),
		}
	}

	return m, nil
}

func stringValue(v any) string {
	s, _ := v.(string)

	return s
}

// ParseAuthor parses an npm style author string:
//
//	Name <email> (website)
//
// The email and website parts are optional and may appear in either order.
// It returns nil for an empty string.
func ParseAuthor(s string) *model.Author {
	rest := strings.TrimSpace(s)
	if rest == "" {
		return nil
	}

	a := &model.Author{}
	a.Email, rest = cutDelimited(rest, '<', '>')
	a.Website, rest = cutDelimited(rest, '(', ')')
	a.Name = strings.Join(strings.Fields(rest), " ")

	return a
}

// cutDelimited extracts the first open...close section of s and returns it
// along with s without that section.
func cutDelimited(s string, open, closing byte) (string, string) {
	l := strings.IndexByte(s, open)
	if l < 0 {
		return "", s
	}

	r := strings.IndexByte(s[l+1:], closing)
	if r < 0 {
		return "", s
	}

	r += l + 1

	return strings.TrimSpace(s[l+1 : r]), s[:l] + " " + s[r+1:]
}
