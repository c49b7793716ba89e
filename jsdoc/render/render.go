package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"path"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"go.jacobcolvin.com/nodedoc/jsdoc/model"
)

// File is one rendered output file.
type File struct {
	// Name is the slash-separated path relative to the output directory.
	Name string
	Data []byte
}

// Option configures a [Renderer].
type Option func(*Renderer)

// WithIndent sets the JSON indentation width. Zero or less selects the
// default of two spaces.
func WithIndent(n int) Option {
	return func(r *Renderer) {
		r.indent = n
	}
}

// Renderer renders documentation objects in one format.
type Renderer struct {
	format Format
	indent int
}

// NewRenderer creates a [Renderer] for format.
func NewRenderer(format Format, opts ...Option) *Renderer {
	r := &Renderer{format: format}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Format returns the renderer's format.
func (r *Renderer) Format() Format {
	return r.format
}

// Render renders doc into one file per document: the root document goes to
// README.md (Markdown) or main.<ext>, and every namespace, at any depth, to
// its own file named after its dotted namespace path. Namespaces are not
// repeated inside their parent's file.
func (r *Renderer) Render(doc *model.Doc) ([]File, error) {
	var files []File

	err := r.split(doc, "", &files)
	if err != nil {
		return nil, err
	}

	return files, nil
}

// RenderProject renders a parsed project. A main document is rendered as by
// [Renderer.Render]. Otherwise each file document is rendered into a
// directory named after its key.
func (r *Renderer) RenderProject(main *model.Doc, docs map[string]*model.Doc) ([]File, error) {
	if main != nil {
		return r.Render(main)
	}

	var files []File

	for _, key := range slices.Sorted(maps.Keys(docs)) {
		rendered, err := r.Render(docs[key])
		if err != nil {
			return nil, err
		}

		for _, f := range rendered {
			f.Name = path.Join(key, f.Name)
			files = append(files, f)
		}
	}

	return files, nil
}

// Encode renders doc, namespaces included, as a single document.
func (r *Renderer) Encode(doc *model.Doc) ([]byte, error) {
	if r.format != FormatMarkdown {
		return r.encode(doc)
	}

	files, err := r.Render(doc)
	if err != nil {
		return nil, err
	}

	parts := make([][]byte, 0, len(files))
	for _, f := range files {
		parts = append(parts, bytes.TrimRight(f.Data, "\n"))
	}

	out := bytes.Join(parts, []byte("\n\n"))

	return append(out, '\n'), nil
}

func (r *Renderer) split(doc *model.Doc, prefix string, files *[]File) error {
	name := r.format.mainFile()
	if prefix != "" {
		name = prefix + r.format.Ext()
	}

	var (
		data []byte
		err  error
	)

	if r.format == FormatMarkdown {
		data = Markdown(doc, namespaceLinks(doc, prefix))
	} else {
		flat := *doc
		flat.Namespaces = nil

		data, err = r.encode(&flat)
		if err != nil {
			return err
		}
	}

	*files = append(*files, File{Name: name, Data: data})

	for _, key := range doc.NamespaceNames() {
		err := r.split(doc.Namespaces[key], joinKey(prefix, key), files)
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *Renderer) encode(doc *model.Doc) ([]byte, error) {
	switch r.format {
	case FormatJSON:
		indent := r.indent
		if indent <= 0 {
			indent = 2
		}

		out, err := json.MarshalIndent(doc, "", strings.Repeat(" ", indent))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}

		return append(out, '\n'), nil

	case FormatYAML:
		js, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}

		out, err := yaml.JSONToYAML(js)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}

		return out, nil

	case FormatMarkdown:
		return Markdown(doc, nil), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, r.format)
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}

	return prefix + "." + key
}

// namespaceLinks maps each namespace of doc to the Markdown file it is
// rendered into.
func namespaceLinks(doc *model.Doc, prefix string) map[string]string {
	if len(doc.Namespaces) == 0 {
		return nil
	}

	links := make(map[string]string, len(doc.Namespaces))
	for key := range doc.Namespaces {
		links[key] = joinKey(prefix, key) + FormatMarkdown.Ext()
	}

	return links
}
