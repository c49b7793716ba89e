package jsdoc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"go.jacobcolvin.com/nodedoc/jsdoc/discover"
	"go.jacobcolvin.com/nodedoc/jsdoc/model"
)

// Project is the documentation of a whole source tree.
type Project struct {
	// Main is the document of the package entry point, when the manifest
	// names one that exists.
	Main *model.Doc
	// Files holds one document per discovered source file, keyed by its
	// slash-separated path relative to the project directory without the
	// extension. Files without documentation are omitted.
	Files map[string]*model.Doc
}

// ParseProject documents the project in dir.
//
// If the package manifest names a main entry that resolves to a file, that
// file becomes the project's main document, named after the package.
// Otherwise every source file under dir is parsed as its own root document,
// skipping the paths matched by exclude and by the project's .gitignore.
func (p *Parser) ParseProject(ctx context.Context, dir string, exclude []string) (*Project, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty directory", ErrInvalidOption)
	}

	dir = filepath.Clean(dir)

	if p.manifest != nil && p.manifest.Main != "" {
		entry := Resolve(p.reader, "./"+filepath.ToSlash(p.manifest.Main), dir)
		if entry != "" {
			name := p.manifest.Name
			if name == "" {
				name = DocName(entry)
			}

			doc, err := p.ParseFileNamed(ctx, entry, name)
			if err != nil {
				return nil, err
			}

			return &Project{Main: doc}, nil
		}

		p.logger.Warn("cannot resolve package main",
			slog.String("main", p.manifest.Main),
			slog.String("dir", dir),
		)
	}

	files, err := discover.Files(dir, exclude)
	if errors.Is(err, discover.ErrInvalidPattern) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	proj := &Project{Files: make(map[string]*model.Doc, len(files))}

	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, rel := range files {
		g.Go(func() error {
			doc, err := p.ParseFile(gctx, filepath.Join(dir, filepath.FromSlash(rel)))
			if err != nil {
				return err
			}

			if !documented(doc) {
				return nil
			}

			mu.Lock()
			proj.Files[strings.TrimSuffix(rel, path.Ext(rel))] = doc
			mu.Unlock()

			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		return nil, err //nolint:wrapcheck // Errors are already annotated by ParseFile.
	}

	p.logger.Debug("parsed project",
		slog.String("dir", dir),
		slog.Int("files", len(files)),
		slog.Int("documented", len(proj.Files)),
	)

	return proj, nil
}

// documented reports whether doc holds anything besides package metadata.
func documented(doc *model.Doc) bool {
	return doc != nil && (doc.Exports != nil ||
		len(doc.Functions) > 0 ||
		len(doc.Constants) > 0 ||
		len(doc.Callbacks) > 0 ||
		len(doc.Todos) > 0 ||
		len(doc.Namespaces) > 0)
}
