package jsdoc

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"go.jacobcolvin.com/nodedoc/jsdoc/model"
)

// Option configures a [Parser].
type Option func(*Parser)

// WithShowPrivate includes private units in the output.
func WithShowPrivate(show bool) Option {
	return func(p *Parser) {
		p.showPrivate = show
	}
}

// WithLogger sets the logger. It defaults to [slog.Default].
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithPackage sets the package metadata copied onto root documents.
func WithPackage(m *Manifest) Option {
	return func(p *Parser) {
		p.manifest = m
	}
}

// WithReader sets the filesystem used to read sources. It defaults to
// [OSReader].
func WithReader(r Reader) Option {
	return func(p *Parser) {
		p.reader = r
	}
}

// Parser parses source files into documentation objects, following local
// requires into namespaces.
//
// Create instances with [NewParser]. A Parser is safe for concurrent use and
// memoizes parsed files by path, so it should be discarded once the sources
// it has read change.
type Parser struct {
	reader      Reader
	logger      *slog.Logger
	manifest    *Manifest
	cache       map[string]*fileResult
	scans       map[string]*scanEntry
	mu          sync.Mutex
	showPrivate bool
}

// NewParser creates a new [Parser].
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		reader: OSReader(),
		logger: slog.Default(),
		cache:  make(map[string]*fileResult),
		scans:  make(map[string]*scanEntry),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// fileResult is the name independent outcome of reading one file. It is
// shared between every document built from the same path.
type fileResult struct {
	namespaces map[string]*model.Doc
	exportName string
	units      []*model.Unit
	// cut is set when a require cycle was broken somewhere below this file,
	// which makes the result depend on the path that reached it.
	cut bool
}

// scanned is what reading one file yields, independent of how the file was
// reached. A nil *scanned is an empty file.
type scanned struct {
	exportName string
	// holder is the resolved target of a holder file.
	holder string
	units  []*model.Unit
	deps   []dependency
}

// dependency is a resolved local require.
type dependency struct {
	path string
	key  string
	name string
}

// scanEntry memoizes the scan of one path. once guarantees a single read
// even when the path is reached concurrently.
type scanEntry struct {
	res  *scanned
	err  error
	once sync.Once
}

// ancestry is the chain of files currently being parsed above a file.
type ancestry struct {
	parent *ancestry
	path   string
}

func (a *ancestry) contains(path string) bool {
	for ; a != nil; a = a.parent {
		if a.path == path {
			return true
		}
	}

	return false
}

// target describes the document being built for a path.
type target struct {
	name      string
	namespace bool
}

// ParseFile parses the file at path into a root documentation object named
// after the file. It returns nil and no error when the file holds nothing
// to document.
func (p *Parser) ParseFile(ctx context.Context, path string) (*model.Doc, error) {
	return p.ParseFileNamed(ctx, path, DocName(path))
}

// ParseFileNamed is like [Parser.ParseFile] but sets the document name.
func (p *Parser) ParseFileNamed(ctx context.Context, path, name string) (*model.Doc, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidOption)
	}

	doc, _, err := p.parse(ctx, filepath.Clean(path), target{name: name}, nil)

	return doc, err
}

func (p *Parser) parse(ctx context.Context, path string, t target, above *ancestry) (*model.Doc, bool, error) {
	err := ctx.Err()
	if err != nil {
		return nil, false, fmt.Errorf("parse %s: %w", path, err)
	}

	if above.contains(path) {
		p.logger.Debug("skipping cyclic require", slog.String("path", path))

		return nil, true, nil
	}

	res, err := p.load(ctx, path, above)
	if err != nil {
		return nil, false, err
	}

	if res == nil {
		return nil, false, nil
	}

	doc := Construct(ConstructOptions{
		Name:        t.name,
		Namespace:   t.namespace,
		ShowPrivate: p.showPrivate,
		Package:     p.manifest,
	}, res.units, res.namespaces, res.exportName)

	return doc, res.cut, nil
}

// load builds the name independent result for path: it follows holder
// files and parses required namespaces below the given ancestry. Results
// without a cycle cut are memoized; the underlying file scan is memoized
// regardless.
func (p *Parser) load(ctx context.Context, path string, above *ancestry) (*fileResult, error) {
	p.mu.Lock()
	res, ok := p.cache[path]
	p.mu.Unlock()

	if ok {
		return res, nil
	}

	sc, err := p.scan(path)
	if err != nil {
		return nil, err
	}

	if sc == nil {
		return nil, nil //nolint:nilnil // Empty files have no result.
	}

	here := &ancestry{parent: above, path: path}

	if sc.holder != "" {
		if here.contains(sc.holder) {
			return &fileResult{cut: true}, nil
		}

		return p.load(ctx, sc.holder, here)
	}

	res = &fileResult{
		units:      sc.units,
		exportName: sc.exportName,
	}

	res.namespaces, res.cut, err = p.parseNamespaces(ctx, sc.deps, here)
	if err != nil {
		return nil, err
	}

	if !res.cut {
		p.mu.Lock()
		p.cache[path] = res
		p.mu.Unlock()
	}

	return res, nil
}

// scan reads path once and extracts its units, export and local requires.
func (p *Parser) scan(path string) (*scanned, error) {
	p.mu.Lock()

	e, ok := p.scans[path]
	if !ok {
		e = &scanEntry{}
		p.scans[path] = e
	}

	p.mu.Unlock()

	e.once.Do(func() {
		e.res, e.err = p.scanFile(path)
	})

	return e.res, e.err
}

func (p *Parser) scanFile(path string) (*scanned, error) {
	data, err := p.reader.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q: %w", ErrFileNotFound, path, err)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	if len(data) == 0 {
		return nil, nil //nolint:nilnil // An empty file has nothing to scan.
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	code := stripComments(lines)
	dir := filepath.Dir(path)

	if spec := holderTarget(code); spec != "" {
		if resolved := Resolve(p.reader, spec, dir); resolved != "" {
			p.logger.Debug("following holder file",
				slog.String("path", path),
				slog.String("target", resolved),
			)

			return &scanned{holder: resolved}, nil
		}
	}

	units, err := scanUnits(path, lines)
	if err != nil {
		return nil, err
	}

	sc := &scanned{
		units:      units,
		exportName: exportName(code),
		deps:       p.resolveRequires(scanRequires(code), dir),
	}

	p.logger.Debug("parsed file",
		slog.String("path", path),
		slog.Int("units", len(units)),
		slog.Int("requires", len(sc.deps)),
	)

	return sc, nil
}

// resolveRequires resolves local requires relative to dir, dropping
// unresolvable and repeated ones.
func (p *Parser) resolveRequires(refs []requireRef, dir string) []dependency {
	var deps []dependency

	seen := map[string]bool{}

	for _, ref := range refs {
		resolved := Resolve(p.reader, ref.Spec, dir)
		if resolved == "" {
			p.logger.Warn("cannot resolve local require",
				slog.String("require", ref.Spec),
				slog.String("dir", dir),
			)

			continue
		}

		if seen[resolved] {
			continue
		}

		seen[resolved] = true

		key := DocName(resolved)

		name := ref.Var
		if name == "" {
			name = key
		}

		deps = append(deps, dependency{path: resolved, key: key, name: name})
	}

	return deps
}

// parseNamespaces parses every required file concurrently and waits for all
// of them. The first error cancels the others.
func (p *Parser) parseNamespaces(
	ctx context.Context, deps []dependency, here *ancestry,
) (map[string]*model.Doc, bool, error) {
	type job struct {
		doc *model.Doc
		dependency

		cut bool
	}

	jobs := make([]*job, 0, len(deps))
	for _, d := range deps {
		jobs = append(jobs, &job{dependency: d})
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, j := range jobs {
		g.Go(func() error {
			doc, cut, err := p.parse(gctx, j.path, target{name: j.name, namespace: true}, here)
			if err != nil {
				return err
			}

			j.doc, j.cut = doc, cut

			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return nil, false, err //nolint:wrapcheck // Errors are already annotated by parse.
	}

	var (
		namespaces map[string]*model.Doc
		cut        bool
	)

	for _, j := range jobs {
		cut = cut || j.cut

		if j.doc == nil {
			continue
		}

		if namespaces == nil {
			namespaces = make(map[string]*model.Doc)
		}

		if _, dup := namespaces[j.key]; dup {
			p.logger.Warn("duplicate namespace name",
				slog.String("namespace", j.key),
				slog.String("path", j.path),
			)
		}

		namespaces[j.key] = j.doc
	}

	return namespaces, cut, nil
}
