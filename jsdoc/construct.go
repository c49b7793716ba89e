package jsdoc

import (
	"maps"
	"slices"

	"go.jacobcolvin.com/nodedoc/jsdoc/model"
)

// ConstructOptions configures [Construct].
type ConstructOptions struct {
	// Package supplies author, description, license and version for root
	// documents. It is ignored for namespaces.
	Package     *Manifest
	Name        string
	Namespace   bool
	ShowPrivate bool
}

// Construct folds the units of one file and its parsed namespaces into a
// documentation object.
//
// A unit named exportName becomes the document's export. An unnamed unit
// matches an empty exportName only if the code marked it exported. Other
// visible units are bucketed into constants, callbacks or functions and
// their todos are collected. Each namespace is attached under its key, its
// export is lifted into this document flagged as required, and its todos
// are merged.
//
// Units and namespaces are not modified; lifted and exported units are
// copies.
func Construct(opts ConstructOptions, units []*model.Unit, namespaces map[string]*model.Doc, exportName string) *model.Doc {
	doc := &model.Doc{Name: opts.Name}

	if !opts.Namespace && opts.Package != nil {
		if opts.Package.Author != nil {
			a := *opts.Package.Author
			doc.Author = &a
		}

		doc.Desc = opts.Package.Description
		doc.License = opts.Package.License
		doc.Version = opts.Package.Version
	}

	for _, u := range units {
		if u.Name == exportName && (exportName != "" || u.Exported) {
			e := u.Clone()
			e.Exported = true
			doc.Exports = e

			continue
		}

		if !u.Visible(opts.ShowPrivate) {
			continue
		}

		doc.AddTodos(u.Name, u.Todos)
		doc.Add(u)
	}

	for _, key := range slices.Sorted(maps.Keys(namespaces)) {
		ns := namespaces[key]
		if ns == nil {
			continue
		}

		if doc.Namespaces == nil {
			doc.Namespaces = make(map[string]*model.Doc)
		}

		doc.Namespaces[key] = ns

		if ns.Exports != nil {
			e := ns.Exports.Clone()
			if e.Name == "" {
				e.Name = ns.Name
			}

			e.Required = true
			doc.Add(e)
		}

		for _, name := range slices.Sorted(maps.Keys(ns.Todos)) {
			doc.AddTodos(name, ns.Todos[name])
		}
	}

	return doc
}
