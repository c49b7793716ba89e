package model

import (
	"maps"
	"slices"
)

// GlobalTodos is the todo key used for todos that belong to no named unit.
const GlobalTodos = "global"

// Author is the parsed package author.
type Author struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`
}

// Doc is the documentation object for one file or module. Package metadata
// (Author, Desc, License, Version) is only ever set on a root document, never
// on a namespace.
type Doc struct {
	Author     *Author             `json:"author,omitempty"`
	Exports    *Unit               `json:"exports,omitempty"`
	Functions  map[string]*Unit    `json:"functions,omitempty"`
	Constants  map[string]*Unit    `json:"constants,omitempty"`
	Callbacks  map[string]*Unit    `json:"callbacks,omitempty"`
	Todos      map[string][]string `json:"todos,omitempty"`
	Namespaces map[string]*Doc     `json:"namespaces,omitempty"`
	Name       string              `json:"name"`
	Desc       string              `json:"desc,omitempty"`
	License    string              `json:"license,omitempty"`
	Version    string              `json:"version,omitempty"`
}

// Lookup returns the unit with the given name from any bucket.
func (d *Doc) Lookup(name string) *Unit {
	for _, bucket := range []map[string]*Unit{d.Constants, d.Callbacks, d.Functions} {
		if u, ok := bucket[name]; ok {
			return u
		}
	}

	return nil
}

// NamespaceNames returns namespace keys in sorted order.
func (d *Doc) NamespaceNames() []string {
	return slices.Sorted(maps.Keys(d.Namespaces))
}

// AddTodos merges todos into the aggregate map. Global todos accumulate,
// named todos replace any previous entry for the same name.
func (d *Doc) AddTodos(name string, todos []string) {
	if len(todos) == 0 {
		return
	}

	if d.Todos == nil {
		d.Todos = make(map[string][]string)
	}

	if name == "" || name == GlobalTodos {
		d.Todos[GlobalTodos] = append(d.Todos[GlobalTodos], todos...)

		return
	}

	d.Todos[name] = append([]string(nil), todos...)
}

// Add buckets u under its name into constants, callbacks or functions,
// checked in that order. Units of any other type are not bucketed.
// It reports whether u was stored.
func (d *Doc) Add(u *Unit) bool {
	if u.Name == "" {
		return false
	}

	switch {
	case u.Constant:
		if d.Constants == nil {
			d.Constants = make(map[string]*Unit)
		}

		d.Constants[u.Name] = u
	case u.Type == TypeCallback:
		if d.Callbacks == nil {
			d.Callbacks = make(map[string]*Unit)
		}

		d.Callbacks[u.Name] = u
	case u.Type == TypeFunction || u.Type == TypeConstructor:
		if d.Functions == nil {
			d.Functions = make(map[string]*Unit)
		}

		d.Functions[u.Name] = u
	default:
		return false
	}

	return true
}
