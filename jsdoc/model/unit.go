// Package model defines the documentation records produced by the jsdoc
// parsers: the per-declaration [Unit], the nested [Field] records used for
// params, returns and this, and the per-file [Doc] tree.
package model

import (
	"encoding/json"
	"fmt"
)

// Declaration types inferred from code or set by tags. Variable types use the
// primitive names produced by the code-context detector (String, Number, ...).
const (
	TypeFunction    = "Function"
	TypeConstructor = "Constructor"
	TypeCallback    = "Callback"
	TypeObject      = "Object"
)

// Access is the visibility of a documented entity.
type Access string

const (
	AccessPublic  Access = "public"
	AccessPrivate Access = "private"
)

// Field is a param, return or this record. Fields nest through Properties,
// one level per dotted segment of a sub-reference name.
type Field struct {
	Properties    map[string]*Field `json:"properties,omitempty"`
	Name          string            `json:"name,omitempty"`
	Type          string            `json:"type,omitempty"`
	Desc          string            `json:"desc,omitempty"`
	PropertyOrder []string          `json:"-"`
	Optional      bool              `json:"optional,omitempty"`
}

// Property returns the named property, or nil.
func (f *Field) Property(name string) *Field {
	if f == nil || f.Properties == nil {
		return nil
	}

	return f.Properties[name]
}

// SetProperty attaches p under name, keeping first-seen order.
func (f *Field) SetProperty(name string, p *Field) {
	if f.Properties == nil {
		f.Properties = make(map[string]*Field)
	}

	if _, ok := f.Properties[name]; !ok {
		f.PropertyOrder = append(f.PropertyOrder, name)
	}

	f.Properties[name] = p
}

// PropertyNames returns property names in declaration order.
func (f *Field) PropertyNames() []string {
	if f == nil {
		return nil
	}

	return f.PropertyOrder
}

// Clone returns a deep copy of f.
func (f *Field) Clone() *Field {
	if f == nil {
		return nil
	}

	c := *f
	c.Properties = nil
	c.PropertyOrder = nil

	for _, name := range f.PropertyOrder {
		c.SetProperty(name, f.Properties[name].Clone())
	}

	return &c
}

// Throw is one documented error condition.
type Throw struct {
	Msg   string `json:"msg"`
	Cause string `json:"cause,omitempty"`
}

// Deprecation marks a unit as deprecated, optionally with a message.
// It encodes as JSON true when Message is empty and as the message otherwise.
type Deprecation struct {
	Message string
}

// MarshalJSON implements [json.Marshaler].
func (d Deprecation) MarshalJSON() ([]byte, error) {
	if d.Message == "" {
		return []byte("true"), nil
	}

	b, err := json.Marshal(d.Message)
	if err != nil {
		return nil, fmt.Errorf("marshal deprecation: %w", err)
	}

	return b, nil
}

// UnmarshalJSON implements [json.Unmarshaler].
func (d *Deprecation) UnmarshalJSON(b []byte) error {
	var v any

	err := json.Unmarshal(b, &v)
	if err != nil {
		return fmt.Errorf("unmarshal deprecation: %w", err)
	}

	switch val := v.(type) {
	case bool:
		d.Message = ""
	case string:
		d.Message = val
	default:
		return fmt.Errorf("unmarshal deprecation: unexpected %T", v)
	}

	return nil
}

// Unit documents one code entity: a function, constructor, variable,
// constant, callback, or a file-level comment with no declaration.
//
// Units are built by the comment parser and treated as immutable afterwards;
// callers that need to change one work on a [Unit.Clone].
type Unit struct {
	Return     *Field       `json:"return,omitempty"`
	This       *Field       `json:"this,omitempty"`
	Deprecated *Deprecation `json:"deprecated,omitempty"`
	Name       string       `json:"name,omitempty"`
	Type       string       `json:"type,omitempty"`
	Access     Access       `json:"access,omitempty"`
	Desc       string       `json:"desc,omitempty"`
	Example    string       `json:"example,omitempty"`
	Params     []*Field     `json:"params,omitempty"`
	Throws     []Throw      `json:"throws,omitempty"`
	Todos      []string     `json:"todos,omitempty"`
	Constant   bool         `json:"constant"`
	Exported   bool         `json:"exported"`
	Required   bool         `json:"required,omitempty"`
}

// Visible reports whether the unit should appear in output. Units without an
// access level and public units are always visible; private units only when
// showPrivate is set.
func (u *Unit) Visible(showPrivate bool) bool {
	switch u.Access {
	case "", AccessPublic:
		return true
	case AccessPrivate:
		return showPrivate
	}

	return false
}

// Param returns the param with the given name, or nil.
func (u *Unit) Param(name string) *Field {
	for _, p := range u.Params {
		if p.Name == name {
			return p
		}
	}

	return nil
}

// Clone returns a deep copy of u.
func (u *Unit) Clone() *Unit {
	if u == nil {
		return nil
	}

	c := *u
	c.Return = u.Return.Clone()
	c.This = u.This.Clone()

	if u.Deprecated != nil {
		d := *u.Deprecated
		c.Deprecated = &d
	}

	if u.Params != nil {
		c.Params = make([]*Field, len(u.Params))
		for i, p := range u.Params {
			c.Params[i] = p.Clone()
		}
	}

	if u.Throws != nil {
		c.Throws = append([]Throw(nil), u.Throws...)
	}

	if u.Todos != nil {
		c.Todos = append([]string(nil), u.Todos...)
	}

	return &c
}
