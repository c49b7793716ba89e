package render

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.jacobcolvin.com/nodedoc/jsdoc/model"
)

// Markdown renders doc as GitHub flavored Markdown. Namespaces are listed by
// name, linked to the files in links when present.
func Markdown(doc *model.Doc, links map[string]string) []byte {
	var md markdown

	md.heading(1, capitalize(doc.Name))
	md.paragraph(doc.Desc)
	md.metadata(doc)

	if doc.Exports != nil {
		md.heading(2, "Exports")
		md.unit(doc.Exports, 3)
	}

	md.bucket("Functions", doc.Functions)
	md.bucket("Constants", doc.Constants)
	md.bucket("Callbacks", doc.Callbacks)

	if len(doc.Namespaces) > 0 {
		md.heading(2, "Namespaces")

		for _, key := range doc.NamespaceNames() {
			if link, ok := links[key]; ok {
				md.linef("- [%s](%s)", key, link)
			} else {
				md.linef("- %s", key)
			}
		}

		md.line("")
	}

	if global := doc.Todos[model.GlobalTodos]; len(global) > 0 {
		md.heading(2, "Todo")
		md.todos(global)
	}

	return []byte(strings.TrimRight(md.String(), "\n") + "\n")
}

type markdown struct {
	strings.Builder
}

func (md *markdown) line(s string) {
	md.WriteString(s)
	md.WriteByte('\n')
}

func (md *markdown) linef(format string, args ...any) {
	fmt.Fprintf(md, format, args...)
	md.WriteByte('\n')
}

func (md *markdown) heading(level int, text string) {
	md.linef("%s %s", strings.Repeat("#", level), text)
	md.line("")
}

func (md *markdown) paragraph(text string) {
	if text == "" {
		return
	}

	md.line(text)
	md.line("")
}

func (md *markdown) metadata(doc *model.Doc) {
	var items []string

	if doc.Author != nil {
		author := doc.Author.Name
		if doc.Author.Email != "" {
			author += " <" + doc.Author.Email + ">"
		}

		if doc.Author.Website != "" {
			author += " (" + doc.Author.Website + ")"
		}

		items = append(items, "Author: "+strings.TrimSpace(author))
	}

	if doc.Version != "" {
		items = append(items, "Version: "+doc.Version)
	}

	if doc.License != "" {
		items = append(items, "License: "+doc.License)
	}

	if len(items) == 0 {
		return
	}

	for _, item := range items {
		md.linef("- %s", item)
	}

	md.line("")
}

func (md *markdown) bucket(title string, units map[string]*model.Unit) {
	if len(units) == 0 {
		return
	}

	md.heading(2, title)

	for _, name := range slices.Sorted(maps.Keys(units)) {
		md.unit(units[name], 3)
	}
}

func (md *markdown) unit(u *model.Unit, level int) {
	typ := u.Type
	if u.Constant {
		typ = strings.TrimSuffix("Constant, "+typ, ", ")
	}

	title := u.Name
	if typ != "" {
		title += " (" + typ + ")"
	}

	if strings.TrimSpace(title) != "" {
		md.heading(level, strings.TrimSpace(title))
	}

	if u.Access != "" {
		md.linef("> Access: %s", u.Access)
		md.line("")
	}

	if u.Required {
		md.line("> Required from a namespace.")
		md.line("")
	}

	if u.Deprecated != nil {
		md.line(strings.TrimSpace(fmt.Sprintf("> Warning: %s is deprecated. %s", u.Name, u.Deprecated.Message)))
		md.line("")
	}

	md.paragraph(u.Desc)

	if u.Type == model.TypeFunction || u.Type == model.TypeConstructor || u.Example != "" {
		md.line("```js")
		md.line(usage(u))
		md.line("```")
		md.line("")
	}

	sub := strings.Repeat("#", level+1)

	if len(u.Params) > 0 {
		md.line(sub + " Params")
		md.line("")
		md.line("| Name | Type | Optional | Description |")
		md.line("| ---- | ---- | -------- | ----------- |")

		for _, p := range u.Params {
			md.row(p, p.Name, true)
		}

		md.line("")
	}

	if u.This != nil {
		md.line(sub + " This")
		md.line("")
		md.paragraph(u.This.Desc)

		if len(u.This.Properties) > 0 {
			md.line("| Name | Type | Description |")
			md.line("| ---- | ---- | ----------- |")

			for _, name := range propertyNames(u.This) {
				md.row(u.This.Properties[name], name, false)
			}

			md.line("")
		}
	}

	if u.Return != nil {
		md.line(sub + " Returns")
		md.line("")
		md.line("| Name | Type | Description |")
		md.line("| ---- | ---- | ----------- |")

		name := u.Return.Name
		if name == "" {
			name = "return"
		}

		md.row(u.Return, name, false)
		md.line("")
	}

	if len(u.Throws) > 0 {
		md.line(sub + " Throws errors")
		md.line("")

		for _, t := range u.Throws {
			if t.Cause != "" {
				md.linef("- %s (%s)", t.Msg, t.Cause)
			} else {
				md.linef("- %s", t.Msg)
			}
		}

		md.line("")
	}

	if len(u.Todos) > 0 {
		md.line(sub + " Todo")
		md.line("")
		md.todos(u.Todos)
	}
}

// row writes a table row for f and, recursively, one row per property with
// a dotted name.
func (md *markdown) row(f *model.Field, name string, optional bool) {
	cells := []string{name, f.Type}
	if optional {
		opt := "False"
		if f.Optional {
			opt = "True"
		}

		cells = append(cells, opt)
	}

	cells = append(cells, cell(f.Desc))
	md.linef("| %s |", strings.Join(cells, " | "))

	for _, prop := range propertyNames(f) {
		md.row(f.Properties[prop], name+"."+prop, optional)
	}
}

func (md *markdown) todos(items []string) {
	for _, item := range items {
		md.linef("- [ ] %s", item)
	}

	md.line("")
}

// usage returns the example for a unit, or a generated call when it has
// none.
func usage(u *model.Unit) string {
	if u.Example != "" {
		return u.Example
	}

	var sb strings.Builder

	if u.Return != nil {
		v := u.Return.Name
		if v == "" {
			v = strings.ToLower(u.Name)
		}

		sb.WriteString("var " + v + " = ")

		if u.Type == model.TypeConstructor {
			sb.WriteString("new ")
		}
	}

	args := make([]string, 0, len(u.Params))
	for _, p := range u.Params {
		if p.Optional {
			args = append(args, "["+p.Name+"]")
		} else {
			args = append(args, p.Name)
		}
	}

	sb.WriteString(u.Name + "(" + strings.Join(args, ", ") + ");")

	return sb.String()
}

// propertyNames returns property names in declaration order, falling back
// to sorted order for decoded fields that lost it.
func propertyNames(f *model.Field) []string {
	if names := f.PropertyNames(); len(names) == len(f.Properties) {
		return names
	}

	return slices.Sorted(maps.Keys(f.Properties))
}

func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)

	return strings.Join(strings.Fields(s), " ")
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}
