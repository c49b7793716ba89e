// Package comment turns one documentation comment block into a
// [model.Unit].
//
// Lines are read bottom to top. Free text is collected into a buffer until a
// tag line is reached, and the tag is parsed together with the buffered text
// below it, so a tag's description may continue over the following lines:
//
//	/**
//	 * Greets a person.
//	 *
//	 * @param info {Object} The person
//	 *   to greet.
//	 * @param info.name {String}
//	 */
//
// Whatever text is left above the first tag becomes the description. Blank
// lines inside free text are kept as a newline.
//
// Sub-references (@param info.name, @return .name, @this .name) are resolved
// after all tags are read, so their parents may be declared in any order.
package comment

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"go.jacobcolvin.com/nodedoc/jsdoc/codeinfo"
	"go.jacobcolvin.com/nodedoc/jsdoc/model"
	"go.jacobcolvin.com/nodedoc/jsdoc/tag"
)

// pending is an unresolved sub-reference.
type pending struct {
	field *tag.Field
	kind  tag.Kind
	line  int
}

type builder struct {
	unit    *model.Unit
	subs    []pending
	touched bool
}

// Parse parses the lines of a documentation comment, with or without the
// opening and closing markers, seeded with the code context that follows
// the comment.
//
// It returns nil and no error when neither the comment nor the seed carry
// any documentation.
func Parse(lines []string, seed codeinfo.Info) (*model.Unit, error) {
	b := &builder{unit: &model.Unit{
		Name:     seed.Name,
		Type:     seed.Type,
		Access:   seed.Access,
		Constant: seed.Constant,
		Exported: seed.Exported,
	}}

	lines = stripMarkers(lines)

	var prev string

	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, "*") {
			line = strings.TrimSpace(line[1:])
		}

		if strings.HasPrefix(line, "@") {
			t, err := tag.Parse(line + " " + prev)
			if err != nil {
				return nil, &LineError{Line: i + 1, Err: err}
			}

			err = b.apply(t, i+1)
			if err != nil {
				return nil, &LineError{Line: i + 1, Err: err}
			}

			prev = ""

			continue
		}

		if line == "" {
			line = "\n"
		}

		prev = line + " " + prev
	}

	if prev = strings.TrimSpace(prev); prev != "" {
		b.touched = true

		if b.unit.Desc != "" {
			b.unit.Desc += " " + prev
		} else {
			b.unit.Desc = prev
		}
	}

	err := b.resolve()
	if err != nil {
		return nil, err
	}

	if !b.touched && seed.Name == "" && seed.Type == "" {
		return nil, nil //nolint:nilnil // No documentation is not an error.
	}

	return b.unit, nil
}

// stripMarkers removes the first /** and the first following */.
func stripMarkers(lines []string) []string {
	out := slices.Clone(lines)

	start := 0

	for i, line := range out {
		if idx := strings.Index(line, "/**"); idx >= 0 {
			out[i] = line[:idx] + line[idx+3:]
			start = i

			break
		}
	}

	for i := start; i < len(out); i++ {
		if idx := strings.Index(out[i], "*/"); idx >= 0 {
			out[i] = out[i][:idx]

			break
		}
	}

	return out
}

func (b *builder) apply(t tag.Tag, line int) error {
	b.touched = true
	u := b.unit

	switch t.Kind {
	case tag.KindAccess:
		u.Access = model.Access(t.Text)

	case tag.KindExample:
		u.Example = t.Text

	case tag.KindReturn:
		u.Return = toField(t.Field)

	case tag.KindThis:
		u.This = toField(t.Field)

	case tag.KindCallback:
		u.Type = model.TypeCallback
		u.Name = t.Field.Name

		if t.Field.Desc != "" {
			u.Desc = t.Field.Desc
		}

	case tag.KindConstant:
		u.Constant = true

		err := matchCode(u.Type, t.Field.Type, ErrDocCodeTypeMismatch)
		if err != nil {
			return err
		}

		err = matchCode(u.Name, t.Field.Name, ErrDocCodeNameMismatch)
		if err != nil {
			return err
		}

		if t.Field.Desc != "" {
			u.Desc = t.Field.Desc
		}

	case tag.KindConstructor:
		u.Type = model.TypeConstructor

	case tag.KindDeprecated:
		u.Deprecated = &model.Deprecation{Message: t.Text}

	case tag.KindParam:
		u.Params = slices.Insert(u.Params, 0, toField(t.Field))

	case tag.KindSubParam, tag.KindSubReturn, tag.KindSubThis:
		b.subs = slices.Insert(b.subs, 0, pending{kind: t.Kind, field: t.Field, line: line})

	case tag.KindThrows:
		u.Throws = slices.Insert(u.Throws, 0, *t.Throw)

	case tag.KindTodo:
		u.Todos = append(slices.Clone(t.Items), u.Todos...)
	}

	return nil
}

// matchCode fails with mismatch when the doc names a value that differs
// from the one inferred from code, including when the code inferred none.
func matchCode(code, doc string, mismatch error) error {
	if doc != "" && doc != code {
		return fmt.Errorf("%w: %q in doc, %q in code", mismatch, doc, code)
	}

	return nil
}

func toField(f *tag.Field) *model.Field {
	return &model.Field{
		Name:     f.Name,
		Type:     f.Type,
		Desc:     f.Desc,
		Optional: f.Optional,
	}
}

// property is the nested record stored under a parent's properties.
func property(f *tag.Field) *model.Field {
	p := toField(f)
	p.Name = ""

	return p
}

// resolve attaches sub-references to their parents, shallowest first.
func (b *builder) resolve() error {
	subs := slices.Clone(b.subs)
	slices.SortStableFunc(subs, func(x, y pending) int {
		return cmp.Compare(strings.Count(x.field.Name, "."), strings.Count(y.field.Name, "."))
	})

	for _, sub := range subs {
		var err error

		switch sub.kind {
		case tag.KindSubParam:
			err = b.resolveParam(sub)
		case tag.KindSubReturn:
			err = b.resolveReturn(sub)
		case tag.KindSubThis:
			b.resolveThis(sub)
		}

		if err != nil {
			return &LineError{Line: sub.line, Err: err}
		}
	}

	return nil
}

func (b *builder) resolveParam(sub pending) error {
	parent := b.unit.Param(sub.field.Master)
	if parent == nil {
		return fmt.Errorf("%w: %s", ErrNoSuchParam, sub.field.Master)
	}

	path := sub.field.Master
	segments := strings.Split(sub.field.Name, ".")

	for _, seg := range segments[:len(segments)-1] {
		if parent.Type != model.TypeObject {
			return fmt.Errorf("%w: %s", ErrParentNotObjectType, path)
		}

		path += "." + seg

		parent = parent.Property(seg)
		if parent == nil {
			return fmt.Errorf("%w: %s", ErrNoSuchParam, path)
		}
	}

	if parent.Type != model.TypeObject {
		return fmt.Errorf("%w: %s", ErrParentNotObjectType, path)
	}

	parent.SetProperty(segments[len(segments)-1], property(sub.field))

	return nil
}

func (b *builder) resolveReturn(sub pending) error {
	parent := b.unit.Return
	if parent == nil {
		return ErrNoMasterReturn
	}

	path := "return"
	segments := strings.Split(sub.field.Name, ".")

	for _, seg := range segments[:len(segments)-1] {
		if parent.Type != model.TypeObject {
			return fmt.Errorf("%w: %s", ErrReturnNotObject, path)
		}

		path += "." + seg

		parent = parent.Property(seg)
		if parent == nil {
			return fmt.Errorf("%w: %s", ErrNoMasterReturn, path)
		}
	}

	if parent.Type != model.TypeObject {
		return fmt.Errorf("%w: %s", ErrReturnNotObject, path)
	}

	parent.SetProperty(segments[len(segments)-1], property(sub.field))

	return nil
}

// resolveThis never fails; missing parents are created untyped.
func (b *builder) resolveThis(sub pending) {
	if b.unit.This == nil {
		b.unit.This = &model.Field{}
	}

	parent := b.unit.This
	segments := strings.Split(sub.field.Name, ".")

	for _, seg := range segments[:len(segments)-1] {
		next := parent.Property(seg)
		if next == nil {
			next = &model.Field{}
			parent.SetProperty(seg, next)
		}

		parent = next
	}

	parent.SetProperty(segments[len(segments)-1], property(sub.field))
}
