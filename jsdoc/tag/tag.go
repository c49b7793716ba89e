package tag

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.jacobcolvin.com/nodedoc/jsdoc/model"
)

// Kind identifies a parsed tag. The set is closed.
type Kind string

const (
	KindAccess      Kind = "access"
	KindCallback    Kind = "callback"
	KindConstant    Kind = "constant"
	KindConstructor Kind = "constructor"
	KindDeprecated  Kind = "deprecated"
	KindExample     Kind = "example"
	KindParam       Kind = "param"
	KindSubParam    Kind = "subparam"
	KindReturn      Kind = "return"
	KindSubReturn   Kind = "subreturn"
	KindThis        Kind = "this"
	KindSubThis     Kind = "subthis"
	KindThrows      Kind = "throws"
	KindTodo        Kind = "todo"
)

// Field is the value of param-like tags.
type Field struct {
	Name string
	Type string
	Desc string
	// Master is the owning param name of a [KindSubParam].
	Master   string
	Optional bool
}

// Tag is one parsed tag line. Which value field is set depends on Kind:
//
//   - Text: access, deprecated (message, may be empty), example.
//   - Field: callback, constant, param, return, this and their sub kinds.
//   - Throw: throws.
//   - Items: todo.
type Tag struct {
	Field *Field
	Throw *model.Throw
	Kind  Kind
	Text  string
	Items []string
}

// Parse parses a single tag line. The line must start with @, optionally
// preceded by whitespace.
func Parse(line string) (Tag, error) {
	line = strings.TrimSpace(line)

	if i := strings.IndexByte(line, '@'); i >= 0 {
		line = line[i+1:]
	}

	word, body := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		word, body = line[:i], strings.TrimSpace(line[i:])
	}

	switch word {
	case "access":
		if body != string(model.AccessPublic) && body != string(model.AccessPrivate) {
			return Tag{}, fmt.Errorf("%w, got %q", ErrInvalidAccessValue, body)
		}

		return Tag{Kind: KindAccess, Text: body}, nil

	case "public", "private":
		return Tag{Kind: KindAccess, Text: word}, nil

	case "callback":
		f, err := parseField(body, true, false)
		if err != nil {
			return Tag{}, fmt.Errorf("@callback %w", err)
		}

		return Tag{Kind: KindCallback, Field: f}, nil

	case "constant":
		f, err := parseField(body, false, true)
		if err != nil {
			return Tag{}, fmt.Errorf("@constant %w", err)
		}

		return Tag{Kind: KindConstant, Field: f}, nil

	case "constructor":
		return Tag{Kind: KindConstructor}, nil

	case "deprecated":
		return Tag{Kind: KindDeprecated, Text: body}, nil

	case "example":
		return Tag{Kind: KindExample, Text: body}, nil

	case "param":
		return parseParam(body)

	case "return", "returns":
		return parseReturn(body)

	case "this":
		return parseThis(body)

	case "throw", "throws":
		return parseThrows(body)

	case "todo":
		return parseTodo(body)
	}

	return Tag{}, fmt.Errorf("%w: %s", ErrUnknownTag, word)
}

func parseParam(body string) (Tag, error) {
	f, err := parseField(body, true, true)
	if err != nil {
		return Tag{}, fmt.Errorf("@param %w", err)
	}

	master, name, ok := strings.Cut(f.Name, ".")
	if !ok {
		return Tag{Kind: KindParam, Field: f}, nil
	}

	f.Master = strings.TrimSpace(master)
	f.Name = strings.TrimSpace(name)

	return Tag{Kind: KindSubParam, Field: f}, nil
}

func parseReturn(body string) (Tag, error) {
	// Never fails without a required name.
	f, _ := parseField(body, false, true)

	switch {
	case strings.HasPrefix(f.Name, "."):
		f.Name = f.Name[1:]

		return Tag{Kind: KindSubReturn, Field: f}, nil

	case f.Name != "":
		if startsUpper(f.Name) {
			f.Desc = strings.TrimSpace(f.Name + " " + f.Desc)
			f.Name = ""
		}

	case f.Desc == "" && f.Type == "":
		return Tag{}, ErrMissingDescriptionOrType
	}

	return Tag{Kind: KindReturn, Field: f}, nil
}

func parseThis(body string) (Tag, error) {
	f, _ := parseField(body, false, true)

	if strings.HasPrefix(f.Name, ".") {
		f.Name = f.Name[1:]

		return Tag{Kind: KindSubThis, Field: f}, nil
	}

	f.Desc = strings.TrimSpace(f.Name + " " + f.Desc)
	f.Name = ""

	return Tag{Kind: KindThis, Field: f}, nil
}

func parseThrows(body string) (Tag, error) {
	if body == "" {
		return Tag{}, ErrMissingErrorMessage
	}

	th := &model.Throw{Msg: body}

	if first := strings.IndexByte(body, '"'); first >= 0 {
		rest := body[first+1:]
		if second := strings.IndexByte(rest, '"'); second >= 0 {
			th.Msg = strings.TrimSpace(rest[:second])
			th.Cause = strings.TrimSpace(body[:first] + " " + rest[second+1:])
		}
	}

	return Tag{Kind: KindThrows, Throw: th}, nil
}

func parseTodo(body string) (Tag, error) {
	var items []string

	if !strings.Contains(body, "-") {
		if body != "" {
			items = []string{body}
		}
	} else {
		for item := range strings.SplitSeq(body, "-") {
			item = strings.TrimSpace(item)
			if item != "" {
				items = append(items, item)
			}
		}
	}

	if len(items) == 0 {
		return Tag{}, ErrEmptyTodoList
	}

	return Tag{Kind: KindTodo, Items: items}, nil
}

// parseField parses the shared "name {Type} desc" grammar. When withType is
// false, braces are kept as part of the description.
func parseField(body string, requireName, withType bool) (*Field, error) {
	f := &Field{}

	left := strings.IndexByte(body, '{')
	right := strings.IndexByte(body, '}')
	space := strings.IndexFunc(body, unicode.IsSpace)

	switch {
	case withType && left >= 0 && right > left:
		f.Name = strings.TrimSpace(body[:left])
		f.Type = strings.TrimSpace(body[left+1 : right])
		f.Desc = strings.TrimSpace(body[right+1:])
	case space < 0:
		f.Name = body
	default:
		f.Name = body[:space]
		f.Desc = strings.TrimSpace(body[space:])
	}

	if len(f.Name) >= 2 && strings.HasPrefix(f.Name, "[") && strings.HasSuffix(f.Name, "]") {
		f.Optional = true
		f.Name = f.Name[1 : len(f.Name)-1]
	}

	if requireName && f.Name == "" {
		return nil, ErrMissingName
	}

	return f, nil
}

// startsUpper reports whether the first rune is unchanged by upper-casing.
// Digits and punctuation count as upper case.
func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)

	return unicode.ToUpper(r) == r
}
