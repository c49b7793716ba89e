// Package codeinfo infers what a documentation comment describes by looking
// at the code that follows it.
//
// Detection is a best-effort, line-local heuristic rather than a parser. It
// reads a short window of source up to the first statement terminator (;,
// {, } or the start of the next documentation comment) and recognises four
// shapes, checked in this order:
//
//	var name = <literal>
//	Owner.prototype.name = <literal>
//	function name (...)
//	module.exports = <literal> / exports.name = <literal>
//
// Naming conventions drive the rest: a leading underscore means private, an
// upper case first letter on a function means constructor, and an all upper
// case variable name means constant. [Detect] never fails; shapes it does
// not understand leave Name and Type empty.
package codeinfo

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"go.jacobcolvin.com/nodedoc/jsdoc/model"
)

// Primitive type names assigned to variables by the shape of their
// right-hand side.
const (
	TypeString    = "String"
	TypeNumber    = "Number"
	TypeFloat     = "Float"
	TypeBoolean   = "Boolean"
	TypeNull      = "Null"
	TypeUndefined = "Undefined"
	TypeArray     = "Array"
	TypeObject    = model.TypeObject
	TypeFunction  = model.TypeFunction
)

// maxWindow bounds how many source lines are read while looking for a
// statement terminator.
const maxWindow = 16

// Info is the inferred code context of a declaration.
type Info struct {
	Name     string
	Type     string
	Access   model.Access
	Exported bool
	Constant bool
}

// Detect infers the declaration described by the source lines that follow a
// documentation comment.
func Detect(lines ...string) Info {
	return DetectLine(Window(lines...))
}

// Window joins lines up to and including the first statement terminator.
// A terminating semicolon is dropped, as is the start of a following
// documentation comment.
func Window(lines ...string) string {
	var sb strings.Builder

	for i, line := range lines {
		if i >= maxWindow {
			break
		}

		if i > 0 {
			sb.WriteByte(' ')
		}

		if end := terminator(line); end >= 0 {
			sb.WriteString(line[:end])

			break
		}

		sb.WriteString(line)
	}

	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(sb.String()), ";"))
}

// terminator returns the end offset (exclusive) of the statement in line,
// or -1.
func terminator(line string) int {
	end := -1

	for _, t := range []string{";", "{", "}"} {
		if i := strings.Index(line, t); i >= 0 && (end < 0 || i+1 < end) {
			end = i + 1
		}
	}

	if i := strings.Index(line, "/**"); i >= 0 && (end < 0 || i < end) {
		end = i
	}

	return end
}

// DetectLine infers the declaration from a single pre-cut statement.
func DetectLine(line string) Info {
	var (
		info      Info
		checkCase bool
	)

	switch {
	case varIndex(line) >= 0:
		info.Name, info.Type = detectVar(line)
		checkCase = true

	case strings.Contains(line, "prototype"):
		rest := line[strings.Index(line, "prototype")+len("prototype"):]
		rest = strings.TrimPrefix(rest, ".")

		if lhs, rhs, ok := strings.Cut(rest, "="); ok {
			info.Name = strings.TrimSpace(lhs)
			info.Type = VarType(rhs)
		}

		checkCase = true

	case strings.Contains(line, "function"):
		info.Name, info.Type = detectFunction(line)
	}

	if i := strings.Index(line, "module.exports"); i >= 0 {
		rhs := ""
		if _, after, ok := strings.Cut(line[i:], "="); ok {
			rhs = strings.TrimSpace(after)
		}

		// A function expression keeps the name found above.
		info.Type = VarType(rhs)
		if info.Type == "" && rhs != "" && !strings.Contains(rhs, "(") {
			info.Name = rhs
			checkCase = true
		}
	} else if i := strings.Index(line, "exports"); i >= 0 {
		rest := line[i+len("exports"):]
		if strings.HasPrefix(rest, ".") {
			if lhs, rhs, ok := strings.Cut(rest[1:], "="); ok {
				info.Name = strings.TrimSpace(lhs)
				info.Type = VarType(rhs)
				checkCase = true
			}
		}
	}

	info.Exported = strings.Contains(line, "exports")

	info.Access = model.AccessPublic
	if strings.HasPrefix(info.Name, "_") {
		info.Access = model.AccessPrivate
	}

	info.Constant = checkCase && info.Name != "" && strings.ToUpper(info.Name) == info.Name

	return info
}

// varIndex returns the offset of the first var keyword in line, or -1.
func varIndex(line string) int {
	for i := 0; i < len(line); {
		j := strings.Index(line[i:], "var ")
		if j < 0 {
			return -1
		}

		j += i
		if j == 0 || !isIdent(line[j-1]) {
			return j
		}

		i = j + 1
	}

	return -1
}

func detectVar(line string) (string, string) {
	rest := line[varIndex(line)+len("var "):]

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", TypeUndefined
	}

	name := fields[0]
	if idx := strings.IndexByte(name, '='); idx >= 0 {
		name = name[:idx]
	}

	name = strings.TrimRight(name, ",")

	if _, rhs, ok := strings.Cut(rest, "="); ok {
		return name, VarType(rhs)
	}

	// No assignment, classify whatever follows the name.
	return name, VarType(rest[strings.Index(rest, name)+len(name):])
}

func detectFunction(line string) (string, string) {
	fn := strings.Index(line, "function")
	rest := strings.TrimSpace(line[fn+len("function"):])

	name := rest
	if end := strings.IndexAny(rest, " (\t"); end >= 0 {
		name = rest[:end]
	}

	// function* gen ()
	if strings.HasPrefix(name, "*") {
		name = strings.TrimSpace(name[1:])
	}

	if comma := strings.IndexByte(line, ','); comma >= 0 && comma < fn {
		return name, model.TypeCallback
	}

	if name == "" {
		return "", model.TypeFunction
	}

	r, _ := utf8.DecodeRuneInString(name)
	if r != '_' && strings.ToUpper(string(r)) == string(r) {
		return name, model.TypeConstructor
	}

	return name, model.TypeFunction
}

// VarType classifies the right-hand side of an assignment by its syntactic
// shape. It returns an empty string when the shape is not recognised.
func VarType(rhs string) string {
	rhs = strings.TrimSpace(rhs)
	lower := strings.ToLower(rhs)

	switch {
	case rhs == "":
		return TypeUndefined
	case strings.Contains(rhs, "function "), strings.Contains(rhs, "function("):
		return TypeFunction
	case rhs[0] == '\'' || rhs[0] == '"' || rhs[0] == '`':
		return TypeString
	case strings.HasPrefix(lower, "true"), strings.HasPrefix(lower, "false"):
		return TypeBoolean
	case strings.HasPrefix(lower, "undefined"):
		return TypeUndefined
	case strings.HasPrefix(lower, "null"):
		return TypeNull
	case rhs[0] == '{':
		return TypeObject
	case rhs[0] == '[':
		return TypeArray
	case isInteger(rhs):
		return TypeNumber
	}

	if whole, frac, ok := strings.Cut(rhs, "."); ok && isInteger(whole) && isDigits(frac) {
		return TypeFloat
	}

	return ""
}

// isInteger reports whether s is the canonical decimal form of an integer.
func isInteger(s string) bool {
	n, err := strconv.Atoi(s)

	return err == nil && strconv.Itoa(n) == s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

func isIdent(b byte) bool {
	return b == '_' || b == '$' || b == '.' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
