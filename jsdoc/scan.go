package jsdoc

import (
	"errors"
	"regexp"
	"strings"

	"go.jacobcolvin.com/nodedoc/jsdoc/codeinfo"
	"go.jacobcolvin.com/nodedoc/jsdoc/comment"
	"go.jacobcolvin.com/nodedoc/jsdoc/model"
)

var (
	requireRe = regexp.MustCompile(`(?:([A-Za-z_$][\w$]*)\s*=\s*)?\brequire\(\s*['"]([^'"]+)['"]\s*\)`)
	holderRe  = regexp.MustCompile(`^module\.exports\s*=\s*require\(\s*['"]([^'"]+)['"]\s*\)\s*;?$`)
	strictRe  = regexp.MustCompile(`^['"]use strict['"];?$`)
)

// windowLines is how many lines after a comment are handed to the code
// context detector.
const windowLines = 16

// requireRef is a local require found in a file.
type requireRef struct {
	// Spec is the require specifier as written.
	Spec string
	// Var is the variable the require is assigned to, if any.
	Var string
}

// scanUnits parses every documentation comment in lines, in source order.
func scanUnits(path string, lines []string) ([]*model.Unit, error) {
	var units []*model.Unit

	start, startCol := -1, 0

	for i, line := range lines {
		if idx := strings.Index(line, "/**"); idx >= 0 {
			start, startCol = i, idx
		}

		if start < 0 {
			continue
		}

		from := 0
		if i == start {
			from = startCol + len("/**")
		}

		end := strings.Index(line[from:], "*/")
		if end < 0 {
			continue
		}

		end += from + len("*/")

		block := make([]string, i-start+1)
		copy(block, lines[start:i+1])
		block[len(block)-1] = block[len(block)-1][:end]
		block[0] = block[0][startCol:]

		code := make([]string, 0, windowLines)
		code = append(code, line[end:])
		code = append(code, lines[i+1:min(len(lines), i+windowLines)]...)

		unit, err := comment.Parse(block, codeinfo.Detect(code...))
		if err != nil {
			return nil, fileError(path, start, i, err)
		}

		if unit != nil {
			units = append(units, unit)
		}

		start = -1
	}

	return units, nil
}

// fileError locates a comment error within the file. Errors that carry a
// comment line are reported at that line, others at the closing marker.
func fileError(path string, start, end int, err error) error {
	var lineErr *comment.LineError
	if errors.As(err, &lineErr) {
		return &FileError{Path: path, Line: start + lineErr.Line, Err: lineErr.Err}
	}

	return &FileError{Path: path, Line: end + 1, Err: err}
}

// stripComments removes block and line comments, keeping line count.
// String literals are not tracked, so comment markers inside strings are
// treated as comments.
func stripComments(lines []string) []string {
	out := make([]string, len(lines))
	inBlock := false

	for i, line := range lines {
		var sb strings.Builder

		for len(line) > 0 {
			if inBlock {
				end := strings.Index(line, "*/")
				if end < 0 {
					line = ""

					continue
				}

				line = line[end+2:]
				inBlock = false

				continue
			}

			blockIdx := strings.Index(line, "/*")
			lineIdx := strings.Index(line, "//")

			switch {
			case lineIdx >= 0 && (blockIdx < 0 || lineIdx < blockIdx) && !inURL(line, lineIdx):
				sb.WriteString(line[:lineIdx])
				line = ""
			case blockIdx >= 0:
				sb.WriteString(line[:blockIdx])
				line = line[blockIdx+2:]
				inBlock = true
			default:
				sb.WriteString(line)
				line = ""
			}
		}

		out[i] = sb.String()
	}

	return out
}

// inURL reports whether the // at idx belongs to a scheme such as http://.
func inURL(line string, idx int) bool {
	return idx > 0 && line[idx-1] == ':'
}

// scanRequires returns the local requires in code, in order of appearance
// and without duplicates. Manifest requires are skipped.
func scanRequires(code []string) []requireRef {
	var refs []requireRef

	seen := map[string]bool{}

	for _, line := range code {
		for _, m := range requireRe.FindAllStringSubmatch(line, -1) {
			spec := m[2]
			if !IsLocal(spec) || strings.Contains(spec, "package.json") || seen[spec] {
				continue
			}

			seen[spec] = true
			refs = append(refs, requireRef{Spec: spec, Var: m[1]})
		}
	}

	return refs
}

// holderTarget returns the require specifier of a holder file: a file
// whose only statement re-exports another module. Comments, blank lines
// and a "use strict" directive are ignored.
func holderTarget(code []string) string {
	var stmts []string

	for _, line := range code {
		line = strings.TrimSpace(line)
		if line == "" || strictRe.MatchString(line) {
			continue
		}

		stmts = append(stmts, line)
	}

	m := holderRe.FindStringSubmatch(strings.Join(stmts, " "))
	if m == nil {
		return ""
	}

	return m[1]
}

// exportName returns the name of the exported entity, found by running the
// code context detector from the first module.exports or exports
// assignment. The name is empty when the export is anonymous or missing.
func exportName(code []string) string {
	for _, marker := range []string{"module.exports", "exports"} {
		for i, line := range code {
			idx := strings.Index(line, marker)
			if idx < 0 {
				continue
			}

			window := append([]string{line[idx:]}, code[i+1:min(len(code), i+windowLines)]...)

			return codeinfo.Detect(window...).Name
		}
	}

	return ""
}
