// Package stringtest provides helpers for building test inputs: indented
// string literals, explicit line endings and multi-file source trees.
package stringtest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// Input dedents a raw string literal so test inputs can be indented with the
// surrounding code. One leading and one trailing newline are removed, the
// indentation common to all non-blank lines is stripped, and whitespace-only
// lines become empty.
//
// Example:
//
//	src := stringtest.Input(`
//		/** @constant */
//		var MAX = 10;
//	`) // -> "/** @constant */\nvar MAX = 10;"
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")
	indent := -1

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""

			continue
		}

		lines[i] = line[indent:]
	}

	return strings.Join(lines, "\n")
}

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected test output with explicit line endings.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"line1",
//		"line2",
//		"line3",
//	) // -> "line1\nline2\nline3"
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}

// JoinCRLF joins multiple strings with CRLF line endings.
// Use this to construct source inputs as written on Windows.
//
// Example:
//
//	src := stringtest.JoinCRLF(
//		"line1",
//		"line2",
//		"line3",
//	) // -> "line1\r\nline2\r\nline3"
func JoinCRLF(ss ...string) string {
	return strings.Join(ss, "\r\n")
}

// Files writes the files of a txtar archive below dir and returns dir. The
// archive text is passed through [Input] first, so it may be indented.
//
// Example:
//
//	dir := stringtest.Files(t, t.TempDir(), `
//		-- index.js --
//		var util = require('./util');
//		-- util.js --
//		module.exports = function noop () {};
//	`)
func Files(t testing.TB, dir, archive string) string {
	t.Helper()

	extract(t, dir, txtar.Parse([]byte(Input(archive))))

	return dir
}

// ArchiveFiles is like [Files] but reads the archive from a file, typically
// under testdata/, and extracts it into a new temporary directory.
func ArchiveFiles(t testing.TB, path string) string {
	t.Helper()

	ar, err := txtar.ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	extract(t, dir, ar)

	return dir
}

func extract(t testing.TB, dir string, ar *txtar.Archive) {
	t.Helper()

	for _, file := range ar.Files {
		path := filepath.Join(dir, filepath.FromSlash(file.Name))

		err := os.MkdirAll(filepath.Dir(path), 0o755)
		if err != nil {
			t.Fatal(err)
		}

		err = os.WriteFile(path, file.Data, 0o644)
		if err != nil {
			t.Fatal(err)
		}
	}
}
