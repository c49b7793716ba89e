// Package render turns documentation objects into output files.
//
// Three formats are supported: Markdown, JSON and YAML. A [Renderer] splits a
// document tree so the root document and each namespace land in their own
// file:
//
//	README.md / main.json / main.yaml    root document
//	util.md   / util.json / util.yaml    namespace "util"
//	util.deep.md ...                     namespace "deep" inside "util"
//
// [Write] stores rendered files below an output directory, optionally
// removing the directory first. [Schema] describes the JSON and YAML output.
package render
