// Package jsdoc extracts documentation from JSDoc style comments in
// JavaScript sources.
//
// A documentation comment is a block starting with "/**" and ending with
// "*/". Its free text becomes the description of the declaration that
// follows it, and tag lines ("@param", "@return", "@throws", ...) fill in
// the structured parts:
//
//	/**
//	 * Creates a person.
//	 *
//	 * @param info      {Object} Person details.
//	 * @param info.name {String} Full name.
//	 * @return          {Person} The person.
//	 */
//	function Person (info) { ... }
//
// The declaration itself is read with a line-based heuristic rather than a
// JavaScript parser; see package codeinfo for the shapes it recognizes.
//
// # Pipeline
//
// [Parser.ParseFile] reads one file and:
//
//  1. Follows holder files, whose only statement is
//     module.exports = require('./other').
//  2. Parses each comment block with the code that follows it into a
//     [model.Unit].
//  3. Parses every local require ('./x', '../x', '/x') concurrently into a
//     namespace document. Package requires are ignored.
//  4. Folds units and namespaces into a [model.Doc] with [Construct].
//
// Files are memoized by path for the lifetime of a [Parser], and a require
// that leads back to a file already being parsed on the same path is
// skipped rather than followed.
//
// [Parser.ParseProject] documents a whole directory, either from the
// manifest's main entry or file by file.
//
// # Errors
//
// Comment errors are returned as [*FileError] values that carry the file
// path and line. The tag and comment sentinels (for example
// [tag.ErrMissingName] or [comment.ErrNoSuchParam]) remain reachable with
// [errors.Is].
//
// [tag.ErrMissingName]: https://pkg.go.dev/go.jacobcolvin.com/nodedoc/jsdoc/tag#ErrMissingName
// [comment.ErrNoSuchParam]: https://pkg.go.dev/go.jacobcolvin.com/nodedoc/jsdoc/comment#ErrNoSuchParam
package jsdoc
