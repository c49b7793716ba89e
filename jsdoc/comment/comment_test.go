package comment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/nodedoc/jsdoc/codeinfo"
	"go.jacobcolvin.com/nodedoc/jsdoc/comment"
	"go.jacobcolvin.com/nodedoc/jsdoc/model"
	"go.jacobcolvin.com/nodedoc/jsdoc/tag"
)

var person = codeinfo.Info{Type: "Function", Name: "Person", Access: model.AccessPublic}

func TestParse(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		seed  codeinfo.Info
		want  *model.Unit
		lines []string
	}{
		"access private": {
			lines: []string{
				" * @private",
				" * @param firstParam {String} The first parameter.",
			},
			seed: person,
			want: &model.Unit{
				Type:   "Function",
				Name:   "Person",
				Access: model.AccessPrivate,
				Params: []*model.Field{
					{Name: "firstParam", Type: "String", Desc: "The first parameter."},
				},
			},
		},
		"callback with params": {
			lines: []string{
				" * @callback myCallback My description of the callback.",
				" * @param err {Error} An possible error.",
				" * @param result",
			},
			want: &model.Unit{
				Type: "Callback",
				Name: "myCallback",
				Desc: "My description of the callback.",
				Params: []*model.Field{
					{Name: "err", Type: "Error", Desc: "An possible error."},
					{Name: "result"},
				},
			},
		},
		"callback desc extended by free text": {
			lines: []string{
				" * Called once the work is done.",
				" * @callback onDone Handles completion.",
			},
			want: &model.Unit{
				Type: "Callback",
				Name: "onDone",
				Desc: "Handles completion. Called once the work is done.",
			},
		},
		"constant from code": {
			lines: []string{" * @constant"},
			seed:  codeinfo.Info{Type: "Number", Name: "MY_CONSTANT"},
			want:  &model.Unit{Type: "Number", Name: "MY_CONSTANT", Constant: true},
		},
		"constant with type and desc": {
			lines: []string{" * @constant MY_OTHER_CONSTANT {String} Don't change this!"},
			seed:  codeinfo.Info{Type: "String", Name: "MY_OTHER_CONSTANT"},
			want: &model.Unit{
				Type:     "String",
				Name:     "MY_OTHER_CONSTANT",
				Desc:     "Don't change this!",
				Constant: true,
			},
		},
		"constructor": {
			lines: []string{" * @access public", " * @constructor"},
			seed:  codeinfo.Info{Type: "Function", Name: "Person"},
			want:  &model.Unit{Type: "Constructor", Name: "Person", Access: model.AccessPublic},
		},
		"deprecated": {
			lines: []string{" * @deprecated"},
			seed:  person,
			want: &model.Unit{
				Type: "Function", Name: "Person", Access: model.AccessPublic,
				Deprecated: &model.Deprecation{},
			},
		},
		"deprecated with message": {
			lines: []string{" * @deprecated Use Alien instead."},
			seed:  person,
			want: &model.Unit{
				Type: "Function", Name: "Person", Access: model.AccessPublic,
				Deprecated: &model.Deprecation{Message: "Use Alien instead."},
			},
		},
		"desc": {
			lines: []string{" * This is the description."},
			want:  &model.Unit{Desc: "This is the description."},
		},
		"multi line desc": {
			lines: []string{
				" * This is the description,",
				" * and it has multiple lines.",
			},
			want: &model.Unit{Desc: "This is the description, and it has multiple lines."},
		},
		"desc with blank line": {
			lines: []string{
				" * This is the description,",
				" *",
				" * and it has multiple lines.",
			},
			want: &model.Unit{Desc: "This is the description, \n and it has multiple lines."},
		},
		"example": {
			lines: []string{" * @example var doc = parse(file);"},
			want:  &model.Unit{Example: "var doc = parse(file);"},
		},
		"multi line example": {
			lines: []string{
				" * @example",
				" * var parser = require('parser');",
				" *",
				" * var doc = parser('/some/file.js');",
			},
			want: &model.Unit{
				Example: "var parser = require('parser'); \n var doc = parser('/some/file.js');",
			},
		},
		"return": {
			lines: []string{" * @return {String} I returned a string."},
			seed:  person,
			want: &model.Unit{
				Type: "Function", Name: "Person", Access: model.AccessPublic,
				Return: &model.Field{Type: "String", Desc: "I returned a string."},
			},
		},
		"this": {
			lines: []string{" * @this The this object."},
			want:  &model.Unit{This: &model.Field{Desc: "The this object."}},
		},
		"throws keep order": {
			lines: []string{
				" * @throws first",
				" * @throws \"second\" on retry",
			},
			want: &model.Unit{Throws: []model.Throw{
				{Msg: "first"},
				{Msg: "second", Cause: "on retry"},
			}},
		},
		"todos keep order": {
			lines: []string{
				" * @todo - one - two",
				" * @todo three",
			},
			want: &model.Unit{Todos: []string{"one", "two", "three"}},
		},
		"todo continued on next lines": {
			lines: []string{
				" * @todo",
				" * - Item 1",
				" * - Item 2",
				" * - Item 3",
			},
			want: &model.Unit{Todos: []string{"Item 1", "Item 2", "Item 3"}},
		},
		"tag description continues": {
			lines: []string{
				" * @param info {Object} The person",
				" *   to greet.",
			},
			want: &model.Unit{Params: []*model.Field{
				{Name: "info", Type: "Object", Desc: "The person to greet."},
			}},
		},
		"with markers": {
			lines: []string{"/**", " * Greets.", " * @public", " */"},
			want:  &model.Unit{Desc: "Greets.", Access: model.AccessPublic},
		},
		"single line with markers": {
			lines: []string{"/** @private */"},
			want:  &model.Unit{Access: model.AccessPrivate},
		},
		"crlf lines": {
			lines: []string{" * Greets.\r", " * @public\r"},
			want:  &model.Unit{Desc: "Greets.", Access: model.AccessPublic},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := comment.Parse(tc.lines, tc.seed)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseParamOrder(t *testing.T) {
	t.Parallel()

	var lines []string

	names := []string{"a", "b", "c", "d", "e", "f"}
	for _, n := range names {
		lines = append(lines, " * @param "+n+" {String}", " *   continued "+n)
	}

	got, err := comment.Parse(lines, codeinfo.Info{})
	require.NoError(t, err)
	require.Len(t, got.Params, len(names))

	for i, n := range names {
		assert.Equal(t, n, got.Params[i].Name)
		assert.Equal(t, "continued "+n, got.Params[i].Desc)
	}
}

func TestParseSubReferences(t *testing.T) {
	t.Parallel()

	t.Run("subparams", func(t *testing.T) {
		t.Parallel()

		got, err := comment.Parse([]string{
			" * @param firstParam {String} The first parameter.",
			" * @param info {Object}",
			" * @param info.firstname {String}",
			" * @param info.surname {String} The persons last name.",
			" * @param [info.age]",
		}, person)
		require.NoError(t, err)
		require.Len(t, got.Params, 2)

		info := got.Params[1]
		assert.Equal(t, "info", info.Name)
		assert.Equal(t, "Object", info.Type)
		assert.Equal(t, []string{"firstname", "surname", "age"}, info.PropertyNames())
		assert.Equal(t, &model.Field{Type: "String"}, info.Property("firstname"))
		assert.Equal(t, &model.Field{Type: "String", Desc: "The persons last name."}, info.Property("surname"))
		assert.Equal(t, &model.Field{Optional: true}, info.Property("age"))
	})

	t.Run("person scenario", func(t *testing.T) {
		t.Parallel()

		got, err := comment.Parse([]string{
			"/**",
			" * @param information {Object}",
			" * @param information.name {String}",
			" * @param information.age {Number}",
			" */",
		}, codeinfo.Detect("function Person(information) {"))
		require.NoError(t, err)
		require.Len(t, got.Params, 1)

		p := got.Params[0]
		assert.Equal(t, "information", p.Name)
		assert.Equal(t, "Object", p.Type)
		assert.Equal(t, map[string]*model.Field{
			"name": {Type: "String"},
			"age":  {Type: "Number"},
		}, p.Properties)
	})

	t.Run("nested subparams", func(t *testing.T) {
		t.Parallel()

		got, err := comment.Parse([]string{
			" * @param opts.tls.cert {String}",
			" * @param opts {Object}",
			" * @param opts.tls {Object}",
		}, codeinfo.Info{})
		require.NoError(t, err)

		tls := got.Params[0].Property("tls")
		require.NotNil(t, tls)
		assert.Equal(t, &model.Field{Type: "String"}, tls.Property("cert"))
	})

	t.Run("subreturn", func(t *testing.T) {
		t.Parallel()

		got, err := comment.Parse([]string{
			" * @return {Object} I returned an object.",
			" * @return .name {String} A property for the return object.",
		}, person)
		require.NoError(t, err)
		require.NotNil(t, got.Return)

		assert.Equal(t, "I returned an object.", got.Return.Desc)
		assert.Equal(t, &model.Field{Type: "String", Desc: "A property for the return object."},
			got.Return.Property("name"))
	})

	t.Run("subthis without this", func(t *testing.T) {
		t.Parallel()

		got, err := comment.Parse([]string{" * @this .name A this object property."}, person)
		require.NoError(t, err)
		require.NotNil(t, got.This)

		assert.Empty(t, got.This.Type)
		assert.Equal(t, &model.Field{Desc: "A this object property."}, got.This.Property("name"))
	})

	t.Run("subthis ignores parent type", func(t *testing.T) {
		t.Parallel()

		got, err := comment.Parse([]string{
			" * @this {String} This object.",
			" * @this .name {String}",
		}, person)
		require.NoError(t, err)

		assert.Equal(t, "This object.", got.This.Desc)
		assert.Equal(t, &model.Field{Type: "String"}, got.This.Property("name"))
	})
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err   error
		msg   string
		seed  codeinfo.Info
		lines []string
		line  int
	}{
		"callback without name": {
			lines: []string{" * @callback"},
			err:   tag.ErrMissingName,
			line:  1,
		},
		"unknown tag": {
			lines: []string{" * Desc.", " * @foo"},
			err:   tag.ErrUnknownTag,
			line:  2,
		},
		"constant type mismatch": {
			lines: []string{" * @constant MY_CONSTANT {Number}"},
			seed:  codeinfo.Info{Type: "String", Name: "MY_CONSTANT"},
			err:   comment.ErrDocCodeTypeMismatch,
			line:  1,
		},
		"constant type without code type": {
			lines: []string{" * @constant {Number}"},
			seed:  codeinfo.Detect("var LIMIT = computeLimit();"),
			err:   comment.ErrDocCodeTypeMismatch,
			line:  1,
		},
		"constant without code": {
			lines: []string{" * @constant MAX {Number}"},
			err:   comment.ErrDocCodeTypeMismatch,
			line:  1,
		},
		"constant name without code name": {
			lines: []string{" * @constant MAX"},
			seed:  codeinfo.Info{Type: "Number"},
			err:   comment.ErrDocCodeNameMismatch,
			line:  1,
		},
		"constant name mismatch": {
			lines: []string{" * @constant MY_CONSTANT {String}"},
			seed:  codeinfo.Info{Type: "String", Name: "MY_OTHER_CONSTANT"},
			err:   comment.ErrDocCodeNameMismatch,
			line:  1,
		},
		"subparam without parent": {
			lines: []string{
				" * @param info.firstname {String}",
				" * @param info.surname {String} The persons last name.",
				" * @param info.age",
				" * ",
				" * @todo Add height.",
			},
			seed: person,
			err:  comment.ErrNoSuchParam,
			msg:  "comment line 1: no param: info",
			line: 1,
		},
		"subparam parent not object": {
			lines: []string{
				" * @param info {String}",
				" * @param info.age",
			},
			seed: person,
			err:  comment.ErrParentNotObjectType,
			line: 2,
		},
		"nested subparam missing intermediate": {
			lines: []string{
				" * @param opts {Object}",
				" * @param opts.tls.cert {String}",
			},
			err:  comment.ErrNoSuchParam,
			msg:  "comment line 2: no param: opts.tls",
			line: 2,
		},
		"no master return": {
			lines: []string{" * @return .name {String} A property for the return object."},
			seed:  person,
			err:   comment.ErrNoMasterReturn,
			line:  1,
		},
		"return not object": {
			lines: []string{
				" * @return {String} I returned an object.",
				" * @return .name {String} A property for the return object.",
			},
			seed: person,
			err:  comment.ErrReturnNotObject,
			line: 2,
		},
		"empty todo": {
			lines: []string{" * @todo -"},
			err:   tag.ErrEmptyTodoList,
			line:  1,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := comment.Parse(tc.lines, tc.seed)
			require.ErrorIs(t, err, tc.err)

			var lineErr *comment.LineError
			require.ErrorAs(t, err, &lineErr)
			assert.Equal(t, tc.line, lineErr.Line)

			if tc.msg != "" {
				assert.EqualError(t, err, tc.msg)
			}
		})
	}
}

func TestParseNoDocumentation(t *testing.T) {
	t.Parallel()

	tcs := map[string][]string{
		"empty":         nil,
		"markers only":  {"/**", " */"},
		"blank lines":   {"/**", " *", " *", " */"},
		"single marker": {"/** */"},
	}

	for name, lines := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := comment.Parse(lines, codeinfo.Detect(""))
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}
