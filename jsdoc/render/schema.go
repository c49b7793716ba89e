package render

import (
	"github.com/google/jsonschema-go/jsonschema"
)

const (
	typeString  = "string"
	typeBoolean = "boolean"
	typeObject  = "object"
	typeArray   = "array"
)

// Schema returns the JSON Schema (Draft 7) of a rendered JSON or YAML
// documentation object.
func Schema() *jsonschema.Schema {
	str := func(desc string) *jsonschema.Schema {
		return &jsonschema.Schema{Type: typeString, Description: desc}
	}

	boolean := func(desc string) *jsonschema.Schema {
		return &jsonschema.Schema{Type: typeBoolean, Description: desc}
	}

	ref := func(name string) *jsonschema.Schema {
		return &jsonschema.Schema{Ref: "#/definitions/" + name}
	}

	mapOf := func(s *jsonschema.Schema) *jsonschema.Schema {
		return &jsonschema.Schema{Type: typeObject, AdditionalProperties: s}
	}

	listOf := func(s *jsonschema.Schema) *jsonschema.Schema {
		return &jsonschema.Schema{Type: typeArray, Items: s}
	}

	field := &jsonschema.Schema{
		Type:        typeObject,
		Description: "A param, return or this record.",
		Properties: map[string]*jsonschema.Schema{
			"name":       str("Name, relative to the parent record for properties."),
			"type":       str("Declared type."),
			"desc":       str("Description."),
			"optional":   boolean("Whether the param is optional."),
			"properties": mapOf(ref("field")),
		},
		AdditionalProperties: FalseSchema(),
	}

	throw := &jsonschema.Schema{
		Type: typeObject,
		Properties: map[string]*jsonschema.Schema{
			"msg":   str("Error message."),
			"cause": str("Condition causing the error."),
		},
		Required:             []string{"msg"},
		AdditionalProperties: FalseSchema(),
	}

	unit := &jsonschema.Schema{
		Type:        typeObject,
		Description: "One documented code entity.",
		Properties: map[string]*jsonschema.Schema{
			"name":    str("Entity name."),
			"type":    str("Function, Constructor, Callback, or a primitive type name."),
			"access":  {Type: typeString, Enum: []any{"public", "private"}},
			"desc":    str("Description."),
			"example": str("Usage example."),
			"params":  listOf(ref("field")),
			"return":  ref("field"),
			"this":    ref("field"),
			"throws":  listOf(ref("throw")),
			"deprecated": {
				Types:       []string{typeBoolean, typeString},
				Description: "True, or the deprecation message.",
			},
			"todos":    listOf(&jsonschema.Schema{Type: typeString}),
			"constant": boolean("Whether the entity is a constant."),
			"exported": boolean("Whether the entity is the module export."),
			"required": boolean("Whether the entity was lifted from a namespace export."),
		},
		Required:             []string{"constant", "exported"},
		AdditionalProperties: FalseSchema(),
	}

	author := &jsonschema.Schema{
		Type: typeObject,
		Properties: map[string]*jsonschema.Schema{
			"name":    str("Author name."),
			"email":   str("Author email."),
			"website": str("Author website."),
		},
		Required:             []string{"name"},
		AdditionalProperties: FalseSchema(),
	}

	return &jsonschema.Schema{
		Schema:      "http://json-schema.org/draft-07/schema#",
		Title:       "Documentation object",
		Description: "Documentation extracted from one source file or module.",
		Type:        typeObject,
		Properties: map[string]*jsonschema.Schema{
			"name":       str("Document name."),
			"desc":       str("Package description, root documents only."),
			"license":    str("Package license, root documents only."),
			"version":    str("Package version, root documents only."),
			"author":     ref("author"),
			"exports":    ref("unit"),
			"functions":  mapOf(ref("unit")),
			"constants":  mapOf(ref("unit")),
			"callbacks":  mapOf(ref("unit")),
			"todos":      mapOf(listOf(&jsonschema.Schema{Type: typeString})),
			"namespaces": mapOf(&jsonschema.Schema{Ref: "#"}),
		},
		Required:             []string{"name"},
		AdditionalProperties: FalseSchema(),
		Definitions: map[string]*jsonschema.Schema{
			"author": author,
			"field":  field,
			"throw":  throw,
			"unit":   unit,
		},
	}
}

// FalseSchema returns the schema that matches nothing.
func FalseSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}
