package render_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/nodedoc/jsdoc/render"
)

func TestSchema(t *testing.T) {
	t.Parallel()

	schema := render.Schema()

	assert.Equal(t, "http://json-schema.org/draft-07/schema#", schema.Schema)
	assert.Equal(t, []string{"name"}, schema.Required)
	assert.Equal(t, "#", schema.Properties["namespaces"].AdditionalProperties.Ref)
	assert.Equal(t, "#/definitions/unit", schema.Properties["exports"].Ref)

	for _, def := range []string{"author", "field", "throw", "unit"} {
		assert.Contains(t, schema.Definitions, def)
	}

	unit := schema.Definitions["unit"]
	assert.ElementsMatch(t, []string{"boolean", "string"}, unit.Properties["deprecated"].Types)
	assert.Equal(t, "#/definitions/field", unit.Properties["params"].Items.Ref)

	out, err := json.Marshal(schema)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Contains(t, decoded, "definitions")
	assert.Contains(t, decoded, "$schema")
}

// Every key the renderer emits must be declared by the schema.
func TestSchemaCoversOutput(t *testing.T) {
	t.Parallel()

	schema := render.Schema()

	got, err := render.NewRenderer(render.FormatJSON).Encode(sampleDoc())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(got, &doc))

	for key := range doc {
		assert.Contains(t, schema.Properties, key)
	}

	unit := doc["functions"].(map[string]any)["add"].(map[string]any) //nolint:forcetypeassert // Shape is fixed by sampleDoc.
	for key := range unit {
		assert.Contains(t, schema.Definitions["unit"].Properties, key)
	}

	param := unit["params"].([]any)[1].(map[string]any) //nolint:forcetypeassert // Shape is fixed by sampleDoc.
	for key := range param {
		assert.Contains(t, schema.Definitions["field"].Properties, key)
	}
}
