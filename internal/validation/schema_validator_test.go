package validation

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"id": {"type": "integer", "minimum": 0},
			"name": {"type": "string", "minLength": 1},
			"weight": {"type": "number", "exclusiveMinimum": 0}
		},
		"required": ["id", "name"],
		"additionalProperties": false
	}
}`

func testSchemas() fstest.MapFS {
	return fstest.MapFS{
		"things.schema.json": {Data: []byte(testSchema)},
		"broken.schema.json": {Data: []byte(`{"type": `)},
	}
}

func TestSchemaValidator_ValidateBytes(t *testing.T) {
	v := NewSchemaValidator(testSchemas())

	tests := []struct {
		name     string
		data     string
		wantErr  bool
		errorMsg string
	}{
		{"valid yaml", "- id: 1\n  name: stone\n  weight: 2.5\n", false, ""},
		{"valid json", `[{"id": 1, "name": "stone"}]`, false, ""},
		{"empty list", "[]", false, ""},
		{"missing required field", "- id: 1\n", true, "required"},
		{"wrong type", "- id: one\n  name: stone\n", true, "/0/id"},
		{"constraint violation", "- id: 1\n  name: stone\n  weight: 0\n", true, "/0/weight"},
		{"unknown field", "- id: 1\n  name: stone\n  colour: red\n", true, "additionalProperties"},
		{"not a list", "id: 1\n", true, rootLocation},
		{"malformed yaml", "- id: [1\n", true, ErrMsgFailedToParseData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), "things.schema.json")
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestSchemaValidator_ViolationsWrapSentinel(t *testing.T) {
	v := NewSchemaValidator(testSchemas())

	err := v.ValidateBytes([]byte("- name: stone\n- id: 2\n"), "things.schema.json")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemaValidation)
	assert.Contains(t, err.Error(), "/0")
	assert.Contains(t, err.Error(), "/1")
}

func TestSchemaValidator_ValidateFile(t *testing.T) {
	v := NewSchemaValidator(testSchemas())
	data := fstest.MapFS{
		"good.yml": {Data: []byte("- id: 3\n  name: gem\n")},
		"bad.yml":  {Data: []byte("- id: -1\n  name: gem\n")},
	}

	assert.NoError(t, v.ValidateFile(data, "good.yml", "things.schema.json"))
	assert.ErrorIs(t, v.ValidateFile(data, "bad.yml", "things.schema.json"), ErrSchemaValidation)

	err := v.ValidateFile(data, "missing.yml", "things.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToReadData)
}

func TestSchemaValidator_SchemaErrors(t *testing.T) {
	v := NewSchemaValidator(testSchemas())

	err := v.ValidateBytes([]byte("[]"), "missing.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToLoadSchema)
	assert.NotErrorIs(t, err, ErrSchemaValidation)

	err = v.ValidateBytes([]byte("[]"), "broken.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToLoadSchema)
}

func TestSchemaValidator_CachesCompiledSchema(t *testing.T) {
	schemas := testSchemas()
	v := NewSchemaValidator(schemas).(*validator)

	require.NoError(t, v.ValidateBytes([]byte("[]"), "things.schema.json"))
	delete(schemas, "things.schema.json")

	assert.NoError(t, v.ValidateBytes([]byte("- id: 1\n  name: a\n"), "things.schema.json"))
	assert.Len(t, v.schemas, 1)
}
