package schemas

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profileSchema = `{
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "score": {"type": "integer"},
    "tags": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["name", "score"]
}`

func decode(t *testing.T, data string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(data), &v))
	return v
}

func TestValidateDocument_Fields(t *testing.T) {
	tests := []struct {
		name       string
		document   string
		wantFields []string
	}{
		{name: "valid", document: `{"name":"a","score":3,"tags":["x"]}`},
		{name: "missing required field", document: `{"name":"a"}`, wantFields: []string{"(root)"}},
		{name: "wrong type", document: `{"name":"a","score":"high"}`, wantFields: []string{"score"}},
		{name: "wrong item type", document: `{"name":"a","score":1,"tags":[1]}`, wantFields: []string{"tags.0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(decode(t, profileSchema), decode(t, tt.document))
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
			fields := make([]string, 0, len(validationErr.Errors))
			for _, fe := range validationErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestValidateDocument_BadSchema(t *testing.T) {
	err := ValidateDocument(map[string]any{"type": 12}, map[string]any{})
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "(go schema)", loadErr.Path)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestValidateDocument(t *testing.T) {
	schema := map[string]any{
		"type":     "object",
		"required": []string{"name", "score"},
		"properties": map[string]any{
			"name":  map[string]any{"type": "string"},
			"score": map[string]any{"type": "integer"},
		},
	}

	assert.NoError(t, ValidateDocument(schema, map[string]any{"name": "a", "score": 1}))

	err := ValidateDocument(schema, map[string]any{"score": 1})
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Len(t, validationErr.Messages(), 1)
	assert.Contains(t, validationErr.Messages()[0], "name")
}
