package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRecord_Valid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "current envelope", doc: `{"schemaVersion":1,"templateId":"devops","data":{"personal":{"fullName":"Jane"},"skills":[{"id":"1","name":"Go"}]}}`},
		{name: "legacy envelope", doc: `{"version":1,"template":"ats-tech","data":{"experience":[{"company":"Acme","current":false}]}}`},
		{name: "missing data", doc: `{"schemaVersion":1}`},
		{name: "null members", doc: `{"schemaVersion":1,"templateId":null,"data":{"personal":null,"summary":null,"projects":null}}`},
		{name: "unknown fields kept", doc: `{"schemaVersion":1,"data":{"experience":[{"id":"1","company":"A","extra":"x"}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, ValidateRecord([]byte(tt.doc)))
		})
	}
}

func TestValidateRecord_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "array root", doc: `[]`},
		{name: "no version", doc: `{"templateId":"devops","data":{}}`},
		{name: "string version", doc: `{"schemaVersion":"1"}`},
		{name: "list is string", doc: `{"schemaVersion":1,"data":{"experience":"oops"}}`},
		{name: "skill is string", doc: `{"schemaVersion":1,"data":{"skills":["Go"]}}`},
		{name: "name is number", doc: `{"schemaVersion":1,"data":{"personal":{"fullName":42}}}`},
		{name: "current is string", doc: `{"schemaVersion":1,"data":{"experience":[{"current":"yes"}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecord([]byte(tt.doc))
			require.Error(t, err)
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "got %T: %v", err, err)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidateRecord_MalformedJSON(t *testing.T) {
	err := ValidateRecord([]byte(`{"schemaVersion":1,`))
	require.Error(t, err)
	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr))
}

func TestValidateJSONString_Valid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"name": "test"}`

	err := ValidateJSONString(schemaContent, jsonContent)
	assert.NoError(t, err)
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"age": 30}`

	err := ValidateJSONString(schemaContent, jsonContent)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSONString_BadSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "data.experience", Message: "Invalid type"},
			{Field: "schemaVersion", Message: "is required"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "data.experience")
	assert.Contains(t, errorMsg, "schemaVersion")
}
