package graphql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solidgraph/graphql/executor"
	"github.com/solidgraph/graphql/validator"
)

func TestNewErrorFromExecutorError(t *testing.T) {
	assert.Equal(t, &Error{
		Message: "message",
	}, newErrorFromExecutorError(&executor.Error{
		Message: "message",
		Locations: []executor.Location{
			{
				Line:   1,
				Column: 2,
			},
		},
	}))
}

func TestNewErrorFromValidatorError(t *testing.T) {
	assert.Equal(t, &Error{
		Message: "message",
	}, newErrorFromValidatorError(&validator.Error{
		Message: "message",
		Locations: []validator.Location{
			{
				Line:   1,
				Column: 2,
			},
		},
	}))
}

func testSchema(t *testing.T) *Schema {
	s, err := NewSchema(&SchemaDefinition{
		Query: &ObjectType{
			Name: "Query",
			Fields: map[string]*FieldDefinition{
				"greeting": {
					Type: StringType,
					Resolve: func(FieldContext) (interface{}, error) {
						return "hello", nil
					},
				},
			},
		},
	})
	require.NoError(t, err)
	return s
}

func TestParseAndValidate(t *testing.T) {
	s := testSchema(t)

	doc, errs := ParseAndValidate("{ greeting }", s)
	require.Empty(t, errs)
	assert.NotNil(t, doc)

	_, errs = ParseAndValidate("{ missing }", s)
	assert.NotEmpty(t, errs)

	_, errs = ParseAndValidate("{", s)
	assert.NotEmpty(t, errs)
}

func TestExecute(t *testing.T) {
	s := testSchema(t)

	resp := Execute(&Request{
		Context: context.Background(),
		Query:   "{ greeting }",
		Schema:  s,
	})
	require.Empty(t, resp.Errors)
	require.NotNil(t, resp.Data)
	expected := executor.NewOrderedMap()
	expected.Set("greeting", "hello")
	assert.Equal(t, expected, *resp.Data)

	resp = Execute(&Request{
		Context: context.Background(),
		Query:   "{ missing }",
		Schema:  s,
	})
	assert.NotEmpty(t, resp.Errors)
}

func TestIsSubscription(t *testing.T) {
	s := testSchema(t)

	doc, errs := ParseAndValidate("{ greeting }", s)
	require.Empty(t, errs)
	assert.False(t, IsSubscription(doc, ""))
}
