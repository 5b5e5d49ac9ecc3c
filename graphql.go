package graphql

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/solidgraph/graphql/ast"
	"github.com/solidgraph/graphql/executor"
	"github.com/solidgraph/graphql/parser"
	"github.com/solidgraph/graphql/schema"
	"github.com/solidgraph/graphql/validator"
)

// Directive represents a GraphQL directive.
type Directive = schema.Directive

// Type represents a GraphQL type.
type Type = schema.Type

// NamedType represents any GraphQL named type.
type NamedType = schema.NamedType

// ObjectType represents a GraphQL object type.
type ObjectType = schema.ObjectType

// InterfaceType represents a GraphQL interface type.
type InterfaceType = schema.InterfaceType

// EnumType represents a GraphQL enum type.
type EnumType = schema.EnumType

// ScalarType represents a GraphQL scalar type.
type ScalarType = schema.ScalarType

// UnionType represents a GraphQL union type.
type UnionType = schema.UnionType

// InputObjectType represents a GraphQL input object type.
type InputObjectType = schema.InputObjectType

// NonNullType represents a non-null GraphQL type.
type NonNullType = schema.NonNullType

// ListType represents a GraphQL list type.
type ListType = schema.ListType

// FieldContext is provided to field resolvers and contains important context such as the current
// object and arguments. Resolvers are invoked synchronously and inline; a FieldContext is never
// shared across goroutines.
type FieldContext = schema.FieldContext

// EnumValueDefinition defines a possible value for an enum type.
type EnumValueDefinition = schema.EnumValueDefinition

// InputValueDefinition defines an input value such as an argument.
type InputValueDefinition = schema.InputValueDefinition

// FieldDefinition defines a field on an object type.
type FieldDefinition = schema.FieldDefinition

// DirectiveDefinition defines a directive.
type DirectiveDefinition = schema.DirectiveDefinition

// IncludeDirective implements the @include directive as defined by the GraphQL spec.
var IncludeDirective = schema.IncludeDirective

// SkipDirective implements the @skip directive as defined by the GraphQL spec.
var SkipDirective = schema.SkipDirective

// IDType implements the ID type as defined by the GraphQL spec. It can be deserialized from a
// string or an integer type, but always serializes to a string.
var IDType = schema.IDType

// StringType implements the String type as defined by the GraphQL spec.
var StringType = schema.StringType

// IntType implements the Int type as defined by the GraphQL spec.
var IntType = schema.IntType

// FloatType implements the Float type as defined by the GraphQL spec.
var FloatType = schema.FloatType

// BooleanType implements the Boolean type as defined by the GraphQL spec.
var BooleanType = schema.BooleanType

// NewNonNullType creates a new non-null type with the given wrapped type.
func NewNonNullType(t Type) *NonNullType {
	return schema.NewNonNullType(t)
}

// NewListType creates a new list type with the given element type.
func NewListType(t Type) *ListType {
	return schema.NewListType(t)
}

// Schema represents a GraphQL schema.
type Schema = schema.Schema

// SchemaDefinition defines a GraphQL schema.
type SchemaDefinition = schema.SchemaDefinition

// NewSchema validates a schema definition and builds a Schema from it.
func NewSchema(def *SchemaDefinition) (*Schema, error) {
	return schema.New(def)
}

// Request defines all of the inputs required to execute a GraphQL query. Execution is
// synchronous: Execute and Subscribe run the entire request on the calling goroutine and return
// only once every field has been resolved.
type Request struct {
	Context context.Context

	Query string

	// In some cases, you may want to optimize by providing the parsed and validated AST document
	// instead of Query.
	Document *ast.Document

	Schema         *Schema
	OperationName  string
	VariableValues map[string]interface{}
	InitialValue   interface{}

	// Logger receives structured entries for resolver panics that are recovered during execution.
	// If nil, logrus.StandardLogger() is used.
	Logger logrus.FieldLogger
}

func (r *Request) executorRequest(doc *ast.Document) *executor.Request {
	return &executor.Request{
		Document:       doc,
		Schema:         r.Schema,
		OperationName:  r.OperationName,
		VariableValues: r.VariableValues,
		InitialValue:   r.InitialValue,
		Logger:         r.Logger,
	}
}

// Error represents a GraphQL error as it appears in a response: a single "message" mapping. The
// engine tracks source locations and field paths internally (see executor.Error, validator.Error)
// for logging purposes, but the response contract only guarantees the message text.
type Error struct {
	Message string `json:"message"`
}

func (err *Error) Error() string {
	return err.Message
}

// Response represents the result of executing a GraphQL query.
type Response struct {
	Data   *interface{} `json:"data,omitempty"`
	Errors []*Error     `json:"errors,omitempty"`
}

// IsSubscription returns true if the operation with the given name is a subscription operation.
// operationName can be "", in which case true will be returned if the only operation in the
// document is a subscription. In any error case (such as multiple matching subscriptions), false is
// returned.
func IsSubscription(doc *ast.Document, operationName string) bool {
	return executor.IsSubscription(doc, operationName)
}

func newErrorFromValidatorError(err *validator.Error) *Error {
	return &Error{
		Message: err.Message,
	}
}

// ParseAndValidate parses and validates a query.
func ParseAndValidate(query string, schema *Schema) (*ast.Document, []*Error) {
	var errors []*Error
	parsed, parseErrs := parser.ParseDocument([]byte(query))
	if len(parseErrs) > 0 {
		for _, err := range parseErrs {
			errors = append(errors, &Error{
				Message: "Syntax error: " + err.Error(),
			})
		}
		return nil, errors
	}
	if validationErrs := validator.ValidateDocument(parsed, schema); len(validationErrs) > 0 {
		for _, err := range validationErrs {
			errors = append(errors, newErrorFromValidatorError(err))
		}
		return nil, errors
	}
	return parsed, nil
}

func newErrorFromExecutorError(err *executor.Error) *Error {
	return &Error{
		Message: err.Message,
	}
}

// Subscribe is used to implement subscription support. For subscribe operations (as indicated via
// IsSubscription), this should be invoked instead of Execute. On success it returns the event
// source value produced by the root subscription field's resolver; each event it emits should be
// run back through Execute as InitialValue to materialize a response.
func Subscribe(r *Request) (interface{}, []*Error) {
	doc := r.Document
	if doc == nil {
		var errors []*Error
		doc, errors = ParseAndValidate(r.Query, r.Schema)
		if len(errors) > 0 {
			return nil, errors
		}
	}

	ret, err := executor.Subscribe(r.Context, r.executorRequest(doc))
	if err != nil {
		return nil, []*Error{newErrorFromExecutorError(err)}
	}
	return ret, nil
}

// Execute executes a query. If the request does not have a Document defined, the Query field will
// be parsed and validated. Execute runs synchronously and returns only once the full response has
// been materialized.
func Execute(r *Request) *Response {
	ret := &Response{}
	doc := r.Document
	if doc == nil {
		var errors []*Error
		doc, errors = ParseAndValidate(r.Query, r.Schema)
		if len(errors) > 0 {
			return &Response{
				Errors: errors,
			}
		}
	}

	data, errs := executor.ExecuteRequest(r.Context, r.executorRequest(doc))
	var dataInterface interface{}
	dataInterface = data
	ret.Data = &dataInterface
	for _, err := range errs {
		ret.Errors = append(ret.Errors, newErrorFromExecutorError(err))
	}
	return ret
}
