package validator

import (
	"fmt"

	"github.com/solidgraph/graphql/ast"
	"github.com/solidgraph/graphql/schema"
)

// Location represents the location of a character within a query's source text.
type Location struct {
	Line   int
	Column int
}

type Error struct {
	Message string

	// Nearly all errors have locations, which point to one or more relevant query tokens.
	Locations []Location

	// If a validator is unable to perform its job due to an error unrelated to its purpose, it will
	// emit a secondary error. Secondary errors are always errors that should be caught by other
	// validators, so if there are any primary errors, secondary errors are discarded as they should
	// all be duplicates. If a secondary error makes it out of validation, there's probably a
	// mistake in one of the validators.
	isSecondary bool
}

func (err *Error) Error() string {
	return err.Message
}

func newError(node ast.Node, message string, args ...interface{}) *Error {
	ret := &Error{
		Message: fmt.Sprintf(message, args...),
	}
	if node != nil {
		ret.Locations = []Location{{
			Line:   node.Position().Line,
			Column: node.Position().Column,
		}}
	}
	return ret
}

func newSecondaryError(node ast.Node, message string, args ...interface{}) *Error {
	ret := newError(node, message, args...)
	ret.isSecondary = true
	return ret
}

func ValidateDocument(doc *ast.Document, s *schema.Schema) []*Error {
	typeInfo := NewTypeInfo(doc, s)
	var errs []*Error
	for _, f := range []func(*ast.Document, *schema.Schema, *TypeInfo) []*Error{
		validateDocument,
		validateOperations,
		validateFields,
		validateArguments,
		validateFragments,
		validateValues,
		validateDirectives,
		validateVariables,
	} {
		errs = append(errs, f(doc, s, typeInfo)...)
	}
	var primary []*Error
	for _, err := range errs {
		if !err.isSecondary {
			primary = append(primary, err)
		}
	}
	if len(primary) > 0 {
		return primary
	}
	return errs
}
