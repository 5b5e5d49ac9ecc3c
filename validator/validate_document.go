package validator

import (
	"github.com/solidgraph/graphql/ast"
	"github.com/solidgraph/graphql/schema"
)

func validateDocument(doc *ast.Document, schema *schema.Schema, typeInfo *TypeInfo) []*Error {
	var ret []*Error
	for _, def := range doc.Definitions {
		switch def.(type) {
		case *ast.OperationDefinition, *ast.FragmentDefinition:
		default:
			ret = append(ret, newError(def, "definitions must define an operation or fragment"))
		}
	}
	return ret
}
