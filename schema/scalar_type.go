package schema

import (
	"fmt"

	"github.com/solidgraph/graphql/ast"
)

type ScalarType struct {
	Name        string
	Description string
	Directives  []*Directive

	// LiteralCoercion coerces an AST literal into a Go value. It should return nil if coercion is
	// impossible.
	LiteralCoercion func(ast.Value) interface{}

	// VariableValueCoercion coerces a value decoded from a variables JSON object into a Go value.
	// It should return nil if coercion is impossible.
	VariableValueCoercion func(interface{}) interface{}

	// ResultCoercion coerces a resolver's return value into a value suitable for serialization. It
	// should return nil if coercion is impossible.
	ResultCoercion func(interface{}) interface{}
}

func (t *ScalarType) String() string {
	return t.Name
}

func (t *ScalarType) IsInputType() bool {
	return true
}

func (t *ScalarType) IsOutputType() bool {
	return true
}

func (t *ScalarType) IsSubTypeOf(other Type) bool {
	return t.IsSameType(other)
}

func (t *ScalarType) IsSameType(other Type) bool {
	return t == other
}

func (t *ScalarType) NamedType() string {
	return t.Name
}

func (t *ScalarType) CoerceVariableValue(v interface{}) (interface{}, error) {
	if t.VariableValueCoercion == nil {
		return nil, fmt.Errorf("%v does not support variable value coercion", t.Name)
	}
	if coerced := t.VariableValueCoercion(v); coerced != nil {
		return coerced, nil
	}
	return nil, fmt.Errorf("cannot coerce to %v", t.Name)
}

func (t *ScalarType) CoerceResult(v interface{}) (interface{}, error) {
	if t.ResultCoercion == nil {
		return nil, fmt.Errorf("%v does not support result coercion", t.Name)
	}
	if coerced := t.ResultCoercion(v); coerced != nil {
		return coerced, nil
	}
	return nil, fmt.Errorf("cannot coerce result to %v", t.Name)
}

func IsScalarType(t Type) bool {
	_, ok := t.(*ScalarType)
	return ok
}
