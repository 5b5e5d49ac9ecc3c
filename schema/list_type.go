package schema

import (
	"fmt"

	"github.com/solidgraph/graphql/ast"
)

type ListType struct {
	Type Type
}

func NewListType(t Type) *ListType {
	return &ListType{
		Type: t,
	}
}

func (t *ListType) String() string {
	return "[" + t.Type.String() + "]"
}

func (t *ListType) IsInputType() bool {
	return t.Type.IsInputType()
}

func (t *ListType) IsOutputType() bool {
	return t.Type.IsOutputType()
}

func (t *ListType) IsSubTypeOf(other Type) bool {
	return t.IsSameType(other) || t.Type.IsSubTypeOf(other)
}

func (t *ListType) IsSameType(other Type) bool {
	if nn, ok := other.(*ListType); ok {
		return t.Type.IsSameType(nn.Type)
	}
	return false
}

func (t *ListType) Unwrap() Type {
	return t.Type
}

// coerceVariableValue coerces a value decoded from a variables JSON object. Per the GraphQL spec,
// a value that isn't itself a list is coerced as if it were a list of size one, unless
// allowItemToListCoercion is false (which is the case when this list is itself an item of an
// enclosing list, to avoid silently absorbing multiple levels of nesting).
func (t *ListType) coerceVariableValue(v interface{}, allowItemToListCoercion bool) (interface{}, error) {
	if list, ok := v.([]interface{}); ok {
		result := make([]interface{}, len(list))
		for i, item := range list {
			coerced, err := coerceVariableValue(item, t.Type, false)
			if err != nil {
				return nil, err
			}
			result[i] = coerced
		}
		return result, nil
	}
	if !allowItemToListCoercion {
		return nil, fmt.Errorf("expected a list")
	}
	coerced, err := coerceVariableValue(v, t.Type, allowItemToListCoercion)
	if err != nil {
		return nil, err
	}
	return []interface{}{coerced}, nil
}

func (t *ListType) coerceLiteral(from ast.Value, variableValues map[string]interface{}, allowItemToListCoercion bool) (interface{}, error) {
	if list, ok := from.(*ast.ListValue); ok {
		result := make([]interface{}, len(list.Values))
		for i, v := range list.Values {
			coerced, err := coerceLiteral(v, t.Type, variableValues, false)
			if err != nil {
				return nil, err
			}
			result[i] = coerced
		}
		return result, nil
	}
	if !allowItemToListCoercion {
		return nil, fmt.Errorf("expected a list")
	}
	coerced, err := coerceLiteral(from, t.Type, variableValues, allowItemToListCoercion)
	if err != nil {
		return nil, err
	}
	return []interface{}{coerced}, nil
}

func IsListType(t Type) bool {
	_, ok := t.(*ListType)
	return ok
}
