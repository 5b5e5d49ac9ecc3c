package schema

import (
	"fmt"

	"github.com/solidgraph/graphql/ast"
)

type EnumType struct {
	Name        string
	Description string
	Directives  []*Directive
	Values      map[string]*EnumValueDefinition
}

type EnumValueDefinition struct {
	Description string
	Directives  []*Directive

	// Value is the Go value that this enum value coerces to. If nil, the enum value's name is used.
	Value interface{}

	DeprecationReason string
}

func (t *EnumType) String() string {
	return t.Name
}

func (t *EnumType) IsInputType() bool {
	return true
}

func (t *EnumType) IsOutputType() bool {
	return true
}

func (t *EnumType) IsSubTypeOf(other Type) bool {
	return t.IsSameType(other)
}

func (t *EnumType) IsSameType(other Type) bool {
	return t == other
}

func (t *EnumType) NamedType() string {
	return t.Name
}

func (d *EnumType) shallowValidate() error {
	if len(d.Values) == 0 {
		return fmt.Errorf("%v must have at least one field", d.Name)
	} else {
		for name := range d.Values {
			if !isName(name) || name == "true" || name == "false" || name == "null" {
				return fmt.Errorf("illegal field name: %v", name)
			}
		}
	}
	return nil
}

func (t *EnumType) valueFor(name string) (interface{}, bool) {
	def, ok := t.Values[name]
	if !ok {
		return nil, false
	}
	if def.Value != nil {
		return def.Value, true
	}
	return name, true
}

func (t *EnumType) nameFor(value interface{}) (string, bool) {
	for name, def := range t.Values {
		if def.Value != nil {
			if def.Value == value {
				return name, true
			}
		} else if name == value {
			return name, true
		}
	}
	return "", false
}

func (t *EnumType) CoerceVariableValue(v interface{}) (interface{}, error) {
	name, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("enum values must be provided as strings")
	}
	if value, ok := t.valueFor(name); ok {
		return value, nil
	}
	return nil, fmt.Errorf("%v is not a valid value for %v", name, t.Name)
}

func (t *EnumType) CoerceLiteral(v ast.Value) (interface{}, error) {
	enumValue, ok := v.(*ast.EnumValue)
	if !ok {
		return nil, fmt.Errorf("enum values must be provided as enum literals")
	}
	if value, ok := t.valueFor(enumValue.Value); ok {
		return value, nil
	}
	return nil, fmt.Errorf("%v is not a valid value for %v", enumValue.Value, t.Name)
}

func (t *EnumType) CoerceResult(v interface{}) (interface{}, error) {
	name, ok := t.nameFor(v)
	if !ok {
		return nil, fmt.Errorf("%v is not a valid value for %v", v, t.Name)
	}
	return name, nil
}

func IsEnumType(t Type) bool {
	_, ok := t.(*EnumType)
	return ok
}
