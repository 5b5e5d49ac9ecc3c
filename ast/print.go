package ast

import (
	"fmt"
	"strings"
)

// Print renders doc back into GraphQL query-language source text. It does not attempt to
// reproduce the original formatting or comments; it exists so that a document built or mutated in
// memory (rather than parsed from source) can be serialized, and so round-tripping a parsed
// document through Print and back through the parser can be used as a consistency check.
func Print(doc *Document) string {
	var b strings.Builder
	for i, def := range doc.Definitions {
		if i > 0 {
			b.WriteString("\n\n")
		}
		printDefinition(&b, def)
	}
	return b.String()
}

func printDefinition(b *strings.Builder, def Definition) {
	switch def := def.(type) {
	case *OperationDefinition:
		printOperationDefinition(b, def)
	case *FragmentDefinition:
		printFragmentDefinition(b, def)
	default:
		panic(fmt.Sprintf("unsupported definition type: %T", def))
	}
}

func printOperationDefinition(b *strings.Builder, def *OperationDefinition) {
	if def.OperationType == nil && def.Name == nil && len(def.VariableDefinitions) == 0 && len(def.Directives) == 0 {
		printSelectionSet(b, def.SelectionSet)
		return
	}

	if def.OperationType != nil {
		b.WriteString(def.OperationType.Value)
	} else {
		b.WriteString("query")
	}
	if def.Name != nil {
		b.WriteString(" ")
		b.WriteString(def.Name.Name)
	}
	if len(def.VariableDefinitions) > 0 {
		b.WriteString("(")
		for i, v := range def.VariableDefinitions {
			if i > 0 {
				b.WriteString(", ")
			}
			printVariableDefinition(b, v)
		}
		b.WriteString(")")
	}
	printDirectives(b, def.Directives)
	b.WriteString(" ")
	printSelectionSet(b, def.SelectionSet)
}

func printVariableDefinition(b *strings.Builder, v *VariableDefinition) {
	b.WriteString("$")
	b.WriteString(v.Variable.Name.Name)
	b.WriteString(": ")
	printType(b, v.Type)
	if v.DefaultValue != nil {
		b.WriteString(" = ")
		printValue(b, v.DefaultValue)
	}
}

func printFragmentDefinition(b *strings.Builder, def *FragmentDefinition) {
	b.WriteString("fragment ")
	b.WriteString(def.Name.Name)
	b.WriteString(" on ")
	b.WriteString(def.TypeCondition.Name.Name)
	printDirectives(b, def.Directives)
	b.WriteString(" ")
	printSelectionSet(b, def.SelectionSet)
}

func printType(b *strings.Builder, t Type) {
	switch t := t.(type) {
	case *NamedType:
		b.WriteString(t.Name.Name)
	case *ListType:
		b.WriteString("[")
		printType(b, t.Type)
		b.WriteString("]")
	case *NonNullType:
		printType(b, t.Type)
		b.WriteString("!")
	default:
		panic(fmt.Sprintf("unsupported type: %T", t))
	}
}

func printDirectives(b *strings.Builder, directives []*Directive) {
	for _, d := range directives {
		b.WriteString(" @")
		b.WriteString(d.Name.Name)
		if len(d.Arguments) > 0 {
			printArguments(b, d.Arguments)
		}
	}
}

func printArguments(b *strings.Builder, args []*Argument) {
	b.WriteString("(")
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.Name.Name)
		b.WriteString(": ")
		printValue(b, a.Value)
	}
	b.WriteString(")")
}

func printSelectionSet(b *strings.Builder, s *SelectionSet) {
	b.WriteString("{ ")
	for i, sel := range s.Selections {
		if i > 0 {
			b.WriteString(" ")
		}
		printSelection(b, sel)
	}
	b.WriteString(" }")
}

func printSelection(b *strings.Builder, sel Selection) {
	switch sel := sel.(type) {
	case *Field:
		if sel.Alias != nil {
			b.WriteString(sel.Alias.Name)
			b.WriteString(": ")
		}
		b.WriteString(sel.Name.Name)
		if len(sel.Arguments) > 0 {
			printArguments(b, sel.Arguments)
		}
		printDirectives(b, sel.Directives)
		if sel.SelectionSet != nil {
			b.WriteString(" ")
			printSelectionSet(b, sel.SelectionSet)
		}
	case *FragmentSpread:
		b.WriteString("...")
		b.WriteString(sel.FragmentName.Name)
		printDirectives(b, sel.Directives)
	case *InlineFragment:
		b.WriteString("...")
		if sel.TypeCondition != nil {
			b.WriteString(" on ")
			b.WriteString(sel.TypeCondition.Name.Name)
		}
		printDirectives(b, sel.Directives)
		b.WriteString(" ")
		printSelectionSet(b, sel.SelectionSet)
	default:
		panic(fmt.Sprintf("unsupported selection type: %T", sel))
	}
}

// quoteString renders s as a GraphQL string literal, using only the escape sequences the lexer
// itself recognizes ("\", "/", \b, \f, \n, \r, \t, \uXXXX), never Go's own quoting rules.
func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

func printValue(b *strings.Builder, v Value) {
	switch v := v.(type) {
	case *Variable:
		b.WriteString("$")
		b.WriteString(v.Name.Name)
	case *IntValue:
		b.WriteString(v.Value)
	case *FloatValue:
		b.WriteString(v.Value)
	case *StringValue:
		b.WriteString(quoteString(v.Value))
	case *BooleanValue:
		if v.Value {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case *NullValue:
		b.WriteString("null")
	case *EnumValue:
		b.WriteString(v.Value)
	case *ListValue:
		b.WriteString("[")
		for i, item := range v.Values {
			if i > 0 {
				b.WriteString(", ")
			}
			printValue(b, item)
		}
		b.WriteString("]")
	case *ObjectValue:
		b.WriteString("{")
		for i, f := range v.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name.Name)
			b.WriteString(": ")
			printValue(b, f.Value)
		}
		b.WriteString("}")
	default:
		panic(fmt.Sprintf("unsupported value type: %T", v))
	}
}
