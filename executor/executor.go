package executor

import (
	"context"
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/sirupsen/logrus"

	"github.com/solidgraph/graphql/ast"
	"github.com/solidgraph/graphql/schema"
	"github.com/solidgraph/graphql/schema/introspection"
	"github.com/solidgraph/graphql/validator"
)

// Request defines all of the inputs required to execute a GraphQL query.
type Request struct {
	Document       *ast.Document
	Schema         *schema.Schema
	OperationName  string
	VariableValues map[string]interface{}
	InitialValue   interface{}

	// Logger receives structured entries for resolver panics that are recovered during execution.
	// If nil, logrus.StandardLogger() is used.
	Logger logrus.FieldLogger
}

// ExecuteRequest executes a request. It runs synchronously to completion on the calling
// goroutine; no resolver is invoked concurrently with another.
func ExecuteRequest(ctx context.Context, r *Request) (*OrderedMap, []*Error) {
	e, err := newExecutor(ctx, r)
	if err != nil {
		return nil, []*Error{err}
	}
	opType := e.Operation.OperationType
	switch {
	case opType == nil || opType.Value == "query":
		return e.executeQuery(r.InitialValue)
	case opType.Value == "mutation":
		return e.executeMutation(r.InitialValue)
	case opType.Value == "subscription":
		return e.executeSubscriptionEvent(r.InitialValue)
	}
	panic("unexpected operation type")
}

// IsSubscription can be used to determine if a request is for a subscription.
func IsSubscription(doc *ast.Document, operationName string) bool {
	operation, err := GetOperation(doc, operationName)
	return err == nil && operation.OperationType != nil && operation.OperationType.Value == "subscription"
}

// Subscribe resolves the root subscription field of a request and returns the event source value
// produced by its resolver. Each event produced by that source is subsequently run back through
// ExecuteRequest (as an InitialValue) to materialise a response.
func Subscribe(ctx context.Context, r *Request) (interface{}, *Error) {
	e, err := newExecutor(ctx, r)
	if err != nil {
		return nil, err
	}
	if e.Operation.OperationType == nil || e.Operation.OperationType.Value != "subscription" {
		return nil, newError(e.Operation, "A subscription operation is required.")
	}
	return e.subscribe(r.InitialValue)
}

type executor struct {
	Context             context.Context
	Schema              *schema.Schema
	FragmentDefinitions map[string]*ast.FragmentDefinition
	VariableValues      map[string]interface{}
	Errors              []*Error
	Operation           *ast.OperationDefinition
	Logger              logrus.FieldLogger

	// GroupedFieldSetCache is used to cache the results of collectFields.
	GroupedFieldSetCache map[string]*GroupedFieldSet
}

func newExecutor(ctx context.Context, r *Request) (*executor, *Error) {
	operation, err := GetOperation(r.Document, r.OperationName)
	if err != nil {
		return nil, err
	}
	coercedVariableValues, err := coerceVariableValues(r.Schema, operation, r.VariableValues)
	if err != nil {
		return nil, err
	}

	logger := r.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	e := &executor{
		Context:              ctx,
		Schema:               r.Schema,
		FragmentDefinitions:  map[string]*ast.FragmentDefinition{},
		VariableValues:       coercedVariableValues,
		Operation:            operation,
		Logger:               logger,
		GroupedFieldSetCache: map[string]*GroupedFieldSet{},
	}
	for _, def := range r.Document.Definitions {
		if def, ok := def.(*ast.FragmentDefinition); ok {
			e.FragmentDefinitions[def.Name.Name] = def
		}
	}
	return e, nil
}

func (e *executor) executeQuery(initialValue interface{}) (*OrderedMap, []*Error) {
	queryType := e.Schema.QueryType()
	if !schema.IsObjectType(queryType) {
		return nil, []*Error{newError(e.Operation, "This schema cannot perform queries.")}
	}
	return e.executeRoot(queryType, initialValue)
}

func (e *executor) executeMutation(initialValue interface{}) (*OrderedMap, []*Error) {
	mutationType := e.Schema.MutationType()
	if !schema.IsObjectType(mutationType) {
		return nil, []*Error{newError(e.Operation, "This schema cannot perform mutations.")}
	}
	return e.executeRoot(mutationType, initialValue)
}

func (e *executor) executeSubscriptionEvent(initialValue interface{}) (*OrderedMap, []*Error) {
	subscriptionType := e.Schema.SubscriptionType()
	if !schema.IsObjectType(subscriptionType) {
		return nil, []*Error{newError(e.Operation, "This schema cannot perform subscriptions.")}
	}
	return e.executeRoot(subscriptionType, initialValue)
}

func (e *executor) executeRoot(objectType *schema.ObjectType, initialValue interface{}) (*OrderedMap, []*Error) {
	data, err := e.executeSelections(e.Operation.SelectionSet.Selections, objectType, initialValue, nil)
	if err != nil {
		e.Errors = append(e.Errors, err.(*Error))
		return nil, e.Errors
	}
	return data, e.Errors
}

func (e *executor) subscribe(initialValue interface{}) (interface{}, *Error) {
	subscriptionType := e.Schema.SubscriptionType()
	if !schema.IsObjectType(subscriptionType) {
		return nil, newError(e.Operation, "This schema cannot perform subscriptions.")
	}

	groupedFieldSet := e.collectFields(subscriptionType, e.Operation.SelectionSet.Selections)

	if groupedFieldSet.Len() != 1 {
		return nil, newError(e.Operation.SelectionSet, "Subscriptions must contain exactly one root field selection.")
	}

	item := groupedFieldSet.Items()[0]
	fields := item.Fields
	field := fields[0]
	fieldName := field.Name.Name
	fieldDef := subscriptionType.Fields[fieldName]
	if fieldDef == nil {
		return nil, newError(field, "Undefined root subscription field.")
	}
	argumentValues, err := coerceArgumentValues(field, fieldDef.Arguments, field.Arguments, e.VariableValues)
	if err != nil {
		return nil, err
	}

	resolveValue, resolveErr := e.callResolve(fieldDef, fields, schema.FieldContext{
		Context:     e.Context,
		Schema:      e.Schema,
		Object:      initialValue,
		Arguments:   argumentValues,
		IsSubscribe: true,
	})
	if !isNil(resolveErr) {
		return nil, newFieldResolveError(fields, resolveErr, nil)
	}
	return resolveValue, nil
}

// callResolve invokes a field's resolver, recovering and logging any panic so that a single
// misbehaving resolver can't take down the entire request.
func (e *executor) callResolve(fieldDef *schema.FieldDefinition, fields []*ast.Field, fieldCtx schema.FieldContext) (resolvedValue interface{}, resolveErr error) {
	defer func() {
		if r := recover(); r != nil {
			e.Logger.WithFields(logrus.Fields{
				"field": fields[0].Name.Name,
				"panic": r,
			}).Error("recovered from panic in field resolver")
			resolveErr = fmt.Errorf("internal error")
		}
	}()
	return fieldDef.Resolve(fieldCtx)
}

// executeSelections runs the CollectFields/ExecuteSelectionSet algorithm against objectValue,
// invoking every field's resolver inline before returning.
func (e *executor) executeSelections(selections []ast.Selection, objectType *schema.ObjectType, objectValue interface{}, path *path) (*OrderedMap, error) {
	groupedFieldSet := e.collectFields(objectType, selections)

	resultMap := NewOrderedMap()

	for _, item := range groupedFieldSet.Items() {
		responseKey := item.Key
		fields := item.Fields
		fieldName := fields[0].Name.Name

		if fieldName == "__typename" {
			resultMap.Set(responseKey, objectType.Name)
			continue
		}

		fieldDef := objectType.Fields[fieldName]
		if fieldDef == nil && objectType == e.Schema.QueryType() {
			fieldDef = introspection.MetaFields[fieldName]
		}
		if fieldDef == nil {
			continue
		}

		responseValue, err := e.executeField(objectValue, fields, fieldDef, path.WithStringComponent(responseKey))
		if err != nil {
			if schema.IsNonNullType(fieldDef.Type) {
				return nil, err
			}
			e.Errors = append(e.Errors, err.(*Error))
			responseValue = nil
		}
		resultMap.Set(responseKey, responseValue)
	}

	return resultMap, nil
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) && rv.IsNil()
}

func newFieldResolveError(fields []*ast.Field, err error, path *path) *Error {
	locations := make([]Location, len(fields))
	for i, field := range fields {
		locations[i].Line = field.Position().Line
		locations[i].Column = field.Position().Column
	}
	return &Error{
		Message:       err.Error(),
		Locations:     locations,
		Path:          path.Slice(),
		originalError: err,
	}
}

func (e *executor) executeField(objectValue interface{}, fields []*ast.Field, fieldDef *schema.FieldDefinition, path *path) (interface{}, error) {
	field := fields[0]
	argumentValues, coercionErr := coerceArgumentValues(field, fieldDef.Arguments, field.Arguments, e.VariableValues)
	if coercionErr != nil {
		return nil, coercionErr
	}
	if err := e.Context.Err(); err != nil {
		return nil, newFieldResolveError(fields, err, path)
	}
	resolvedValue, err := e.callResolve(fieldDef, fields, schema.FieldContext{
		Context:   e.Context,
		Schema:    e.Schema,
		Object:    objectValue,
		Arguments: argumentValues,
	})
	if !isNil(err) {
		return nil, newFieldResolveError(fields, err, path)
	}
	return e.completeValue(fieldDef.Type, fields, resolvedValue, path)
}

func (e *executor) completeValue(fieldType schema.Type, fields []*ast.Field, result interface{}, path *path) (interface{}, error) {
	if nonNullType, ok := fieldType.(*schema.NonNullType); ok {
		completed, err := e.completeValue(nonNullType.Type, fields, result, path)
		if err != nil {
			return nil, err
		}
		if completed == nil {
			return nil, newErrorWithPath(fields[0], path, "Cannot return null for non-null field")
		}
		return completed, nil
	}

	if isNil(result) {
		return nil, nil
	}

	switch fieldType := fieldType.(type) {
	case *schema.ListType:
		result := reflect.ValueOf(result)
		if result.Kind() != reflect.Slice {
			return nil, newErrorWithPath(fields[0], path, "Expected list but got %v", result.Type())
		}
		innerType := fieldType.Type
		completedResult := make([]interface{}, result.Len())
		for i := range completedResult {
			item, err := e.completeValue(innerType, fields, result.Index(i).Interface(), path.WithIntComponent(i))
			if err != nil {
				if schema.IsNonNullType(innerType) {
					return nil, err
				}
				e.Errors = append(e.Errors, err.(*Error))
				item = nil
			}
			completedResult[i] = item
		}
		return completedResult, nil
	case *schema.ScalarType:
		coerced, err := fieldType.CoerceResult(result)
		if err != nil {
			return nil, newErrorWithPath(fields[0], path, "Unexpected result: %v", err)
		}
		return coerced, nil
	case *schema.EnumType:
		coerced, err := fieldType.CoerceResult(result)
		if err != nil {
			return nil, newErrorWithPath(fields[0], path, "Unexpected result: %v", err)
		}
		return coerced, nil
	case *schema.ObjectType, *schema.InterfaceType, *schema.UnionType:
		var objectType *schema.ObjectType
		switch fieldType := fieldType.(type) {
		case *schema.ObjectType:
			objectType = fieldType
		case *schema.InterfaceType:
			for _, t := range e.Schema.InterfaceImplementations(fieldType.Name) {
				if t.IsTypeOf != nil && t.IsTypeOf(result) {
					objectType = t
					break
				}
			}
		case *schema.UnionType:
			if fieldType.ResolveType != nil {
				name := fieldType.ResolveType(result)
				for _, t := range fieldType.MemberTypes {
					if t.Name == name {
						objectType = t
						break
					}
				}
				break
			}
			for _, t := range fieldType.MemberTypes {
				if t.IsTypeOf != nil && t.IsTypeOf(result) {
					objectType = t
					break
				}
			}
		}
		if objectType == nil {
			return nil, newErrorWithPath(fields[0], path, "Unable to determine object type.")
		}
		return e.executeSelections(mergeSelectionSets(fields), objectType, result, path)
	}
	panic(fmt.Sprintf("unexpected field type: %T", fieldType))
}

func mergeSelectionSets(fields []*ast.Field) []ast.Selection {
	var selectionSet []ast.Selection
	for _, field := range fields {
		if field.SelectionSet == nil {
			continue
		}
		selectionSet = append(selectionSet, field.SelectionSet.Selections...)
	}
	return selectionSet
}

func (e *executor) collectFields(objectType *schema.ObjectType, selections []ast.Selection) *GroupedFieldSet {
	// collectFields can be called many times with the same inputs throughout a query's execution,
	// so we memoize the return value.

	cacheKeyBytes := make([]byte, len(objectType.Name)+16*len(selections))
	copy(cacheKeyBytes, objectType.Name)
	for i, sel := range selections {
		pos := sel.Position()
		binary.LittleEndian.PutUint64(cacheKeyBytes[len(objectType.Name)+i*16:], uint64(pos.Line))
		binary.LittleEndian.PutUint64(cacheKeyBytes[len(objectType.Name)+i*16+8:], uint64(pos.Column))
	}
	cacheKey := string(cacheKeyBytes)

	if hit, ok := e.GroupedFieldSetCache[cacheKey]; ok {
		return hit
	}

	groupedFieldSet := NewGroupedFieldSetWithCapacity(len(selections))
	e.collectFieldsImpl(objectType, selections, nil, groupedFieldSet)
	e.GroupedFieldSetCache[cacheKey] = groupedFieldSet
	return groupedFieldSet
}

func (e *executor) collectFieldsImpl(objectType *schema.ObjectType, selections []ast.Selection, visitedFragments map[string]struct{}, groupedFields *GroupedFieldSet) {
	if visitedFragments == nil {
		visitedFragments = map[string]struct{}{}
	}
	for _, selection := range selections {
		skip := false
		for _, directive := range selection.SelectionDirectives() {
			if def := e.Schema.Directives()[directive.Name.Name]; def != nil && def.FieldCollectionFilter != nil {
				if arguments, err := coerceArgumentValues(directive, def.Arguments, directive.Arguments, e.VariableValues); err == nil && !def.FieldCollectionFilter(arguments) {
					skip = true
				}
			}
		}
		if skip {
			continue
		}

		switch selection := selection.(type) {
		case *ast.Field:
			responseKey := selection.Name.Name
			if selection.Alias != nil {
				responseKey = selection.Alias.Name
			}
			groupedFields.Append(responseKey, selection)
		case *ast.FragmentSpread:
			fragmentSpreadName := selection.FragmentName.Name
			if _, ok := visitedFragments[fragmentSpreadName]; ok {
				continue
			}
			visitedFragments[fragmentSpreadName] = struct{}{}

			fragment := e.FragmentDefinitions[fragmentSpreadName]
			if fragment == nil {
				continue
			}

			fragmentType := schemaType(fragment.TypeCondition, e.Schema)
			if fragmentType == nil || !doesFragmentTypeApply(objectType, fragmentType) {
				continue
			}

			e.collectFieldsImpl(objectType, fragment.SelectionSet.Selections, visitedFragments, groupedFields)
		case *ast.InlineFragment:
			if selection.TypeCondition != nil {
				fragmentType := schemaType(selection.TypeCondition, e.Schema)
				if fragmentType == nil || !doesFragmentTypeApply(objectType, fragmentType) {
					continue
				}
			}

			e.collectFieldsImpl(objectType, selection.SelectionSet.Selections, visitedFragments, groupedFields)
		default:
			panic(fmt.Sprintf("unexpected selection type: %T", selection))
		}
	}
}

func doesFragmentTypeApply(objectType *schema.ObjectType, fragmentType schema.Type) bool {
	switch fragmentType := fragmentType.(type) {
	case *schema.ObjectType:
		return objectType.IsSameType(fragmentType)
	case *schema.InterfaceType:
		for _, impl := range objectType.ImplementedInterfaces {
			if impl.IsSameType(fragmentType) {
				return true
			}
		}
		return false
	case *schema.UnionType:
		for _, member := range fragmentType.MemberTypes {
			if member.IsSameType(objectType) {
				return true
			}
		}
		return false
	}
	panic(fmt.Sprintf("unexpected fragment type: %T", fragmentType))
}

// GetOperation returns the operation selected by the given name. If operationName is "" and the
// document contains only one operation, it is returned. Otherwise the document must contain exactly
// one operation with the given name.
func GetOperation(doc *ast.Document, operationName string) (*ast.OperationDefinition, *Error) {
	var ret *ast.OperationDefinition
	for _, def := range doc.Definitions {
		if def, ok := def.(*ast.OperationDefinition); ok {
			if operationName == "" || (def.Name != nil && def.Name.Name == operationName) {
				if ret != nil {
					if operationName == "" {
						return nil, newError(def, "Must provide operation name if query contains multiple operations")
					}
					return nil, newError(def, "Multiple matching operations.")
				}
				ret = def
			}
		}
	}
	if ret == nil {
		return nil, newError(nil, "No operation found")
	}
	return ret, nil
}

func namedType(s *schema.Schema, name string) schema.NamedType {
	if ret := s.NamedType(name); ret != nil {
		return ret
	}
	return introspection.NamedTypes[name]
}

func schemaType(t ast.Type, s *schema.Schema) schema.Type {
	switch t := t.(type) {
	case *ast.ListType:
		if inner := schemaType(t.Type, s); inner != nil {
			return schema.NewListType(inner)
		}
	case *ast.NonNullType:
		if inner := schemaType(t.Type, s); inner != nil {
			return schema.NewNonNullType(inner)
		}
	case *ast.NamedType:
		return namedType(s, t.Name.Name)
	default:
		panic(fmt.Sprintf("unexpected ast type: %T", t))
	}
	return nil
}

func coerceVariableValues(s *schema.Schema, operation *ast.OperationDefinition, variableValues map[string]interface{}) (map[string]interface{}, *Error) {
	ret, err := validator.CoerceVariableValues(s, operation, variableValues)
	return ret, newErrorWithValidatorError(err)
}

func coerceArgumentValues(node ast.Node, argumentDefinitions map[string]*schema.InputValueDefinition, arguments []*ast.Argument, variableValues map[string]interface{}) (map[string]interface{}, *Error) {
	ret, err := validator.CoerceArgumentValues(node, argumentDefinitions, arguments, variableValues)
	return ret, newErrorWithValidatorError(err)
}
