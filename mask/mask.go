// Package mask renders structs for logging with sensitive fields hidden.
//
// Fields tagged `mask:"true"` are replaced by a placeholder. Field names follow the
// json tag, then the yaml tag, then the Go field name. Embedded structs are flattened.
package mask

import (
	"fmt"
	"reflect"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	tagName     = "mask"
	placeholder = "***masked***"
)

// StructToOrdMap returns an ordered map of the fields of v with sensitive values
// masked. Non-struct values are returned under an empty key. A nil v yields nil.
func StructToOrdMap(v any) *orderedmap.OrderedMap[string, any] {
	if v == nil {
		return nil
	}

	om := orderedmap.New[string, any]()
	collect(om, reflect.ValueOf(v), "")
	return om
}

func collect(om *orderedmap.OrderedMap[string, any], val reflect.Value, prefix string) {
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			om.Set(prefix, nil)
			return
		}
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		om.Set(prefix, val.Interface())
		return
	}

	typ := val.Type()
	for i := range val.NumField() {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if !fieldType.IsExported() {
			continue
		}

		if fieldType.Anonymous && isStruct(field) {
			collect(om, field, prefix)
			continue
		}

		name, skip := fieldName(fieldType)
		if skip {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}

		switch {
		case strings.EqualFold(fieldType.Tag.Get(tagName), "true"):
			om.Set(name, maskValue(field))
		case isStruct(field):
			collect(om, field, name)
		default:
			om.Set(name, field.Interface())
		}
	}
}

func isStruct(val reflect.Value) bool {
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return false
		}
		val = val.Elem()
	}
	return val.Kind() == reflect.Struct
}

// maskValue hides non-zero values. Zero values are kept so logs still show that a
// field was left empty.
func maskValue(val reflect.Value) any {
	switch val.Kind() { //nolint:exhaustive // remaining kinds are masked below
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		if val.IsNil() {
			return nil
		}
	}

	if val.IsZero() {
		return val.Interface()
	}

	if val.Kind() == reflect.String {
		return placeholder
	}
	return fmt.Sprintf("***masked-%s***", val.Kind())
}

func fieldName(field reflect.StructField) (string, bool) {
	for _, tag := range []string{"json", "yaml"} {
		value, ok := field.Tag.Lookup(tag)
		if !ok {
			continue
		}
		if value == "-" {
			return "", true
		}
		if name, _, _ := strings.Cut(value, ","); name != "" {
			return name, false
		}
	}
	return field.Name, false
}
