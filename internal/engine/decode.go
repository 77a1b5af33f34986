package engine

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/caseforge/caseforge/internal/ctyutil"
)

// decodeInto populates a schema struct from a raw cty value mapping. Fields
// are matched through `cf:"<key>[,optional]"` tags; a missing key keeps the
// struct's default for optional fields and fails validation for required
// ones. Unrecognized keys are ignored, matching the documented config
// contract ("modules may ignore extra values").
func decodeInto(target any, values map[string]cty.Value) error {
	ptr := reflect.ValueOf(target)
	if ptr.Kind() != reflect.Ptr || ptr.IsNil() {
		return fmt.Errorf("schema target must be a non-nil pointer, got %T", target)
	}
	structVal := ptr.Elem()
	structType := structVal.Type()
	if structType.Kind() != reflect.Struct {
		return fmt.Errorf("schema target must point to a struct, got %T", target)
	}

	for i := 0; i < structType.NumField(); i++ {
		fieldDef := structType.Field(i)
		fieldVal := structVal.Field(i)
		if !fieldDef.IsExported() || !fieldVal.CanSet() {
			continue
		}

		tag := fieldDef.Tag.Get("cf")
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" || name == "-" {
			continue
		}
		optional := opts == "optional"

		val, provided := values[name]
		if !provided || val.IsNull() {
			if optional {
				continue
			}
			return &fieldError{field: name, detail: "missing required field"}
		}

		if err := decodeValue(val, fieldVal.Addr().Interface()); err != nil {
			return &fieldError{field: name, detail: err.Error()}
		}
	}
	return nil
}

// decodeValue is the recursive worker populating one Go value from a cty
// value. The Go type is the schema: cty types are implied from it, so a
// module's struct declaration fully determines what validates.
func decodeValue(val cty.Value, goVal any) error {
	goPtr := reflect.ValueOf(goVal).Elem()
	goType := goPtr.Type()

	// Modules may keep a raw cty.Value field to defer interpretation.
	if goType == reflect.TypeOf(cty.Value{}) {
		goPtr.Set(reflect.ValueOf(val))
		return nil
	}

	if !val.IsKnown() || val.IsNull() {
		return nil
	}

	switch goType.Kind() {
	case reflect.Interface: // any
		native, err := ctyutil.CtyToNative(val)
		if err != nil {
			return err
		}
		if native != nil {
			goPtr.Set(reflect.ValueOf(native))
		}
		return nil

	case reflect.Struct:
		if !val.Type().IsObjectType() && !val.Type().IsMapType() {
			return fmt.Errorf("cannot decode %s into struct %s", val.Type().FriendlyName(), goType.String())
		}
		return decodeInto(goPtr.Addr().Interface(), val.AsValueMap())

	case reflect.Map:
		return decodeMap(val, goPtr)

	case reflect.Slice:
		return decodeSlice(val, goPtr)

	default: // primitives
		want, err := gocty.ImpliedType(reflect.Zero(goType).Interface())
		if err != nil {
			return fmt.Errorf("cannot imply schema type for %s: %w", goType.String(), err)
		}
		converted, err := convert.Convert(val, want)
		if err != nil {
			return fmt.Errorf("cannot convert %s to %s: %w", val.Type().FriendlyName(), want.FriendlyName(), err)
		}
		return gocty.FromCtyValue(converted, goVal)
	}
}

func decodeMap(val cty.Value, goPtr reflect.Value) error {
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return fmt.Errorf("cannot decode %s into %s", val.Type().FriendlyName(), goPtr.Type().String())
	}

	// Fast path for the common generic mapping.
	if goPtr.Type() == reflect.TypeOf((map[string]any)(nil)) {
		native, err := ctyutil.CtyToNative(val)
		if err != nil {
			return err
		}
		if native != nil {
			goPtr.Set(reflect.ValueOf(native))
		}
		return nil
	}

	newMap := reflect.MakeMap(goPtr.Type())
	for it := val.ElementIterator(); it.Next(); {
		key, elem := it.Element()
		elemPtr := reflect.New(goPtr.Type().Elem())
		if err := decodeValue(elem, elemPtr.Interface()); err != nil {
			return fmt.Errorf("map element %q: %w", key.AsString(), err)
		}
		newMap.SetMapIndex(reflect.ValueOf(key.AsString()), elemPtr.Elem())
	}
	goPtr.Set(newMap)
	return nil
}

func decodeSlice(val cty.Value, goPtr reflect.Value) error {
	if !val.Type().IsListType() && !val.Type().IsTupleType() && !val.Type().IsSetType() {
		return fmt.Errorf("cannot decode %s into %s", val.Type().FriendlyName(), goPtr.Type().String())
	}

	length := val.LengthInt()
	newSlice := reflect.MakeSlice(goPtr.Type(), length, length)
	i := 0
	for it := val.ElementIterator(); it.Next(); i++ {
		_, elem := it.Element()
		if err := decodeValue(elem, newSlice.Index(i).Addr().Interface()); err != nil {
			return fmt.Errorf("slice element %d: %w", i, err)
		}
	}
	goPtr.Set(newSlice)
	return nil
}
