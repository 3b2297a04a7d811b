// Package validation valida bodies JSON no tipados contra un schema con nombre.
//
// Un schema es un struct Go: los tags `json` definen los campos aceptados (el
// resto se descarta) y los tags `validate` (go-playground/validator) definen
// presencia y rangos. Cada campo se decodifica por separado para poder reportar
// errores de tipo por campo en vez de abortar en el primero.
package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"animals-api/internal/errs"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// Presence lo implementan los schemas que necesitan distinguir una clave
// ausente de una enviada en null. MarkPresent se llama por cada clave conocida
// que vino en el body y decodificó bien.
type Presence interface {
	MarkPresent(key string)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	return v
}

// Schema valida payloads contra el struct T.
type Schema[T any] struct {
	Name string
}

// Validate devuelve el valor tipado o una lista no vacía de errores de campo. Sin efectos secundarios.
func (s Schema[T]) Validate(payload []byte) (T, []errs.FieldError) {
	var zero T
	var out T

	rv := reflect.ValueOf(&out).Elem()
	if rv.Kind() != reflect.Struct {
		panic(fmt.Sprintf("validation: schema %q must be a struct, got %s", s.Name, rv.Kind()))
	}

	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		trimmed = []byte("{}")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil || raw == nil {
		return zero, []errs.FieldError{{Field: "body", Error: "must be a JSON object"}}
	}

	rt := rv.Type()
	order := make(map[string]int, rt.NumField())
	typeFailed := map[string]bool{}
	var fieldErrs []errs.FieldError

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		name := jsonName(sf)
		if !sf.IsExported() || name == "" {
			continue
		}
		order[name] = i

		msg, ok := raw[name]
		if !ok {
			continue
		}

		ptr := reflect.New(sf.Type)
		if err := json.Unmarshal(msg, ptr.Interface()); err != nil {
			typeFailed[name] = true
			fieldErrs = append(fieldErrs, errs.FieldError{Field: name, Error: typeMessage(sf)})
			continue
		}
		rv.Field(i).Set(ptr.Elem())
		if p, ok := any(&out).(Presence); ok {
			p.MarkPresent(name)
		}
	}

	if err := validate.Struct(out); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return zero, []errs.FieldError{{Field: "body", Error: err.Error()}}
		}
		for _, fe := range verrs {
			if typeFailed[fe.Field()] {
				continue
			}
			fieldErrs = append(fieldErrs, errs.FieldError{Field: fe.Field(), Error: tagMessage(fe)})
		}
	}

	if len(fieldErrs) > 0 {
		sort.SliceStable(fieldErrs, func(i, j int) bool {
			return order[fieldErrs[i].Field] < order[fieldErrs[j].Field]
		})
		return zero, fieldErrs
	}

	return out, nil
}

func jsonName(sf reflect.StructField) string {
	tag := sf.Tag.Get("json")
	name := strings.Split(tag, ",")[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return sf.Name
	}
	return name
}

func typeMessage(sf reflect.StructField) string {
	t := sf.Type
	nullable := false
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
		nullable = !strings.Contains(sf.Tag.Get("validate"), "required")
	}

	var kind string
	switch t.Kind() {
	case reflect.String:
		kind = "a string"
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		kind = "a number"
	case reflect.Bool:
		kind = "a boolean"
	default:
		return "has an invalid type"
	}

	if nullable {
		return "must be " + kind + " or null"
	}
	return "must be " + kind
}

func tagMessage(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "min":
		if isString {
			if fe.Param() == "1" {
				return "must not be empty"
			}
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s:%s", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed %s", fe.Tag())
	}
}
