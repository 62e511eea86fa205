package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// New returns a validator that reports fields by their JSON names.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	return v
}

func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

// ToDetails converts binding and validation errors into field -> message.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		verrs     validator.ValidationErrors
	)
	switch {
	case errors.Is(err, io.EOF):
		return map[string]string{"payload": "request body is required"}
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return map[string]string{"payload": "invalid json"}
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return map[string]string{"payload": "invalid json"}
		}
		return map[string]string{typeErr.Field: "must be a " + typeErr.Type.String()}
	case errors.As(err, &verrs):
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = FieldMessage(fe)
		}
		return out
	}
	return map[string]string{"payload": "invalid payload"}
}

// FieldMessage prefixes the rule message with the capitalised field name,
// e.g. "FirstName is required".
func FieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	if field != "" {
		field = strings.ToUpper(field[:1]) + field[1:]
	}
	return field + " " + ruleMessage(fe)
}

type messageFunc func(param string, numeric bool) string

func fixed(msg string) messageFunc {
	return func(string, bool) string { return msg }
}

func bound(word string) messageFunc {
	return func(param string, numeric bool) string {
		if numeric {
			return "must be " + word + " " + param
		}
		return "must be " + word + " " + param + " characters long"
	}
}

func compare(word string) messageFunc {
	return func(param string, _ bool) string { return "must be " + word + " " + param }
}

var messages = map[string]messageFunc{
	"required": fixed("is required"),
	"email":    fixed("must be a valid email"),
	"uuid":     fixed("must be a valid UUID"),
	"uuid4":    fixed("must be a valid UUID"),
	"min":      bound("at least"),
	"max":      bound("at most"),
	"len": func(param string, _ bool) string {
		return "must be exactly " + param + " characters long"
	},
	"gte": compare("greater than or equal to"),
	"lte": compare("less than or equal to"),
	"gt":  compare("greater than"),
	"lt":  compare("less than"),
	"oneof": func(param string, _ bool) string {
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	},
	"nefield": func(param string, _ bool) string {
		return "must not be equal to " + param + " field"
	},
}

func ruleMessage(fe validator.FieldError) string {
	tag, param := fe.ActualTag(), fe.Param()
	if fn, ok := messages[tag]; ok {
		return fn(param, isNumber(fe.Kind()))
	}
	if param != "" {
		return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
	}
	return fmt.Sprintf("validation failed for '%s'", tag)
}

func isNumber(k reflect.Kind) bool {
	return (k >= reflect.Int && k <= reflect.Uint64) || k == reflect.Float32 || k == reflect.Float64
}
