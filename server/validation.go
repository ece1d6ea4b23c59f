package server

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ValidationDetail mirrors one entry of a FastAPI-style 422 body.
type ValidationDetail struct {
	Type string `json:"type"`
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
}

type ValidationError struct {
	Detail []ValidationDetail `json:"detail"`
}

var registerTagNames sync.Once

// useJSONFieldNames makes validator report json tag names instead of Go
// field names.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// NewValidationError converts a binding error into the 422 body.
func NewValidationError(err error) ValidationError {
	var (
		fieldErrs validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	switch {
	case errors.As(err, &fieldErrs):
		out := make([]ValidationDetail, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			d := ValidationDetail{Type: fe.Tag(), Loc: []any{"body", fe.Field()}, Msg: fe.Error()}
			if fe.Tag() == "required" {
				d.Type, d.Msg = "missing", "Field required"
			}
			out = append(out, d)
		}
		return ValidationError{Detail: out}
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return single("model_attributes_type", []any{"body"}, "Input should be a valid dictionary or object to extract fields from")
		}
		kind := typeErr.Type.Kind()
		if kind == reflect.Pointer {
			kind = typeErr.Type.Elem().Kind()
		}
		return single(kind.String()+"_type", []any{"body", typeErr.Field}, "Input should be a valid "+kind.String())
	case errors.Is(err, io.EOF):
		return single("missing", []any{"body"}, "Field required")
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return single("json_invalid", []any{"body"}, "JSON decode error")
	default:
		return single("value_error", []any{"body"}, err.Error())
	}
}

func single(typ string, loc []any, msg string) ValidationError {
	return ValidationError{Detail: []ValidationDetail{{Type: typ, Loc: loc, Msg: msg}}}
}
