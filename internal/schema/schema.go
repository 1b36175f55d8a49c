// Package schema declares what clients may send when creating or replacing a
// record, and validates it.
//
// An insert schema is the client-writable subset of a record: no id, no
// createdAt. Validation is all-or-nothing. Decode either fills dst with a
// payload whose every declared field conforms, or returns one
// apperror.Invalid listing every field that did not.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ghiffarsabda/kormimvp/internal/apperror"
	"github.com/ghiffarsabda/kormimvp/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name so errors match what the client sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := model.ParseDate(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(fmt.Sprintf("schema: registering date validation: %v", err))
	}

	return v
}

// Decode reads one JSON object from r into dst (a pointer to an input struct)
// and validates it. Keys that are not part of the schema are ignored.
func Decode(r io.Reader, dst any) error {
	var fields []apperror.FieldError
	seen := make(map[string]bool)

	if err := json.NewDecoder(r).Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		var syntaxErr *json.SyntaxError
		var tooLarge *http.MaxBytesError

		switch {
		case errors.As(err, &typeErr) && typeErr.Field != "":
			// The decoder keeps going after a type mismatch, so the other
			// fields are populated and still get validated below.
			fields = append(fields, apperror.FieldError{
				Field:   typeErr.Field,
				Message: fmt.Sprintf("%s must be %s", typeErr.Field, describeKind(typeErr.Type)),
			})
			seen[typeErr.Field] = true
		case errors.As(err, &typeErr):
			return apperror.ValidationFailed("body", "request body must be a JSON object")
		case errors.Is(err, io.EOF):
			return apperror.ValidationFailed("body", "request body must not be empty")
		case errors.As(err, &syntaxErr):
			return apperror.ValidationFailed("body",
				fmt.Sprintf("request body contains badly-formed JSON (at character %d)", syntaxErr.Offset))
		case errors.Is(err, io.ErrUnexpectedEOF):
			return apperror.ValidationFailed("body", "request body contains badly-formed JSON")
		case errors.As(err, &tooLarge):
			return apperror.ValidationFailed("body",
				fmt.Sprintf("request body must not be larger than %d bytes", tooLarge.Limit))
		default:
			return apperror.ValidationFailed("body", err.Error())
		}
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("schema: validating %T: %w", dst, err)
		}
		for _, fe := range verrs {
			if seen[fe.Field()] {
				continue
			}
			seen[fe.Field()] = true
			fields = append(fields, apperror.FieldError{
				Field:   fe.Field(),
				Message: describe(fe),
			})
		}
	}

	if len(fields) > 0 {
		return apperror.Invalid(fields)
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "date":
		return fe.Field() + " must be a calendar date (YYYY-MM-DD)"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed the %q check", fe.Field(), fe.Tag())
	}
}

func describeKind(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	default:
		return "a valid " + t.Kind().String()
	}
}
