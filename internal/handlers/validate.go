package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"durgamondir/internal/slug"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON/form name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	custom := map[string]validator.Func{
		"slug": func(fl validator.FieldLevel) bool {
			return slug.Valid(fl.Field().String())
		},
		"no_html": func(fl validator.FieldLevel) bool {
			return !strings.ContainsAny(fl.Field().String(), "<>")
		},
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register validation %q: %v", tag, err))
		}
	}
	return v
}

// validationError carries one message per invalid field.
type validationError struct {
	Fields map[string]string
}

func (e *validationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func fieldError(field, msg string) *validationError {
	return &validationError{Fields: map[string]string{field: msg}}
}

// validateStruct runs the struct tags of v and converts failures into a
// *validationError.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &validationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "এই ঘরটি পূরণ করা আবশ্যক।"
	case "email":
		return "সঠিক ইমেইল ঠিকানা লিখুন।"
	case "max":
		return fmt.Sprintf("সর্বোচ্চ %s অক্ষর।", fe.Param())
	case "url", "http_url":
		return "সঠিক URL লিখুন।"
	case "slug":
		return "শুধু ছোট হাতের ইংরেজি অক্ষর, সংখ্যা ও হাইফেন ব্যবহার করুন।"
	case "no_html":
		return "HTML ব্যবহার করা যাবে না।"
	case "datetime":
		return "তারিখ " + fe.Param() + " আকারে লিখুন।"
	case "oneof":
		return fmt.Sprintf("অনুমোদিত মান: %s।", fe.Param())
	case "min", "gte":
		return fmt.Sprintf("সর্বনিম্ন মান %s।", fe.Param())
	default:
		return "মানটি সঠিক নয়।"
	}
}
