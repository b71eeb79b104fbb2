package utils

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterTagNames makes validation errors report the json field name
// instead of the Go struct field name.
func RegisterTagNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)

	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// FormatValidationErrors converts binding failures into the per-field error
// map of the 422 envelope. Every failing field is reported, not just the
// first.
func FormatValidationErrors(err error) (map[string][]string, bool) {
	var validationErrors validator.ValidationErrors

	if !errors.As(err, &validationErrors) {
		return nil, false
	}

	out := make(map[string][]string)

	for _, fieldError := range validationErrors {
		field := fieldError.Field()
		out[field] = append(out[field], validationMessage(fieldError))
	}

	return out, true
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required", fe.Field())
	case "email":
		return fmt.Sprintf("The %s must be a valid email address", fe.Field())
	case "oneof":
		return fmt.Sprintf("The %s must be one of: %s", fe.Field(), strings.Join(strings.Fields(fe.Param()), ", "))
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("The %s cannot exceed %s characters", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("The %s is not a valid date", fe.Field())
	default:
		return fmt.Sprintf("The %s field is invalid", fe.Field())
	}
}

// BindJSON binds the request body and, on failure, writes the 422 envelope.
// Returns false when the request has already been answered.
func BindJSON(ctx *gin.Context, body interface{}) bool {
	err := ctx.ShouldBindJSON(body)

	if err == nil {
		return true
	}

	if fieldErrors, ok := FormatValidationErrors(err); ok {
		RespondValidationErrors(ctx, fieldErrors)
		return false
	}

	RespondError(ctx, http.StatusUnprocessableEntity, "Invalid request body")
	return false
}
