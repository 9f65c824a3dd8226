package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message,omitempty"`
}

// BindJSON decodes and validates the request body into out; on failure it
// writes the 400 response itself and returns false. Validation errors are
// reported under the json field names, not the Go ones.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	err := ctx.ShouldBindJSON(out)

	if err != nil {
		RespondBadRequest(ctx, "Invalid request body", parseBindError(err, out))

		return false
	}

	return true
}

func parseBindError(err error, out interface{}) interface{} {
	rootType := baseStructType(out)

	// validator errors (struct bind tags)

	var validatorError validator.ValidationErrors

	if errors.As(err, &validatorError) {
		fields := make([]FieldError, 0, len(validatorError))

		for _, fieldError := range validatorError {
			rule := fieldError.Tag()
			param := fieldError.Param()

			fields = append(fields, FieldError{
				Field:   jsonFieldName(rootType, fieldError.Field()),
				Rule:    rule,
				Param:   param,
				Message: validationMessage(rule, param),
			})
		}
		return gin.H{"fields": fields}
	}

	// in the event of bad json

	var syntaxError *json.SyntaxError

	if errors.As(err, &syntaxError) {
		return gin.H{
			"json": "invalid_json_syntax",
		}
	}

	// in the event of a type mismatch

	var unmatchedTypeError *json.UnmarshalTypeError

	if errors.As(err, &unmatchedTypeError) {
		return gin.H{
			"json":  "invalid_json_type",
			"field": unmatchedTypeError.Field,
			"fields": []FieldError{
				{
					Field:   unmatchedTypeError.Field,
					Rule:    "type",
					Message: fmt.Sprintf("must be of type %s", unmatchedTypeError.Type.String()),
				},
			},
		}
	}

	// final fallback if the error could not be deciphered
	return gin.H{"reason": err.Error()}
}

func baseStructType(v interface{}) reflect.Type {
	t := reflect.TypeOf(v)

	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t != nil && t.Kind() == reflect.Struct {
		return t
	}

	return nil
}

// the request structs here are flat, so a single-level lookup is enough
func jsonFieldName(rootType reflect.Type, fieldName string) string {
	if rootType == nil {
		return fieldName
	}

	sf, ok := rootType.FieldByName(fieldName)

	if !ok {
		return fieldName
	}

	tag := sf.Tag.Get("json")
	if tag == "" {
		return fieldName
	}

	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return fieldName
	}

	return name
}

func validationMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	case "oneof":
		return "must be one of " + strings.ReplaceAll(param, " ", ", ")
	default:
		if param != "" {
			return fmt.Sprintf("failed %s validation (%s)", rule, param)
		}
		return "failed " + rule + " validation"
	}
}
