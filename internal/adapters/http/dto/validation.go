package dto

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrValidation wraps struct tag validation failures.
	ErrValidation = errors.New("validation failed")

	// ErrBinding wraps path or query binding failures.
	ErrBinding = errors.New("binding failed")
)

// Validator returns the shared validator. Field names in its errors are the
// json tag names, and it knows the positive_int tag.
var Validator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("positive_int", isPositiveInt); err != nil {
		panic(err)
	}

	return v
})

// isPositiveInt accepts strings holding an integer greater than zero.
func isPositiveInt(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(strings.TrimSpace(fl.Field().String()))
	return err == nil && n > 0
}

// Validate checks v against its validate tags.
func Validate(v any) error {
	if err := Validator().Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// BindURIAndValidate binds route parameters into v and validates it.
func BindURIAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindUri(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}
	return Validate(v)
}

// BindQueryAndValidate binds query parameters into v and validates it.
func BindQueryAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindQuery(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}
	return Validate(v)
}

// FieldMessages maps each invalid field of a validation error to a readable message.
// It is empty when err carries no field errors.
func FieldMessages(err error) map[string]string {
	messages := make(map[string]string)

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			messages[fe.Field()] = fieldMessage(fe)
		}
	}

	return messages
}

// ValidationDetail renders field errors as one sorted line, e.g.
// "id: must be a positive integer". Without field errors it is err's text.
func ValidationDetail(err error) string {
	messages := FieldMessages(err)
	if len(messages) == 0 {
		return err.Error()
	}

	parts := make([]string, 0, len(messages))
	for field, msg := range messages {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)

	return strings.Join(parts, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}

	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "positive_int":
		return "must be a positive integer"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + unit
	case "max":
		return "must be at most " + fe.Param() + unit
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed validation: " + fe.Tag()
	}
}
