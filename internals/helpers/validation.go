package helper

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Validate is shared by all DTOs. Field names are reported by json tag.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidationErrors converts validator output into field -> messages.
func ValidationErrors(err error) map[string][]string {
	out := map[string][]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["_"] = []string{err.Error()}
		return out
	}
	for _, fe := range verrs {
		out[fe.Field()] = append(out[fe.Field()], messageFor(fe))
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid url"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "len":
		return fmt.Sprintf("must have length %s", fe.Param())
	default:
		return "is invalid"
	}
}

// BindAndValidate parses the body (JSON, form or multipart) into dst and
// validates it. On failure the response is already written and handled=true.
func BindAndValidate(c *fiber.Ctx, dst any) (handled bool, err error) {
	if err := c.BodyParser(dst); err != nil {
		return true, JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := Validate.Struct(dst); err != nil {
		return true, JsonValidationError(c, ValidationErrors(err))
	}
	return false, nil
}
