package handler

import (
	"encoding/json"
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"ourhour/weddinghub/pkg/response"
)

// Korean mobile numbers: 010-1234-5678, 01012345678, 011-123-4567.
var koreanPhone = regexp.MustCompile(`^01[0-9]-?[0-9]{3,4}-?[0-9]{4}$`)

var registerOnce sync.Once

// RegisterValidators installs the custom tags on gin's validator and makes
// field errors report json names.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("kphone", func(fl validator.FieldLevel) bool {
			return koreanPhone.MatchString(fl.Field().String())
		})
	})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "kphone":
		return "enter a valid mobile number (e.g. 010-1234-5678)"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "url":
		return "enter a valid URL"
	}
	return "invalid value"
}

// bindJSON binds the body into req and answers 400 on failure, with per-field
// details for validation errors.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &verrs):
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[fe.Field()] = validationMessage(fe)
		}
		response.ValidationError(c, details)
	case errors.As(err, &typeErr):
		response.ValidationError(c, map[string]string{typeErr.Field: "invalid type"})
	default:
		response.BadRequest(c, "invalid request body")
	}
	return false
}

func fieldError(c *gin.Context, field string, err error) {
	response.ValidationError(c, map[string]string{field: err.Error()})
}
