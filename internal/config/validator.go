package config

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their environment variable
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if name, ok := envNames[field.Name]; ok {
			return name
		}
		return field.Name
	})
	return v
}

// validateConfig checks struct tags, skipping the named fields, and reports
// them together with the variables that could not be parsed
func validateConfig(cfg *Config, parseErrs map[string]string, except ...string) error {
	var err error
	if len(except) > 0 {
		err = validate.StructExcept(cfg, except...)
	} else {
		err = validate.Struct(cfg)
	}
	if err == nil && len(parseErrs) == 0 {
		return nil
	}

	problems := FormatValidationError(err)
	if problems == nil {
		problems = make(map[string]string, len(parseErrs))
	}
	for k, msg := range parseErrs {
		problems[k] = msg
	}
	keys := make([]string, 0, len(problems))
	for k := range problems {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", k, problems[k]))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(lines, "; "))
}

// FormatValidationError maps each failing environment variable to a readable message
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["config"] = err.Error()
		return errs
	}

	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			errs[field] = "must be set"
		case "url":
			errs[field] = "must be a valid URL"
		case "startswith":
			errs[field] = fmt.Sprintf("must start with %s", e.Param())
		case "oneof":
			errs[field] = fmt.Sprintf("must be one of [%s]", e.Param())
		case "gt":
			errs[field] = fmt.Sprintf("must be greater than %s", e.Param())
		case "gte":
			errs[field] = fmt.Sprintf("must be at least %s", e.Param())
		case "lte":
			errs[field] = fmt.Sprintf("must be at most %s", e.Param())
		default:
			errs[field] = "invalid value"
		}
	}

	return errs
}
