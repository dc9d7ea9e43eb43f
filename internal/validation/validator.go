// Package validation checks normalized request parameters with validator/v10
// and reports failures as domain validation errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	domainerrors "github.com/scentdex/scentdex-server/internal/errors"
	"github.com/scentdex/scentdex-server/internal/query"
)

// Validator wraps go-playground/validator with the catalog's option sets
// registered as tags: gender, season and sortmode.
type Validator struct {
	v       *validator.Validate
	options map[string][]string
}

// New creates a validator with the catalog tags registered.
func New() *Validator {
	sorts := make([]string, len(query.Sorts))
	for i, s := range query.Sorts {
		sorts[i] = string(s)
	}

	val := &Validator{
		v: validator.New(),
		options: map[string][]string{
			"gender":   query.Genders,
			"season":   query.Seasons,
			"sortmode": sorts,
		},
	}

	val.v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	for tag, opts := range val.options {
		// Registration only fails for empty tags or nil funcs.
		_ = val.v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return slices.Contains(opts, fl.Field().String())
		})
	}

	return val
}

// Validate checks a struct and returns a VALIDATION domain error listing each bad field.
func (v *Validator) Validate(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	details := make(map[string]string, len(fieldErrs))
	for _, e := range fieldErrs {
		details[e.Field()] = v.message(e)
	}
	return domainerrors.ValidationWithDetails("validation failed", details)
}

func (v *Validator) message(e validator.FieldError) string {
	if opts, ok := v.options[e.Tag()]; ok {
		return "must be one of: " + strings.Join(opts, " ")
	}

	switch e.Tag() {
	case "required":
		return "is required"
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", e.Param())
		}
		return "must be less than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "gte", "min":
		return "must be greater than or equal to " + e.Param()
	default:
		return "is invalid"
	}
}
