package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"highwayMonitor/pkg/e"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	RegisterCustomValidations(validate)
}

// ValidateStruct runs tag validation and reports the first failing field as
// an *e.ValidationError.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return e.Invalid(fe.Field(), reason(fe))
	}
	return e.Invalid("", err.Error())
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "lat":
		return "must be between -90 and 90"
	case "lng":
		return "must be between -180 and 180"
	case "description":
		return fmt.Sprintf("must be between 1 and %d characters", maxDescription)
	case "required":
		return "is required"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
