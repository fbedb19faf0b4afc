package validator

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const maxDescription = 500

func RegisterCustomValidations(validate *validator.Validate) {
	validate.RegisterValidation("lat", validateLat)
	validate.RegisterValidation("lng", validateLng)
	validate.RegisterValidation("description", validateDescription)
}

func validateLat(fl validator.FieldLevel) bool {
	lat := fl.Field().Float()
	return !math.IsNaN(lat) && lat >= -90.0 && lat <= 90.0
}

func validateLng(fl validator.FieldLevel) bool {
	lng := fl.Field().Float()
	return !math.IsNaN(lng) && lng >= -180.0 && lng <= 180.0
}

func validateDescription(fl validator.FieldLevel) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(fl.Field().String()))
	return n >= 1 && n <= maxDescription
}
