package validation

import (
	"reflect"
	"regexp"
	"strings"

	"lunarai-web/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Permissive shape check: something@something.something, no whitespace, single @ segments
	emailShapeRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("trimmed_required", TrimmedRequired)
	_ = v.RegisterValidation("email_shape", EmailShape)
	_ = v.RegisterValidation("offered_service", OfferedService)
}

// New returns a validator with the custom rules registered and field names
// reported by their json tag
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonTagName)
	RegisterValidators(v)
	return v
}

// TrimmedRequired fails when the value is empty after trimming surrounding whitespace
func TrimmedRequired(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// EmailShape checks the value (untrimmed) against the permissive email shape
func EmailShape(fl validator.FieldLevel) bool {
	return emailShapeRegex.MatchString(fl.Field().String())
}

// OfferedService accepts only the enumerated services
func OfferedService(fl validator.FieldLevel) bool {
	return domain.IsOfferedService(fl.Field().String())
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}
