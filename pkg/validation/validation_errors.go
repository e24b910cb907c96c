package validation

import (
	"errors"
	"fmt"
	"strings"

	"lunarai-web/internal/domain"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps json field names to the labels shown next to the inputs
var FieldLabels = map[string]string{
	domain.FieldFirstName: "First name",
	domain.FieldLastName:  "Last name",
	domain.FieldEmail:     "Email",
	domain.FieldCompany:   "Company name",
	domain.FieldService:   "Service",
	domain.FieldMessage:   "Message",
}

// tagMessages holds messages that do not follow the "<label> is required" pattern
var tagMessages = map[string]string{
	"email_shape":     "Please enter a valid email",
	"offered_service": "Please select a service",
}

// FormValidator validates contact forms into field → message maps
type FormValidator struct {
	v *validator.Validate
}

// NewFormValidator creates a FormValidator backed by New()
func NewFormValidator() *FormValidator {
	return &FormValidator{v: New()}
}

// Validate runs every rule of the contact form. The result is empty iff the form is valid.
func (fv *FormValidator) Validate(form domain.ContactForm) domain.ValidationErrors {
	errs := domain.ValidationErrors{}
	if err := fv.v.Struct(form); err != nil {
		for field, msg := range FormatFieldErrors(err) {
			errs[field] = msg
		}
	}
	return errs
}

// FormatFieldErrors converts validator.ValidationErrors to a field → message map.
// A non-validation error is reported under the "_form" key.
func FormatFieldErrors(err error) map[string]string {
	out := map[string]string{}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		out["_form"] = err.Error()
		return out
	}

	for _, e := range validationErrors {
		// First failing tag per field wins
		if _, seen := out[e.Field()]; seen {
			continue
		}
		out[e.Field()] = formatSingleError(e)
	}
	return out
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	if msg, ok := tagMessages[e.Tag()]; ok {
		return msg
	}

	label := getFieldLabel(e.Field())
	switch e.Tag() {
	case "required", "trimmed_required":
		return fmt.Sprintf("%s is required", label)
	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s is invalid (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts camelCase to a capitalised, spaced phrase
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i == 0 {
			result.WriteString(strings.ToUpper(string(r)))
			continue
		}
		if r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
			r += 'a' - 'A'
		}
		result.WriteRune(r)
	}
	return result.String()
}
