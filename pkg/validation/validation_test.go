package validation_test

import (
	"errors"
	"testing"

	"lunarai-web/internal/domain"
	"lunarai-web/pkg/validation"

	"github.com/stretchr/testify/assert"
)

func validForm() domain.ContactForm {
	return domain.ContactForm{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@company.com",
		Company:   "Acme",
		Service:   domain.ServiceVoiceAI,
		Message:   "Need a demo",
	}
}

func TestValidateAcceptsCompleteForm(t *testing.T) {
	fv := validation.NewFormValidator()

	for _, svc := range domain.OfferedServices {
		form := validForm()
		form.Service = svc
		assert.Empty(t, fv.Validate(form), "service %q", svc)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	fv := validation.NewFormValidator()

	tests := []struct {
		field string
		want  string
	}{
		{domain.FieldFirstName, "First name is required"},
		{domain.FieldLastName, "Last name is required"},
		{domain.FieldEmail, "Email is required"},
		{domain.FieldCompany, "Company name is required"},
		{domain.FieldService, "Please select a service"},
		{domain.FieldMessage, "Message is required"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			for _, blank := range []string{"", "   ", "\t\n"} {
				form := validForm()
				form.Set(tt.field, blank)

				errs := fv.Validate(form)
				assert.Equal(t, domain.ValidationErrors{tt.field: tt.want}, errs, "value %q", blank)
			}
		})
	}
}

func TestValidateEveryRuleIsEvaluated(t *testing.T) {
	fv := validation.NewFormValidator()

	errs := fv.Validate(domain.ContactForm{Email: "not-an-email"})

	assert.Equal(t, domain.ValidationErrors{
		domain.FieldFirstName: "First name is required",
		domain.FieldLastName:  "Last name is required",
		domain.FieldEmail:     "Please enter a valid email",
		domain.FieldCompany:   "Company name is required",
		domain.FieldService:   "Please select a service",
		domain.FieldMessage:   "Message is required",
	}, errs)
}

func TestValidateEmailShape(t *testing.T) {
	fv := validation.NewFormValidator()

	tests := []struct {
		email string
		valid bool
	}{
		{"a@b.c", true},
		{"john@company.com", true},
		{"first.last+tag@sub.example.co.uk", true},
		{"not-an-email", false},
		{"a@b", false},
		{"@b.c", false},
		{"a@@b.c", false},
		{"a b@c.d", false},
		{" a@b.c", false},
	}

	for _, tt := range tests {
		form := validForm()
		form.Email = tt.email
		errs := fv.Validate(form)
		if tt.valid {
			assert.NotContains(t, errs, domain.FieldEmail, tt.email)
		} else {
			assert.Equal(t, "Please enter a valid email", errs[domain.FieldEmail], tt.email)
		}
	}
}

func TestValidateServiceMustMatchExactly(t *testing.T) {
	fv := validation.NewFormValidator()

	for _, svc := range []string{"voice ai agents", "Voice AI Agents ", "Lead Generation AI", "Other"} {
		form := validForm()
		form.Service = svc
		assert.Equal(t, "Please select a service", fv.Validate(form)[domain.FieldService], svc)
	}
}

func TestValidateIsPure(t *testing.T) {
	fv := validation.NewFormValidator()
	form := validForm()
	form.FirstName = " "

	first := fv.Validate(form)
	second := fv.Validate(form)

	assert.Equal(t, first, second)
	assert.Equal(t, " ", form.FirstName)
}

func TestFormatFieldErrorsNonValidationError(t *testing.T) {
	out := validation.FormatFieldErrors(errors.New("boom"))
	assert.Equal(t, map[string]string{"_form": "boom"}, out)
}
