package domain

import "context"

// Services offered through the contact form, in display order
const (
	ServiceVoiceAI         = "Voice AI Agents"
	ServiceCustomerSupport = "AI Customer Support"
	ServiceSocialMedia     = "Social Media Automation"
	ServiceLeadGeneration  = "Lead Generation"
)

// OfferedServices lists the only values accepted for ContactForm.Service
var OfferedServices = []string{
	ServiceVoiceAI,
	ServiceCustomerSupport,
	ServiceSocialMedia,
	ServiceLeadGeneration,
}

// IsOfferedService reports whether s is one of OfferedServices (exact match)
func IsOfferedService(s string) bool {
	for _, svc := range OfferedServices {
		if s == svc {
			return true
		}
	}
	return false
}

// Contact form field names, as they appear on the wire and in ValidationErrors
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldEmail     = "email"
	FieldCompany   = "company"
	FieldService   = "service"
	FieldMessage   = "message"
)

// ContactFields lists the form fields in display order
var ContactFields = []string{FieldFirstName, FieldLastName, FieldEmail, FieldCompany, FieldService, FieldMessage}

// ContactForm is the state of one contact form fill-out session
type ContactForm struct {
	FirstName string `json:"firstName" form:"firstName" validate:"trimmed_required"`
	LastName  string `json:"lastName" form:"lastName" validate:"trimmed_required"`
	Email     string `json:"email" form:"email" validate:"trimmed_required,email_shape"`
	Company   string `json:"company" form:"company" validate:"trimmed_required"`
	Service   string `json:"service" form:"service" validate:"offered_service"`
	Message   string `json:"message" form:"message" validate:"trimmed_required"`
}

// Get returns the value of the named field
func (f *ContactForm) Get(field string) (string, bool) {
	switch field {
	case FieldFirstName:
		return f.FirstName, true
	case FieldLastName:
		return f.LastName, true
	case FieldEmail:
		return f.Email, true
	case FieldCompany:
		return f.Company, true
	case FieldService:
		return f.Service, true
	case FieldMessage:
		return f.Message, true
	}
	return "", false
}

// Set assigns the named field. Returns false for an unknown field.
func (f *ContactForm) Set(field, value string) bool {
	switch field {
	case FieldFirstName:
		f.FirstName = value
	case FieldLastName:
		f.LastName = value
	case FieldEmail:
		f.Email = value
	case FieldCompany:
		f.Company = value
	case FieldService:
		f.Service = value
	case FieldMessage:
		f.Message = value
	default:
		return false
	}
	return true
}

// IsEmpty reports whether every field is the empty string
func (f ContactForm) IsEmpty() bool {
	return f == ContactForm{}
}

// ValidationErrors maps a field name to a human-readable message
type ValidationErrors map[string]string

// SubmissionState is the lifecycle state of a form instance
type SubmissionState string

const (
	SubmissionIdle       SubmissionState = "idle"
	SubmissionSubmitting SubmissionState = "submitting"
	SubmissionSucceeded  SubmissionState = "succeeded"
	SubmissionFailed     SubmissionState = "failed"
)

// Editable reports whether the submit control is enabled in this state
func (s SubmissionState) Editable() bool {
	return s != SubmissionSubmitting
}

// SubmissionResult is what one submit attempt hands back to the caller
type SubmissionResult struct {
	SubmissionID string           `json:"submissionId,omitempty"`
	State        SubmissionState  `json:"state"`
	Errors       ValidationErrors `json:"errors,omitempty"`
	Form         ContactForm      `json:"form"`
	ShowDialog   bool             `json:"showDialog"`
}

// ContactDispatcher delivers a submitted inquiry to the mail-dispatch collaborator
type ContactDispatcher interface {
	Dispatch(ctx context.Context, form ContactForm) error
}

// ContactUsecase defines the contact form operations
type ContactUsecase interface {
	// Validate runs every form rule and returns the full error set
	Validate(form ContactForm) ValidationErrors
	// Submit runs one form instance through validation and a single dispatch
	Submit(ctx context.Context, form ContactForm, meta RequestMeta) SubmissionResult
}

// RequestMeta carries caller details for operator logging
type RequestMeta struct {
	IP        string
	UserAgent string
	RequestID string
}

// Confirmation dialog copy shown after a successful submission
const (
	DialogTitle       = "Thank you for contacting us!"
	DialogDescription = "We will contact you soon on your provided email address."
)
