package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"lunarai-web/internal/domain"
	"lunarai-web/pkg/eventlog"
	"lunarai-web/pkg/metrics"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var (
	// ErrSubmissionInFlight is returned when Submit is called while a submission is pending
	ErrSubmissionInFlight = errors.New("contact: submission already in flight")
	// ErrUnknownField is returned by SetField for a name outside the form
	ErrUnknownField = errors.New("contact: unknown form field")
)

var tracer = otel.Tracer("lunarai-web/usecase/contact")

// FormValidator is the pure validation step
type FormValidator interface {
	Validate(form domain.ContactForm) domain.ValidationErrors
}

// ContactFormController owns one form instance: field values, the last
// validation result and the submission lifecycle.
type ContactFormController struct {
	validator  FormValidator
	dispatcher domain.ContactDispatcher
	timeout    time.Duration
	onFailure  func(ctx context.Context, form domain.ContactForm, err error)

	mu         sync.Mutex
	form       domain.ContactForm
	errors     domain.ValidationErrors
	state      domain.SubmissionState
	dialogOpen bool
}

// ControllerOption customizes a ContactFormController
type ControllerOption func(*ContactFormController)

// WithDispatchTimeout bounds the collaborator call
func WithDispatchTimeout(d time.Duration) ControllerOption {
	return func(c *ContactFormController) {
		c.timeout = d
	}
}

// WithFailureHook receives dispatch failures (operator logging)
func WithFailureHook(fn func(ctx context.Context, form domain.ContactForm, err error)) ControllerOption {
	return func(c *ContactFormController) {
		c.onFailure = fn
	}
}

// NewContactFormController creates an empty, idle form instance
func NewContactFormController(validator FormValidator, dispatcher domain.ContactDispatcher, opts ...ControllerOption) *ContactFormController {
	c := &ContactFormController{
		validator:  validator,
		dispatcher: dispatcher,
		timeout:    15 * time.Second,
		errors:     domain.ValidationErrors{},
		state:      domain.SubmissionIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetField edits one field and clears that field's validation error.
// Editing is allowed while a submission is in flight.
func (c *ContactFormController) SetField(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.form.Set(field, value) {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	delete(c.errors, field)
	return nil
}

// Load replaces every field, as when a whole form is posted at once
func (c *ContactFormController) Load(form domain.ContactForm) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = form
}

// Form returns a copy of the current field values
func (c *ContactFormController) Form() domain.ContactForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Errors returns a copy of the current validation errors
func (c *ContactFormController) Errors() domain.ValidationErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyErrors(c.errors)
}

// State returns the submission state
func (c *ContactFormController) State() domain.SubmissionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CanSubmit reports whether the submit control is enabled
func (c *ContactFormController) CanSubmit() bool {
	return c.State().Editable()
}

// DialogOpen reports whether the confirmation dialog is showing
func (c *ContactFormController) DialogOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dialogOpen
}

// CloseDialog dismisses the confirmation dialog
func (c *ContactFormController) CloseDialog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialogOpen = false
}

// Validate runs validation on the current fields and stores the full result
func (c *ContactFormController) Validate() domain.ValidationErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors = c.validator.Validate(c.form)
	return copyErrors(c.errors)
}

// Submit validates and, when valid, calls the dispatcher exactly once.
// The call is detached from ctx cancellation; only the dispatch timeout bounds it.
func (c *ContactFormController) Submit(ctx context.Context) (domain.SubmissionState, error) {
	c.mu.Lock()
	if c.state == domain.SubmissionSubmitting {
		c.mu.Unlock()
		return domain.SubmissionSubmitting, ErrSubmissionInFlight
	}

	c.errors = c.validator.Validate(c.form)
	if len(c.errors) > 0 {
		c.state = domain.SubmissionIdle
		c.mu.Unlock()
		return domain.SubmissionIdle, nil
	}

	c.state = domain.SubmissionSubmitting
	c.dialogOpen = false
	payload := c.form
	c.mu.Unlock()

	// Whatever happens below, submitting ends here
	final := domain.SubmissionFailed
	defer func() {
		c.mu.Lock()
		c.state = final
		c.mu.Unlock()
	}()

	err := c.dispatch(ctx, payload)
	if err != nil {
		if c.onFailure != nil {
			c.onFailure(ctx, payload, err)
		}
		return final, nil
	}

	c.mu.Lock()
	c.form = domain.ContactForm{}
	c.dialogOpen = true
	c.mu.Unlock()
	final = domain.SubmissionSucceeded
	return final, nil
}

func (c *ContactFormController) dispatch(ctx context.Context, form domain.ContactForm) (err error) {
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	dctx, span := tracer.Start(dctx, "contact.dispatch")
	defer span.End()
	span.SetAttributes(attribute.String("contact.service", form.Service))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("contact: dispatcher panic: %v", r)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "dispatch failed")
		}
	}()

	return c.dispatcher.Dispatch(dctx, form)
}

func copyErrors(errs domain.ValidationErrors) domain.ValidationErrors {
	out := make(domain.ValidationErrors, len(errs))
	for k, v := range errs {
		out[k] = v
	}
	return out
}

type contactUsecase struct {
	validator      FormValidator
	dispatcher     domain.ContactDispatcher
	dispatcherName string
	timeout        time.Duration
	events         *eventlog.Logger
	metrics        *metrics.ContactMetrics
}

// ContactDeps wires the contact usecase
type ContactDeps struct {
	Validator       FormValidator
	Dispatcher      domain.ContactDispatcher
	DispatcherName  string
	DispatchTimeout time.Duration
	Events          *eventlog.Logger
	Metrics         *metrics.ContactMetrics
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(deps ContactDeps) domain.ContactUsecase {
	if deps.DispatchTimeout <= 0 {
		deps.DispatchTimeout = 15 * time.Second
	}
	return &contactUsecase{
		validator:      deps.Validator,
		dispatcher:     deps.Dispatcher,
		dispatcherName: deps.DispatcherName,
		timeout:        deps.DispatchTimeout,
		events:         deps.Events,
		metrics:        deps.Metrics,
	}
}

func (uc *contactUsecase) Validate(form domain.ContactForm) domain.ValidationErrors {
	return uc.validator.Validate(form)
}

// Submit runs a fresh form instance holding form through one submit attempt
func (uc *contactUsecase) Submit(ctx context.Context, form domain.ContactForm, meta domain.RequestMeta) domain.SubmissionResult {
	submissionID := uuid.NewString()
	started := time.Now()

	ctrl := NewContactFormController(uc.validator, uc.timedDispatcher(),
		WithDispatchTimeout(uc.timeout),
		WithFailureHook(func(ctx context.Context, f domain.ContactForm, err error) {
			uc.events.LogSubmissionFailed(ctx, submissionID, f.Email, meta.IP, meta.RequestID, err)
		}),
	)
	ctrl.Load(form)

	state, _ := ctrl.Submit(ctx) // a fresh controller is never in flight
	result := domain.SubmissionResult{
		State:      state,
		Errors:     ctrl.Errors(),
		Form:       ctrl.Form(),
		ShowDialog: ctrl.DialogOpen(),
	}
	uc.metrics.ObserveSubmission(string(state))

	switch state {
	case domain.SubmissionIdle:
		fields := sortedKeys(result.Errors)
		for _, f := range fields {
			uc.metrics.ObserveValidationFailure(f)
		}
		uc.events.LogValidationFailed(ctx, fields, meta.IP, meta.RequestID)
	case domain.SubmissionSucceeded:
		result.SubmissionID = submissionID
		uc.events.LogSubmissionSucceeded(ctx, submissionID, form.Email, form.Service, meta.IP, meta.RequestID, time.Since(started))
	case domain.SubmissionFailed:
		result.SubmissionID = submissionID
	}

	return result
}

func (uc *contactUsecase) timedDispatcher() domain.ContactDispatcher {
	return dispatchFunc(func(ctx context.Context, form domain.ContactForm) error {
		start := time.Now()
		err := uc.dispatcher.Dispatch(ctx, form)
		uc.metrics.ObserveDispatch(uc.dispatcherName, err == nil, time.Since(start))
		return err
	})
}

type dispatchFunc func(ctx context.Context, form domain.ContactForm) error

func (f dispatchFunc) Dispatch(ctx context.Context, form domain.ContactForm) error {
	return f(ctx, form)
}

func sortedKeys(errs domain.ValidationErrors) []string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
