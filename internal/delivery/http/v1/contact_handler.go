package v1

import (
	"net/http"

	"lunarai-web/internal/delivery/http/response"
	"lunarai-web/internal/domain"
	"lunarai-web/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// SubmissionResponse is the data payload of a successful submission
type SubmissionResponse struct {
	SubmissionID string                 `json:"submissionId"`
	State        domain.SubmissionState `json:"state"`
	Dialog       DialogResponse         `json:"dialog"`
}

type DialogResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// FailedSubmissionResponse hands the preserved input back so the client can retry
type FailedSubmissionResponse struct {
	State domain.SubmissionState `json:"state"`
	Form  domain.ContactForm     `json:"form"`
}

type ValidateResponse struct {
	Valid  bool                    `json:"valid"`
	Errors domain.ValidationErrors `json:"errors"`
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, limit gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact", limit, handler.SubmitContact)
	public.POST("/contact/validate", handler.ValidateContact)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Validates the inquiry and hands it to the mail-dispatch collaborator once. A delivery failure returns success=false with the submitted form and no message.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactForm  true  "Contact Form Data"
// @Success      200      {object}  response.Response{data=SubmissionResponse}
// @Failure      400      {object}  response.Response{error=domain.ValidationErrors}
// @Failure      429      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var form domain.ContactForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	result := h.contactUC.Submit(c.Request.Context(), form, RequestMeta(c))

	switch result.State {
	case domain.SubmissionSucceeded:
		response.Success(c, http.StatusOK, domain.DialogTitle, SubmissionResponse{
			SubmissionID: result.SubmissionID,
			State:        result.State,
			Dialog: DialogResponse{
				Title:       domain.DialogTitle,
				Description: domain.DialogDescription,
			},
		})
	case domain.SubmissionFailed:
		// Reported to operators only
		response.Quiet(c, http.StatusOK, FailedSubmissionResponse{
			State: result.State,
			Form:  result.Form,
		})
	default:
		c.Error(apperror.BadRequest("Please correct the highlighted fields").WithDetails(result.Errors))
	}
}

// ValidateContact godoc
// @Summary      Validate Contact Form
// @Description  Runs every form rule without submitting
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactForm  true  "Contact Form Data"
// @Success      200      {object}  response.Response{data=ValidateResponse}
// @Failure      400      {object}  response.Response
// @Router       /contact/validate [post]
func (h *ContactHandler) ValidateContact(c *gin.Context) {
	var form domain.ContactForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	errs := h.contactUC.Validate(form)
	if errs == nil {
		errs = domain.ValidationErrors{}
	}
	response.Success(c, http.StatusOK, "Validation complete", ValidateResponse{
		Valid:  len(errs) == 0,
		Errors: errs,
	})
}

// RequestMeta collects caller details for operator logging
func RequestMeta(c *gin.Context) domain.RequestMeta {
	return domain.RequestMeta{
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		RequestID: response.RequestID(c),
	}
}
