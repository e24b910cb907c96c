package web

import (
	"embed"
	"io/fs"
	"net/http"

	"lunarai-web/internal/delivery/http/middleware"
	"lunarai-web/internal/delivery/http/response"
	"lunarai-web/internal/domain"
	"lunarai-web/pkg/apperror"
	"lunarai-web/pkg/logger"

	"github.com/gin-gonic/gin"
)

//go:embed static
var staticFS embed.FS

// Handler serves the server-rendered landing page and its no-JS contact form
type Handler struct {
	siteUC    domain.SiteUsecase
	contactUC domain.ContactUsecase
}

// NewHandler registers GET /, POST /contact and /static/*
func NewHandler(r gin.IRoutes, siteUC domain.SiteUsecase, contactUC domain.ContactUsecase, limit gin.HandlerFunc) *Handler {
	h := &Handler{siteUC: siteUC, contactUC: contactUC}

	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// embed guarantees the directory exists
		panic(err)
	}
	r.StaticFS("/static", http.FS(staticSub))

	r.GET("/", h.Landing)
	r.POST("/contact", limit, h.SubmitContact)
	return h
}

// Landing renders the full page with an empty form
func (h *Handler) Landing(c *gin.Context) {
	render(c, http.StatusOK, PageData{
		Site:      h.siteUC.Content(c.Request.Context()),
		CSRFToken: middleware.CSRFToken(c),
	})
}

// SubmitContact runs the posted form through one submission and re-renders the page:
// inline errors when invalid, the dialog and an empty form on success, and the
// untouched input with no error text on failure.
func (h *Handler) SubmitContact(c *gin.Context) {
	var form domain.ContactForm
	if err := c.ShouldBind(&form); err != nil {
		c.Error(apperror.BadRequest("Invalid form submission"))
		return
	}

	result := h.contactUC.Submit(c.Request.Context(), form, domain.RequestMeta{
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		RequestID: response.RequestID(c),
	})

	status := http.StatusOK
	if result.State == domain.SubmissionIdle {
		status = http.StatusUnprocessableEntity
	}

	render(c, status, PageData{
		Site:       h.siteUC.Content(c.Request.Context()),
		Form:       result.Form,
		Errors:     result.Errors,
		ShowDialog: result.ShowDialog,
		CSRFToken:  middleware.CSRFToken(c),
		SkipSplash: true,
	})
}

// ErrorPage renders a browser-facing error as the landing page with a notice
// above the contact form.
func ErrorPage(siteUC domain.SiteUsecase) middleware.PageRenderer {
	return func(c *gin.Context, err *apperror.AppError) {
		render(c, err.Code, PageData{
			Site:       siteUC.Content(c.Request.Context()),
			CSRFToken:  middleware.CSRFToken(c),
			Notice:     noticeFor(err),
			SkipSplash: true,
		})
	}
}

func noticeFor(err *apperror.AppError) string {
	if err.Code == http.StatusForbidden {
		return "Your session expired. Please submit the form again."
	}
	return err.Message
}

func render(c *gin.Context, status int, data PageData) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Header("Cache-Control", "no-store")
	c.Status(status)
	if err := Page(data).Render(c.Writer); err != nil {
		logger.Log.Error("render landing page", "error", err, "request_id", response.RequestID(c))
	}
}
