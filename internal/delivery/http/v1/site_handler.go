package v1

import (
	"net/http"

	"lunarai-web/internal/delivery/http/response"
	"lunarai-web/internal/domain"

	"github.com/gin-gonic/gin"
)

type SiteHandler struct {
	siteUC domain.SiteUsecase
}

func NewSiteHandler(public *gin.RouterGroup, siteUC domain.SiteUsecase) {
	handler := &SiteHandler{siteUC: siteUC}

	public.GET("/site", handler.GetSite)
	public.GET("/services", handler.GetServices)
}

// GetSite godoc
// @Summary      Site Content
// @Description  Landing page content: navigation, hero, solutions, services, team, contact info, footer and loading timing
// @Tags         site
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.SiteContent}
// @Router       /site [get]
func (h *SiteHandler) GetSite(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=300")
	response.Success(c, http.StatusOK, "Site content retrieved", h.siteUC.Content(c.Request.Context()))
}

// GetServices godoc
// @Summary      Offered Services
// @Description  The exact values accepted in the contact form service field
// @Tags         site
// @Produce      json
// @Success      200  {object}  response.Response{data=[]string}
// @Router       /services [get]
func (h *SiteHandler) GetServices(c *gin.Context) {
	response.Success(c, http.StatusOK, "Services retrieved", h.siteUC.Services(c.Request.Context()))
}
