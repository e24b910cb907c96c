package usecase

import (
	"context"

	"lunarai-web/internal/domain"
)

type siteUsecase struct {
	content domain.SiteContent
}

// NewSiteUsecase serves content loaded once at startup
func NewSiteUsecase(content domain.SiteContent) domain.SiteUsecase {
	return &siteUsecase{content: content}
}

func (u *siteUsecase) Content(ctx context.Context) domain.SiteContent {
	return u.content
}

// Services returns the values the contact form accepts, not the showcase titles
func (u *siteUsecase) Services(ctx context.Context) []string {
	out := make([]string, len(domain.OfferedServices))
	copy(out, domain.OfferedServices)
	return out
}
