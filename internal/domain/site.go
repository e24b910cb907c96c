package domain

import (
	"context"
	"encoding/json"
	"time"
)

// SiteContent is the static configuration the landing page renders
type SiteContent struct {
	Brand           Brand           `json:"brand" yaml:"brand"`
	Nav             []Link          `json:"nav" yaml:"nav"`
	Hero            Hero            `json:"hero" yaml:"hero"`
	SolutionsHeader SectionHeader   `json:"solutionsHeader" yaml:"solutionsHeader"`
	Solutions       []Solution      `json:"solutions" yaml:"solutions"`
	Services        []ServiceDetail `json:"services" yaml:"services"`
	TeamHeader      SectionHeader   `json:"teamHeader" yaml:"teamHeader"`
	Team            []TeamMember    `json:"team" yaml:"team"`
	Contact         ContactSection  `json:"contact" yaml:"contact"`
	Footer          Footer          `json:"footer" yaml:"footer"`
	Loading         LoadingScreen   `json:"loading" yaml:"loading"`
}

type Brand struct {
	Name    string `json:"name" yaml:"name"`
	Tagline string `json:"tagline" yaml:"tagline"`
	LogoAlt string `json:"logoAlt" yaml:"logoAlt"`
}

type Link struct {
	Label string `json:"label" yaml:"label"`
	Href  string `json:"href" yaml:"href"`
}

type Stat struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

type Hero struct {
	Badge        string `json:"badge" yaml:"badge"`
	Headline     string `json:"headline" yaml:"headline"`
	Highlight    string `json:"highlight" yaml:"highlight"`
	Subheading   string `json:"subheading" yaml:"subheading"`
	PrimaryCTA   Link   `json:"primaryCta" yaml:"primaryCta"`
	SecondaryCTA Link   `json:"secondaryCta" yaml:"secondaryCta"`
	ImageAlt     string `json:"imageAlt" yaml:"imageAlt"`
	Stats        []Stat `json:"stats" yaml:"stats"`
}

// SectionHeader is a section title with a highlighted tail and subtitle
type SectionHeader struct {
	Title     string `json:"title" yaml:"title"`
	Highlight string `json:"highlight" yaml:"highlight"`
	Subtitle  string `json:"subtitle" yaml:"subtitle"`
}

type Solution struct {
	Icon        string `json:"icon" yaml:"icon"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// ServiceDetail is one alternating showcase block below the solutions grid
type ServiceDetail struct {
	ID          string   `json:"id" yaml:"id"`
	Badge       string   `json:"badge" yaml:"badge"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Features    []string `json:"features" yaml:"features"`
	Image       string   `json:"image" yaml:"image"`
	ImageAlt    string   `json:"imageAlt" yaml:"imageAlt"`
}

type TeamMember struct {
	Name        string `json:"name" yaml:"name"`
	Role        string `json:"role" yaml:"role"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image" yaml:"image"`
}

type ContactInfo struct {
	Icon   string `json:"icon" yaml:"icon"`
	Title  string `json:"title" yaml:"title"`
	Detail string `json:"detail" yaml:"detail"`
}

type ContactSection struct {
	Header SectionHeader `json:"header" yaml:"header"`
	Info   []ContactInfo `json:"info" yaml:"info"`
}

type Footer struct {
	ServiceLinks []Link `json:"serviceLinks" yaml:"serviceLinks"`
	CompanyLinks []Link `json:"companyLinks" yaml:"companyLinks"`
	Socials      []Link `json:"socials" yaml:"socials"`
	LegalLinks   []Link `json:"legalLinks" yaml:"legalLinks"`
	Copyright    string `json:"copyright" yaml:"copyright"`
}

// LoadingScreen timing: the splash holds for Hold, then fades out over Fade
type LoadingScreen struct {
	Hold time.Duration `json:"-" yaml:"hold"`
	Fade time.Duration `json:"-" yaml:"fade"`
}

// MarshalJSON reports the timing in milliseconds
func (l LoadingScreen) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		HoldMs  int64 `json:"holdMs"`
		FadeMs  int64 `json:"fadeMs"`
		TotalMs int64 `json:"totalMs"`
	}{l.Hold.Milliseconds(), l.Fade.Milliseconds(), l.Total().Milliseconds()})
}

// Total is how long the splash covers the page
func (l LoadingScreen) Total() time.Duration {
	return l.Hold + l.Fade
}

// SiteUsecase exposes the site content to the delivery layer
type SiteUsecase interface {
	Content(ctx context.Context) SiteContent
	Services(ctx context.Context) []string
}
