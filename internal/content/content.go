package content

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"lunarai-web/internal/domain"

	"gopkg.in/yaml.v3"
)

// Default returns the built-in landing page content
func Default() domain.SiteContent {
	return domain.SiteContent{
		Brand: domain.Brand{
			Name:    "LunarAI",
			Tagline: "Launching businesses into the AI stratosphere",
			LogoAlt: "LunarAI Logo",
		},
		Nav: []domain.Link{
			{Label: "Home", Href: "#home"},
			{Label: "Services", Href: "#services"},
			{Label: "About Us", Href: "#team"},
			{Label: "Contact", Href: "#contact"},
		},
		Hero: domain.Hero{
			Badge:        "AI Automation Agency",
			Headline:     "Launch Your Business into the",
			Highlight:    "AI Stratosphere",
			Subheading:   "Save time, reduce costs, and boost productivity with cutting-edge AI automation solutions tailored for your business.",
			PrimaryCTA:   domain.Link{Label: "Request a Consultation", Href: "#contact"},
			SecondaryCTA: domain.Link{Label: "Watch Demo", Href: "#"},
			ImageAlt:     "AI Robot Assistant",
			Stats: []domain.Stat{
				{Value: "500+", Label: "Hours Saved"},
				{Value: "10000+", Label: "Tasks Automated"},
				{Value: "95+", Label: "% Efficiency"},
			},
		},
		SolutionsHeader: domain.SectionHeader{
			Title:     "Our",
			Highlight: "AI Solutions",
			Subtitle:  "Powerful automation tools to transform your business",
		},
		Solutions: []domain.Solution{
			{Icon: "mic", Title: "Voice AI Agents", Description: "Automate appointment booking with intelligent voice assistants"},
			{Icon: "headphones", Title: "AI Customer Support", Description: "24/7 automated client support that never sleeps"},
			{Icon: "instagram", Title: "Social Media Automation", Description: "Schedule, post, and track engagement automatically"},
			{Icon: "trending-up", Title: "Lead Generation AI", Description: "Automate lead research and qualification scoring"},
		},
		Services: []domain.ServiceDetail{
			{
				ID:          "voice-ai",
				Badge:       "Service 01",
				Title:       "Voice AI Agents",
				Description: "Transform your appointment scheduling with intelligent voice AI that handles bookings, reschedules, and confirmations automatically. Our voice agents understand natural language and provide a seamless experience for your customers.",
				Features:    []string{"Natural language processing", "Multi-language support", "Calendar integration"},
				ImageAlt:    "Voice AI Technology",
			},
			{
				ID:          "customer-support",
				Badge:       "Service 02",
				Title:       "AI-Powered Customer Support",
				Description: "Deliver exceptional 24/7 customer support with AI agents that understand context, resolve issues, and escalate when needed. Never miss a customer inquiry again.",
				Features:    []string{"24/7 availability", "Instant response times", "Smart escalation system"},
				ImageAlt:    "AI Customer Support Robot",
			},
			{
				ID:          "social-media",
				Badge:       "Service 03",
				Title:       "Social Media Automation",
				Description: "Maintain consistent social media presence with automated scheduling, posting, and engagement tracking across all platforms. Focus on strategy while AI handles execution.",
				Features:    []string{"Multi-platform scheduling", "Content optimization", "Analytics & insights"},
				ImageAlt:    "Social Media Analytics Dashboard",
			},
			{
				ID:          "lead-generation",
				Badge:       "Service 04",
				Title:       "AI Lead Generation & Qualification",
				Description: "Automate your entire lead generation pipeline with AI that researches, qualifies, and scores leads based on your ideal customer profile. Focus on closing, not searching.",
				Features:    []string{"Automated lead research", "Smart qualification scoring", "CRM integration"},
				ImageAlt:    "Lead Generation Funnel",
			},
		},
		TeamHeader: domain.SectionHeader{
			Title:     "Meet the",
			Highlight: "LunarAI Team",
			Subtitle:  "Experts in complete AI automation systems",
		},
		Team: []domain.TeamMember{
			{Name: "Muhammad Umar", Role: "Chief of Operations", Description: "Leading AI automation innovation for enterprise solutions"},
			{Name: "Muhammad Abdullah", Role: "CEO & AI Strategist", Description: "Building cutting-edge AI systems and neural networks"},
			{Name: "Marcus Johnson", Role: "Head of Automation", Description: "Designing seamless workflow automation solutions", Image: "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=300&h=300&fit=crop&crop=face"},
		},
		Contact: domain.ContactSection{
			Header: domain.SectionHeader{
				Title:     "Get in",
				Highlight: "Touch",
				Subtitle:  "Ready to transform your business with AI automation?",
			},
			Info: []domain.ContactInfo{
				{Icon: "mail", Title: "Email Us", Detail: "admin@lunarai.agency"},
				{Icon: "instagram", Title: "DM us", Detail: "@lunar_ai1"},
				{Icon: "map-pin", Title: "Visit Us", Detail: "Islamabad , Pakistan"},
			},
		},
		Footer: domain.Footer{
			ServiceLinks: []domain.Link{
				{Label: "Voice AI Agents", Href: "#voice-ai"},
				{Label: "AI Customer Support", Href: "#customer-support"},
				{Label: "Social Media Automation", Href: "#social-media"},
				{Label: "Lead Generation", Href: "#lead-generation"},
			},
			CompanyLinks: []domain.Link{
				{Label: "About Us", Href: "#team"},
				{Label: "Contact", Href: "#contact"},
			},
			Socials: []domain.Link{
				{Label: "Email", Href: "mailto:admin@lunarai.agency"},
				{Label: "LinkedIn", Href: "#"},
				{Label: "Instagram", Href: "https://www.instagram.com/lunar_ai1/"},
			},
			LegalLinks: []domain.Link{
				{Label: "Privacy Policy", Href: "#"},
				{Label: "Terms of Service", Href: "#"},
			},
			Copyright: "© 2026 LunarAI. All rights reserved.",
		},
		Loading: domain.LoadingScreen{
			Hold: 3200 * time.Millisecond,
			Fade: 800 * time.Millisecond,
		},
	}
}

// Load returns the built-in content with the YAML file at path applied on top.
// An empty path means no override. Lists in the file replace the defaults wholesale.
// Service and team images are optional; views fall back to a gradient tile.
func Load(path string) (domain.SiteContent, error) {
	site := Default()
	if path == "" {
		return site, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.SiteContent{}, fmt.Errorf("read site content: %w", err)
	}
	if err := Decode(data, &site); err != nil {
		return domain.SiteContent{}, fmt.Errorf("parse site content %s: %w", path, err)
	}
	return site, nil
}

// Decode applies YAML data onto site and validates the result
func Decode(data []byte, site *domain.SiteContent) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(site); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return Validate(*site)
}

// Validate rejects content the page cannot render
func Validate(site domain.SiteContent) error {
	if site.Brand.Name == "" {
		return errors.New("brand name is required")
	}
	if len(site.Services) == 0 {
		return errors.New("at least one service is required")
	}
	seen := make(map[string]bool, len(site.Services))
	for i, svc := range site.Services {
		if svc.ID == "" || svc.Title == "" {
			return fmt.Errorf("service %d: id and title are required", i)
		}
		if seen[svc.ID] {
			return fmt.Errorf("service %d: duplicate id %q", i, svc.ID)
		}
		seen[svc.ID] = true
	}
	if site.Loading.Hold < 0 || site.Loading.Fade < 0 {
		return errors.New("loading timings must not be negative")
	}
	return nil
}
