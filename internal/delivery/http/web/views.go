package web

import (
	"strconv"

	"lunarai-web/internal/delivery/http/middleware"
	"lunarai-web/internal/domain"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// PageData is everything one render of the landing page needs
type PageData struct {
	Site       domain.SiteContent
	Form       domain.ContactForm
	Errors     domain.ValidationErrors
	ShowDialog bool
	CSRFToken  string
	// Notice is a form-level message, e.g. after a rejected post
	Notice string
	// SkipSplash hides the loading screen, used when re-rendering after a post
	SkipSplash bool
}

func Page(data PageData) g.Node {
	site := data.Site

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Textf("%s - %s", site.Brand.Name, site.Hero.Badge)),
				Meta(Name("description"), Content(site.Hero.Subheading)),
				Meta(g.Attr("property", "og:title"), Content(site.Brand.Name)),
				Meta(g.Attr("property", "og:description"), Content(site.Brand.Tagline)),
				Meta(g.Attr("property", "og:type"), Content("website")),
				Link(Rel("stylesheet"), Href("/static/styles.css")),
			),
			Body(
				Class("bg-background"),
				g.Attr("data-splash-hold", strconv.FormatInt(site.Loading.Hold.Milliseconds(), 10)),
				g.Attr("data-splash-fade", strconv.FormatInt(site.Loading.Fade.Milliseconds(), 10)),

				g.If(!data.SkipSplash, loadingScreen(site)),
				navbar(site),
				g.El("main",
					hero(site.Hero),
					solutions(site.SolutionsHeader, site.Solutions),
					serviceDetails(site.Services),
					team(site.TeamHeader, site.Team),
					contactSection(site.Contact, data),
				),
				footer(site),
				g.If(data.ShowDialog, confirmationDialog()),

				Script(Src("/static/app.js"), g.Attr("defer", "")),
			),
		),
	})
}

func loadingScreen(site domain.SiteContent) g.Node {
	return Div(
		ID("loading-screen"),
		Class("loading-screen"),
		g.Attr("aria-hidden", "true"),
		Div(Class("loading-orbit"), Div(Class("loading-moon"))),
		P(Class("loading-brand gradient-text"), g.Text(site.Brand.Name)),
	)
}

func navbar(site domain.SiteContent) g.Node {
	return g.El("nav",
		Class("navbar"),
		Div(
			Class("container navbar-inner"),
			A(Href("#home"), Class("brand"), g.Attr("aria-label", site.Brand.LogoAlt), g.Text(site.Brand.Name)),
			Button(
				Type("button"),
				Class("navbar-toggle"),
				g.Attr("aria-controls", "navbar-links"),
				g.Attr("aria-expanded", "false"),
				g.Attr("aria-label", "Toggle navigation"),
				Span(), Span(), Span(),
			),
			Ul(
				ID("navbar-links"),
				Class("navbar-links"),
				g.Group(g.Map(site.Nav, func(l domain.Link) g.Node {
					return Li(A(Href(l.Href), g.Text(l.Label)))
				})),
				Li(A(Href("#contact"), Class("btn btn-hero"), g.Text("Get Started"))),
			),
		),
	)
}

func hero(h domain.Hero) g.Node {
	return g.El("section",
		ID("home"),
		Class("hero"),
		Div(
			Class("container hero-grid"),
			Div(
				Class("hero-copy"),
				Span(Class("pill"), g.Text(h.Badge)),
				H1(
					g.Text(h.Headline+" "),
					Span(Class("gradient-text glow-text"), g.Text(h.Highlight)),
				),
				P(Class("lead"), g.Text(h.Subheading)),
				Div(
					Class("hero-actions"),
					A(Href(h.PrimaryCTA.Href), Class("btn btn-hero"), g.Text(h.PrimaryCTA.Label)),
					A(Href(h.SecondaryCTA.Href), Class("btn btn-outline"), g.Text(h.SecondaryCTA.Label)),
				),
				Div(
					Class("stats"),
					g.Group(g.Map(h.Stats, func(s domain.Stat) g.Node {
						return Div(
							Class("stat"),
							Span(Class("stat-value"), g.Text(s.Value)),
							Span(Class("stat-label"), g.Text(s.Label)),
						)
					})),
				),
			),
			Div(Class("hero-visual"), g.Attr("role", "img"), g.Attr("aria-label", h.ImageAlt)),
		),
	)
}

func sectionHeader(h domain.SectionHeader) g.Node {
	return Div(
		Class("section-header"),
		H2(g.Text(h.Title+" "), Span(Class("gradient-text"), g.Text(h.Highlight))),
		P(g.Text(h.Subtitle)),
	)
}

func solutions(header domain.SectionHeader, items []domain.Solution) g.Node {
	return g.El("section",
		ID("services"),
		Class("section section-gradient"),
		Div(
			Class("container"),
			sectionHeader(header),
			Div(
				Class("card-grid"),
				g.Group(g.Map(items, func(s domain.Solution) g.Node {
					return Div(
						Class("card gradient-border"),
						Span(Class("icon icon-"+s.Icon), g.Attr("aria-hidden", "true")),
						H3(g.Text(s.Title)),
						P(g.Text(s.Description)),
					)
				})),
			),
		),
	)
}

func serviceDetails(items []domain.ServiceDetail) g.Node {
	nodes := make([]g.Node, 0, len(items))
	for i, svc := range items {
		nodes = append(nodes, serviceCard(svc, i%2 == 1))
	}

	return g.El("section",
		Class("section"),
		Div(Class("container service-list"), g.Group(nodes)),
	)
}

func serviceCard(svc domain.ServiceDetail, reverse bool) g.Node {
	var visual g.Node
	if svc.Image != "" {
		visual = Img(Src(svc.Image), g.Attr("alt", svc.ImageAlt), g.Attr("loading", "lazy"))
	} else {
		visual = Div(Class("service-placeholder"), g.Attr("role", "img"), g.Attr("aria-label", svc.ImageAlt))
	}

	class := "service"
	if reverse {
		class += " service-reverse"
	}

	return Div(
		ID(svc.ID),
		Class(class),
		Div(
			Class("service-copy"),
			Span(Class("pill"), g.Text(svc.Badge)),
			H3(g.Text(svc.Title)),
			P(g.Text(svc.Description)),
			Ul(
				Class("features"),
				g.Group(g.Map(svc.Features, func(f string) g.Node {
					return Li(g.Text(f))
				})),
			),
			A(Href("#contact"), Class("btn btn-hero"), g.Text("Get Started")),
		),
		Div(Class("service-visual"), visual),
	)
}

func team(header domain.SectionHeader, members []domain.TeamMember) g.Node {
	return g.El("section",
		ID("team"),
		Class("section"),
		Div(
			Class("container"),
			sectionHeader(header),
			Div(
				Class("card-grid team-grid"),
				g.Group(g.Map(members, func(m domain.TeamMember) g.Node {
					var avatar g.Node
					if m.Image != "" {
						avatar = Img(Class("avatar"), Src(m.Image), g.Attr("alt", m.Name), g.Attr("loading", "lazy"))
					} else {
						avatar = Div(Class("avatar avatar-placeholder"), g.Attr("aria-hidden", "true"), g.Text(initials(m.Name)))
					}
					return Div(
						Class("card team-card"),
						avatar,
						H3(g.Text(m.Name)),
						P(Class("role"), g.Text(m.Role)),
						P(g.Text(m.Description)),
					)
				})),
			),
		),
	)
}

func contactSection(section domain.ContactSection, data PageData) g.Node {
	return g.El("section",
		ID("contact"),
		Class("section"),
		Div(
			Class("container"),
			sectionHeader(section.Header),
			Div(
				Class("contact-grid"),
				contactForm(data),
				Div(
					Class("contact-info"),
					g.Group(g.Map(section.Info, func(info domain.ContactInfo) g.Node {
						return Div(
							Class("card info-card"),
							Span(Class("icon icon-"+info.Icon), g.Attr("aria-hidden", "true")),
							Div(H4(g.Text(info.Title)), P(g.Text(info.Detail))),
						)
					})),
				),
			),
		),
	)
}

func contactForm(data PageData) g.Node {
	form := data.Form

	return g.El("form",
		ID("contact-form"),
		Class("card contact-form"),
		g.Attr("method", "post"),
		g.Attr("action", "/contact#contact"),
		g.Attr("novalidate", ""),
		Input(Type("hidden"), Name(middleware.CSRFTokenFormField), g.Attr("value", data.CSRFToken)),
		g.If(data.Notice != "", P(Class("form-notice"), g.Attr("role", "alert"), g.Text(data.Notice))),
		Div(
			Class("form-row"),
			textField(domain.FieldFirstName, "First Name", "text", "John", form.FirstName, data.Errors),
			textField(domain.FieldLastName, "Last Name", "text", "Doe", form.LastName, data.Errors),
		),
		textField(domain.FieldEmail, "Email", "email", "john@company.com", form.Email, data.Errors),
		textField(domain.FieldCompany, "Company", "text", "Your Company", form.Company, data.Errors),
		serviceField(form.Service, data.Errors),
		Div(
			Class("field"),
			Label(g.Attr("for", domain.FieldMessage), g.Text("Message")),
			g.El("textarea",
				ID(domain.FieldMessage),
				Name(domain.FieldMessage),
				g.Attr("rows", "4"),
				g.Attr("placeholder", "Tell us about your project..."),
				g.If(data.Errors[domain.FieldMessage] != "", g.Attr("aria-invalid", "true")),
				g.Text(form.Message),
			),
			fieldError(domain.FieldMessage, data.Errors),
		),
		Button(
			Type("submit"),
			Class("btn btn-hero btn-block"),
			g.Attr("data-busy-label", "Sending..."),
			g.Text("Schedule Your Free Consultation"),
		),
	)
}

func textField(name, label, kind, placeholder, value string, errs domain.ValidationErrors) g.Node {
	return Div(
		Class("field"),
		Label(g.Attr("for", name), g.Text(label)),
		Input(
			ID(name),
			Name(name),
			Type(kind),
			g.Attr("placeholder", placeholder),
			g.Attr("value", value),
			g.If(errs[name] != "", g.Attr("aria-invalid", "true")),
		),
		fieldError(name, errs),
	)
}

func serviceField(selected string, errs domain.ValidationErrors) g.Node {
	options := []g.Node{
		g.El("option", g.Attr("value", ""), g.If(selected == "", g.Attr("selected", "")), g.Text("Select a service")),
	}
	for _, svc := range domain.OfferedServices {
		options = append(options, g.El("option",
			g.Attr("value", svc),
			g.If(svc == selected, g.Attr("selected", "")),
			g.Text(svc),
		))
	}

	return Div(
		Class("field"),
		Label(g.Attr("for", domain.FieldService), g.Text("Service Interest")),
		g.El("select",
			ID(domain.FieldService),
			Name(domain.FieldService),
			g.If(errs[domain.FieldService] != "", g.Attr("aria-invalid", "true")),
			g.Group(options),
		),
		fieldError(domain.FieldService, errs),
	)
}

func fieldError(name string, errs domain.ValidationErrors) g.Node {
	msg, ok := errs[name]
	if !ok || msg == "" {
		return nil
	}
	return P(Class("field-error"), g.Attr("data-error-for", name), g.Text(msg))
}

func confirmationDialog() g.Node {
	return g.El("dialog",
		ID("contact-dialog"),
		Class("dialog"),
		g.Attr("open", ""),
		g.Attr("aria-labelledby", "contact-dialog-title"),
		H3(ID("contact-dialog-title"), g.Text(domain.DialogTitle)),
		P(g.Text(domain.DialogDescription)),
		g.El("form",
			g.Attr("method", "dialog"),
			Button(Class("btn btn-hero"), g.Text("Close")),
		),
	)
}

func footer(site domain.SiteContent) g.Node {
	f := site.Footer
	links := func(items []domain.Link) g.Node {
		return Ul(g.Group(g.Map(items, func(l domain.Link) g.Node {
			return Li(A(Href(l.Href), g.Text(l.Label)))
		})))
	}

	return g.El("footer",
		Class("footer"),
		Div(
			Class("container footer-grid"),
			Div(
				Class("footer-brand"),
				A(Href("#home"), Class("brand"), g.Text(site.Brand.Name)),
				P(g.Text(site.Brand.Tagline)),
			),
			Div(H4(g.Text("Services")), links(f.ServiceLinks)),
			Div(H4(g.Text("Company")), links(f.CompanyLinks)),
			Div(
				H4(g.Text("Connect")),
				Div(
					Class("socials"),
					g.Group(g.Map(f.Socials, func(l domain.Link) g.Node {
						return A(Href(l.Href), g.Attr("aria-label", l.Label), g.Attr("rel", "noopener"), g.Text(l.Label))
					})),
				),
			),
		),
		Div(
			Class("container footer-bottom"),
			P(g.Text(f.Copyright)),
			Div(Class("legal"), g.Group(g.Map(f.LegalLinks, func(l domain.Link) g.Node {
				return A(Href(l.Href), g.Text(l.Label))
			}))),
		),
	)
}

func initials(name string) string {
	out := make([]rune, 0, 2)
	start := true
	for _, r := range name {
		if r == ' ' {
			start = true
			continue
		}
		if start && len(out) < 2 {
			out = append(out, r)
		}
		start = false
	}
	return string(out)
}
