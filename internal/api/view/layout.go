// Package view renders the platform's HTML pages with gomponents.
package view

import (
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/foodshare/platform/internal/core/catalog"
	"github.com/foodshare/platform/internal/core/domain"
)

// Chrome is what every page needs to draw the navigation bar.
type Chrome struct {
	Principal *domain.Principal
	Loading   bool
	Active    string
	Flash     string
}

type navLink struct {
	label, href string
}

func navLinks(p *domain.Principal) []navLink {
	if p == nil {
		return []navLink{{"Home", "/"}, {"Sign In", "/login"}, {"Sign Up", "/register"}}
	}
	links := []navLink{{"Dashboard", "/dashboard"}}
	switch p.Role {
	case domain.RoleDonor:
		links = append(links, navLink{"Post Food", "/post-food"})
	case domain.RoleNGO:
		links = append(links, navLink{"Browse Food", "/browse-food"})
	}
	return append(links, navLink{"Profile", "/profile"})
}

func navbar(ch Chrome) Node {
	items := make([]Node, 0, 5)
	for _, l := range navLinks(ch.Principal) {
		items = append(items, Li(A(Href(l.href), If(l.href == ch.Active, Class("active")), Text(l.label))))
	}

	return Nav(Class("navbar"),
		A(Href("/"), Class("brand"), Strong(Text("FoodShare"))),
		Ul(Group(items)),
		Iff(ch.Principal != nil, func() Node { return accountMenu(ch.Principal) }),
	)
}

func accountMenu(p *domain.Principal) Node {
	return Div(Class("nav-account"),
		If(p.Avatar != "", Img(Src(p.Avatar), Alt(p.Name), Class("avatar"))),
		Span(Text(p.Name)),
		roleBadge(p.Role),
		Form(Method("post"), Action("/logout"),
			Button(Type("submit"), Text("Logout")),
		),
	)
}

func roleBadge(r domain.Role) Node {
	return Span(Class("badge role-"+r.String()), Text(r.Title()))
}

// Page wraps body in the document shell shared by all screens.
func Page(title string, ch Chrome, body ...Node) Node {
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(Text(title+" | FoodShare")),
			),
			Body(
				navbar(ch),
				If(ch.Loading, P(Class("loading"), Text("A previous submission is still being processed…"))),
				If(ch.Flash != "", Div(Class("flash"), Role("status"), Text(ch.Flash))),
				Main(Group(body)),
			),
		),
	)
}

func statGrid(stats []catalog.Stat) Node {
	return Div(Class("stats"),
		Map(stats, func(s catalog.Stat) Node {
			return Div(Class("stat"),
				Span(Class("stat-value"), Text(s.Value)),
				Span(Class("stat-label"), Text(s.Label)),
				If(s.Change != "", Small(Text(s.Change))),
			)
		}),
	)
}

func formError(msg string) Node {
	return If(msg != "", P(Class("error"), Role("alert"), Text(msg)))
}

func field(label, name string, input Node) Node {
	return Div(Class("field"),
		Label(For(name), Text(label)),
		input,
	)
}
