package view

import (
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/foodshare/platform/internal/core/catalog"
)

func Landing(ch Chrome, data catalog.Landing) Node {
	return Page("Home", ch,
		Section(Class("hero"),
			H1(Text("Share Food, Share Hope")),
			P(Text("Connect surplus food with communities in need. Join our platform to reduce waste and fight hunger together.")),
			If(ch.Principal == nil, Div(Class("cta"),
				A(Href("/register"), Class("btn btn-primary"), Text("Get Started")),
				A(Href("/login"), Class("btn"), Text("Sign In")),
			)),
		),
		Section(Class("features"),
			H2(Text("Why FoodShare?")),
			Map(data.Features, func(f catalog.Feature) Node {
				return Article(H3(Text(f.Title)), P(Text(f.Description)))
			}),
		),
		Section(Class("impact"),
			H2(Text("Our Impact")),
			statGrid(data.Stats),
		),
		Section(Class("roles"),
			H2(Text("Join Our Community")),
			Map(data.Roles, func(r catalog.RoleCard) Node {
				return Article(
					H3(Text(r.Title)),
					P(Text(r.Description)),
					Ul(Map(r.Features, func(f string) Node { return Li(Text(f)) })),
				)
			}),
		),
	)
}
