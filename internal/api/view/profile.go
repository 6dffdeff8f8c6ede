package view

import (
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/foodshare/platform/internal/core/catalog"
)

func Profile(ch Chrome, data catalog.ProfileSummary, editing bool) Node {
	p := ch.Principal

	var details Node
	if editing {
		details = Form(Method("post"), Action("/profile"),
			field("Full Name", "name", Input(Type("text"), ID("name"), Name("name"), Value(p.Name), Required())),
			field("Email", "email", Input(Type("email"), ID("email"), Name("email"), Value(p.Email), Required())),
			field("Phone", "phone", Input(Type("tel"), ID("phone"), Name("phone"), Value(p.Phone))),
			field("Location", "location", Input(Type("text"), ID("location"), Name("location"), Value(p.Location))),
			field("Organization", "organization", Input(Type("text"), ID("organization"), Name("organization"), Value(p.Organization))),
			Button(Type("submit"), Class("btn btn-primary"), Text("Save")),
			A(Href("/profile"), Class("btn"), Text("Cancel")),
		)
	} else {
		details = Group{
			Dl(
				Dt(Text("Email")), Dd(Text(p.Email)),
				Dt(Text("Phone")), Dd(Text(orNotProvided(p.Phone))),
				Dt(Text("Location")), Dd(Text(orNotProvided(p.Location))),
				If(p.Organization != "", Group{Dt(Text("Organization")), Dd(Text(p.Organization))}),
			),
			A(Href("/profile?edit=1"), Class("btn"), Text("Edit Profile")),
		}
	}

	return Page("Profile", ch,
		Section(Class("profile"),
			If(p.Avatar != "", Img(Src(p.Avatar), Alt(p.Name), Class("avatar-lg"))),
			H1(Text(p.Name)),
			roleBadge(p.Role),
			If(p.Organization != "", P(Text(p.Organization))),
			details,
		),
		statGrid(data.Stats),
		Section(
			H2(Text("Recent Activity")),
			Ul(Class("activity"), Map(data.Activity, func(a catalog.Activity) Node {
				return Li(
					Strong(Text(a.Title)),
					P(Text(a.Description)),
					Small(Text(a.Date)),
					statusBadge(a.Status),
				)
			})),
		),
	)
}

func orNotProvided(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}
