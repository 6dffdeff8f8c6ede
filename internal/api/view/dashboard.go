package view

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/foodshare/platform/internal/core/catalog"
	"github.com/foodshare/platform/internal/core/domain"
)

func DonorDashboard(ch Chrome, data catalog.DonorDashboard) Node {
	return Page("Dashboard", ch,
		Header(Class("page-header"),
			H1(Text("Welcome back, "+ch.Principal.Name+"!")),
			P(Text("Thank you for making a difference in your community")),
			A(Href("/post-food"), Class("btn btn-primary"), Text("Post Food")),
		),
		statGrid(data.Stats),
		Section(
			H2(Text("Recent Donations")),
			Table(
				THead(Tr(Th(Text("Food")), Th(Text("Quantity")), Th(Text("Status")), Th(Text("Claimed By")), Th(Text("Date")), Th(Text("Rating")))),
				TBody(Map(data.Donations, func(d catalog.Donation) Node {
					return Tr(
						Td(Text(d.FoodType)),
						Td(Text(d.Quantity)),
						Td(statusBadge(string(d.Status))),
						Td(Text(d.ClaimedBy)),
						Td(Text(d.Date)),
						Td(If(d.Rating > 0, Text(strings.Repeat("★", d.Rating)))),
					)
				})),
			),
		),
	)
}

// NGODashboardState carries the dashboard's search box and filter.
type NGODashboardState struct {
	Search string
	Filter catalog.Filter
	Now    time.Time
}

func NGODashboard(ch Chrome, data catalog.NGODashboard, st NGODashboardState) Node {
	return Page("Dashboard", ch,
		Header(Class("page-header"),
			H1(Text("Welcome, "+ch.Principal.DisplayName()+"!")),
			P(Text("Find and claim food donations in your area")),
			A(Href("/browse-food"), Class("btn btn-primary"), Text("Browse All Food")),
		),
		statGrid(data.Stats),
		Section(
			H2(Text("Available Food Nearby")),
			Form(Method("get"), Action("/dashboard"), Class("toolbar"),
				Input(Type("search"), Name("q"), Value(st.Search), Placeholder("Search food or donor…")),
				Select(Name("filter"),
					filterOption(catalog.FilterAll, "All", st.Filter),
					filterOption(catalog.FilterNearby, "Nearby", st.Filter),
					filterOption(catalog.FilterUrgent, "Urgent", st.Filter),
				),
				Button(Type("submit"), Text("Apply")),
			),
			If(len(data.Available) == 0, P(Class("empty"), Text("No food matches your search."))),
			Div(Class("cards"), Map(data.Available, func(l catalog.FoodListing) Node {
				return Article(Class("card urgency-"+string(catalog.UrgencyOf(l.ExpiresAt, st.Now))),
					H3(Text(l.FoodType)),
					P(Text(l.Donor+" · "+l.Quantity)),
					P(Text(fmt.Sprintf("%.1f km away", l.DistanceKm))),
					P(Class("time-left"), Text(catalog.TimeRemaining(l.ExpiresAt, st.Now))),
					claimButton(l.ID),
				)
			})),
		),
		Section(
			H2(Text("My Pickups")),
			Map(data.Pickups, func(p catalog.Pickup) Node {
				return Article(Class("pickup"),
					H3(Text(p.FoodType)),
					P(Text(p.Donor+" · "+p.Quantity)),
					P(Text(p.Address)),
					P(Text("Pickup: "+p.PickupTime)),
					statusBadge(string(p.Status)),
				)
			}),
		),
	)
}

// AdminDashboardState carries the active tab and the user search.
type AdminDashboardState struct {
	Tab    catalog.AdminTab
	Search string
}

func AdminDashboard(ch Chrome, data catalog.AdminDashboard, st AdminDashboardState) Node {
	tabs := Nav(Class("tabs"), Map(catalog.AdminTabs, func(t struct {
		Key   catalog.AdminTab
		Label string
	}) Node {
		return A(Href("/dashboard?tab="+url.QueryEscape(string(t.Key))), If(t.Key == st.Tab, Class("active")), Text(t.Label))
	}))

	var body Node
	switch st.Tab {
	case catalog.TabUsers:
		body = adminUsers(data.Members, st.Search)
	case catalog.TabReports:
		body = Section(H2(Text("Reports & Analytics")), P(Text("Detailed reports and analytics coming soon.")))
	case catalog.TabSystem:
		body = adminSystem(data.Alerts)
	default:
		body = Group{statGrid(data.Stats), adminSystem(data.Alerts)}
	}

	return Page("Admin Dashboard", ch,
		Header(Class("page-header"),
			H1(Text("Admin Dashboard")),
			P(Text("Monitor and manage the FoodShare platform")),
		),
		tabs,
		body,
	)
}

func adminUsers(members []catalog.Member, search string) Node {
	return Section(
		H2(Text("User Management")),
		Form(Method("get"), Action("/dashboard"), Class("toolbar"),
			Input(Type("hidden"), Name("tab"), Value(string(catalog.TabUsers))),
			Input(Type("search"), Name("q"), Value(search), Placeholder("Search users…")),
			Button(Type("submit"), Text("Search")),
		),
		Table(
			THead(Tr(Th(Text("User")), Th(Text("Role")), Th(Text("Status")), Th(Text("Joined")), Th(Text("Activity")))),
			TBody(Map(members, func(m catalog.Member) Node {
				return Tr(
					Td(Strong(Text(m.Name)), Br(), Small(Text(m.Email))),
					Td(roleBadge(m.Role)),
					Td(statusBadge(string(m.Status))),
					Td(Text(m.JoinDate)),
					Td(Text(memberActivity(m))),
				)
			})),
		),
	)
}

func memberActivity(m catalog.Member) string {
	if m.Donations == 0 {
		return "No activity"
	}
	noun := "donations"
	if m.Role == domain.RoleNGO {
		noun = "pickups"
	}
	return fmt.Sprintf("%d %s · %.1f★", m.Donations, noun, m.Rating)
}

func adminSystem(alerts []catalog.Alert) Node {
	return Section(
		H2(Text("System Alerts")),
		Map(alerts, func(a catalog.Alert) Node {
			return Div(Class("alert alert-"+string(a.Kind)),
				Strong(Text(a.Title)),
				P(Text(a.Message)),
				Small(Text(a.Time)),
			)
		}),
	)
}

func statusBadge(status string) Node {
	return Span(Class("badge status-"+status), Text(strings.ReplaceAll(status, "_", " ")))
}

func filterOption(f catalog.Filter, label string, current catalog.Filter) Node {
	return Option(Value(string(f)), If(f == current, Selected()), Text(label))
}

func claimButton(id string) Node {
	return Form(Method("post"), Action("/browse-food/"+url.PathEscape(id)+"/claim"),
		Button(Type("submit"), Class("btn btn-primary"), Text("Claim")),
	)
}
