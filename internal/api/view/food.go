package view

import (
	"fmt"
	"strings"
	"time"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/foodshare/platform/internal/core/catalog"
)

// BrowseState is the search, filter and sort of the browse screen.
type BrowseState struct {
	Query catalog.Query
	Now   time.Time
}

func BrowseFood(ch Chrome, listings []catalog.FoodListing, st BrowseState) Node {
	q := st.Query
	return Page("Browse Food", ch,
		Header(Class("page-header"),
			H1(Text("Browse Available Food")),
			P(Text("Find and claim surplus food donations in your area")),
		),
		Form(Method("get"), Action("/browse-food"), Class("toolbar"),
			Input(Type("search"), Name("q"), Value(q.Search), Placeholder("Search food or donor…")),
			Select(Name("filter"),
				filterOption(catalog.FilterAll, "All Food", q.Filter),
				filterOption(catalog.FilterNearby, "Nearby (< 2km)", q.Filter),
				filterOption(catalog.FilterUrgent, "Urgent (< 4h)", q.Filter),
				filterOption(catalog.FilterVegetarian, "Vegetarian", q.Filter),
			),
			Select(Name("sort"),
				sortOption(catalog.SortDistance, "Sort by Distance", q.Sort),
				sortOption(catalog.SortTime, "Sort by Time", q.Sort),
				sortOption(catalog.SortQuantity, "Sort by Quantity", q.Sort),
			),
			Button(Type("submit"), Text("Apply")),
		),
		P(Class("result-count"), Text(fmt.Sprintf("%d food items available", len(listings)))),
		If(len(listings) == 0, P(Class("empty"), Text("No food found. Try adjusting your search or filters."))),
		Div(Class("cards"), Map(listings, func(l catalog.FoodListing) Node {
			return listingCard(l, st.Now)
		})),
	)
}

func listingCard(l catalog.FoodListing, now time.Time) Node {
	return Article(Class("card urgency-"+string(catalog.UrgencyOf(l.ExpiresAt, now))),
		If(l.ImageURL != "", Img(Src(l.ImageURL), Alt(l.FoodType))),
		H3(Text(l.FoodType)),
		P(Strong(Text(l.Donor)), Text(" · "+l.DonorType+fmt.Sprintf(" · %.1f★", l.Rating))),
		P(Text(l.Description)),
		Dl(
			Dt(Text("Quantity")), Dd(Text(l.Quantity)),
			Dt(Text("Distance")), Dd(Text(fmt.Sprintf("%.1f km", l.DistanceKm))),
			Dt(Text("Time left")), Dd(Class("time-left"), Text(catalog.TimeRemaining(l.ExpiresAt, now))),
			Dt(Text("Address")), Dd(Text(l.Address)),
			Dt(Text("Posted")), Dd(Text(l.PostedAgo)),
		),
		If(len(l.Dietary.Tags()) > 0, Ul(Class("tags"), Map(l.Dietary.Tags(), func(t string) Node {
			return Li(Text(t))
		}))),
		If(l.PickupInstructions != "", P(Class("instructions"), Text(l.PickupInstructions))),
		A(Href("tel:"+strings.ReplaceAll(l.ContactPhone, " ", "")), Text("Call "+l.ContactPhone)),
		claimButton(l.ID),
	)
}

func sortOption(k catalog.SortKey, label string, current catalog.SortKey) Node {
	return Option(Value(string(k)), If(k == current, Selected()), Text(label))
}

// PostForm is the sticky state of the post-food form.
type PostForm struct {
	FoodType           string
	Category           string
	Quantity           string
	Unit               string
	Description        string
	ExpiryDate         string
	ExpiryTime         string
	PickupAddress      string
	PickupInstructions string
	ContactPhone       string
	Dietary            catalog.Dietary
	Error              string
}

func PostFood(ch Chrome, form PostForm) Node {
	if form.Unit == "" {
		form.Unit = "kg"
	}
	if form.ContactPhone == "" && ch.Principal != nil {
		form.ContactPhone = ch.Principal.Phone
	}
	if form.PickupAddress == "" && ch.Principal != nil {
		form.PickupAddress = ch.Principal.Location
	}

	return Page("Post Food", ch,
		Header(Class("page-header"),
			H1(Text("Post Surplus Food")),
			P(Text("Share your surplus food with NGOs and volunteers in your area")),
		),
		formError(form.Error),
		Form(Method("post"), Action("/post-food"),
			FieldSet(
				Legend(Text("Food Details")),
				field("Food Type", "food_type", Input(Type("text"), ID("food_type"), Name("food_type"), Value(form.FoodType), Placeholder("e.g., Vegetable Biryani, Fresh Bread"), Required())),
				field("Category", "category", Select(ID("category"), Name("category"), Required(),
					Option(Value(""), Text("Select category")),
					Map(catalog.PostCategories, func(c struct{ Value, Label string }) Node {
						return Option(Value(c.Value), If(c.Value == form.Category, Selected()), Text(c.Label))
					}),
				)),
				field("Quantity", "quantity", Input(Type("number"), ID("quantity"), Name("quantity"), Value(form.Quantity), Min("1"), Required())),
				field("Unit", "unit", Select(ID("unit"), Name("unit"),
					Map(catalog.PostUnits, func(u string) Node {
						return Option(Value(u), If(u == form.Unit, Selected()), Text(u))
					}),
				)),
				field("Description", "description", Textarea(ID("description"), Name("description"), Rows("3"), Text(form.Description))),
			),
			FieldSet(
				Legend(Text("Expiry Information")),
				field("Expiry Date", "expiry_date", Input(Type("date"), ID("expiry_date"), Name("expiry_date"), Value(form.ExpiryDate), Required())),
				field("Expiry Time", "expiry_time", Input(Type("time"), ID("expiry_time"), Name("expiry_time"), Value(form.ExpiryTime), Required())),
			),
			FieldSet(
				Legend(Text("Pickup Information")),
				field("Pickup Address", "pickup_address", Input(Type("text"), ID("pickup_address"), Name("pickup_address"), Value(form.PickupAddress), Required())),
				field("Pickup Instructions", "pickup_instructions", Textarea(ID("pickup_instructions"), Name("pickup_instructions"), Rows("2"), Text(form.PickupInstructions))),
				field("Contact Phone", "contact_phone", Input(Type("tel"), ID("contact_phone"), Name("contact_phone"), Value(form.ContactPhone), Required())),
			),
			FieldSet(
				Legend(Text("Dietary Information")),
				dietaryBox("vegetarian", "Vegetarian", form.Dietary.Vegetarian),
				dietaryBox("vegan", "Vegan", form.Dietary.Vegan),
				dietaryBox("gluten_free", "Gluten Free", form.Dietary.GlutenFree),
				dietaryBox("nut_free", "Nut Free", form.Dietary.NutFree),
				dietaryBox("halal", "Halal", form.Dietary.Halal),
				dietaryBox("kosher", "Kosher", form.Dietary.Kosher),
			),
			Button(Type("submit"), Class("btn btn-primary"), Text("Post Food Donation")),
		),
	)
}

func dietaryBox(name, label string, checked bool) Node {
	return Label(
		Input(Type("checkbox"), Name(name), Value("true"), If(checked, Checked())),
		Text(" "+label),
	)
}
