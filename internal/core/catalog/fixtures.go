package catalog

import (
	"strings"
	"time"

	"github.com/foodshare/platform/internal/core/domain"
)

// Stat is a labelled headline figure.
type Stat struct {
	Label  string
	Value  string
	Change string
}

// DonationStatus is the lifecycle badge of a donor's past donation.
type DonationStatus string

const (
	DonationAvailable DonationStatus = "available"
	DonationClaimed   DonationStatus = "claimed"
	DonationPickedUp  DonationStatus = "picked_up"
	DonationDelivered DonationStatus = "delivered"
)

// Donation is a row of the donor dashboard.
type Donation struct {
	ID        string
	FoodType  string
	Quantity  string
	Status    DonationStatus
	ClaimedBy string
	Date      string
	Rating    int
}

// PickupStatus is the state of an NGO pickup.
type PickupStatus string

const (
	PickupReady    PickupStatus = "ready_for_pickup"
	PickupPickedUp PickupStatus = "picked_up"
)

// Pickup is a row of the NGO dashboard.
type Pickup struct {
	ID         string
	Donor      string
	FoodType   string
	Quantity   string
	Status     PickupStatus
	PickupTime string
	Address    string
}

// MemberStatus is an account's moderation state as seen by admins.
type MemberStatus string

const (
	MemberActive    MemberStatus = "active"
	MemberPending   MemberStatus = "pending"
	MemberSuspended MemberStatus = "suspended"
)

// Member is a row of the admin user table.
type Member struct {
	ID        string
	Name      string
	Email     string
	Role      domain.Role
	Status    MemberStatus
	JoinDate  string
	Donations int
	Rating    float64
}

// AlertKind drives the icon of a system alert.
type AlertKind string

const (
	AlertWarning AlertKind = "warning"
	AlertInfo    AlertKind = "info"
	AlertSuccess AlertKind = "success"
	AlertError   AlertKind = "error"
)

// Alert is a system notice on the admin dashboard.
type Alert struct {
	ID      string
	Kind    AlertKind
	Title   string
	Message string
	Time    string
}

// Activity is an entry of a profile's recent activity feed.
type Activity struct {
	Kind        string
	Title       string
	Description string
	Date        string
	Status      string
}

// Feature is a landing page selling point.
type Feature struct {
	Title       string
	Description string
}

// RoleCard describes one audience on the landing page.
type RoleCard struct {
	Title       string
	Description string
	Features    []string
}

// AdminTab names a section of the admin dashboard.
type AdminTab string

const (
	TabOverview AdminTab = "overview"
	TabUsers    AdminTab = "users"
	TabReports  AdminTab = "reports"
	TabSystem   AdminTab = "system"
)

// AdminTabs lists the tabs with their labels in display order.
var AdminTabs = []struct {
	Key   AdminTab
	Label string
}{
	{TabOverview, "Overview"},
	{TabUsers, "User Management"},
	{TabReports, "Reports & Analytics"},
	{TabSystem, "System Health"},
}

// ParseAdminTab defaults to the overview tab.
func ParseAdminTab(s string) AdminTab {
	for _, t := range AdminTabs {
		if string(t.Key) == s {
			return t.Key
		}
	}
	return TabOverview
}

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic("catalog: bad fixture time " + s)
	}
	return t
}

const pexels = "https://images.pexels.com/photos/"

func defaultListings() []FoodListing {
	return []FoodListing{
		{
			ID:                 "1",
			Donor:              "Green Garden Restaurant",
			DonorType:          "Restaurant",
			FoodType:           "Mixed Vegetables & Salads",
			Category:           "cooked",
			Quantity:           "20 kg",
			Description:        "Fresh mixed vegetables curry, garden salad, and steamed rice. Prepared this afternoon with organic ingredients.",
			ExpiresAt:          at("2025-01-03 18:00"),
			DistanceKm:         1.2,
			Address:            "123 Main St, Downtown",
			ContactPhone:       "+1 (555) 123-4567",
			ImageURL:           pexels + "1640777/pexels-photo-1640777.jpeg?auto=compress&cs=tinysrgb&w=400",
			PostedAgo:          "2 hours ago",
			Rating:             4.8,
			PickupInstructions: "Please ring the back entrance doorbell. Ask for Sarah.",
			Dietary:            Dietary{Vegetarian: true, GlutenFree: true, NutFree: true},
		},
		{
			ID:                 "2",
			Donor:              "Wedding Event Hall",
			DonorType:          "Event",
			FoodType:           "Indian Wedding Feast",
			Category:           "cooked",
			Quantity:           "50 portions",
			Description:        "Complete Indian wedding meal including biryani, dal, paneer curry, naan, and desserts. High quality catering food.",
			ExpiresAt:          at("2025-01-03 20:00"),
			DistanceKm:         0.8,
			Address:            "456 Oak Ave, City Center",
			ContactPhone:       "+1 (555) 987-6543",
			ImageURL:           pexels + "958545/pexels-photo-958545.jpeg?auto=compress&cs=tinysrgb&w=400",
			PostedAgo:          "30 minutes ago",
			Rating:             4.9,
			PickupInstructions: "Use main entrance. Contact event coordinator.",
			Dietary:            Dietary{Vegetarian: true, Halal: true},
		},
		{
			ID:                 "3",
			Donor:              "Smith Family",
			DonorType:          "Individual",
			FoodType:           "Homemade Sandwiches & Snacks",
			Category:           "packaged",
			Quantity:           "15 pieces",
			Description:        "Freshly made sandwiches, cookies, and fruit juice boxes. Perfect for lunch distribution.",
			ExpiresAt:          at("2025-01-03 22:00"),
			DistanceKm:         2.1,
			Address:            "789 Elm St, Suburbs",
			ContactPhone:       "+1 (555) 456-7890",
			ImageURL:           pexels + "1603901/pexels-photo-1603901.jpeg?auto=compress&cs=tinysrgb&w=400",
			PostedAgo:          "1 hour ago",
			Rating:             4.7,
			PickupInstructions: "Knock on front door. We have kids, so please be gentle.",
		},
		{
			ID:                 "4",
			Donor:              "Corner Bakery",
			DonorType:          "Business",
			FoodType:           "Fresh Bread & Pastries",
			Category:           "baked",
			Quantity:           "25 items",
			Description:        "End of day fresh bread, croissants, muffins, and pastries. All baked this morning.",
			ExpiresAt:          at("2025-01-04 08:00"),
			DistanceKm:         1.5,
			Address:            "321 Pine St, Market District",
			ContactPhone:       "+1 (555) 321-9876",
			ImageURL:           pexels + "209206/pexels-photo-209206.jpeg?auto=compress&cs=tinysrgb&w=400",
			PostedAgo:          "45 minutes ago",
			Rating:             4.6,
			PickupInstructions: "Come to front counter. Ask for the manager.",
			Dietary:            Dietary{Vegetarian: true},
		},
	}
}

// Catalog serves the immutable sample data behind every screen.
type Catalog struct {
	listings []FoodListing
}

// New returns a Catalog over the built-in fixtures.
func New() *Catalog {
	return &Catalog{listings: defaultListings()}
}

// NewWithListings is used by tests that need control over expiry times.
func NewWithListings(listings []FoodListing) *Catalog {
	cp := make([]FoodListing, len(listings))
	copy(cp, listings)
	return &Catalog{listings: cp}
}

// Listings returns a copy of every listing.
func (c *Catalog) Listings() []FoodListing {
	out := make([]FoodListing, len(c.listings))
	copy(out, c.listings)
	return out
}

// Listing looks a listing up by id.
func (c *Catalog) Listing(id string) (FoodListing, bool) {
	for _, l := range c.listings {
		if l.ID == id {
			return l, true
		}
	}
	return FoodListing{}, false
}

// Browse applies q to the catalog's listings.
func (c *Catalog) Browse(q Query, now time.Time) []FoodListing {
	return Browse(c.listings, q, now)
}

// DonorDashboard is the donor's landing data.
type DonorDashboard struct {
	Stats     []Stat
	Donations []Donation
}

func (c *Catalog) DonorDashboard() DonorDashboard {
	return DonorDashboard{
		Stats: []Stat{
			{Label: "Total Donations", Value: "24"},
			{Label: "People Served", Value: "156"},
			{Label: "Avg. Rating", Value: "4.8"},
			{Label: "Food Saved (kg)", Value: "89"},
		},
		Donations: []Donation{
			{ID: "1", FoodType: "Fresh Vegetables", Quantity: "15 kg", Status: DonationDelivered, ClaimedBy: "Hope Foundation", Date: "2025-01-01", Rating: 5},
			{ID: "2", FoodType: "Cooked Rice & Curry", Quantity: "25 portions", Status: DonationPickedUp, ClaimedBy: "Community Kitchen", Date: "2025-01-02", Rating: 4},
			{ID: "3", FoodType: "Bread & Pastries", Quantity: "30 items", Status: DonationClaimed, ClaimedBy: "Street Angels", Date: "2025-01-03"},
			{ID: "4", FoodType: "Fruit Platter", Quantity: "8 kg", Status: DonationAvailable, Date: "2025-01-03"},
		},
	}
}

// NGODashboard is the NGO's landing data. Available honours the dashboard's
// search box and filter; sorting is fixed by distance.
type NGODashboard struct {
	Stats     []Stat
	Available []FoodListing
	Pickups   []Pickup
}

func (c *Catalog) NGODashboard(q Query, now time.Time) NGODashboard {
	q.Sort = SortDistance
	if q.Filter == FilterVegetarian {
		q.Filter = FilterAll
	}
	return NGODashboard{
		Stats: []Stat{
			{Label: "Food Claimed", Value: "18"},
			{Label: "People Served", Value: "142"},
			{Label: "Avg. Rating", Value: "4.9"},
			{Label: "Active Claims", Value: "3"},
		},
		Available: c.Browse(q, now),
		Pickups: []Pickup{
			{ID: "1", Donor: "Metro Restaurant", FoodType: "Cooked Rice & Curry", Quantity: "30 portions", Status: PickupReady, PickupTime: "2025-01-03 17:30", Address: "567 Broadway, Downtown"},
			{ID: "2", Donor: "Conference Center", FoodType: "Snacks & Beverages", Quantity: "40 items", Status: PickupPickedUp, PickupTime: "2025-01-03 14:00", Address: "890 Conference Dr, Business District"},
		},
	}
}

// AdminDashboard is the administrator's landing data.
type AdminDashboard struct {
	Stats   []Stat
	Members []Member
	Alerts  []Alert
}

// AdminDashboard filters members by name or email containing search.
func (c *Catalog) AdminDashboard(search string) AdminDashboard {
	members := []Member{
		{ID: "1", Name: "Sarah Johnson", Email: "sarah@greenrestaurant.com", Role: domain.RoleDonor, Status: MemberActive, JoinDate: "2025-01-02", Donations: 12, Rating: 4.8},
		{ID: "2", Name: "Hope Foundation", Email: "contact@hopefoundation.org", Role: domain.RoleNGO, Status: MemberPending, JoinDate: "2025-01-03"},
		{ID: "3", Name: "Mike Chen", Email: "mike.chen@email.com", Role: domain.RoleDonor, Status: MemberActive, JoinDate: "2025-01-01", Donations: 8, Rating: 4.6},
		{ID: "4", Name: "Community Kitchen", Email: "info@communitykitchen.org", Role: domain.RoleNGO, Status: MemberActive, JoinDate: "2024-12-28", Donations: 25, Rating: 4.9},
	}

	term := strings.ToLower(strings.TrimSpace(search))
	filtered := members[:0:0]
	for _, m := range members {
		if term == "" || strings.Contains(strings.ToLower(m.Name), term) || strings.Contains(strings.ToLower(m.Email), term) {
			filtered = append(filtered, m)
		}
	}

	return AdminDashboard{
		Stats: []Stat{
			{Label: "Total Users", Value: "1,247", Change: "+12%"},
			{Label: "Total Donations", Value: "3,456", Change: "+8%"},
			{Label: "Success Rate", Value: "94.2%", Change: "+2.1%"},
			{Label: "Pending Reports", Value: "7", Change: "-3"},
		},
		Members: filtered,
		Alerts: []Alert{
			{ID: "1", Kind: AlertWarning, Title: "High Volume Alert", Message: "Donation requests are 30% above average this week", Time: "2 hours ago"},
			{ID: "2", Kind: AlertInfo, Title: "New NGO Registration", Message: "Hope Foundation has requested verification", Time: "4 hours ago"},
			{ID: "3", Kind: AlertSuccess, Title: "Monthly Goal Achieved", Message: "Platform facilitated 500+ donations this month", Time: "1 day ago"},
		},
	}
}

// ProfileSummary holds the role-specific figures on the profile page.
type ProfileSummary struct {
	Stats    []Stat
	Activity []Activity
}

// ProfileSummary returns donor figures for donors and NGO figures otherwise.
func (c *Catalog) ProfileSummary(role domain.Role) ProfileSummary {
	if role == domain.RoleDonor {
		return ProfileSummary{
			Stats: []Stat{
				{Label: "Total Donations", Value: "24"},
				{Label: "People Served", Value: "156"},
				{Label: "Food Saved (kg)", Value: "89"},
				{Label: "Average Rating", Value: "4.8"},
			},
			Activity: []Activity{
				{Kind: "donation", Title: "Fresh Vegetables donated", Description: "Claimed by Hope Foundation", Date: "2025-01-03", Status: "completed"},
				{Kind: "donation", Title: "Cooked Meals posted", Description: "Claimed by Community Kitchen", Date: "2025-01-02", Status: "picked_up"},
				{Kind: "rating", Title: "Received 5-star rating", Description: "From Street Angels NGO", Date: "2025-01-01", Status: "completed"},
			},
		}
	}
	return ProfileSummary{
		Stats: []Stat{
			{Label: "Food Claimed", Value: "18"},
			{Label: "People Served", Value: "142"},
			{Label: "Successful Pickups", Value: "16"},
			{Label: "Average Rating", Value: "4.9"},
		},
		Activity: []Activity{
			{Kind: "pickup", Title: "Picked up from Green Restaurant", Description: "Served 25 people", Date: "2025-01-03", Status: "completed"},
			{Kind: "pickup", Title: "Claimed food from Wedding Hall", Description: "Scheduled for pickup", Date: "2025-01-03", Status: "pending"},
			{Kind: "rating", Title: "Gave 5-star rating", Description: "To Corner Bakery", Date: "2025-01-02", Status: "completed"},
		},
	}
}

// Landing is the public home page content.
type Landing struct {
	Features []Feature
	Stats    []Stat
	Roles    []RoleCard
}

func (c *Catalog) Landing() Landing {
	return Landing{
		Features: []Feature{
			{Title: "Reduce Food Waste", Description: "Connect surplus food from restaurants, events, and homes with those who need it most."},
			{Title: "Community Impact", Description: "Build a network of donors, NGOs, and volunteers working together for a better tomorrow."},
			{Title: "Location-Based Matching", Description: "Smart location matching ensures food reaches nearby NGOs quickly and efficiently."},
			{Title: "Track Impact", Description: "Monitor your donations and see the real-time impact you're making in your community."},
		},
		Stats: []Stat{
			{Label: "Meals Distributed", Value: "50,000+"},
			{Label: "Partner NGOs", Value: "200+"},
			{Label: "Food Donors", Value: "1,500+"},
			{Label: "Cities Covered", Value: "25+"},
		},
		Roles: []RoleCard{
			{Title: "Food Donors", Description: "Restaurants, event organizers, and individuals with surplus food", Features: []string{"Post surplus food", "Track donations", "Rate pickup services", "Analytics dashboard"}},
			{Title: "NGOs & Volunteers", Description: "Organizations and individuals helping distribute food to those in need", Features: []string{"Browse available food", "Claim donations", "Track deliveries", "Manage team"}},
			{Title: "Administrators", Description: "Platform managers ensuring smooth operations and user verification", Features: []string{"User management", "Analytics & reports", "Verify organizations", "Monitor system"}},
		},
	}
}

// PostCategories and PostUnits are the choices offered by the post form.
var (
	PostCategories = []struct{ Value, Label string }{
		{"cooked", "Cooked Food"},
		{"raw", "Raw Ingredients"},
		{"packaged", "Packaged Food"},
		{"baked", "Baked Goods"},
		{"fruits", "Fruits & Vegetables"},
	}
	PostUnits = []string{"kg", "portions", "items", "liters", "boxes"}
)
