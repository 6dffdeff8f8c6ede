package catalog

import (
	"testing"
	"time"

	"github.com/foodshare/platform/internal/core/domain"
)

func ids(ls []FoodListing) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.ID
	}
	return out
}

func equalIDs(t *testing.T, got []FoodListing, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("expected %v, got %v", want, g)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, g)
		}
	}
}

func TestBrowse_DefaultSortsByDistance(t *testing.T) {
	c := New()
	got := c.Browse(Query{}, at("2025-01-03 12:00"))
	equalIDs(t, got, "2", "1", "4", "3")
}

func TestBrowse_Search(t *testing.T) {
	c := New()
	now := at("2025-01-03 12:00")

	equalIDs(t, c.Browse(Query{Search: "bakery"}, now), "4")
	equalIDs(t, c.Browse(Query{Search: "SANDWICH"}, now), "3")
	equalIDs(t, c.Browse(Query{Search: "nothing-like-this"}, now))
}

func TestBrowse_Filters(t *testing.T) {
	c := New()
	now := at("2025-01-03 16:30")

	equalIDs(t, c.Browse(Query{Filter: FilterNearby}, now), "2", "1", "4")
	// 18:00 and 20:00 are within four hours of 16:30.
	equalIDs(t, c.Browse(Query{Filter: FilterUrgent}, now), "2", "1")
	equalIDs(t, c.Browse(Query{Filter: FilterVegetarian}, now), "2", "1", "4")
}

func TestBrowse_SortByTimeAndQuantity(t *testing.T) {
	c := New()
	now := at("2025-01-03 12:00")

	equalIDs(t, c.Browse(Query{Sort: SortTime}, now), "1", "2", "3", "4")
	equalIDs(t, c.Browse(Query{Sort: SortQuantity}, now), "2", "4", "1", "3")
}

func TestBrowse_DoesNotMutateInput(t *testing.T) {
	in := defaultListings()
	_ = Browse(in, Query{Sort: SortQuantity}, time.Now())
	equalIDs(t, in, "1", "2", "3", "4")
}

func TestLeadingQuantity(t *testing.T) {
	cases := map[string]int{"20 kg": 20, "50 portions": 50, " 7": 7, "kg": 0, "": 0}
	for in, want := range cases {
		if got := LeadingQuantity(in); got != want {
			t.Fatalf("LeadingQuantity(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestTimeRemaining(t *testing.T) {
	now := at("2025-01-03 12:00")
	cases := []struct {
		expiry time.Time
		want   string
	}{
		{now.Add(3*time.Hour + 12*time.Minute), "3h 12m left"},
		{now.Add(45 * time.Minute), "45m left"},
		{now.Add(30 * time.Second), "Expired"},
		{now.Add(-2 * time.Hour), "Expired"},
	}
	for _, tc := range cases {
		if got := TimeRemaining(tc.expiry, now); got != tc.want {
			t.Fatalf("TimeRemaining(%v) = %q, want %q", tc.expiry.Sub(now), got, tc.want)
		}
	}
}

func TestUrgencyOf(t *testing.T) {
	now := at("2025-01-03 12:00")
	if UrgencyOf(now.Add(time.Hour), now) != UrgencyCritical {
		t.Fatalf("one hour left should be critical")
	}
	if UrgencyOf(now.Add(3*time.Hour), now) != UrgencySoon {
		t.Fatalf("three hours left should be soon")
	}
	if UrgencyOf(now.Add(5*time.Hour), now) != UrgencyNormal {
		t.Fatalf("five hours left should be normal")
	}
}

func TestDietaryTags(t *testing.T) {
	tags := Dietary{Vegetarian: true, NutFree: true, Kosher: true}.Tags()
	want := []string{"Vegetarian", "Nut Free", "Kosher"}
	if len(tags) != len(want) {
		t.Fatalf("expected %v, got %v", want, tags)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, tags)
		}
	}
}

func TestAdminDashboard_SearchMembers(t *testing.T) {
	c := New()
	d := c.AdminDashboard("kitchen")
	if len(d.Members) != 1 || d.Members[0].Name != "Community Kitchen" {
		t.Fatalf("unexpected members: %+v", d.Members)
	}
	if all := c.AdminDashboard(""); len(all.Members) != 4 {
		t.Fatalf("expected 4 members, got %d", len(all.Members))
	}
}

func TestNGODashboard_IgnoresVegetarianFilter(t *testing.T) {
	c := New()
	d := c.NGODashboard(Query{Filter: FilterVegetarian}, at("2025-01-03 12:00"))
	if len(d.Available) != 4 {
		t.Fatalf("expected all listings, got %d", len(d.Available))
	}
}

func TestProfileSummary_ByRole(t *testing.T) {
	c := New()
	if s := c.ProfileSummary(domain.RoleDonor); s.Stats[0].Label != "Total Donations" {
		t.Fatalf("unexpected donor stats: %+v", s.Stats)
	}
	if s := c.ProfileSummary(domain.RoleNGO); s.Stats[0].Label != "Food Claimed" {
		t.Fatalf("unexpected ngo stats: %+v", s.Stats)
	}
}

func TestParseHelpers(t *testing.T) {
	if ParseFilter("URGENT") != FilterUrgent || ParseFilter("bogus") != FilterAll {
		t.Fatalf("ParseFilter mismatch")
	}
	if ParseSort("quantity") != SortQuantity || ParseSort("") != SortDistance {
		t.Fatalf("ParseSort mismatch")
	}
	if ParseAdminTab("system") != TabSystem || ParseAdminTab("x") != TabOverview {
		t.Fatalf("ParseAdminTab mismatch")
	}
}
