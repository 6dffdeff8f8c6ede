// Package catalog holds the platform's display fixtures and the pure logic
// used to search, filter and sort them.
package catalog

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Dietary flags attached to a food listing.
type Dietary struct {
	Vegetarian bool `json:"vegetarian"`
	Vegan      bool `json:"vegan"`
	GlutenFree bool `json:"gluten_free"`
	NutFree    bool `json:"nut_free"`
	Halal      bool `json:"halal"`
	Kosher     bool `json:"kosher"`
}

// Tags returns the labels of the flags that are set, in a fixed order.
func (d Dietary) Tags() []string {
	var tags []string
	for _, f := range []struct {
		on    bool
		label string
	}{
		{d.Vegetarian, "Vegetarian"},
		{d.Vegan, "Vegan"},
		{d.GlutenFree, "Gluten Free"},
		{d.NutFree, "Nut Free"},
		{d.Halal, "Halal"},
		{d.Kosher, "Kosher"},
	} {
		if f.on {
			tags = append(tags, f.label)
		}
	}
	return tags
}

// FoodListing is a surplus food offer shown to NGOs.
type FoodListing struct {
	ID                 string    `json:"id"`
	Donor              string    `json:"donor"`
	DonorType          string    `json:"donor_type"`
	FoodType           string    `json:"food_type"`
	Category           string    `json:"category"`
	Quantity           string    `json:"quantity"`
	Description        string    `json:"description"`
	ExpiresAt          time.Time `json:"expires_at"`
	DistanceKm         float64   `json:"distance_km"`
	Address            string    `json:"address"`
	ContactPhone       string    `json:"contact_phone"`
	ImageURL           string    `json:"image_url"`
	PostedAgo          string    `json:"posted_ago"`
	Rating             float64   `json:"rating"`
	PickupInstructions string    `json:"pickup_instructions"`
	Dietary            Dietary   `json:"dietary"`
}

// Filter narrows a listing search.
type Filter string

const (
	FilterAll        Filter = "all"
	FilterNearby     Filter = "nearby"
	FilterUrgent     Filter = "urgent"
	FilterVegetarian Filter = "vegetarian"
)

// SortKey orders a listing search.
type SortKey string

const (
	SortDistance SortKey = "distance"
	SortTime     SortKey = "time"
	SortQuantity SortKey = "quantity"
)

const (
	nearbyKm     = 2.0
	urgentWithin = 4 * time.Hour
	critWithin   = 2 * time.Hour
)

// ParseFilter maps user input onto a Filter, defaulting to FilterAll.
func ParseFilter(s string) Filter {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case FilterNearby, FilterUrgent, FilterVegetarian:
		return f
	default:
		return FilterAll
	}
}

// ParseSort maps user input onto a SortKey, defaulting to SortDistance.
func ParseSort(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortTime, SortQuantity:
		return k
	default:
		return SortDistance
	}
}

// Query is the UI state of a browse screen.
type Query struct {
	Search string
	Filter Filter
	Sort   SortKey
}

// Matches reports whether l satisfies the search text and filter of q.
func (q Query) Matches(l FoodListing, now time.Time) bool {
	if term := strings.ToLower(strings.TrimSpace(q.Search)); term != "" {
		if !strings.Contains(strings.ToLower(l.FoodType), term) &&
			!strings.Contains(strings.ToLower(l.Donor), term) {
			return false
		}
	}

	switch q.Filter {
	case FilterNearby:
		return l.DistanceKm <= nearbyKm
	case FilterUrgent:
		return l.ExpiresAt.Sub(now) <= urgentWithin
	case FilterVegetarian:
		return l.Dietary.Vegetarian
	default:
		return true
	}
}

// Browse filters listings by q and returns them ordered by q.Sort. The input
// slice is not modified.
func Browse(listings []FoodListing, q Query, now time.Time) []FoodListing {
	out := make([]FoodListing, 0, len(listings))
	for _, l := range listings {
		if q.Matches(l, now) {
			out = append(out, l)
		}
	}

	switch q.Sort {
	case SortTime:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ExpiresAt.Before(out[j].ExpiresAt) })
	case SortQuantity:
		sort.SliceStable(out, func(i, j int) bool { return LeadingQuantity(out[i].Quantity) > LeadingQuantity(out[j].Quantity) })
	case SortDistance, "":
		sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	}
	return out
}

// LeadingQuantity parses the integer prefix of a quantity such as "20 kg".
// It returns 0 when there is none.
func LeadingQuantity(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// TimeRemaining renders the time until expiry as "3h 12m left", "45m left"
// or "Expired".
func TimeRemaining(expiresAt, now time.Time) string {
	d := expiresAt.Sub(now)
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)

	switch {
	case hours > 0:
		return strconv.Itoa(hours) + "h " + strconv.Itoa(minutes) + "m left"
	case minutes > 0:
		return strconv.Itoa(minutes) + "m left"
	default:
		return "Expired"
	}
}

// Urgency classifies how soon a listing expires.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencySoon     Urgency = "soon"
	UrgencyNormal   Urgency = "normal"
)

// UrgencyOf returns critical within two hours of expiry, soon within four.
func UrgencyOf(expiresAt, now time.Time) Urgency {
	left := expiresAt.Sub(now)
	switch {
	case left <= critWithin:
		return UrgencyCritical
	case left <= urgentWithin:
		return UrgencySoon
	default:
		return UrgencyNormal
	}
}
