package domain

import "strings"

// ValueForMoney appears in every synthesized topic set, whatever the category.
const ValueForMoney = "Value for Money"

// Categories is the fixed business taxonomy the detector validates against.
var Categories = []string{
	"Tour/Activity",
	"Restaurant/Dining",
	"Hotel/Accommodation",
	"Retail/Shopping",
	"Service/Professional",
	"Entertainment/Recreation",
	"Transportation",
	"Healthcare",
	"Other",
}

// DefaultCategory is used when detection fails or returns an unknown label.
const DefaultCategory = "Tour/Activity"

// fallbackTopics holds the per-category topic templates used whenever topic
// synthesis comes back short, over-long or not at all. New categories are
// additive rows here, not new branching logic.
var fallbackTopics = map[string][]string{
	"Tour/Activity": {
		"Tour Guide/Host Performance",
		"Tour Content and Experience",
		"Organization & Management",
		"Atmosphere and Special Effects",
		ValueForMoney,
	},
	"Restaurant/Dining": {
		"Food Quality",
		"Service",
		"Ambiance",
		"Menu Variety",
		ValueForMoney,
	},
	"Hotel/Accommodation": {
		"Room Quality",
		"Staff Service",
		"Cleanliness",
		"Amenities",
		ValueForMoney,
	},
	"Retail/Shopping": {
		"Product Quality",
		"Staff Helpfulness",
		"Store Layout",
		"Selection & Availability",
		ValueForMoney,
	},
	"Service/Professional": {
		"Service Quality",
		"Staff Expertise",
		"Communication",
		"Timeliness",
		ValueForMoney,
	},
	"Entertainment/Recreation": {
		"Experience Quality",
		"Facilities",
		"Staff Service",
		"Atmosphere",
		ValueForMoney,
	},
	"Transportation": {
		"Vehicle Condition",
		"Driver/Staff Service",
		"Punctuality",
		"Booking Experience",
		ValueForMoney,
	},
	"Healthcare": {
		"Quality of Care",
		"Staff Professionalism",
		"Wait Times",
		"Facility Cleanliness",
		ValueForMoney,
	},
	"Other": {
		"Service Quality",
		"Staff Performance",
		"Customer Experience",
		"Reliability",
		ValueForMoney,
	},
}

// MatchCategory validates a detected label against the taxonomy,
// case-insensitively and ignoring surrounding whitespace. Returns the
// canonical spelling.
func MatchCategory(label string) (string, bool) {
	l := strings.ToLower(strings.TrimSpace(label))
	for _, c := range Categories {
		if strings.ToLower(c) == l {
			return c, true
		}
	}
	return "", false
}

// FallbackTopics returns a copy of the topic template for a category, or the
// default category's template when the category is unknown.
func FallbackTopics(category string) []string {
	t, ok := fallbackTopics[category]
	if !ok {
		t = fallbackTopics[DefaultCategory]
	}
	out := make([]string, len(t))
	copy(out, t)
	return out
}
