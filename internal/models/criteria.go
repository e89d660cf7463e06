package models

import "strings"

// TransactionType is the closed set of transaction kinds a search can ask for.
type TransactionType string

const (
	TransactionRent TransactionType = "rent"
	TransactionBuy  TransactionType = "buy"
	TransactionAny  TransactionType = "any"
)

// UnitType is the closed set of unit kinds. Raw provider strings are resolved
// into this set once at the adapter boundary; internal stages never compare
// free-form strings.
type UnitType string

const (
	UnitHouse     UnitType = "house"
	UnitApartment UnitType = "apartment"
	UnitCondo     UnitType = "condo"
	UnitTownhouse UnitType = "townhouse"
	UnitAny       UnitType = "any"
)

// ParseTransactionType resolves a raw string into a TransactionType.
// Unrecognized values resolve to "any".
func ParseTransactionType(s string) TransactionType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rent", "rental", "lease":
		return TransactionRent
	case "buy", "sale", "purchase":
		return TransactionBuy
	default:
		return TransactionAny
	}
}

// ParseUnitType resolves a raw criteria string into a UnitType. Absent or
// unrecognized values resolve to "any", the least restrictive filter.
func ParseUnitType(s string) UnitType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "house", "home", "single family", "single_family":
		return UnitHouse
	case "apartment", "apt", "flat":
		return UnitApartment
	case "condo", "condominium":
		return UnitCondo
	case "townhouse", "townhome", "town_house":
		return UnitTownhouse
	default:
		return UnitAny
	}
}

// ListingUnitType resolves a raw provider string into a UnitType for a
// listing record. Ambiguous or unrecognized values resolve to "house": a
// strict unit-type filter should drop an ambiguous record rather than show
// it as a false positive. Dropping a mislabeled apartment is the cheaper
// mistake.
func ListingUnitType(s string) UnitType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "apartment", "apt", "flat", "multi_family", "multifamily", "multi-family":
		return UnitApartment
	case "condo", "condominium":
		return UnitCondo
	case "townhouse", "townhome", "town_house":
		return UnitTownhouse
	default:
		return UnitHouse
	}
}

// SearchCriteria describes what the user is looking for. It is produced
// upstream (NLU/CLI layer), treated as an immutable value by the pipeline,
// and discarded after the request.
type SearchCriteria struct {
	City            string          `json:"city"`
	State           string          `json:"state"`
	TransactionType TransactionType `json:"transaction_type"`
	UnitType        UnitType        `json:"unit_type"`
	MinPrice        float64         `json:"min_price"`
	MaxPrice        float64         `json:"max_price"`
	MinBedrooms     int             `json:"min_bedrooms"`
	MinBathrooms    int             `json:"min_bathrooms"`
	Features        []string        `json:"features"`
}

// UserProfile is an immutable snapshot of learned user preferences. It is
// applied to the criteria once at the request boundary; pipeline stages never
// consult it directly, so scoring stays a pure function of (property, criteria).
type UserProfile struct {
	PreferredFeatures []string `json:"preferred_features"`
}

// Apply merges the profile into a copy of the criteria and returns it.
// The receiver and the input criteria are left untouched.
func (p UserProfile) Apply(c SearchCriteria) SearchCriteria {
	if len(p.PreferredFeatures) == 0 {
		return c
	}
	seen := make(map[string]bool, len(c.Features))
	merged := make([]string, 0, len(c.Features)+len(p.PreferredFeatures))
	for _, f := range c.Features {
		seen[strings.ToLower(f)] = true
		merged = append(merged, f)
	}
	for _, f := range p.PreferredFeatures {
		if !seen[strings.ToLower(f)] {
			merged = append(merged, f)
		}
	}
	c.Features = merged
	return c
}
