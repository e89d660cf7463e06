package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTransactionType(t *testing.T) {
	tests := []struct {
		in   string
		want TransactionType
	}{
		{"rent", TransactionRent},
		{"RENTAL", TransactionRent},
		{"lease", TransactionRent},
		{"buy", TransactionBuy},
		{" Sale ", TransactionBuy},
		{"purchase", TransactionBuy},
		{"", TransactionAny},
		{"whatever", TransactionAny},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseTransactionType(tt.in), "input %q", tt.in)
	}
}

func TestParseUnitType(t *testing.T) {
	tests := []struct {
		in   string
		want UnitType
	}{
		{"house", UnitHouse},
		{"Single Family", UnitHouse},
		{"apt", UnitApartment},
		{"condominium", UnitCondo},
		{"townhome", UnitTownhouse},
		{"", UnitAny},
		{"castle", UnitAny},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseUnitType(tt.in), "input %q", tt.in)
	}
}

func TestListingUnitTypeDefaultsToHouse(t *testing.T) {
	// unknown provider labels resolve to house, not any, so a strict
	// unit-type filter drops ambiguous records instead of leaking them
	assert.Equal(t, UnitHouse, ListingUnitType(""))
	assert.Equal(t, UnitHouse, ListingUnitType("Land"))
	assert.Equal(t, UnitApartment, ListingUnitType("Multi-Family"))
	assert.Equal(t, UnitCondo, ListingUnitType("Condo"))
}

func TestProfileApplyMergesFeatures(t *testing.T) {
	profile := UserProfile{PreferredFeatures: []string{"Pool", "garage", "gym"}}
	criteria := SearchCriteria{City: "Columbus", Features: []string{"pool", "balcony"}}

	merged := profile.Apply(criteria)
	assert.Equal(t, []string{"pool", "balcony", "garage", "gym"}, merged.Features,
		"duplicates are case-insensitive, criteria order is preserved")

	// the input criteria stays untouched
	assert.Equal(t, []string{"pool", "balcony"}, criteria.Features)
}

func TestProfileApplyEmptyProfile(t *testing.T) {
	criteria := SearchCriteria{City: "Columbus", Features: []string{"pool"}}
	merged := UserProfile{}.Apply(criteria)
	assert.Equal(t, criteria, merged)
}
