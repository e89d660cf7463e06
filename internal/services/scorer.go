package services

import (
	"math"
	"strings"
	"time"

	"homematch-search/internal/models"
)

// Reference price-per-square-foot rates used by the value sub-score.
// Monthly rate for rentals, purchase rate for sales.
const (
	rentReferenceRate = 2.0
	buyReferenceRate  = 200.0
)

// premiumFeatures are amenities that earn a flat bonus whether or not the
// user asked for them.
var premiumFeatures = []string{"pool", "gym", "concierge", "doorman", "rooftop", "garage"}

// Scorer computes a bounded match score for a property against criteria.
// The formula is a deterministic, pure function of its inputs: no hidden
// state, no randomness.
type Scorer struct {
	now func() time.Time
}

func NewScorer() *Scorer {
	return &Scorer{now: time.Now}
}

// Score returns an integer in [0, 100].
func (s *Scorer) Score(p *models.Property, criteria models.SearchCriteria) int {
	score := 50.0
	score += priceFitScore(p.Price, criteria)
	score += featureScore(p.Features, criteria.Features)
	score += sizeScore(p, criteria)
	score += freshnessScore(p.AgeDays(s.now()))
	score += valueScore(p)

	rounded := int(math.Round(score))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

// priceFitScore rewards proximity to the midpoint of a full range, or
// tiered headroom under a lone upper bound. Worth up to 25 points.
func priceFitScore(price float64, criteria models.SearchCriteria) float64 {
	min, max := criteria.MinPrice, criteria.MaxPrice
	switch {
	case min > 0 && max > min:
		mid := (min + max) / 2
		half := (max - min) / 2
		fit := 25 * (1 - math.Abs(price-mid)/half)
		if fit < 0 {
			return 0
		}
		return fit
	case max > 0:
		switch {
		case price <= 0.80*max:
			return 15
		case price <= 0.95*max:
			return 10
		default:
			return 5
		}
	default:
		return 0
	}
}

// featureScore scales with the fraction of requested features present
// (case-insensitive substring match, so "parking" matches "parking garage"),
// plus a small flat bonus per premium amenity.
func featureScore(have, want []string) float64 {
	score := 0.0
	if len(want) > 0 {
		matched := 0
		for _, w := range want {
			if hasFeature(have, w) {
				matched++
			}
		}
		score += 15 * float64(matched) / float64(len(want))
	}

	premium := 0.0
	for _, f := range premiumFeatures {
		if hasFeature(have, f) {
			premium += 2
		}
	}
	if premium > 6 {
		premium = 6
	}
	return score + premium
}

func hasFeature(features []string, name string) bool {
	name = strings.ToLower(name)
	for _, f := range features {
		f = strings.ToLower(f)
		if strings.Contains(f, name) || strings.Contains(name, f) {
			return true
		}
	}
	return false
}

// sizeScore covers bedrooms and bathrooms. An exact bedroom match beats a
// surplus; bathrooms at or above the requirement score with the surplus,
// capped.
func sizeScore(p *models.Property, criteria models.SearchCriteria) float64 {
	score := 0.0
	if criteria.MinBedrooms > 0 {
		switch {
		case p.Bedrooms == criteria.MinBedrooms:
			score += 10
		case p.Bedrooms == criteria.MinBedrooms+1:
			score += 7
		case p.Bedrooms > criteria.MinBedrooms+1:
			score += 3
		}
	}
	if p.Bathrooms >= float64(criteria.MinBathrooms) {
		bath := 4 + 2*(p.Bathrooms-float64(criteria.MinBathrooms))
		if bath > 8 {
			bath = 8
		}
		score += bath
	}
	return score
}

// freshnessScore is a monotonically decreasing step function of listing age
// in days. Listings older than 60 days contribute nothing.
func freshnessScore(ageDays int) float64 {
	switch {
	case ageDays <= 7:
		return 10
	case ageDays <= 14:
		return 8
	case ageDays <= 30:
		return 6
	case ageDays <= 45:
		return 4
	case ageDays <= 60:
		return 2
	default:
		return 0
	}
}

// valueScore compares price per square foot against the reference rate for
// the listing's transaction type. Better-than-reference ratios earn up to 8
// points. Listings without a known size contribute nothing.
func valueScore(p *models.Property) float64 {
	if p.SquareFootage <= 0 || p.Price <= 0 {
		return 0
	}
	reference := buyReferenceRate
	if p.TransactionType == models.TransactionRent {
		reference = rentReferenceRate
	}
	ratio := (p.Price / float64(p.SquareFootage)) / reference
	if ratio >= 1 {
		return 0
	}
	return 8 * (1 - ratio)
}

// isPremiumFeature reports whether name matches a premium amenity.
func isPremiumFeature(name string) bool {
	name = strings.ToLower(name)
	for _, f := range premiumFeatures {
		if strings.Contains(name, f) {
			return true
		}
	}
	return false
}
