package providers

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"homematch-search/internal/models"
	"homematch-search/pkg/cache"
)

const syntheticName = "synthetic"

var streetNames = []string{
	"Maple Ave", "Oak St", "Main St", "Cedar Ln", "Elm Dr", "Birch Ct",
	"Willow Way", "Chestnut Blvd", "Juniper Rd", "Sycamore Pl",
}

var featurePool = []string{
	"garage", "pool", "gym", "balcony", "hardwood floors", "fireplace",
	"rooftop", "concierge", "in-unit laundry", "stainless appliances",
	"doorman", "central air", "walk-in closet", "fenced yard",
}

var unitTypes = []models.UnitType{
	models.UnitHouse, models.UnitApartment, models.UnitCondo, models.UnitTownhouse,
}

// SyntheticProvider generates plausible listings honoring the criteria's
// bounds. It exists so the pipeline is fully exercisable without live
// provider credentials, and as the lenient-mode fallback when every real
// provider comes back empty. Output is deterministic per criteria: the
// generator is seeded from the normalized criteria key.
type SyntheticProvider struct {
	now func() time.Time
}

// NewSyntheticProvider creates the synthetic listing generator.
func NewSyntheticProvider() *SyntheticProvider {
	return &SyntheticProvider{now: time.Now}
}

func (p *SyntheticProvider) Name() string {
	return syntheticName
}

func (p *SyntheticProvider) Search(_ context.Context, criteria models.SearchCriteria) ([]models.Property, error) {
	h := fnv.New64a()
	h.Write([]byte(cache.CriteriaKey(criteria)))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	city := criteria.City
	if city == "" {
		city = "Springfield"
	}
	state := criteria.State
	if state == "" {
		state = "OH"
	}

	count := 12 + rng.Intn(8)
	properties := make([]models.Property, 0, count)
	for i := 0; i < count; i++ {
		txn := criteria.TransactionType
		if txn == models.TransactionAny || txn == "" {
			if rng.Intn(2) == 0 {
				txn = models.TransactionBuy
			} else {
				txn = models.TransactionRent
			}
		}

		unit := criteria.UnitType
		if unit == models.UnitAny || unit == "" {
			unit = unitTypes[rng.Intn(len(unitTypes))]
		}

		beds := criteria.MinBedrooms
		if beds == 0 {
			beds = 1
		}
		beds += rng.Intn(3)

		baths := float64(criteria.MinBathrooms)
		if baths == 0 {
			baths = 1
		}
		if rng.Intn(2) == 0 {
			baths += 0.5
		}
		baths += float64(rng.Intn(2))

		sqft := 450*beds + rng.Intn(800)

		price := p.priceWithin(rng, criteria, txn, beds)

		features := p.pickFeatures(rng, criteria.Features)

		ageDays := 1 + rng.Intn(75)

		properties = append(properties, models.Property{
			ID:              fmt.Sprintf("syn-%06d", rng.Intn(1000000)),
			Address:         fmt.Sprintf("%d %s", 100+rng.Intn(9800), streetNames[rng.Intn(len(streetNames))]),
			City:            city,
			State:           state,
			ZipCode:         fmt.Sprintf("%05d", 10000+rng.Intn(89999)),
			TransactionType: txn,
			Price:           price,
			Bedrooms:        beds,
			Bathrooms:       baths,
			SquareFootage:   sqft,
			UnitType:        unit,
			Description:     fmt.Sprintf("Charming %d bedroom %s in %s", beds, unit, city),
			Features:        features,
			Source:          syntheticName,
			ListedAt:        p.now().AddDate(0, 0, -ageDays),
		})
	}
	return properties, nil
}

// priceWithin draws a price inside the criteria's bounds, falling back to
// market-typical defaults for whichever bound is absent.
func (p *SyntheticProvider) priceWithin(rng *rand.Rand, criteria models.SearchCriteria, txn models.TransactionType, beds int) float64 {
	min := criteria.MinPrice
	max := criteria.MaxPrice
	if txn == models.TransactionRent {
		if min <= 0 {
			min = 600 + float64(beds)*250
		}
		if max <= 0 || max < min {
			max = min * 2.5
		}
	} else {
		if min <= 0 {
			min = 120000 + float64(beds)*60000
		}
		if max <= 0 || max < min {
			max = min * 2.5
		}
	}
	price := min + rng.Float64()*(max-min)
	// round to something listing-like
	if txn == models.TransactionRent {
		return float64(int(price/25)) * 25
	}
	return float64(int(price/1000)) * 1000
}

// pickFeatures includes most of the requested features plus a few extras
// from the pool, so feature scoring has real variance to work against.
func (p *SyntheticProvider) pickFeatures(rng *rand.Rand, requested []string) []string {
	seen := make(map[string]bool)
	var features []string
	for _, f := range requested {
		if rng.Intn(10) < 7 && !seen[f] {
			features = append(features, f)
			seen[f] = true
		}
	}
	extras := 1 + rng.Intn(4)
	for i := 0; i < extras; i++ {
		f := featurePool[rng.Intn(len(featurePool))]
		if !seen[f] {
			features = append(features, f)
			seen[f] = true
		}
	}
	return features
}
