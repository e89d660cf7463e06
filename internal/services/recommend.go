package services

import (
	"fmt"
	"strings"
	"time"

	"homematch-search/internal/models"

	"github.com/montanaflynn/stats"
)

const maxRecommendations = 3

// Annotator attaches human-readable rationale and comparable-market
// statistics to the final result set. It is a pure enrichment stage: inputs
// are never mutated, and it holds no cross-request state.
type Annotator struct {
	now func() time.Time
}

func NewAnnotator() *Annotator {
	return &Annotator{now: time.Now}
}

// Annotate enriches each diversified property with up to three rationale
// strings and, where at least two comparables exist in the full scored set,
// a comparable-market block.
func (a *Annotator) Annotate(diversified, allScored []models.ScoredProperty, criteria models.SearchCriteria) []models.ScoredProperty {
	annotated := make([]models.ScoredProperty, len(diversified))
	copy(annotated, diversified)
	for i := range annotated {
		annotated[i].Recommendations = a.rationales(&annotated[i], criteria)
		annotated[i].Market = marketStats(&annotated[i], allScored)
	}
	return annotated
}

// rationales applies simple threshold rules against the property's own
// fields and returns the first few that fire.
func (a *Annotator) rationales(p *models.ScoredProperty, criteria models.SearchCriteria) []string {
	var recs []string

	if p.SquareFootage > 0 && p.Price > 0 {
		reference := buyReferenceRate
		if p.TransactionType == models.TransactionRent {
			reference = rentReferenceRate
		}
		ppsf := p.Price / float64(p.SquareFootage)
		if ppsf < 0.85*reference {
			recs = append(recs, fmt.Sprintf("Strong value at $%.0f per square foot", ppsf))
		}
	}

	if criteria.MinBedrooms > 0 && p.Bedrooms > criteria.MinBedrooms {
		extra := p.Bedrooms - criteria.MinBedrooms
		noun := "bedroom"
		if extra > 1 {
			noun = "bedrooms"
		}
		recs = append(recs, fmt.Sprintf("Has %d extra %s beyond your minimum", extra, noun))
	}

	if premium := premiumAmenities(p.Features); len(premium) > 0 {
		recs = append(recs, "Premium amenities: "+strings.Join(premium, ", "))
	}

	if p.AgeDays(a.now()) <= 7 {
		recs = append(recs, "Newly listed this week")
	}

	if criteria.MaxPrice > 0 && p.Price <= 0.85*criteria.MaxPrice {
		savings := (1 - p.Price/criteria.MaxPrice) * 100
		recs = append(recs, fmt.Sprintf("%.0f%% under your budget", savings))
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

func premiumAmenities(features []string) []string {
	var premium []string
	for _, f := range features {
		if isPremiumFeature(f) {
			premium = append(premium, f)
		}
	}
	return premium
}

// marketStats builds the comparable-market block for a property against
// same-unit-type, bedroom-count-within-1 peers drawn from the full scored
// set. Fewer than two comparables and the block is omitted entirely, so the
// output never carries a divide-by-zero artifact.
func marketStats(subject *models.ScoredProperty, allScored []models.ScoredProperty) *models.MarketStats {
	var prices []float64
	for i := range allScored {
		peer := &allScored[i]
		if peer.ID == subject.ID && peer.Source == subject.Source {
			continue
		}
		if peer.UnitType != subject.UnitType {
			continue
		}
		if diff := peer.Bedrooms - subject.Bedrooms; diff < -1 || diff > 1 {
			continue
		}
		prices = append(prices, peer.Price)
	}
	if len(prices) < 2 {
		return nil
	}

	average, err := stats.Mean(prices)
	if err != nil {
		return nil
	}
	median, err := stats.Median(prices)
	if err != nil {
		return nil
	}

	below := 0
	for _, price := range prices {
		if price < subject.Price {
			below++
		}
	}
	percentile := 100 * float64(below) / float64(len(prices))

	position := "at market"
	switch {
	case subject.Price < 0.9*median:
		position = "below market"
	case subject.Price > 1.1*median:
		position = "above market"
	}

	return &models.MarketStats{
		ComparableCount: len(prices),
		AveragePrice:    average,
		MedianPrice:     median,
		PercentileRank:  percentile,
		PricePosition:   position,
	}
}
