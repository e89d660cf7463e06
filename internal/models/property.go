package models

import "time"

// Property is a single listing as returned by one provider, mapped into the
// internal shape. Properties are value objects: once aggregated they are
// never mutated in place, downstream stages derive new records.
type Property struct {
	ID              string          `json:"id"`
	Address         string          `json:"address"`
	City            string          `json:"city"`
	State           string          `json:"state"`
	ZipCode         string          `json:"zip_code"`
	TransactionType TransactionType `json:"transaction_type"`
	Price           float64         `json:"price"`
	Bedrooms        int             `json:"bedrooms"`
	Bathrooms       float64         `json:"bathrooms"`
	SquareFootage   int             `json:"square_footage,omitempty"`
	UnitType        UnitType        `json:"unit_type"`
	Description     string          `json:"description,omitempty"`
	Features        []string        `json:"features,omitempty"`
	ImageURLs       []string        `json:"image_urls,omitempty"`
	ListingURL      string          `json:"listing_url,omitempty"`
	Source          string          `json:"source"`
	ListedAt        time.Time       `json:"listed_at"`
}

// AgeDays returns the listing age in whole days relative to now.
func (p *Property) AgeDays(now time.Time) int {
	if p.ListedAt.IsZero() || p.ListedAt.After(now) {
		return 0
	}
	return int(now.Sub(p.ListedAt).Hours() / 24)
}

// MarketStats is the comparable-market block attached to a scored property.
// It is omitted entirely when fewer than two comparables exist.
type MarketStats struct {
	ComparableCount int     `json:"comparable_count"`
	AveragePrice    float64 `json:"average_price"`
	MedianPrice     float64 `json:"median_price"`
	PercentileRank  float64 `json:"percentile_rank"`
	PricePosition   string  `json:"price_position"`
}

// ScoredProperty is a Property plus its match score and optional
// recommendation annotations.
type ScoredProperty struct {
	Property
	Score           int          `json:"score"`
	Recommendations []string     `json:"recommendations,omitempty"`
	Market          *MarketStats `json:"market,omitempty"`
}

// PriceRange is the min/max price span of a result set.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SearchSummary aggregates headline statistics over the final result set.
type SearchSummary struct {
	Count          int              `json:"count"`
	AveragePrice   float64          `json:"average_price"`
	PriceRange     PriceRange       `json:"price_range"`
	UnitTypeCounts map[UnitType]int `json:"unit_type_counts"`
}

// SearchRequest is the inbound payload for a search call. The profile is an
// optional snapshot applied to the criteria before the pipeline runs.
type SearchRequest struct {
	Criteria SearchCriteria `json:"criteria"`
	Profile  *UserProfile   `json:"profile,omitempty"`
}

// SearchResponse is the outbound contract surface consumed by rendering and
// export layers. Score, recommendations and market fields on each property
// are optional and absent when not computable.
type SearchResponse struct {
	Properties []ScoredProperty `json:"properties"`
	Summary    SearchSummary    `json:"summary"`
}
