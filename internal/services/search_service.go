package services

import (
	"context"

	"homematch-search/internal/models"
	"homematch-search/internal/validators"
	"homematch-search/pkg/logger"
	"homematch-search/pkg/metrics"

	"github.com/montanaflynn/stats"
)

// SearchService runs the full pipeline for one request: aggregate (with
// provider fan-out and cache), dedupe, score, rank, diversify, annotate.
// Every stage downstream of aggregation is sequential and synchronous.
type SearchService struct {
	aggregator *Aggregator
	dedupe     *Deduplicator
	scorer     *Scorer
	ranker     *Ranker
	annotator  *Annotator
	validator  validators.CriteriaValidator
	maxResults int
	log        *logger.Logger
}

func NewSearchService(
	aggregator *Aggregator,
	dedupe *Deduplicator,
	scorer *Scorer,
	ranker *Ranker,
	annotator *Annotator,
	validator validators.CriteriaValidator,
	maxResults int,
	log *logger.Logger,
) *SearchService {
	return &SearchService{
		aggregator: aggregator,
		dedupe:     dedupe,
		scorer:     scorer,
		ranker:     ranker,
		annotator:  annotator,
		validator:  validator,
		maxResults: maxResults,
		log:        log,
	}
}

// Search returns the ranked, capped, annotated result set for the criteria.
func (s *SearchService) Search(ctx context.Context, criteria models.SearchCriteria) (*models.SearchResponse, error) {
	criteria = normalizeCriteria(criteria)

	if err := s.validator.ValidateCriteria(&criteria); err != nil {
		metrics.SearchesTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	raw, err := s.aggregator.Aggregate(ctx, criteria)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	unique := s.dedupe.Dedupe(raw)
	eligible := filterByUnitType(unique, criteria.UnitType)

	scored := make([]models.ScoredProperty, len(eligible))
	for i := range eligible {
		scored[i] = models.ScoredProperty{
			Property: eligible[i],
			Score:    s.scorer.Score(&eligible[i], criteria),
		}
	}

	ranked := s.ranker.Rank(scored)
	diversified := s.ranker.Diversify(ranked, criteria, s.maxResults)
	annotated := s.annotator.Annotate(diversified, ranked, criteria)

	metrics.SearchesTotal.WithLabelValues("success").Inc()
	s.log.Printf("search completed: city=%s, raw=%d, unique=%d, eligible=%d, returned=%d",
		criteria.City, len(raw), len(unique), len(eligible), len(annotated))

	return &models.SearchResponse{
		Properties: annotated,
		Summary:    buildSummary(annotated),
	}, nil
}

// normalizeCriteria resolves the enum fields exactly once, at the pipeline
// boundary. Raw input like "Apartment" or "rental" collapses into the closed
// enums here; downstream stages never compare free-form strings, and the
// cache key sees one canonical form per logical criteria.
func normalizeCriteria(c models.SearchCriteria) models.SearchCriteria {
	c.TransactionType = models.ParseTransactionType(string(c.TransactionType))
	c.UnitType = models.ParseUnitType(string(c.UnitType))
	return c
}

// filterByUnitType drops records whose unit type does not match a pinned
// criteria type. Ambiguous provider records resolve to house at the adapter
// boundary, so an "apartment only" search excludes them here rather than
// surfacing a false positive.
func filterByUnitType(properties []models.Property, unit models.UnitType) []models.Property {
	if unit == models.UnitAny {
		return properties
	}
	filtered := make([]models.Property, 0, len(properties))
	for _, p := range properties {
		if p.UnitType == unit {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func buildSummary(properties []models.ScoredProperty) models.SearchSummary {
	summary := models.SearchSummary{
		Count:          len(properties),
		UnitTypeCounts: make(map[models.UnitType]int),
	}
	if len(properties) == 0 {
		return summary
	}

	prices := make([]float64, len(properties))
	summary.PriceRange = models.PriceRange{Min: properties[0].Price, Max: properties[0].Price}
	for i, p := range properties {
		prices[i] = p.Price
		if p.Price < summary.PriceRange.Min {
			summary.PriceRange.Min = p.Price
		}
		if p.Price > summary.PriceRange.Max {
			summary.PriceRange.Max = p.Price
		}
		summary.UnitTypeCounts[p.UnitType]++
	}
	if average, err := stats.Mean(prices); err == nil {
		summary.AveragePrice = average
	}
	return summary
}
