package services

import (
	"sort"

	"homematch-search/internal/models"
)

// Ranker orders scored properties and trims large result sets down to a
// diverse shortlist.
type Ranker struct{}

func NewRanker() *Ranker {
	return &Ranker{}
}

// Rank returns a copy sorted by score descending, ties broken by price
// ascending (cheaper first).
func (r *Ranker) Rank(scored []models.ScoredProperty) []models.ScoredProperty {
	ranked := make([]models.ScoredProperty, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Price < ranked[j].Price
	})
	return ranked
}

// Diversify selects at most maxResults entries from the ranked set,
// trading pure score order for variety across price quartile, unit type and
// bedroom count. It only engages when the ranked set exceeds maxResults.
//
// Each iteration picks, in priority order:
//  1. while fewer than 5 chosen: the best remaining candidate from a price
//     quartile not yet represented;
//  2. if the criteria did not pin a unit type: the best remaining candidate
//     whose unit type is not yet represented;
//  3. the best remaining candidate whose bedroom count is not represented;
//  4. otherwise the highest-scoring remaining candidate.
//
// The remaining pool stays score-ordered throughout, so ties between
// equally-diverse candidates always resolve toward quality.
func (r *Ranker) Diversify(ranked []models.ScoredProperty, criteria models.SearchCriteria, maxResults int) []models.ScoredProperty {
	if maxResults <= 0 {
		return []models.ScoredProperty{}
	}
	if len(ranked) <= maxResults {
		out := make([]models.ScoredProperty, len(ranked))
		copy(out, ranked)
		return out
	}

	boundaries := quartileBoundaries(ranked)

	pool := make([]models.ScoredProperty, len(ranked))
	copy(pool, ranked)

	selected := make([]models.ScoredProperty, 0, maxResults)
	seenQuartile := make(map[int]bool)
	seenUnit := make(map[models.UnitType]bool)
	seenBeds := make(map[int]bool)
	anyUnit := criteria.UnitType == models.UnitAny || criteria.UnitType == ""

	for len(selected) < maxResults && len(pool) > 0 {
		idx := -1
		if len(selected) < 5 {
			idx = firstMatch(pool, func(p *models.ScoredProperty) bool {
				return !seenQuartile[quartileOf(p.Price, boundaries)]
			})
		}
		if idx < 0 && anyUnit {
			idx = firstMatch(pool, func(p *models.ScoredProperty) bool {
				return !seenUnit[p.UnitType]
			})
		}
		if idx < 0 {
			idx = firstMatch(pool, func(p *models.ScoredProperty) bool {
				return !seenBeds[p.Bedrooms]
			})
		}
		if idx < 0 {
			idx = 0
		}

		pick := pool[idx]
		pool = append(pool[:idx], pool[idx+1:]...)
		selected = append(selected, pick)
		seenQuartile[quartileOf(pick.Price, boundaries)] = true
		seenUnit[pick.UnitType] = true
		seenBeds[pick.Bedrooms] = true
	}
	return selected
}

// quartileBoundaries computes the 25/50/75 cut points over the full
// candidate set's prices. The explicit sorted-slice policy here replaces any
// reliance on incidental iteration order.
func quartileBoundaries(candidates []models.ScoredProperty) [3]float64 {
	prices := make([]float64, len(candidates))
	for i, c := range candidates {
		prices[i] = c.Price
	}
	sort.Float64s(prices)
	n := len(prices)
	return [3]float64{prices[n/4], prices[n/2], prices[3*n/4]}
}

func quartileOf(price float64, boundaries [3]float64) int {
	switch {
	case price < boundaries[0]:
		return 0
	case price < boundaries[1]:
		return 1
	case price < boundaries[2]:
		return 2
	default:
		return 3
	}
}

func firstMatch(pool []models.ScoredProperty, match func(*models.ScoredProperty) bool) int {
	for i := range pool {
		if match(&pool[i]) {
			return i
		}
	}
	return -1
}
