package services

import (
	"fmt"
	"testing"

	"homematch-search/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredProperty(score int, price float64, beds int, unit models.UnitType) models.ScoredProperty {
	return models.ScoredProperty{
		Property: models.Property{
			Address:  fmt.Sprintf("%d Elm St (%.0f)", score, price),
			Price:    price,
			Bedrooms: beds,
			UnitType: unit,
		},
		Score: score,
	}
}

func TestRankByScoreThenPrice(t *testing.T) {
	r := NewRanker()

	ranked := r.Rank([]models.ScoredProperty{
		scoredProperty(70, 400000, 3, models.UnitHouse),
		scoredProperty(90, 350000, 3, models.UnitHouse),
		scoredProperty(70, 380000, 2, models.UnitCondo),
	})

	require.Len(t, ranked, 3)
	assert.Equal(t, 90, ranked[0].Score)
	// ties break toward the cheaper listing
	assert.Equal(t, float64(380000), ranked[1].Price)
	assert.Equal(t, float64(400000), ranked[2].Price)
}

func TestDiversifyCap(t *testing.T) {
	r := NewRanker()
	criteria := models.SearchCriteria{UnitType: models.UnitAny}

	var ranked []models.ScoredProperty
	for i := 0; i < 20; i++ {
		ranked = append(ranked, scoredProperty(100-i, float64(100000+i*10000), 2+i%3, models.UnitHouse))
	}

	for _, n := range []int{0, 1, 5, 15, 20, 50} {
		out := r.Diversify(ranked, criteria, n)
		assert.LessOrEqual(t, len(out), n, "maxResults=%d", n)
		if len(ranked) <= n {
			assert.Len(t, out, len(ranked))
		}
	}
}

func TestDiversifyNoopWhenSmall(t *testing.T) {
	r := NewRanker()
	ranked := []models.ScoredProperty{
		scoredProperty(90, 100000, 2, models.UnitHouse),
		scoredProperty(80, 200000, 3, models.UnitCondo),
	}
	out := r.Diversify(ranked, models.SearchCriteria{}, 15)
	assert.Equal(t, ranked, out)
}

func TestDiversifyCoversPriceQuartilesFirst(t *testing.T) {
	r := NewRanker()
	criteria := models.SearchCriteria{UnitType: models.UnitAny}

	// 20 candidates spanning 4 price quartiles and 3 bedroom counts
	var ranked []models.ScoredProperty
	for i := 0; i < 20; i++ {
		ranked = append(ranked, scoredProperty(
			100-i,
			float64(100000+i*45000),
			2+i%3,
			models.UnitHouse,
		))
	}

	out := r.Diversify(ranked, criteria, 6)
	require.Len(t, out, 6)

	boundaries := quartileBoundaries(ranked)
	seen := make(map[int]bool)
	for i, p := range out {
		q := quartileOf(p.Price, boundaries)
		if seen[q] && len(seen) < 4 {
			t.Fatalf("quartile %d repeated at position %d before all quartiles were represented", q, i)
		}
		seen[q] = true
	}
	assert.Len(t, seen, 4, "all four quartiles represented")
}

func TestDiversifyPicksBestWhenEquallyDiverse(t *testing.T) {
	r := NewRanker()
	criteria := models.SearchCriteria{UnitType: models.UnitHouse}

	// same quartile coverage available everywhere; pool stays score-ordered,
	// so the first pick is always the top-scored candidate
	var ranked []models.ScoredProperty
	for i := 0; i < 10; i++ {
		ranked = append(ranked, scoredProperty(100-i, float64(100000+i*1000), 3, models.UnitHouse))
	}
	out := r.Diversify(ranked, criteria, 4)
	require.NotEmpty(t, out)
	assert.Equal(t, 100, out[0].Score)
}

func TestDiversifyRepresentsUnitTypesWhenUnpinned(t *testing.T) {
	r := NewRanker()
	criteria := models.SearchCriteria{UnitType: models.UnitAny}

	var ranked []models.ScoredProperty
	// top scores all houses in one quartile band, then other unit types
	for i := 0; i < 6; i++ {
		ranked = append(ranked, scoredProperty(100-i, float64(100000+i*45000), 3, models.UnitHouse))
	}
	ranked = append(ranked,
		scoredProperty(80, 150000, 2, models.UnitApartment),
		scoredProperty(79, 250000, 2, models.UnitCondo),
		scoredProperty(78, 350000, 4, models.UnitTownhouse),
	)

	out := r.Diversify(ranked, criteria, 8)
	units := make(map[models.UnitType]bool)
	for _, p := range out {
		units[p.UnitType] = true
	}
	assert.GreaterOrEqual(t, len(units), 3, "diversification should pull in underrepresented unit types")
}
