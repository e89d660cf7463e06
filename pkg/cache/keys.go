package cache

import (
	"fmt"
	"sort"
	"strings"

	"homematch-search/internal/models"
)

// CriteriaKey derives the cache key for a set of search criteria. The key is
// insensitive to feature ordering and to casing of location and feature
// fields, so two logically identical criteria always map to the same entry.
func CriteriaKey(c models.SearchCriteria) string {
	features := make([]string, 0, len(c.Features))
	for _, f := range c.Features {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			features = append(features, f)
		}
	}
	sort.Strings(features)

	return fmt.Sprintf("search:city=%s|state=%s|txn=%s|unit=%s|min=%.0f|max=%.0f|beds=%d|baths=%d|features=%s",
		strings.ToLower(strings.TrimSpace(c.City)),
		strings.ToLower(strings.TrimSpace(c.State)),
		c.TransactionType,
		c.UnitType,
		c.MinPrice,
		c.MaxPrice,
		c.MinBedrooms,
		c.MinBathrooms,
		strings.Join(features, ","),
	)
}
