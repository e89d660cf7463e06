package services

import (
	"strconv"
	"strings"

	"homematch-search/internal/models"
	"homematch-search/pkg/logger"
)

// Deduplicator collapses records describing the same physical listing.
//
// Identity is heuristic: normalized address plus exact price. Two records
// differing only in provenance or description collapse to one; a legitimate
// price change on the same address within one result set is treated as two
// distinct listings. This is a known limitation, not a guarantee of true
// physical-listing identity.
type Deduplicator struct {
	log *logger.Logger
}

func NewDeduplicator(log *logger.Logger) *Deduplicator {
	return &Deduplicator{log: log}
}

// Dedupe returns the input with duplicates removed, preserving relative
// order. The first-encountered record wins.
func (d *Deduplicator) Dedupe(properties []models.Property) []models.Property {
	seen := make(map[string]bool, len(properties))
	unique := make([]models.Property, 0, len(properties))
	for _, p := range properties {
		key := dedupeKey(&p)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, p)
	}
	if dropped := len(properties) - len(unique); dropped > 0 {
		d.log.Debugf("dedupe collapsed %d duplicate listings", dropped)
	}
	return unique
}

func dedupeKey(p *models.Property) string {
	return normalizeAddress(p.Address) + "|" + strconv.FormatFloat(p.Price, 'f', 2, 64)
}

// normalizeAddress case-folds and collapses whitespace so formatting noise
// between providers does not defeat the match.
func normalizeAddress(address string) string {
	return strings.Join(strings.Fields(strings.ToLower(address)), " ")
}
