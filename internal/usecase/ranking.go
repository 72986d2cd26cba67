// Package usecase provides the business logic for the fare tracker pipeline.
package usecase

import (
	"sort"

	"github.com/fare-tracker/amadeus-fare-tracker/internal/domain"
)

// RankOffers sorts validated offers ascending by price and returns at most
// topN of them.
//
// Behavior:
//   - Pure function: no provider calls, no side effects
//   - Does NOT mutate the input slice
//   - Ties keep their original relative order (stable sort)
//   - Returns fewer than topN offers when fewer exist
func RankOffers(offers []domain.ValidatedOffer, topN int) []domain.ValidatedOffer {
	if len(offers) == 0 || topN <= 0 {
		return nil
	}

	ranked := make([]domain.ValidatedOffer, len(offers))
	copy(ranked, offers)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Price < ranked[j].Price
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
