// Package lineup selects a best lineup from projected players.
package lineup

import (
	"sort"

	"github.com/shopspring/decimal"

	"rosteriq/internal/projection"
)

// Select returns the starterCount highest-projection players, ordered
// by final projection descending. Ties keep input order. This is a
// plain top-N cut: it does not check slot eligibility (QB/RB/WR/TE/
// FLEX), so the result is not guaranteed to be a legal lineup.
func Select(projected []projection.PlayerProjection, starterCount int) []projection.PlayerProjection {
	if starterCount <= 0 {
		return nil
	}

	sorted := make([]projection.PlayerProjection, len(projected))
	copy(sorted, projected)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Final.GreaterThan(sorted[j].Final)
	})

	if starterCount > len(sorted) {
		starterCount = len(sorted)
	}
	return sorted[:starterCount]
}

// Total sums final projections.
func Total(projected []projection.PlayerProjection) decimal.Decimal {
	total := decimal.Zero
	for _, p := range projected {
		total = total.Add(p.Final)
	}
	return total
}
