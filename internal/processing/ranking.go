// Package processing derives the ranked views the board renders from the
// raw disclosure rows.
package processing

import (
	"sort"

	"github.com/3550453790cl-arch/lhb-dashboard/internal/models"
)

// TopN is the size of the ranked slice shown on the board and fed to the
// AI commentary.
const TopN = 10

// RankByNetBuy returns the records sorted by net buy amount, largest
// first. The sort is stable so ties keep their fetch order, and rows whose
// net buy failed numeric coercion sink to the bottom.
func RankByNetBuy(records []models.DisclosureRecord) []models.DisclosureRecord {
	ranked := make([]models.DisclosureRecord, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].NetBuy, ranked[j].NetBuy
		switch {
		case a.Valid && !b.Valid:
			return true
		case !a.Valid:
			return false
		default:
			return a.Decimal.GreaterThan(b.Decimal)
		}
	})
	return ranked
}

// Top takes the first n ranked rows with a usable net buy amount. Days with
// fewer rows just yield a shorter slice.
func Top(ranked []models.DisclosureRecord, n int) []models.DisclosureRecord {
	top := make([]models.DisclosureRecord, 0, n)
	for _, r := range ranked {
		if !r.NetBuy.Valid {
			break // ranked order puts all invalid rows last
		}
		top = append(top, r)
		if len(top) == n {
			break
		}
	}
	return top
}

// TopEntry is the single biggest net buyer of the day.
func TopEntry(ranked []models.DisclosureRecord) (models.DisclosureRecord, bool) {
	if len(ranked) == 0 || !ranked[0].NetBuy.Valid {
		return models.DisclosureRecord{}, false
	}
	return ranked[0], true
}
