package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ForeignChannelMarker appears in the names of Stock Connect branch seats
// (沪股通/深股通). Branch rows carrying it approximate foreign-capital flow.
const ForeignChannelMarker = "股通"

// DisclosureRecord is one dragon-tiger list row: a (stock, listing reason)
// pair for a single trading day. Records are immutable once fetched.
type DisclosureRecord struct {
	Code         string              `json:"code"`
	Name         string              `json:"name"`
	ClosePrice   decimal.Decimal     `json:"close_price"`
	ChangeRate   decimal.Decimal     `json:"change_rate"`
	NetBuy       decimal.NullDecimal `json:"net_buy"`
	TurnoverRate decimal.NullDecimal `json:"turnover_rate"`
	Reason       string              `json:"reason"`
}

// InstitutionalTrade is one row of the institutional daily trade summary.
type InstitutionalTrade struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	BuyAmount decimal.Decimal `json:"buy_amount"`
}

// BranchRecord is one active brokerage branch row.
type BranchRecord struct {
	Name      string          `json:"name"`
	BuyAmount decimal.Decimal `json:"buy_amount"`
}

// BillboardDay bundles everything fetched for one resolved trading day.
// Institutional and Branches are best-effort and may be empty; derived
// metrics are recomputed from the source rows on every call.
type BillboardDay struct {
	Date          time.Time            `json:"date"`
	Records       []DisclosureRecord   `json:"records"`
	Institutional []InstitutionalTrade `json:"institutional"`
	Branches      []BranchRecord       `json:"branches"`
}

// DistinctStockCount counts unique stock codes on the list. A stock listed
// under several reasons still counts once.
func (d *BillboardDay) DistinctStockCount() int {
	seen := make(map[string]struct{}, len(d.Records))
	for _, r := range d.Records {
		seen[r.Code] = struct{}{}
	}
	return len(seen)
}

// InstitutionalBuyTotal sums institutional buy amounts, zero when the
// institutional set is unavailable.
func (d *BillboardDay) InstitutionalBuyTotal() decimal.Decimal {
	total := decimal.Zero
	for _, t := range d.Institutional {
		total = total.Add(t.BuyAmount)
	}
	return total
}

// ForeignBuyTotal sums buy amounts of Stock Connect branches only.
func (d *BillboardDay) ForeignBuyTotal() decimal.Decimal {
	total := decimal.Zero
	for _, b := range d.Branches {
		if strings.Contains(b.Name, ForeignChannelMarker) {
			total = total.Add(b.BuyAmount)
		}
	}
	return total
}
