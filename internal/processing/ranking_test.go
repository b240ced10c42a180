package processing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/3550453790cl-arch/lhb-dashboard/internal/models"
)

func rec(code string, netBuy int64) models.DisclosureRecord {
	return models.DisclosureRecord{
		Code:   code,
		NetBuy: decimal.NullDecimal{Decimal: decimal.NewFromInt(netBuy), Valid: true},
	}
}

func recInvalid(code string) models.DisclosureRecord {
	return models.DisclosureRecord{Code: code}
}

func TestRankByNetBuyStableTies(t *testing.T) {
	// net buys [5, 100, -3, 100]: the two 100s must keep fetch order.
	in := []models.DisclosureRecord{rec("a", 5), rec("b", 100), rec("c", -3), rec("d", 100)}
	ranked := RankByNetBuy(in)

	wantOrder := []string{"b", "d", "a", "c"}
	for i, want := range wantOrder {
		if ranked[i].Code != want {
			t.Fatalf("ranked[%d] = %s, want %s (full order %v)", i, ranked[i].Code, want, codes(ranked))
		}
	}
	// input untouched
	if in[0].Code != "a" {
		t.Error("RankByNetBuy must not mutate its input")
	}
}

func TestRankByNetBuyInvalidSinks(t *testing.T) {
	ranked := RankByNetBuy([]models.DisclosureRecord{recInvalid("x"), rec("a", 1), rec("b", -999)})
	if ranked[len(ranked)-1].Code != "x" {
		t.Errorf("invalid net buy should rank last, got order %v", codes(ranked))
	}
}

func TestTopExcludesInvalidAndShortDays(t *testing.T) {
	ranked := RankByNetBuy([]models.DisclosureRecord{rec("a", 10), recInvalid("x"), rec("b", 2)})
	top := Top(ranked, 10)
	if len(top) != 2 {
		t.Fatalf("Top = %v, want only the two valid rows", codes(top))
	}
	if top[0].Code != "a" || top[1].Code != "b" {
		t.Errorf("Top order = %v", codes(top))
	}

	if got := Top(RankByNetBuy(nil), 10); len(got) != 0 {
		t.Errorf("Top of an empty day = %d rows", len(got))
	}
}

func TestTopEntry(t *testing.T) {
	ranked := RankByNetBuy([]models.DisclosureRecord{rec("a", 5), rec("b", 100)})
	entry, ok := TopEntry(ranked)
	if !ok || entry.Code != "b" {
		t.Errorf("TopEntry = (%s, %v), want (b, true)", entry.Code, ok)
	}

	if _, ok := TopEntry(RankByNetBuy([]models.DisclosureRecord{recInvalid("x")})); ok {
		t.Error("TopEntry over all-invalid rows must report none")
	}
}

func codes(records []models.DisclosureRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Code
	}
	return out
}
