package dataflows

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/3550453790cl-arch/lhb-dashboard/internal/cache"
	"github.com/3550453790cl-arch/lhb-dashboard/internal/models"
)

type fakeSource struct {
	records       []models.DisclosureRecord
	recordsErr    error
	institutional []models.InstitutionalTrade
	instErr       error
	branches      []models.BranchRecord
	branchErr     error

	detailCalls int
}

func (f *fakeSource) GetBillboardDetails(context.Context, string) ([]models.DisclosureRecord, error) {
	f.detailCalls++
	return f.records, f.recordsErr
}

func (f *fakeSource) GetInstitutionalTrades(context.Context, string) ([]models.InstitutionalTrade, error) {
	return f.institutional, f.instErr
}

func (f *fakeSource) GetActiveBranches(context.Context, string) ([]models.BranchRecord, error) {
	return f.branches, f.branchErr
}

func record(code, name string) models.DisclosureRecord {
	return models.DisclosureRecord{Code: code, Name: name}
}

func TestLoadDayDataPrimaryEmpty(t *testing.T) {
	agg := NewAggregator(&fakeSource{})
	_, err := agg.LoadDayData(context.Background(), time.Now())
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestLoadDayDataSecondaryFailuresDegrade(t *testing.T) {
	src := &fakeSource{
		records:   []models.DisclosureRecord{record("600519", "贵州茅台")},
		instErr:   errors.New("http 502"),
		branchErr: errors.New("http 502"),
	}
	day, err := NewAggregator(src).LoadDayData(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("LoadDayData: %v", err)
	}
	if !day.InstitutionalBuyTotal().IsZero() || !day.ForeignBuyTotal().IsZero() {
		t.Error("secondary failures should zero the derived metrics")
	}
	if day.DistinctStockCount() != 1 {
		t.Errorf("DistinctStockCount = %d, want 1", day.DistinctStockCount())
	}
}

func TestLoadDayDataDedupesCodesForCountOnly(t *testing.T) {
	src := &fakeSource{records: []models.DisclosureRecord{
		record("600519", "贵州茅台"),
		record("600519", "贵州茅台"), // second listing reason, same stock
		record("000001", "平安银行"),
	}}
	day, err := NewAggregator(src).LoadDayData(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("LoadDayData: %v", err)
	}
	if day.DistinctStockCount() != 2 {
		t.Errorf("DistinctStockCount = %d, want 2", day.DistinctStockCount())
	}
	if len(day.Records) != 3 {
		t.Errorf("rows must not be deduplicated before ranking, got %d", len(day.Records))
	}
}

func TestLoadDayDataCachesByDate(t *testing.T) {
	src := &fakeSource{records: []models.DisclosureRecord{record("600519", "贵州茅台")}}
	clock := time.Date(2024, 1, 15, 18, 0, 0, 0, time.Local)
	agg := NewAggregator(src).WithCache(
		cache.NewDayCache(DayDataTTL).WithClock(func() time.Time { return clock }),
	)

	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)
	if _, err := agg.LoadDayData(context.Background(), day); err != nil {
		t.Fatalf("first load: %v", err)
	}
	if _, err := agg.LoadDayData(context.Background(), day); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if src.detailCalls != 1 {
		t.Errorf("detail fetches = %d, want 1 (second load served from cache)", src.detailCalls)
	}

	clock = clock.Add(DayDataTTL + time.Minute)
	if _, err := agg.LoadDayData(context.Background(), day); err != nil {
		t.Fatalf("post-expiry load: %v", err)
	}
	if src.detailCalls != 2 {
		t.Errorf("detail fetches = %d, want 2 after cache expiry", src.detailCalls)
	}
}

func TestForeignBuyTotalFiltersByMarker(t *testing.T) {
	day := &models.BillboardDay{Branches: []models.BranchRecord{
		{Name: "沪股通专用", BuyAmount: decimal.NewFromInt(70000000)},
		{Name: "深股通专用", BuyAmount: decimal.NewFromInt(50000000)},
		{Name: "华泰证券深圳益田路营业部", BuyAmount: decimal.NewFromInt(900000000)},
	}}
	want := decimal.NewFromInt(120000000)
	if got := day.ForeignBuyTotal(); !got.Equal(want) {
		t.Errorf("ForeignBuyTotal = %s, want %s", got, want)
	}
}
