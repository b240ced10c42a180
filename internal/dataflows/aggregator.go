package dataflows

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/3550453790cl-arch/lhb-dashboard/internal/cache"
	"github.com/3550453790cl-arch/lhb-dashboard/internal/models"
)

// DayDataTTL is how long a loaded day stays cached. Board data for a
// finished trading day only moves when Eastmoney restates it.
const DayDataTTL = time.Hour

// ErrNoData means the primary disclosure fetch came back empty, so nothing
// meaningful can be shown for the day.
var ErrNoData = errors.New("no billboard data for the requested day")

// BillboardSource is the slice of EastmoneyClient the aggregator needs.
type BillboardSource interface {
	GetBillboardDetails(ctx context.Context, dateKey string) ([]models.DisclosureRecord, error)
	GetInstitutionalTrades(ctx context.Context, dateKey string) ([]models.InstitutionalTrade, error)
	GetActiveBranches(ctx context.Context, dateKey string) ([]models.BranchRecord, error)
}

// Aggregator loads and caches everything the board needs for one day.
type Aggregator struct {
	source BillboardSource
	cache  *cache.DayCache
}

func NewAggregator(source BillboardSource) *Aggregator {
	return &Aggregator{
		source: source,
		cache:  cache.NewDayCache(DayDataTTL),
	}
}

// WithCache swaps the day cache; tests use it to inject a fake clock.
func (a *Aggregator) WithCache(c *cache.DayCache) *Aggregator {
	a.cache = c
	return a
}

// LoadDayData fetches the three record sets for one day. The disclosure
// details are mandatory; the institutional and branch sets are best-effort
// and their absence just zeroes the derived metrics.
func (a *Aggregator) LoadDayData(ctx context.Context, day time.Time) (*models.BillboardDay, error) {
	dateKey := day.Format(DateKey)
	if cached, ok := a.cache.Get(dateKey); ok {
		return cached, nil
	}

	records, err := a.source.GetBillboardDetails(ctx, dateKey)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}

	institutional, err := a.source.GetInstitutionalTrades(ctx, dateKey)
	if err != nil {
		log.Printf("aggregator: institutional fetch for %s failed, metric degrades to 0: %v", dateKey, err)
		institutional = nil
	}
	branches, err := a.source.GetActiveBranches(ctx, dateKey)
	if err != nil {
		log.Printf("aggregator: branch fetch for %s failed, metric degrades to 0: %v", dateKey, err)
		branches = nil
	}

	result := &models.BillboardDay{
		Date:          day,
		Records:       records,
		Institutional: institutional,
		Branches:      branches,
	}
	a.cache.Set(dateKey, result)
	return result, nil
}
