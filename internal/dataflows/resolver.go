package dataflows

import (
	"context"
	"fmt"
	"log"
	"time"
)

// DefaultScanHorizonDays bounds the backward scan for the latest trading
// day. Ten days is enough to skip any holiday cluster.
const DefaultScanHorizonDays = 10

var weekdaysCN = []string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}

// DayProber answers whether the data source has disclosure rows for a day.
// The production implementation is EastmoneyClient; tests inject fakes.
type DayProber interface {
	HasBillboardData(ctx context.Context, day time.Time) (bool, error)
}

// FindLatestTradingDay scans backward from today, probing one day at a
// time, and returns the most recent day with data plus its display string
// ("2024-01-15（周一）"). A probe error counts as a miss and the scan moves
// on; ok is false when the whole horizon comes up empty.
func FindLatestTradingDay(ctx context.Context, prober DayProber, today time.Time, horizonDays int) (day time.Time, display string, ok bool) {
	if horizonDays <= 0 {
		horizonDays = DefaultScanHorizonDays
	}
	for offset := 0; offset < horizonDays; offset++ {
		candidate := today.AddDate(0, 0, -offset)
		hasData, err := prober.HasBillboardData(ctx, candidate)
		if err != nil {
			log.Printf("resolver: probe %s failed: %v", candidate.Format(DateKey), err)
			continue
		}
		if hasData {
			return candidate, DisplayDate(candidate), true
		}
	}
	return time.Time{}, "", false
}

// DisplayDate renders a day with its localized weekday name.
func DisplayDate(day time.Time) string {
	return fmt.Sprintf("%s（%s）", day.Format("2006-01-02"), weekdaysCN[day.Weekday()])
}
