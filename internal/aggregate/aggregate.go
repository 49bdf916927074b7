// Package aggregate buckets matched orders into per-restaurant,
// per-day-of-week counts for the reporting window.
package aggregate

import (
	"time"

	"github.com/bitesnbags/scorecard-cli/internal/model"
	"github.com/bitesnbags/scorecard-cli/internal/week"
)

// CountByDay counts orders per tracker key per day of week within
// [weekStart, weekStart+7d). Orders outside the window or without a
// name-map entry contribute nothing. A restaurant with no matched orders
// is absent from the result; callers treat absence as all zeros.
func CountByDay(orders []model.Order, nameMap map[string]string, weekStart time.Time) map[string][7]int {
	weekEnd := weekStart.AddDate(0, 0, 7)

	counts := make(map[string][7]int)
	for _, o := range orders {
		if o.At.Before(weekStart) || !o.At.Before(weekEnd) {
			continue
		}
		target, ok := nameMap[o.Key]
		if !ok {
			continue
		}
		daily := counts[target]
		daily[week.DayOfWeek(o.At)]++
		counts[target] = daily
	}

	return counts
}
