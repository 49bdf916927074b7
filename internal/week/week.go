// Package week selects the Sunday-start reporting window from the order
// timestamps.
package week

import (
	"time"

	"github.com/bitesnbags/scorecard-cli/internal/model"
)

// Selection describes the chosen reporting window.
type Selection struct {
	Start       time.Time // Sunday 00:00:00; window ends Start+7d exclusive
	Month       string
	Year        int
	WeekOfMonth int // 1-based 7-day bucket of the month, not an ISO week
}

// End is the exclusive end of the window.
func (s Selection) End() time.Time {
	return s.Start.AddDate(0, 0, 7)
}

// DayOfWeek returns Sunday=0 through Saturday=6.
func DayOfWeek(t time.Time) int {
	return int(t.Weekday())
}

// SundayOf returns the Sunday at midnight that starts t's week.
func SundayOf(t time.Time) time.Time {
	d := t.AddDate(0, 0, -DayOfWeek(t))
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// Determine picks the week with the most orders. Ties resolve to the
// earliest Sunday. With no orders at all it falls back to the week
// containing now, so a run on an empty log still reports a window.
func Determine(orders []model.Order, now time.Time) Selection {
	if len(orders) == 0 {
		return selectionFor(SundayOf(now))
	}

	counts := make(map[time.Time]int)
	for _, o := range orders {
		counts[SundayOf(o.At)]++
	}

	var best time.Time
	bestCount := -1
	for sunday, n := range counts {
		if n > bestCount || (n == bestCount && sunday.Before(best)) {
			best, bestCount = sunday, n
		}
	}

	return selectionFor(best)
}

func selectionFor(sunday time.Time) Selection {
	return Selection{
		Start:       sunday,
		Month:       sunday.Month().String(),
		Year:        sunday.Year(),
		WeekOfMonth: (sunday.Day()-1)/7 + 1,
	}
}
