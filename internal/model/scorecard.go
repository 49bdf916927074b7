// Package model defines the data shapes shared across the scorecard pipeline.
package model

import "time"

// Flag is a tri-state compliance indicator. A channel may not apply to a
// given restaurant, so plain booleans are not enough.
type Flag string

const (
	FlagTrue          Flag = "true"
	FlagFalse         Flag = "false"
	FlagNotApplicable Flag = "na"
)

// Bool reports whether the flag is affirmatively true. Not-applicable
// counts as false for scoring purposes.
func (f Flag) Bool() bool {
	return f == FlagTrue
}

// Order is one accepted row from the weekly order log.
type Order struct {
	Place string    `json:"place"` // display name as it appeared in the log
	Key   string    `json:"key"`   // normalized matching key
	At    time.Time `json:"at"`
}

// TrackerRecord holds the compliance tracker state for one restaurant.
// Stories is Sunday-first.
type TrackerRecord struct {
	DisplayName string  `json:"display_name"`
	Key         string  `json:"key"`
	TipAndTag   Flag    `json:"tip_and_tag"`
	Instagram   Flag    `json:"instagram"`
	Facebook    Flag    `json:"facebook"`
	Google      Flag    `json:"google"`
	Stories     [7]Flag `json:"stories"`
	Score       int     `json:"score"`
}

// ComputeScore returns the 0-100 compliance score: the count of true flags
// among the ten scored columns (Instagram, Facebook, Google, and the seven
// story flags), times ten. Tip-and-tag is tracked but not scored.
func (r *TrackerRecord) ComputeScore() int {
	n := 0
	for _, f := range []Flag{r.Instagram, r.Facebook, r.Google} {
		if f.Bool() {
			n++
		}
	}
	for _, f := range r.Stories {
		if f.Bool() {
			n++
		}
	}
	return n * 100 / 10
}

// ReportInput is the full input to rendering for one restaurant: the
// tracker record joined with its daily order counts for the reporting week.
type ReportInput struct {
	Record  TrackerRecord `json:"record"`
	Daily   [7]int        `json:"daily"` // Sunday-first order counts
	Month   string        `json:"month"`
	Year    int           `json:"year"`
	WeekNum int           `json:"week_num"` // 1-based week-of-month
}

// WeeklyTotal is the sum of the daily counts.
func (in *ReportInput) WeeklyTotal() int {
	total := 0
	for _, c := range in.Daily {
		total += c
	}
	return total
}
