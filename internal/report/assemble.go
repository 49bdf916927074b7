// Package report joins tracker records with aggregated counts into the
// ordered inputs consumed by the renderer.
package report

import (
	"sort"

	"github.com/bitesnbags/scorecard-cli/internal/model"
	"github.com/bitesnbags/scorecard-cli/internal/week"
)

// Assemble produces one ReportInput per tracker record, zero-filling the
// daily counts for restaurants without matched orders. Restaurants that
// were matched and actually received orders this week sort first; the long
// tail follows. Within each group the order is ascending by the raw
// display name.
func Assemble(records map[string]model.TrackerRecord, counts map[string][7]int, nameMap map[string]string, sel week.Selection) []model.ReportInput {
	matched := make(map[string]struct{}, len(nameMap))
	for _, target := range nameMap {
		matched[target] = struct{}{}
	}

	inputs := make([]model.ReportInput, 0, len(records))
	ranks := make(map[string]int, len(records))
	for key, rec := range records {
		in := model.ReportInput{
			Record:  rec,
			Daily:   counts[key],
			Month:   sel.Month,
			Year:    sel.Year,
			WeekNum: sel.WeekOfMonth,
		}
		inputs = append(inputs, in)
		ranks[key] = activeRank(in, matched)
	}

	sort.Slice(inputs, func(i, j int) bool {
		a, b := inputs[i], inputs[j]
		if ranks[a.Record.Key] != ranks[b.Record.Key] {
			return ranks[a.Record.Key] < ranks[b.Record.Key]
		}
		return a.Record.DisplayName < b.Record.DisplayName
	})

	return inputs
}

// activeRank is 0 for restaurants that are a match target with at least
// one order in the window, 1 otherwise.
func activeRank(in model.ReportInput, matched map[string]struct{}) int {
	if _, ok := matched[in.Record.Key]; ok && in.WeeklyTotal() > 0 {
		return 0
	}
	return 1
}
