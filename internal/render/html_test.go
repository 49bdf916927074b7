package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitesnbags/scorecard-cli/internal/model"
)

func reportInput() model.ReportInput {
	rec := model.TrackerRecord{
		DisplayName: "Pachi Pizza",
		Key:         "pachi pizza",
		Instagram:   model.FlagTrue,
		Facebook:    model.FlagTrue,
		Google:      model.FlagFalse,
		Stories: [7]model.Flag{
			model.FlagFalse, model.FlagTrue, model.FlagFalse, model.FlagFalse,
			model.FlagFalse, model.FlagFalse, model.FlagFalse,
		},
	}
	rec.Score = rec.ComputeScore()

	return model.ReportInput{
		Record:  rec,
		Daily:   [7]int{0, 3, 0, 0, 1, 0, 0},
		Month:   "February",
		Year:    2026,
		WeekNum: 3,
	}
}

func TestCard(t *testing.T) {
	html, err := Card(reportInput())
	require.NoError(t, err)

	s := string(html)
	assert.Contains(t, s, "PACHI PIZZA: February 2026 &ndash; Week 3")
	assert.Contains(t, s, ">3</span>")
	assert.Contains(t, s, "30%")
	assert.Contains(t, s, `id="scorecard"`)
}

func TestCard_BarHeightScaling(t *testing.T) {
	in := reportInput()
	in.Daily = [7]int{0, 10, 1, 0, 0, 0, 0}

	html, err := Card(in)
	require.NoError(t, err)

	s := string(html)
	// The busiest day fills the chart; tiny bars clamp to the minimum.
	assert.Contains(t, s, "height:260px")
	assert.Contains(t, s, "height:30px")
}

func TestCard_BarColorTracksStoryFlag(t *testing.T) {
	in := reportInput()
	in.Daily = [7]int{1, 1, 0, 0, 0, 0, 0}
	in.Record.Stories[0] = model.FlagFalse
	in.Record.Stories[1] = model.FlagTrue

	html, err := Card(in)
	require.NoError(t, err)

	s := string(html)
	assert.Contains(t, s, "background:"+colorRed)
	assert.Contains(t, s, "background:"+colorGreen)
}

func TestScoreColor(t *testing.T) {
	tests := []struct {
		score    int
		expected string
	}{
		{100, colorGreen},
		{70, colorGreen},
		{69, colorAmber},
		{50, colorAmber},
		{49, colorRed},
		{0, colorRed},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, scoreColor(tt.score), "score %d", tt.score)
	}
}

func TestArchiveName(t *testing.T) {
	assert.Equal(t, "scorecards_February_week3.zip", ArchiveName("February", 3))
}
