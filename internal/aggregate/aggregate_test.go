package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitesnbags/scorecard-cli/internal/model"
)

func order(key string, t time.Time) model.Order {
	return model.Order{Place: key, Key: key, At: t}
}

func feb(day, hour int) time.Time {
	return time.Date(2026, time.February, day, hour, 0, 0, 0, time.UTC)
}

func TestCountByDay(t *testing.T) {
	weekStart := feb(15, 0) // Sunday
	nameMap := map[string]string{
		"pizza pachi":           "pachi pizza",
		"pachi pizza and pasta": "pachi pizza",
		"azul":                  "azul",
	}

	orders := []model.Order{
		order("pizza pachi", feb(16, 13)),           // Monday
		order("pizza pachi", feb(16, 19)),           // Monday
		order("pachi pizza and pasta", feb(16, 21)), // Monday, same target
		order("azul", feb(21, 23)),                  // Saturday
		order("azul", feb(14, 12)),                  // before the window
		order("azul", feb(22, 0)),                   // window end is exclusive
		order("unmapped place", feb(17, 12)),        // no name-map entry
	}

	counts := CountByDay(orders, nameMap, weekStart)
	require.Len(t, counts, 2)

	// Both order-side variants aggregate under the one tracker key.
	assert.Equal(t, [7]int{0, 3, 0, 0, 0, 0, 0}, counts["pachi pizza"])
	assert.Equal(t, [7]int{0, 0, 0, 0, 0, 0, 1}, counts["azul"])
}

func TestCountByDay_WindowBoundaries(t *testing.T) {
	weekStart := feb(15, 0)
	nameMap := map[string]string{"azul": "azul"}

	tests := []struct {
		name    string
		at      time.Time
		counted bool
	}{
		{name: "start inclusive", at: feb(15, 0), counted: true},
		{name: "last instant of week", at: time.Date(2026, time.February, 21, 23, 59, 59, 0, time.UTC), counted: true},
		{name: "end exclusive", at: feb(22, 0), counted: false},
		{name: "just before start", at: time.Date(2026, time.February, 14, 23, 59, 59, 0, time.UTC), counted: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts := CountByDay([]model.Order{order("azul", tt.at)}, nameMap, weekStart)
			if tt.counted {
				assert.Len(t, counts, 1)
			} else {
				assert.Empty(t, counts)
			}
		})
	}
}

func TestCountByDay_NoMatchedOrdersMeansAbsent(t *testing.T) {
	counts := CountByDay(
		[]model.Order{order("unmapped", feb(16, 12))},
		map[string]string{},
		feb(15, 0),
	)

	// Absence, not a zero-filled entry.
	_, ok := counts["unmapped"]
	assert.False(t, ok)
	assert.Empty(t, counts)
}
