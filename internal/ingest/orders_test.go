package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultOrderOptions() OrderOptions {
	return NewOrderOptions(
		[]string{"opi orders"},
		[]string{"cancelled", "rejected by place"},
	)
}

func TestReadOrders(t *testing.T) {
	input := "\uFEFF" + strings.Join([]string{
		`ID,Place,Status,Date`,
		`1,Pachi Pizza,Delivered,16 Feb 2026 1:05 pm`,
		`2,Pizza Pachi 🍕,Delivered,16 Feb 2026 7:30 pm`,
		`3,OPI Orders,Delivered,16 Feb 2026 2:00 pm`,
		`4,Azul Pastry,Cancelled,17 Feb 2026 9:15 am`,
		`5,Azul Pastry,Rejected by Place,17 Feb 2026 9:20 am`,
		`6,,Delivered,17 Feb 2026 10:00 am`,
		`7,Ikura,Delivered,not a date`,
		`8,Ikura,Delivered,18 Feb 2026 11:57 PM`,
	}, "\n")

	orders, err := ReadOrders(strings.NewReader(input), defaultOrderOptions())
	require.NoError(t, err)
	require.Len(t, orders, 3)

	// Input order is preserved.
	assert.Equal(t, "Pachi Pizza", orders[0].Place)
	assert.Equal(t, "pachi pizza", orders[0].Key)
	assert.Equal(t, time.Date(2026, time.February, 16, 13, 5, 0, 0, time.UTC), orders[0].At)

	// Emoji stripped from the key, kept in the display name.
	assert.Equal(t, "Pizza Pachi 🍕", orders[1].Place)
	assert.Equal(t, "pizza pachi", orders[1].Key)

	// Uppercase PM accepted.
	assert.Equal(t, time.Date(2026, time.February, 18, 23, 57, 0, 0, time.UTC), orders[2].At)
}

func TestReadOrders_HeaderAnywhere(t *testing.T) {
	input := strings.Join([]string{
		`Date,Extra,Status,Place`,
		`16 Feb 2026 1:05 pm,x,Delivered,Sofia`,
	}, "\n")

	orders, err := ReadOrders(strings.NewReader(input), defaultOrderOptions())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "sofia", orders[0].Key)
}

func TestReadOrders_MissingColumnsFatal(t *testing.T) {
	input := "Place,When\nPachi Pizza,16 Feb 2026 1:05 pm\n"

	_, err := ReadOrders(strings.NewReader(input), defaultOrderOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
}

func TestReadOrders_EmptySourceFatal(t *testing.T) {
	_, err := ReadOrders(strings.NewReader(""), defaultOrderOptions())
	require.Error(t, err)
}

func TestParseOrderDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "lowercase pm", input: "21 Feb 2026 11:57 pm"},
		{name: "single digit day and hour", input: "3 Mar 2026 9:05 am"},
		{name: "uppercase AM", input: "21 Feb 2026 8:00 AM"},
		{name: "surrounding whitespace", input: "  21 Feb 2026 11:57 pm  "},
		{name: "wrong order", input: "Feb 21 2026 11:57 pm", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "iso format", input: "2026-02-21T23:57:00Z", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOrderDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
