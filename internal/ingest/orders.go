// Package ingest turns raw source rows into typed order and tracker
// records, applying the row-level filters. Bad rows are dropped, never
// fatal; only a structurally unusable source aborts the run.
package ingest

import (
	"io"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/bitesnbags/scorecard-cli/internal/fetcher"
	"github.com/bitesnbags/scorecard-cli/internal/model"
	"github.com/bitesnbags/scorecard-cli/internal/normalize"
)

// orderDateLayout matches log timestamps like "21 Feb 2026 11:57 pm".
const orderDateLayout = "2 Jan 2006 3:04 pm"

// OrderOptions carries the injectable exclusion policy.
type OrderOptions struct {
	ExcludedPlaces   map[string]struct{} // normalized place keys
	ExcludedStatuses map[string]struct{} // lowercased statuses
}

// NewOrderOptions canonicalizes the configured exclusion lists: place
// names through the normalizer, statuses lowercased.
func NewOrderOptions(excludedPlaces, excludedStatuses []string) OrderOptions {
	opts := OrderOptions{
		ExcludedPlaces:   make(map[string]struct{}, len(excludedPlaces)),
		ExcludedStatuses: make(map[string]struct{}, len(excludedStatuses)),
	}
	for _, p := range excludedPlaces {
		opts.ExcludedPlaces[normalize.Key(p)] = struct{}{}
	}
	for _, s := range excludedStatuses {
		opts.ExcludedStatuses[strings.ToLower(s)] = struct{}{}
	}
	return opts
}

// ReadOrders parses the order log CSV. The header row must name Place,
// Status, and Date columns; their position is free. Rows with a missing
// place, an unparseable date, an excluded place, or an excluded status are
// skipped. Output preserves input order.
func ReadOrders(r io.Reader, opts OrderOptions) ([]model.Order, error) {
	rows, err := fetcher.ReadCSV(r, fetcher.CSVOptions{})
	if err != nil {
		return nil, eris.Wrap(err, "orders: parse csv")
	}
	if len(rows) == 0 {
		return nil, eris.New("orders: source has no header row")
	}

	cols, err := orderColumns(rows[0])
	if err != nil {
		return nil, err
	}

	var orders []model.Order
	for _, row := range rows[1:] {
		place := strings.TrimSpace(cell(row, cols.place))
		status := strings.TrimSpace(cell(row, cols.status))
		at, err := ParseOrderDate(cell(row, cols.date))
		if place == "" || err != nil {
			continue
		}

		key := normalize.Key(place)
		if _, ok := opts.ExcludedPlaces[key]; ok {
			continue
		}
		if _, ok := opts.ExcludedStatuses[strings.ToLower(status)]; ok {
			continue
		}

		orders = append(orders, model.Order{Place: place, Key: key, At: at})
	}

	return orders, nil
}

// ParseOrderDate parses a log timestamp. The am/pm marker is accepted in
// either case.
func ParseOrderDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(orderDateLayout, strings.ToLower(s))
	if err != nil {
		return time.Time{}, eris.Wrapf(err, "orders: parse date %q", s)
	}
	return t, nil
}

type orderCols struct {
	place, status, date int
}

func orderColumns(header []string) (orderCols, error) {
	cols := orderCols{place: -1, status: -1, date: -1}
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case "Place":
			cols.place = i
		case "Status":
			cols.status = i
		case "Date":
			cols.date = i
		}
	}
	if cols.place < 0 || cols.status < 0 || cols.date < 0 {
		return cols, eris.Errorf("orders: header missing required columns (got %v)", header)
	}
	return cols, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
