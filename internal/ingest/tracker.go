package ingest

import (
	"bytes"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/bitesnbags/scorecard-cli/internal/fetcher"
	"github.com/bitesnbags/scorecard-cli/internal/model"
	"github.com/bitesnbags/scorecard-cli/internal/normalize"
)

// TrackerFormat selects the physical encoding of the tracker source.
// Callers state it explicitly; nothing here sniffs filenames.
type TrackerFormat string

const (
	TrackerFormatCSV  TrackerFormat = "csv"
	TrackerFormatXLSX TrackerFormat = "xlsx"
)

// Both encodings share one logical layout: restaurant name in the first
// column, four permanent-link flags (tip-and-tag, Instagram, Facebook,
// Google) next, then seven Sunday-first story flags.
const (
	trackerHeaderRows = 4  // wrapped header occupies the leading rows
	trackerMinCells   = 12 // name + 4 link flags + 7 story flags; CSV rows shorter than this are skipped, XLSX rows are padded
)

// ReadTracker parses the compliance tracker into records keyed by
// normalized name. Rows whose name is empty or the "sum" totals sentinel
// are skipped; duplicate keys resolve last-write-wins. A source with no
// data rows at all is malformed and fatal.
func ReadTracker(content []byte, format TrackerFormat) (map[string]model.TrackerRecord, error) {
	var rows [][]string
	var err error

	switch format {
	case TrackerFormatCSV:
		rows, err = fetcher.ReadCSV(bytes.NewReader(content), fetcher.CSVOptions{
			SkipRows:   trackerHeaderRows,
			LazyQuotes: true,
		})
	case TrackerFormatXLSX:
		rows, err = fetcher.ReadXLSX(content, fetcher.XLSXOptions{SkipRows: trackerHeaderRows})
		// Worksheets omit trailing blank cells entirely, so a row whose
		// last story columns were never filled in comes back short. Pad it
		// to full width; the blanks coerce to false like any other blank
		// cell.
		for i := range rows {
			rows[i] = padRow(rows[i], trackerMinCells)
		}
	default:
		return nil, eris.Errorf("tracker: unsupported format %q", format)
	}
	if err != nil {
		return nil, eris.Wrap(err, "tracker: parse source")
	}

	records := make(map[string]model.TrackerRecord)
	for _, row := range rows {
		rec, ok := trackerRecord(row)
		if !ok {
			continue
		}
		records[rec.Key] = rec
	}

	if len(records) == 0 {
		return nil, eris.New("tracker: source contains no data rows")
	}

	return records, nil
}

func padRow(row []string, width int) []string {
	for len(row) < width {
		row = append(row, "")
	}
	return row
}

func trackerRecord(row []string) (model.TrackerRecord, bool) {
	if len(row) < trackerMinCells {
		return model.TrackerRecord{}, false
	}

	name := strings.TrimSpace(row[0])
	if name == "" || strings.ToLower(name) == "sum" {
		return model.TrackerRecord{}, false
	}

	rec := model.TrackerRecord{
		DisplayName: name,
		Key:         normalize.Key(name),
		TipAndTag:   coerceFlag(row[1]),
		Instagram:   coerceFlag(row[2]),
		Facebook:    coerceFlag(row[3]),
		Google:      coerceFlag(row[4]),
	}
	for i := 0; i < 7; i++ {
		rec.Stories[i] = coerceFlag(row[5+i])
	}
	rec.Score = rec.ComputeScore()

	return rec, true
}

// coerceFlag maps a raw cell to the tri-state domain. TRUE/FALSE pass
// through, NA means not-applicable, and anything else (blank cells,
// stray text) degrades to false.
func coerceFlag(cell string) model.Flag {
	switch strings.ToUpper(strings.TrimSpace(cell)) {
	case "TRUE":
		return model.FlagTrue
	case "FALSE":
		return model.FlagFalse
	case "NA":
		return model.FlagNotApplicable
	default:
		return model.FlagFalse
	}
}
