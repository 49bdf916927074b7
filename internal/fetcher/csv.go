// Package fetcher parses the raw order and tracker sources into rows.
// It performs no interpretation: callers map columns to meaning.
package fetcher

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"
)

// CSVOptions configures the CSV parser.
type CSVOptions struct {
	SkipRows   int  // leading rows to drop (wrapped multi-line headers)
	LazyQuotes bool // tolerate bare quotes inside fields
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV reads every row from r as a string slice. Rows may have varying
// field counts; a UTF-8 byte-order mark at the start of the stream is
// discarded.
func ReadCSV(r io.Reader, opts CSVOptions) ([][]string, error) {
	reader := csv.NewReader(stripBOM(r))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = opts.LazyQuotes

	var rows [][]string
	for i := 0; ; i++ {
		record, err := reader.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, eris.Wrap(err, "csv: read row")
		}
		if i < opts.SkipRows {
			continue
		}
		rows = append(rows, record)
	}
}

func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}
