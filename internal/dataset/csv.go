package dataset

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// ReadCSV parses a CSV source into a Table. The first record is the
// header. Rows shorter than the header are padded with empty cells so
// column lookups stay positional.
func ReadCSV(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // allow variable fields

	header, err := reader.Read()
	if err == io.EOF {
		return Table{}, nil
	}
	if err != nil {
		return Table{}, eris.Wrap(err, "csv: read header")
	}
	for i, c := range header {
		header[i] = strings.TrimSpace(c)
	}

	t := Table{Columns: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, eris.Wrap(err, "csv: read row")
		}
		for i, field := range record {
			record[i] = strings.TrimSpace(field)
		}
		if len(record) < len(header) {
			padded := make([]string, len(header))
			copy(padded, record)
			record = padded
		}
		t.Rows = append(t.Rows, record)
	}

	return t, nil
}
