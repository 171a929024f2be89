package dataset

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// ReadXLSX parses the first sheet of an XLSX file into a Table. The first
// row is the header.
func ReadXLSX(path string) (Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return Table{}, eris.Wrap(err, "xlsx: open file")
	}
	if len(f.Sheets) == 0 {
		return Table{}, eris.New("xlsx: file has no sheets")
	}
	sheet := f.Sheets[0]

	var t Table
	for i, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, c := range row.Cells {
			cells[j] = strings.TrimSpace(c.String())
		}
		if i == 0 {
			t.Columns = cells
			continue
		}
		if len(cells) < len(t.Columns) {
			padded := make([]string, len(t.Columns))
			copy(padded, cells)
			cells = padded
		}
		t.Rows = append(t.Rows, cells)
	}

	return t, nil
}
