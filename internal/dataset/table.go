// Package dataset provides read-only access to the tabular reference
// datasets the analysis agents aggregate over.
package dataset

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// folder performs Unicode case folding for filter matching.
var folder = cases.Fold()

// Table is an in-memory tabular dataset: a header and string-valued rows.
// An empty table has zero rows and may have no columns at all, so callers
// must tolerate absent columns.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Len returns the number of data rows.
func (t Table) Len() int { return len(t.Rows) }

// Empty reports whether the table has no rows.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// colIndex returns the position of a column, matched case-insensitively,
// or -1 when the column is absent.
func (t Table) colIndex(name string) int {
	folded := folder.String(name)
	for i, c := range t.Columns {
		if folder.String(c) == folded {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table carries the named column.
func (t Table) HasColumn(name string) bool { return t.colIndex(name) >= 0 }

// cell returns the value of a column in a row, or "" when out of range.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// FilterContains keeps rows whose column value contains needle,
// case-folded. An empty needle imposes no constraint and returns the
// table unchanged. A missing column matches nothing.
func (t Table) FilterContains(column, needle string) Table {
	if needle == "" {
		return t
	}
	idx := t.colIndex(column)
	if idx < 0 {
		return Table{Columns: t.Columns}
	}
	foldedNeedle := folder.String(needle)
	filtered := Table{Columns: t.Columns}
	for _, row := range t.Rows {
		if strings.Contains(folder.String(cell(row, idx)), foldedNeedle) {
			filtered.Rows = append(filtered.Rows, row)
		}
	}
	return filtered
}

// CountContains counts rows whose column value contains needle, case-folded.
func (t Table) CountContains(column, needle string) int {
	idx := t.colIndex(column)
	if idx < 0 {
		return 0
	}
	foldedNeedle := folder.String(needle)
	count := 0
	for _, row := range t.Rows {
		if strings.Contains(folder.String(cell(row, idx)), foldedNeedle) {
			count++
		}
	}
	return count
}

// finiteFloat parses a cell as a finite float64. ParseFloat accepts
// "inf" and "nan" spellings, which would poison sums and means and make
// the summary unserializable, so those count as unparseable.
func finiteFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// SumFloat sums the parseable numeric values of a column. Unparseable or
// non-finite cells and missing columns contribute zero.
func (t Table) SumFloat(column string) float64 {
	idx := t.colIndex(column)
	if idx < 0 {
		return 0
	}
	sum := 0.0
	for _, row := range t.Rows {
		if v, ok := finiteFloat(cell(row, idx)); ok {
			sum += v
		}
	}
	return sum
}

// MeanFloat returns the arithmetic mean of the parseable numeric values of
// a column, or 0 when there are none.
func (t Table) MeanFloat(column string) float64 {
	idx := t.colIndex(column)
	if idx < 0 {
		return 0
	}
	sum, n := 0.0, 0
	for _, row := range t.Rows {
		if v, ok := finiteFloat(cell(row, idx)); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// CategoryCount pairs a categorical value with its occurrence count.
type CategoryCount struct {
	Category string
	Count    int
}

// Counts is a frequency breakdown ordered by descending count, ties broken
// by first-encountered order in the underlying rows. It serializes as a
// JSON object whose key order matches the slice order.
type Counts []CategoryCount

// MarshalJSON emits an ordered {"category": count, ...} object.
func (c Counts) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, cc := range c {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(cc.Category)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(cc.Count))
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// Total returns the sum of all counts.
func (c Counts) Total() int {
	total := 0
	for _, cc := range c {
		total += cc.Count
	}
	return total
}

// CountsBy returns the full frequency distribution of a column. Empty
// cells are excluded; a missing column yields an empty distribution.
func (t Table) CountsBy(column string) Counts {
	idx := t.colIndex(column)
	if idx < 0 {
		return nil
	}
	order := make(map[string]int)
	tally := make(map[string]int)
	var seen []string
	for _, row := range t.Rows {
		v := strings.TrimSpace(cell(row, idx))
		if v == "" {
			continue
		}
		if _, ok := tally[v]; !ok {
			order[v] = len(seen)
			seen = append(seen, v)
		}
		tally[v]++
	}

	counts := make(Counts, 0, len(seen))
	for _, v := range seen {
		counts = append(counts, CategoryCount{Category: v, Count: tally[v]})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return order[counts[i].Category] < order[counts[j].Category]
	})
	return counts
}

// TopCounts truncates the frequency distribution of a column to its n most
// frequent values.
func (t Table) TopCounts(column string, n int) Counts {
	counts := t.CountsBy(column)
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
