package tabular

import (
	"strings"

	"github.com/montanaflynn/stats"
)

// Row maps a column name to one cell. Absent keys and explicit missing
// values are equivalent; Get treats both as None.
type Row map[string]Value

func (r Row) Get(col string) Value { return r[col] }

func (r Row) Set(col string, v Value) { r[col] = v }

// Table is an in-memory tabular dataset with an ordered column list.
// Cells are Values; rows may omit columns entirely.
type Table struct {
	Columns []string
	Rows    []Row
}

func New(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

func (t *Table) Len() int { return len(t.Rows) }

func (t *Table) Has(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// AddColumn registers a column name without touching existing rows.
func (t *Table) AddColumn(col string) {
	if !t.Has(col) {
		t.Columns = append(t.Columns, col)
	}
}

func (t *Table) Append(r Row) { t.Rows = append(t.Rows, r) }

// Rename moves a column to a new name, cell by cell. A no-op when the old
// name is absent or already equals the new one.
func (t *Table) Rename(old, new string) {
	if old == new || !t.Has(old) {
		return
	}
	for i, c := range t.Columns {
		if c == old {
			t.Columns[i] = new
		}
	}
	for _, r := range t.Rows {
		if v, ok := r[old]; ok {
			delete(r, old)
			if _, taken := r[new]; !taken {
				r[new] = v
			}
		}
	}
}

// CleanName lowercases a column name and normalizes spaces and dashes to
// underscores. Applying it twice is a no-op.
func CleanName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// CleanColumns normalizes every column name via CleanName. When two raw
// names collapse to the same cleaned name the first occurrence wins: later
// duplicates are dropped wholesale, cells included. Rows are rebuilt over
// the surviving columns so a duplicate can never claim the cleaned slot.
func (t *Table) CleanColumns() {
	type mapping struct{ raw, clean string }
	seen := make(map[string]bool, len(t.Columns))
	keep := make([]mapping, 0, len(t.Columns))
	for _, c := range t.Columns {
		nc := CleanName(c)
		if seen[nc] {
			continue
		}
		seen[nc] = true
		keep = append(keep, mapping{raw: c, clean: nc})
	}

	for i, r := range t.Rows {
		nr := make(Row, len(keep))
		for _, m := range keep {
			if v, ok := r[m.raw]; ok {
				nr[m.clean] = v
			}
		}
		t.Rows[i] = nr
	}

	cols := make([]string, len(keep))
	for i, m := range keep {
		cols[i] = m.clean
	}
	t.Columns = cols
}

// DropEmptyRows removes rows where every cell is missing.
func (t *Table) DropEmptyRows() {
	kept := t.Rows[:0]
	for _, r := range t.Rows {
		empty := true
		for _, c := range t.Columns {
			if !r.Get(c).IsMissing() {
				empty = false
				break
			}
		}
		if !empty {
			kept = append(kept, r)
		}
	}
	t.Rows = kept
}

// DropEmptyColumns removes columns with no non-missing value in any row.
func (t *Table) DropEmptyColumns() {
	kept := t.Columns[:0]
	for _, c := range t.Columns {
		empty := true
		for _, r := range t.Rows {
			if !r.Get(c).IsMissing() {
				empty = false
				break
			}
		}
		if !empty {
			kept = append(kept, c)
		} else {
			for _, r := range t.Rows {
				delete(r, c)
			}
		}
	}
	t.Columns = kept
}

// CoerceNumeric converts a text column to numbers when every non-missing
// value parses as one. A single non-numeric cell keeps the column textual.
func (t *Table) CoerceNumeric() {
	for _, c := range t.Columns {
		numeric := false
		ok := true
		for _, r := range t.Rows {
			v := r.Get(c)
			if v.IsMissing() {
				continue
			}
			if _, parses := asNumber(v); !parses {
				ok = false
				break
			}
			numeric = true
		}
		if !ok || !numeric {
			continue
		}
		for _, r := range t.Rows {
			v := r.Get(c)
			if v.IsMissing() {
				continue
			}
			f, _ := asNumber(v)
			r.Set(c, Num(f))
		}
	}
}

// column collects the non-missing numeric values of one column.
func (t *Table) column(col string) []float64 {
	out := make([]float64, 0, len(t.Rows))
	for _, r := range t.Rows {
		if f, ok := r.Get(col).Float(); ok {
			out = append(out, f)
		}
	}
	return out
}

// Median returns the median of a column's non-missing numeric values.
// The second result is false when the column holds no numbers at all.
func (t *Table) Median(col string) (float64, bool) {
	vals := t.column(col)
	if len(vals) == 0 {
		return 0, false
	}
	m, err := stats.Median(vals)
	if err != nil {
		return 0, false
	}
	return m, true
}

func (t *Table) Mean(col string) (float64, bool) {
	vals := t.column(col)
	if len(vals) == 0 {
		return 0, false
	}
	m, err := stats.Mean(vals)
	if err != nil {
		return 0, false
	}
	return m, true
}

func (t *Table) StdDev(col string) (float64, bool) {
	vals := t.column(col)
	if len(vals) == 0 {
		return 0, false
	}
	s, err := stats.StandardDeviation(vals)
	if err != nil {
		return 0, false
	}
	return s, true
}

// MissingCells counts empty cells over the registered columns.
func (t *Table) MissingCells() int {
	n := 0
	for _, r := range t.Rows {
		for _, c := range t.Columns {
			if r.Get(c).IsMissing() {
				n++
			}
		}
	}
	return n
}

// NumericColumns reports how many columns carry at least one number.
func (t *Table) NumericColumns() int {
	n := 0
	for _, c := range t.Columns {
		for _, r := range t.Rows {
			if _, ok := r.Get(c).Float(); ok {
				n++
				break
			}
		}
	}
	return n
}

// Concat stacks two tables over the union of their columns. Rows keep their
// source order, a's rows first; no identity-based merging happens here.
func Concat(a, b *Table) *Table {
	out := New(a.Columns...)
	for _, c := range b.Columns {
		out.AddColumn(c)
	}
	for _, r := range a.Rows {
		out.Append(copyRow(r))
	}
	for _, r := range b.Rows {
		out.Append(copyRow(r))
	}
	return out
}

func copyRow(r Row) Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
