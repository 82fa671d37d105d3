package synthdata

import (
	"fmt"
	"time"
)

// Table is the synthetic output: a timestamp column, an elapsed-seconds
// column and one value column per axis, all row-ordered by time. The table
// owns its buffers; injectors mutate the axis columns in place through
// AddLift and nothing else.
type Table struct {
	Time        []time.Time
	TimeNumeric []float64 // seconds elapsed since the first synthetic timestamp

	axes    []string
	columns map[string][]float64
}

// Returns a table over the given time axis with one zeroed column per axis.
// The time columns must be the same length.
func NewTable(times []time.Time, timeNumeric []float64, axes []string) (*Table, error) {
	if len(times) != len(timeNumeric) {
		return nil, fmt.Errorf("time columns differ in length: %d != %d", len(times), len(timeNumeric))
	}

	tbl := &Table{
		Time:        times,
		TimeNumeric: timeNumeric,
		axes:        append([]string(nil), axes...),
		columns:     make(map[string][]float64, len(axes)),
	}
	for _, axis := range axes {
		tbl.columns[axis] = make([]float64, len(times))
	}
	return tbl, nil
}

// NRows returns the number of rows in the table.
func (t *Table) NRows() int {
	return len(t.Time)
}

// Axes returns the axis names in generation order.
func (t *Table) Axes() []string {
	return append([]string(nil), t.axes...)
}

// Column returns the value column for the named axis. The returned slice is
// the table's own buffer.
func (t *Table) Column(axis string) ([]float64, error) {
	col, ok := t.columns[axis]
	if !ok {
		return nil, fmt.Errorf("no column for axis %q", axis)
	}
	return col, nil
}

// setColumn replaces the named axis column. The column must already exist
// and values must match the table length.
func (t *Table) setColumn(axis string, values []float64) error {
	if _, ok := t.columns[axis]; !ok {
		return fmt.Errorf("no column for axis %q", axis)
	}
	if len(values) != t.NRows() {
		return fmt.Errorf("column length %d does not match table length %d", len(values), t.NRows())
	}
	t.columns[axis] = values
	return nil
}

// AddLift adds lift to rows [start, end) of the named axis column.
// Indexing is inclusive of start and exclusive of end.
func (t *Table) AddLift(axis string, start, end int, lift float64) error {
	col, ok := t.columns[axis]
	if !ok {
		return fmt.Errorf("no column for axis %q", axis)
	}
	if start < 0 || end < start || end > len(col) {
		return fmt.Errorf("row range [%d, %d) out of bounds for %d rows", start, end, len(col))
	}

	for i := start; i < end; i++ {
		col[i] += lift
	}
	return nil
}
