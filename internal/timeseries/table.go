// Package timeseries reconstructs daily series out of monthly aggregate
// counts. Everything here is pure: tables go in, new tables come out.
package timeseries

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrNotMonthly    = errors.New("timeseries: dates are not increasing first-of-month dates")
	ErrMonthGap      = errors.New("timeseries: months are not contiguous")
	ErrInvalidWindow = errors.New("timeseries: window must be at least one day")
	ErrShape         = errors.New("timeseries: malformed table")
)

// Missing is the value of a cell with no data.
func Missing() float64 {
	return math.NaN()
}

func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Column is one category's observations, aligned to Table.Dates.
type Column struct {
	Name   string
	Values []float64
}

// Table is a set of named columns over a shared ordered sequence of dates.
// Columns keep the order they were added in.
type Table struct {
	Dates   []time.Time
	Columns []Column
}

func NewTable(dates []time.Time) Table {
	return Table{Dates: dates}
}

func (t Table) Len() int {
	return len(t.Dates)
}

func (t Table) Categories() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

func (t Table) columnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Column returns the column with the given name.
func (t Table) Column(name string) (Column, bool) {
	idx := t.columnIndex(name)
	if idx < 0 {
		return Column{}, false
	}
	return t.Columns[idx], true
}

// AddColumn appends a column, `values` must be as long as the table.
func (t *Table) AddColumn(name string, values []float64) error {
	if len(values) != len(t.Dates) {
		return fmt.Errorf(
			"%w: column %q has %d values for %d dates",
			ErrShape, name, len(values), len(t.Dates),
		)
	}
	if t.columnIndex(name) >= 0 {
		return fmt.Errorf("%w: duplicate column %q", ErrShape, name)
	}
	t.Columns = append(t.Columns, Column{Name: name, Values: values})
	return nil
}

// Clone returns a deep copy.
func (t Table) Clone() Table {
	out := Table{
		Dates:   append([]time.Time(nil), t.Dates...),
		Columns: make([]Column, len(t.Columns)),
	}
	for i, c := range t.Columns {
		out.Columns[i] = Column{
			Name:   c.Name,
			Values: append([]float64(nil), c.Values...),
		}
	}
	return out
}

// Validate checks that dates are strictly increasing and that every column
// is as long as the table.
func (t Table) Validate() error {
	for i := 1; i < len(t.Dates); i++ {
		if !t.Dates[i].After(t.Dates[i-1]) {
			return fmt.Errorf("%w: date %d is not after date %d", ErrShape, i, i-1)
		}
	}
	seen := map[string]bool{}
	for _, c := range t.Columns {
		if len(c.Values) != len(t.Dates) {
			return fmt.Errorf(
				"%w: column %q has %d values for %d dates",
				ErrShape, c.Name, len(c.Values), len(t.Dates),
			)
		}
		if seen[c.Name] {
			return fmt.Errorf("%w: duplicate column %q", ErrShape, c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}

// ValidateMonthly checks the MonthlyCount shape: first-of-month dates, one
// per month, strictly increasing, no gaps.
func ValidateMonthly(t Table) error {
	err := t.Validate()
	if err != nil {
		return err
	}
	for i, d := range t.Dates {
		if d.Day() != 1 || d.Hour() != 0 || d.Minute() != 0 || d.Second() != 0 || d.Nanosecond() != 0 {
			return fmt.Errorf("%w: %s", ErrNotMonthly, d.Format(time.DateTime))
		}
		if i == 0 {
			continue
		}
		expected := t.Dates[i-1].AddDate(0, 1, 0)
		if !d.Equal(expected) {
			return fmt.Errorf(
				"%w: expected %s after %s, got %s",
				ErrMonthGap,
				expected.Format(time.DateOnly),
				t.Dates[i-1].Format(time.DateOnly),
				d.Format(time.DateOnly),
			)
		}
	}
	return nil
}

func missingColumn(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = Missing()
	}
	return values
}
