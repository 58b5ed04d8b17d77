// Package report assembles per-pair metric rows and serializes them to CSV.
package report

import (
	"strconv"

	"github.com/jcreinhold/lesion-metrics/metrics"
)

// Cell is a CSV-serializable metric result. Undefined results render as an
// empty field so downstream spreadsheet tooling sees a blank, not a NaN.
type Cell struct {
	metrics.Result
}

// NewCell wraps a result for serialization.
func NewCell(r metrics.Result) Cell { return Cell{Result: r} }

// Float wraps a plain defined scalar.
func Float(v float64) Cell { return Cell{Result: metrics.Defined(v)} }

// Count wraps an integer lesion count.
func Count(n int) Cell { return Cell{Result: metrics.Defined(float64(n))} }

// MarshalCSV implements the gocsv field marshaller.
func (c Cell) MarshalCSV() (string, error) {
	if !c.IsDefined() {
		return "", nil
	}
	return strconv.FormatFloat(c.Value(), 'g', -1, 64), nil
}

// UnmarshalCSV implements the gocsv field unmarshaller; a blank field reads
// back as undefined.
func (c *Cell) UnmarshalCSV(field string) error {
	if field == "" {
		c.Result = metrics.Undefined
		return nil
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return err
	}
	c.Result = metrics.Defined(v)
	return nil
}
