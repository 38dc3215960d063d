// Package aggregate computes per-facility shares and per-region weighted
// aggregates from raw survey rows, using a column detection produced once per
// batch. Group proportions are computed from count totals, so facility size
// weighting falls out naturally instead of averaging row-level shares.
package aggregate

import (
	"strings"

	"github.com/kentontilford/hfsrb-final/internal/normalize"
)

// Row is one raw survey record: spreadsheet or JSON keys to uncleaned values.
type Row map[string]any

// PickNumber resolves the first alias that yields a usable number. For each
// alias it also probes the spelling variants seen across survey years:
// upper-cased, spaces as underscores, and squashed lower-case.
func PickNumber(row Row, aliases ...string) *float64 {
	for _, name := range aliases {
		for _, key := range keyVariants(name) {
			if v, ok := row[key]; ok {
				if n := normalize.CleanNumber(v); n != nil {
					return n
				}
			}
		}
	}
	return nil
}

// PickInt is PickNumber for count fields, rounded to int64.
func PickInt(row Row, aliases ...string) *int64 {
	for _, name := range aliases {
		for _, key := range keyVariants(name) {
			if v, ok := row[key]; ok {
				if n := normalize.CleanInt(v); n != nil {
					return n
				}
			}
		}
	}
	return nil
}

// PickString resolves the first alias that yields a non-empty string.
func PickString(row Row, aliases ...string) *string {
	for _, name := range aliases {
		for _, key := range keyVariants(name) {
			if v, ok := row[key]; ok {
				if s := normalize.CleanString(v); s != nil {
					return s
				}
			}
		}
	}
	return nil
}

func keyVariants(name string) []string {
	return []string{
		name,
		strings.ToUpper(name),
		strings.ReplaceAll(name, " ", "_"),
		strings.ToLower(strings.ReplaceAll(name, " ", "")),
	}
}

// SumRow totals the row's values across cols, skipping absent keys and
// unparseable cells.
func SumRow(row Row, cols []string) float64 {
	var s float64
	for _, c := range cols {
		v, ok := row[c]
		if !ok {
			continue
		}
		if n := normalize.CleanNumber(v); n != nil {
			s += *n
		}
	}
	return s
}

// SumField totals one named field across rows, trying the upper-cased header
// variant as well. Used for capacity and utilization rollups.
func SumField(rows []Row, key string) float64 {
	var s float64
	for _, r := range rows {
		if n := PickNumber(r, key); n != nil {
			s += *n
		}
	}
	return s
}
