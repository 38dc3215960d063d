package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CleanNumber coerces a raw survey cell value into a float64, or nil when
// the cell carries no usable number. Nil is never conflated with zero: a
// blank, null, or unparseable cell means "not reported", while "0" means a
// reported zero. Thousands separators are stripped before parsing.
func CleanNumber(v any) *float64 {
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		return finite(x)
	case float32:
		return finite(float64(x))
	case int:
		return finite(float64(x))
	case int64:
		return finite(float64(x))
	case json.Number:
		return parseNumber(x.String())
	case string:
		return parseNumber(x)
	default:
		return nil
	}
}

// CleanInt is CleanNumber truncated to int64, for bed and admission counts.
func CleanInt(v any) *int64 {
	f := CleanNumber(v)
	if f == nil {
		return nil
	}
	n := int64(math.Round(*f))
	return &n
}

// CleanString trims the value and returns nil when nothing remains.
func CleanString(v any) *string {
	s, ok := v.(string)
	if !ok {
		if v == nil {
			return nil
		}
		// Spreadsheet exports sometimes carry numeric cells where text is
		// expected (ZIP codes, region codes).
		if f := CleanNumber(v); f != nil {
			out := strconv.FormatFloat(*f, 'f', -1, 64)
			return &out
		}
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func parseNumber(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return finite(f)
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
