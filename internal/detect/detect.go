// Package detect classifies raw survey spreadsheet columns into demographic
// and payer categories by substring matching. Header names drift across
// survey years, so classification is heuristic and configuration-driven: a
// keyword table per category plus a regular expression per measurement basis.
package detect

import "strings"

// Detection is the batch-scoped result of classifying one column set under
// one rule set. It is derived once per batch from the union of column names
// and never persisted.
type Detection struct {
	Rules   RuleSet
	ByBasis map[Basis]map[string][]string
}

// Detect classifies columnNames under rs. For every basis and category it
// returns the matching column names in their original order. A column
// matches when its lowercased name contains any of the category's tokens,
// matches the basis pattern, and (when the rule set has one) matches the
// qualifier. Duplicate input names are considered once, at first position.
func Detect(columnNames []string, rs RuleSet) *Detection {
	cols := dedupe(columnNames)

	d := &Detection{
		Rules:   rs,
		ByBasis: make(map[Basis]map[string][]string, len(rs.Bases)),
	}
	for basis, pattern := range rs.Bases {
		byCat := make(map[string][]string, len(rs.Categories))
		for _, cat := range rs.Categories {
			var matched []string
			for _, col := range cols {
				if !containsAny(col, cat.Tokens) {
					continue
				}
				if !pattern.MatchString(col) {
					continue
				}
				if rs.Qualifier != nil && !rs.Qualifier.MatchString(col) {
					continue
				}
				matched = append(matched, col)
			}
			byCat[cat.Name] = matched
		}
		d.ByBasis[basis] = byCat
	}
	return d
}

// Preferred returns the category→columns mapping for the preferred basis:
// admissions whenever any admissions-basis column matched for any category,
// otherwise patient-days.
func (d *Detection) Preferred() (Basis, map[string][]string) {
	for _, basis := range AllBases {
		if anyMatch(d.ByBasis[basis]) {
			return basis, d.ByBasis[basis]
		}
	}
	// Nothing matched anywhere; hand back the last basis so callers see the
	// (empty) category keys rather than a nil map.
	last := AllBases[len(AllBases)-1]
	return last, d.ByBasis[last]
}

// HasAny reports whether any column matched under any basis. When false the
// aggregator falls back to legacy single-column field lookups.
func (d *Detection) HasAny() bool {
	for _, byCat := range d.ByBasis {
		if anyMatch(byCat) {
			return true
		}
	}
	return false
}

func anyMatch(byCat map[string][]string) bool {
	for _, cols := range byCat {
		if len(cols) > 0 {
			return true
		}
	}
	return false
}

func containsAny(col string, tokens []string) bool {
	lower := strings.ToLower(col)
	for _, t := range tokens {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

func dedupe(cols []string) []string {
	seen := make(map[string]struct{}, len(cols))
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
