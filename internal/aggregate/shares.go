package aggregate

import (
	"github.com/kentontilford/hfsrb-final/internal/detect"
)

// RowShare computes one row's category proportions under the detection's
// preferred basis. Returns nil when the grand total across categories is not
// positive — the row reported no usable data for this rule set, which must
// not be conflated with a uniform zero share.
func RowShare(row Row, d *detect.Detection) map[string]float64 {
	_, byCat := d.Preferred()

	sums := make(map[string]float64)
	var grand float64
	for _, cat := range d.Rules.CategoryNames() {
		s := SumRow(row, byCat[cat])
		sums[cat] = s
		grand += s
	}
	if grand <= 0 {
		return nil
	}
	out := make(map[string]float64, len(sums))
	for cat, s := range sums {
		out[cat] = s / grand
	}
	return out
}

// GroupShare computes category proportions for a region group by summing raw
// counts across all rows, then dividing by the category grand total. When
// nothing was reported every category is nil. The denominator is the grand
// total across detected categories, never an externally supplied patient
// total, so partially covered categories still normalize to 1.
func GroupShare(rows []Row, d *detect.Detection) map[string]*float64 {
	_, byCat := d.Preferred()
	cats := d.Rules.CategoryNames()

	totals := make(map[string]float64, len(cats))
	var grand float64
	for _, cat := range cats {
		var s float64
		for _, r := range rows {
			s += SumRow(r, byCat[cat])
		}
		totals[cat] = s
		grand += s
	}

	out := make(map[string]*float64, len(cats))
	if grand <= 0 {
		for _, cat := range cats {
			out[cat] = nil
		}
		return out
	}
	for _, cat := range cats {
		v := totals[cat] / grand
		out[cat] = &v
	}
	return out
}

// CategoryShares is the three-tier resolution chain for a region group:
//
//  1. detected columns under the preferred basis (GroupShare);
//  2. when detection found no columns at all, a weighted mean over legacy
//     single-column fields named in legacyFields (category → alias list);
//  3. nil per category when neither tier has data.
//
// legacyFields may be nil for rule sets with no legacy representation, in
// which case tier 2 is skipped.
func CategoryShares(rows []Row, d *detect.Detection, legacyFields map[string][]string) map[string]*float64 {
	if d.HasAny() {
		return GroupShare(rows, d)
	}

	out := make(map[string]*float64, len(d.Rules.Categories))
	for _, cat := range d.Rules.CategoryNames() {
		aliases := legacyFields[cat]
		if len(aliases) == 0 {
			out[cat] = nil
			continue
		}
		out[cat] = WeightedMean(rows, func(r Row) *float64 {
			return PickNumber(r, aliases...)
		})
	}
	return out
}
