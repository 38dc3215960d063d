package aggregate

// Legacy single-column field aliases, used only when column detection finds
// nothing under either basis. Earlier survey years shipped pre-computed
// per-facility values under these names.
var (
	LegacyRaceFields = map[string][]string{
		"white":   {"race_white", "White"},
		"black":   {"race_black", "Black", "Black/African American"},
		"native":  {"race_native_american", "AI/AN", "American Indian"},
		"asian":   {"race_asian", "Asian"},
		"pacific": {"race_pacific_islander", "NH/PI"},
		"unknown": {"race_unknown", "Unknown"},
	}

	LegacyEthnicityFields = map[string][]string{
		"hispanic":    {"ethnicity_hispanic", "Hispanic/Latino"},
		"nonHispanic": {"ethnicity_non_hispanic", "Not Hispanic/Latino"},
		"ethUnknown":  {"ethnicity_unknown", "Unknown Ethnicity"},
	}
)

// WeightOf returns the row's aggregation weight: admissions when reported,
// else patient days, else nil (the row participates unweighted).
func WeightOf(row Row) *float64 {
	if w := PickNumber(row, "ms_admissions", "MS Total Admissions"); w != nil {
		return w
	}
	return PickNumber(row, "ms_patient_days", "MS Total PD")
}

// WeightedMean computes the weight-averaged value of pick across rows.
// Rows without a value are skipped entirely; rows with a value but no weight
// fall back to an unweighted arithmetic mean when no row carried a weight.
// Returns nil when no row has a value.
func WeightedMean(rows []Row, pick func(Row) *float64) *float64 {
	var num, den, sum float64
	var count int
	for _, r := range rows {
		v := pick(r)
		if v == nil {
			continue
		}
		if w := WeightOf(r); w != nil {
			num += *v * *w
			den += *w
		}
		count++
		sum += *v
	}
	if den > 0 {
		m := num / den
		return &m
	}
	if count > 0 {
		m := sum / float64(count)
		return &m
	}
	return nil
}
