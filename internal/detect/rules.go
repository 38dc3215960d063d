package detect

import "regexp"

// Basis is the measurement denominator a column represents. Columns are only
// comparable for summing within one basis.
type Basis string

const (
	Admissions  Basis = "admissions"
	PatientDays Basis = "patient_days"
)

// AllBases lists the bases in preference order: admissions-basis columns win
// whenever any exist for any category.
var AllBases = []Basis{Admissions, PatientDays}

// DefaultBasisPatterns maps each basis to the pattern a column name must
// match to count for it. Survey workbooks are inconsistent about "Patient
// Days" vs "Inpatient Days", hence the alternation.
func DefaultBasisPatterns() map[Basis]*regexp.Regexp {
	return map[Basis]*regexp.Regexp{
		Admissions:  regexp.MustCompile(`(?i)admissions?`),
		PatientDays: regexp.MustCompile(`(?i)patient\s*days|inpatient\s*days`),
	}
}

// Category is one demographic or payer bucket with the substrings that claim
// a column for it. Token matching is case-insensitive containment.
type Category struct {
	Name   string
	Tokens []string
}

// RuleSet is the configuration for classifying one family of columns.
// Category order is significant: reports iterate it as declared, and a column
// whose name matches several categories' tokens is assigned to every one of
// them, in this order. That ambiguity is inherent to the source headers and
// is surfaced rather than resolved.
type RuleSet struct {
	Name       string
	Categories []Category
	// Qualifier, when set, is ANDed with the basis pattern. Payer columns
	// require a payer/payor token so "Medicare Admissions" under a staffing
	// section is not claimed.
	Qualifier *regexp.Regexp
	Bases     map[Basis]*regexp.Regexp
}

// CategoryNames returns the category names in declared order.
func (rs RuleSet) CategoryNames() []string {
	names := make([]string, len(rs.Categories))
	for i, c := range rs.Categories {
		names[i] = c.Name
	}
	return names
}

// RaceRules classifies inpatient race-breakdown columns.
func RaceRules() RuleSet {
	return RuleSet{
		Name: "race",
		Categories: []Category{
			{Name: "white", Tokens: []string{"white"}},
			{Name: "black", Tokens: []string{"black", "african"}},
			{Name: "native", Tokens: []string{"american indian", "native", "ai/an", "ai an", "ai_an"}},
			{Name: "asian", Tokens: []string{"asian"}},
			{Name: "pacific", Tokens: []string{"pacific", "hawaiian"}},
			{Name: "unknown", Tokens: []string{"unknown", "other"}},
		},
		Bases: DefaultBasisPatterns(),
	}
}

// EthnicityRules classifies inpatient ethnicity-breakdown columns.
func EthnicityRules() RuleSet {
	return RuleSet{
		Name: "ethnicity",
		Categories: []Category{
			{Name: "hispanic", Tokens: []string{"hispanic"}},
			{Name: "nonHispanic", Tokens: []string{"not hispanic", "non-hispanic", "non hispanic"}},
			{Name: "ethUnknown", Tokens: []string{"unknown"}},
		},
		Bases: DefaultBasisPatterns(),
	}
}

// PayerRules classifies payer-mix columns. Unlike race and ethnicity these
// require an explicit payer/payor token in the column name.
func PayerRules() RuleSet {
	return RuleSet{
		Name: "payer",
		Categories: []Category{
			{Name: "medicare", Tokens: []string{"medicare"}},
			{Name: "medicaid", Tokens: []string{"medicaid"}},
			{Name: "private", Tokens: []string{"private"}},
			{Name: "otherPublic", Tokens: []string{"other public", "other_public", "otherpublic"}},
			{Name: "privatePay", Tokens: []string{"private pay", "self pay", "self-pay"}},
			{Name: "charity", Tokens: []string{"charity"}},
		},
		Qualifier: regexp.MustCompile(`(?i)payer|payor`),
		Bases:     DefaultBasisPatterns(),
	}
}
