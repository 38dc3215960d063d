package detect

import (
	"reflect"
	"testing"
)

func TestDetect_RaceColumns(t *testing.T) {
	cols := []string{
		"ID #",
		"White Inpatient Admissions",
		"Black/African American Inpatient Admissions",
		"White Inpatient Days",
		"Asian Patient Days",
		"MS Total Admissions",
	}
	d := Detect(cols, RaceRules())

	adm := d.ByBasis[Admissions]
	if got := adm["white"]; !reflect.DeepEqual(got, []string{"White Inpatient Admissions"}) {
		t.Errorf("white admissions = %v", got)
	}
	if got := adm["black"]; !reflect.DeepEqual(got, []string{"Black/African American Inpatient Admissions"}) {
		t.Errorf("black admissions = %v", got)
	}
	pd := d.ByBasis[PatientDays]
	if got := pd["white"]; !reflect.DeepEqual(got, []string{"White Inpatient Days"}) {
		t.Errorf("white patient days = %v", got)
	}
	if got := pd["asian"]; !reflect.DeepEqual(got, []string{"Asian Patient Days"}) {
		t.Errorf("asian patient days = %v", got)
	}
}

func TestDetect_BasisPreference(t *testing.T) {
	cols := []string{"race_white_admissions", "race_white_patient_days"}
	d := Detect(cols, RaceRules())

	basis, byCat := d.Preferred()
	if basis != Admissions {
		t.Fatalf("preferred basis = %s, want admissions", basis)
	}
	if got := byCat["white"]; !reflect.DeepEqual(got, []string{"race_white_admissions"}) {
		t.Errorf("preferred white columns = %v", got)
	}
}

func TestDetect_PatientDaysWhenNoAdmissions(t *testing.T) {
	cols := []string{"White Inpatient Days", "Black Inpatient Days"}
	d := Detect(cols, RaceRules())

	basis, byCat := d.Preferred()
	if basis != PatientDays {
		t.Fatalf("preferred basis = %s, want patient_days", basis)
	}
	if len(byCat["white"]) != 1 || len(byCat["black"]) != 1 {
		t.Errorf("patient-days mapping = %v", byCat)
	}
}

func TestDetect_NothingMatches(t *testing.T) {
	d := Detect([]string{"ID #", "Hospital Name", "County"}, RaceRules())
	if d.HasAny() {
		t.Fatal("HasAny = true for non-demographic columns")
	}
	_, byCat := d.Preferred()
	for cat, cols := range byCat {
		if len(cols) != 0 {
			t.Errorf("category %s unexpectedly matched %v", cat, cols)
		}
	}
}

func TestDetect_PayerRequiresQualifier(t *testing.T) {
	cols := []string{
		"Payer Medicare Admissions",
		"Medicare Admissions", // no payer token, must not match
		"Payor Medicaid Patient Days",
	}
	d := Detect(cols, PayerRules())

	adm := d.ByBasis[Admissions]
	if got := adm["medicare"]; !reflect.DeepEqual(got, []string{"Payer Medicare Admissions"}) {
		t.Errorf("medicare admissions = %v", got)
	}
	pd := d.ByBasis[PatientDays]
	if got := pd["medicaid"]; !reflect.DeepEqual(got, []string{"Payor Medicaid Patient Days"}) {
		t.Errorf("medicaid patient days = %v", got)
	}
}

// A column containing tokens from two categories lands in both. This mirrors
// the source headers, where "Other Public Payer Admissions" matches both the
// otherPublic tokens and the unknown/other tokens of the race table. The
// assignment is deliberate, not resolved.
func TestDetect_AmbiguousColumnMatchesMultipleCategories(t *testing.T) {
	cols := []string{"Other Public Payer Admissions"}

	p := Detect(cols, PayerRules())
	adm := p.ByBasis[Admissions]
	if len(adm["otherPublic"]) != 1 {
		t.Errorf("otherPublic = %v", adm["otherPublic"])
	}

	r := Detect(cols, RaceRules())
	// "other" token in the race unknown bucket also claims the column.
	if len(r.ByBasis[Admissions]["unknown"]) != 1 {
		t.Errorf("race unknown = %v", r.ByBasis[Admissions]["unknown"])
	}
}

func TestDetect_PreservesColumnOrderAndDedupes(t *testing.T) {
	cols := []string{
		"White Admissions A",
		"White Admissions B",
		"White Admissions A", // duplicate, first position wins
	}
	d := Detect(cols, RaceRules())
	got := d.ByBasis[Admissions]["white"]
	want := []string{"White Admissions A", "White Admissions B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("white admissions = %v, want %v", got, want)
	}
}
