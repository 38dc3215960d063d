package load

import (
	"github.com/kentontilford/hfsrb-final/internal/aggregate"
	"github.com/kentontilford/hfsrb-final/internal/model"
)

// Field aliases accumulate as survey years rename headers: the first alias
// is the canonical name, the rest are spellings seen in earlier workbooks and
// JSON exports. Resolution order is declared order (prefer A, else B).
var hospitalFieldAliases = map[string][]string{
	"ms_con":    {"ms_con", "MS-CON", "med_surg_beds_oct1"},
	"icu_con":   {"icu_con", "ICU-CON", "icu_beds_oct1"},
	"ped_con":   {"ped_con", "PED-CON", "peds_beds_oct1"},
	"obgyn_con": {"obgyn_con", "OBGYN-CON", "obgyn_beds_oct1"},
	"ltc_con":   {"ltc_con", "LTC-CON"},

	"ms_admissions":       {"ms_admissions", "MS Total Admissions", "med_surg_admissions"},
	"ms_patient_days":     {"ms_patient_days", "MS Total PD", "med_surg_days_total"},
	"ms_observation_days": {"ms_observation_days", "MS Observation Days", "med_surg_observation_days"},

	"race_white":            {"race_white", "race_inp_white"},
	"race_black":            {"race_black", "race_inp_black"},
	"race_native_american":  {"race_native_american", "race_inp_ai_an"},
	"race_asian":            {"race_asian", "race_inp_asian"},
	"race_pacific_islander": {"race_pacific_islander", "race_inp_nh_pi"},
	"race_unknown":          {"race_unknown", "race_inp_unknown"},

	"ethnicity_hispanic":     {"ethnicity_hispanic", "eth_inp_hispanic"},
	"ethnicity_non_hispanic": {"ethnicity_non_hispanic", "eth_inp_not_hispanic"},
	"ethnicity_unknown":      {"ethnicity_unknown", "eth_inp_unknown"},
}

func hospitalField(row aggregate.Row, name string) *float64 {
	return aggregate.PickNumber(row, hospitalFieldAliases[name]...)
}

func hospitalCount(row aggregate.Row, name string) *int64 {
	return aggregate.PickInt(row, hospitalFieldAliases[name]...)
}

// BuildFacility extracts the identity fields shared by every survey type.
func BuildFacility(row aggregate.Row, ft model.FacilityType) *model.Facility {
	id := aggregate.PickString(row, "facility_id", "ID #")
	name := aggregate.PickString(row, "facility_name", "name", "Hospital Name")
	f := &model.Facility{
		ID:     *id, // ValidateRow guarantees presence
		Type:   ft,
		County: aggregate.PickString(row, "county", "County"),
		HSA:    aggregate.PickString(row, "hsa", "HSA"),
		HPA:    aggregate.PickString(row, "hpa", "HPA"),
		Active: true,
	}
	if name != nil {
		f.Name = *name
	} else {
		f.Name = string(ft)
	}

	street := aggregate.PickString(row, "address_street", "address", "Hospital Address")
	city := aggregate.PickString(row, "address_city", "city", "Hospital City")
	zip := aggregate.PickString(row, "address_zip", "zip", "ZIP")
	if street != nil || city != nil || zip != nil {
		addr := &model.Address{State: "IL"}
		if street != nil {
			addr.Street = *street
		}
		if city != nil {
			addr.City = *city
		}
		if zip != nil {
			addr.Zip = *zip
		}
		f.Address = addr
	}
	return f
}

// BuildHospitalSurvey maps one raw hospital row to its profile record.
// payerShare is the row's detected payer mix, nil when the row reported no
// payer data (the payer columns then stay null, not zero).
func BuildHospitalSurvey(row aggregate.Row, year int, payerShare map[string]float64) *model.HospitalSurvey {
	id := aggregate.PickString(row, "facility_id", "ID #")
	r := &model.HospitalSurvey{
		FacilityID:   *id,
		Year:         year,
		HospitalType: aggregate.PickString(row, "hospital_type", "Hospital Type"),

		MSCon:    hospitalCount(row, "ms_con"),
		ICUCon:   hospitalCount(row, "icu_con"),
		PedCon:   hospitalCount(row, "ped_con"),
		ObgynCon: hospitalCount(row, "obgyn_con"),
		LTCCon:   hospitalCount(row, "ltc_con"),

		MSAdmissions:      hospitalCount(row, "ms_admissions"),
		MSPatientDays:     hospitalCount(row, "ms_patient_days"),
		MSObservationDays: hospitalCount(row, "ms_observation_days"),

		RaceWhite:           hospitalField(row, "race_white"),
		RaceBlack:           hospitalField(row, "race_black"),
		RaceNativeAmerican:  hospitalField(row, "race_native_american"),
		RaceAsian:           hospitalField(row, "race_asian"),
		RacePacificIslander: hospitalField(row, "race_pacific_islander"),
		RaceUnknown:         hospitalField(row, "race_unknown"),

		EthnicityHispanic:    hospitalField(row, "ethnicity_hispanic"),
		EthnicityNonHispanic: hospitalField(row, "ethnicity_non_hispanic"),
		EthnicityUnknown:     hospitalField(row, "ethnicity_unknown"),
	}
	if payerShare != nil {
		r.PayerMedicare = share(payerShare, "medicare")
		r.PayerMedicaid = share(payerShare, "medicaid")
		r.PayerPrivate = share(payerShare, "private")
		r.PayerOtherPublic = share(payerShare, "otherPublic")
		r.PayerPrivatePay = share(payerShare, "privatePay")
		r.PayerCharity = share(payerShare, "charity")
	}
	return r
}

// BuildESRDSurvey maps one raw dialysis row; the seven per-day shift counts
// collapse into a single weekly total, nil when none are reported.
func BuildESRDSurvey(row aggregate.Row, year int) *model.ESRDSurvey {
	id := aggregate.PickString(row, "facility_id", "ID #")

	var shifts *int64
	for _, day := range []string{"shifts_mon", "shifts_tue", "shifts_wed", "shifts_thu", "shifts_fri", "shifts_sat", "shifts_sun"} {
		if n := aggregate.PickInt(row, day); n != nil {
			if shifts == nil {
				shifts = new(int64)
			}
			*shifts += *n
		}
	}

	return &model.ESRDSurvey{
		FacilityID:         *id,
		Year:               year,
		Stations:           aggregate.PickInt(row, "stations_oct_setup_staffed", "stations"),
		Shifts:             shifts,
		PatientsTotal:      aggregate.PickInt(row, "patients_unduplicated", "patients_total"),
		IncenterTreatments: aggregate.PickInt(row, "treatments_incenter", "incenter_treatments"),
		FTETotal:           aggregate.PickNumber(row, "fte_total"),
		PayerMedicare:      aggregate.PickNumber(row, "pat_medicare", "payer_medicare"),
		PayerMedicaid:      aggregate.PickNumber(row, "pat_medicaid", "payer_medicaid"),
		PayerPrivate:       aggregate.PickNumber(row, "pat_private_insurance", "payer_private"),
		RevenueTotal:       aggregate.PickNumber(row, "rev_total", "revenue_total"),
		RaceWhite:          aggregate.PickNumber(row, "race_white"),
		RaceBlack:          aggregate.PickNumber(row, "race_black"),
		RaceAsian:          aggregate.PickNumber(row, "race_asian"),
		EthHispanic:        aggregate.PickNumber(row, "eth_hispanic"),
	}
}

// BuildASTCSurvey maps one raw surgical-center row.
func BuildASTCSurvey(row aggregate.Row, year int) *model.ASTCSurvey {
	id := aggregate.PickString(row, "facility_id", "ID #")
	return &model.ASTCSurvey{
		FacilityID:     *id,
		Year:           year,
		TreatmentRooms: aggregate.PickInt(row, "treatment_rooms", "rooms_total"),
		SurgicalCases:  aggregate.PickInt(row, "surgical_cases", "cases_total"),
		PatientsTotal:  aggregate.PickInt(row, "patients_total", "patients_unduplicated"),
		PayerMedicare:  aggregate.PickNumber(row, "pat_medicare", "payer_medicare"),
		PayerMedicaid:  aggregate.PickNumber(row, "pat_medicaid", "payer_medicaid"),
		PayerPrivate:   aggregate.PickNumber(row, "pat_private_insurance", "payer_private"),
		RevenueTotal:   aggregate.PickNumber(row, "rev_total", "revenue_total"),
	}
}

// BuildLTCSurvey maps one raw long-term-care row.
func BuildLTCSurvey(row aggregate.Row, year int) *model.LTCSurvey {
	id := aggregate.PickString(row, "facility_id", "ID #")
	return &model.LTCSurvey{
		FacilityID:     *id,
		Year:           year,
		LicensedBeds:   aggregate.PickInt(row, "licensed_beds", "beds_licensed"),
		ResidentsTotal: aggregate.PickInt(row, "residents_total", "residents"),
		PatientDays:    aggregate.PickInt(row, "patient_days", "resident_days"),
		Admissions:     aggregate.PickInt(row, "admissions", "admissions_total"),
		PayerMedicare:  aggregate.PickNumber(row, "pat_medicare", "payer_medicare"),
		PayerMedicaid:  aggregate.PickNumber(row, "pat_medicaid", "payer_medicaid"),
		PayerPrivate:   aggregate.PickNumber(row, "pat_private_insurance", "payer_private"),
	}
}

func share(m map[string]float64, cat string) *float64 {
	v, ok := m[cat]
	if !ok {
		return nil
	}
	return &v
}
