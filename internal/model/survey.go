package model

// HospitalSurvey holds one hospital's annual profile measurements.
// Bed, admission, and day fields are raw counts; race and ethnicity fields
// are raw inpatient counts; payer fields are shares in [0,1] computed from
// detected payer columns at load time. Nil means the survey did not report
// the field, which is distinct from zero.
type HospitalSurvey struct {
	FacilityID   string
	Year         int
	HospitalType *string

	MSCon    *int64
	ICUCon   *int64
	PedCon   *int64
	ObgynCon *int64
	LTCCon   *int64

	MSAdmissions       *int64
	MSPatientDays      *int64
	MSObservationDays  *int64

	RaceWhite           *float64
	RaceBlack           *float64
	RaceNativeAmerican  *float64
	RaceAsian           *float64
	RacePacificIslander *float64
	RaceUnknown         *float64

	EthnicityHispanic    *float64
	EthnicityNonHispanic *float64
	EthnicityUnknown     *float64

	PayerMedicare    *float64
	PayerMedicaid    *float64
	PayerPrivate     *float64
	PayerOtherPublic *float64
	PayerPrivatePay  *float64
	PayerCharity     *float64
}

// ESRDSurvey holds one dialysis facility's annual survey measurements.
// Shifts is the weekly total summed across the seven per-day fields.
type ESRDSurvey struct {
	FacilityID string
	Year       int

	Stations           *int64
	Shifts             *int64
	PatientsTotal      *int64
	IncenterTreatments *int64
	FTETotal           *float64

	PayerMedicare *float64
	PayerMedicaid *float64
	PayerPrivate  *float64
	RevenueTotal  *float64

	RaceWhite    *float64
	RaceBlack    *float64
	RaceAsian    *float64
	EthHispanic  *float64
}

// ASTCSurvey holds one surgical treatment center's annual survey measurements.
type ASTCSurvey struct {
	FacilityID string
	Year       int

	TreatmentRooms *int64
	SurgicalCases  *int64
	PatientsTotal  *int64

	PayerMedicare *float64
	PayerMedicaid *float64
	PayerPrivate  *float64
	RevenueTotal  *float64
}

// LTCSurvey holds one long-term care facility's annual survey measurements.
type LTCSurvey struct {
	FacilityID string
	Year       int

	LicensedBeds   *int64
	ResidentsTotal *int64
	PatientDays    *int64
	Admissions     *int64

	PayerMedicare *float64
	PayerMedicaid *float64
	PayerPrivate  *float64
}
