package model

// RegionType distinguishes the two administrative region groupings.
type RegionType string

const (
	RegionHSA RegionType = "HSA"
	RegionHPA RegionType = "HPA"
)

// RegionSummary is the aggregate over all facilities sharing a region code
// in a given year. Count fields are true zeros when a region has no matching
// facilities; proportion fields are nil when the category denominator is
// zero or absent, never zero.
type RegionSummary struct {
	RegionType RegionType
	RegionCode string
	Year       int

	TotalFacilities int64
	CriticalAccess  int64
	AcuteLTC        int64
	General         int64
	Psychiatric     int64
	Rehabilitation  int64
	Childrens       int64

	MSCon    float64
	ICUCon   float64
	PedCon   float64
	ObgynCon float64
	LTCCon   float64

	MSAdmissions      float64
	MSPatientDays     float64
	MSObservationDays float64

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
