package model

import "strings"

// FacilityType identifies which annual survey a facility files.
type FacilityType string

const (
	Hospital FacilityType = "Hospital"
	ESRD     FacilityType = "ESRD"
	ASTC     FacilityType = "ASTC"
	LTC      FacilityType = "LTC"
)

// AllFacilityTypes lists the regulated facility types in canonical order.
var AllFacilityTypes = []FacilityType{Hospital, ESRD, ASTC, LTC}

// ParseFacilityType returns the FacilityType matching name, ignoring case,
// or ok=false.
func ParseFacilityType(name string) (FacilityType, bool) {
	for _, ft := range AllFacilityTypes {
		if strings.EqualFold(string(ft), name) {
			return ft, true
		}
	}
	return "", false
}

// Address is the structured facility address stored as jsonb.
type Address struct {
	Street string `json:"street,omitempty"`
	City   string `json:"city,omitempty"`
	Zip    string `json:"zip,omitempty"`
	State  string `json:"state,omitempty"`
}

// Facility is a regulated care site. ID is the state-assigned identifier,
// stable across survey years and unique across all facility types.
type Facility struct {
	ID       string
	Type     FacilityType
	Name     string
	NameNorm *string
	County   *string
	HSA      *string
	HPA      *string
	Address  *Address
	Lat      *float64
	Lng      *float64
	Active   bool
}

// HospitalTypeVocabulary lists the exact hospital sub-type strings counted
// into dedicated summary buckets. Matching is case-insensitive equality; a
// sub-type string outside this list still counts toward the group total.
var HospitalTypeVocabulary = []string{
	"Critical Access Hospital",
	"Acute LTC Hospital",
	"General Hospital",
	"Psychiatric Hospital",
	"Rehabilitation Hospital",
}
