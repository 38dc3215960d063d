package model

import "time"

// BedEntry is one append-only record of authorized bed counts for a
// facility. History is never overwritten; "latest per type" is the most
// recent by effective date, then by submission time.
type BedEntry struct {
	FacilityID     string
	BedType        string
	AuthorizedBeds int64
	EffectiveDate  time.Time
	EnteredAt      time.Time
}
