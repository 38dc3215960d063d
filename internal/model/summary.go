package model

import "time"

// LoadSummary captures metrics from a single batch load run.
type LoadSummary struct {
	RunID        string
	Year         int
	FacilityType FacilityType

	FilesFound int
	OK         int
	Bad        int

	HSASummaries int
	HPASummaries int

	DurationRecords   time.Duration
	DurationSummaries time.Duration
	DurationTotal     time.Duration
}
