package aggregate

import (
	"strings"

	"github.com/kentontilford/hfsrb-final/internal/model"
)

// TypeCounts is the facility sub-type breakdown of a region group. Total
// counts every row; ByType buckets are exact case-insensitive matches
// against the vocabulary; Childrens is an independent substring bucket, so a
// "Children's General Hospital" counts under both General and Childrens.
type TypeCounts struct {
	Total     int64
	ByType    map[string]int64
	Childrens int64
}

// CountTypes buckets the group's rows by their raw sub-type string.
func CountTypes(rows []Row, vocabulary []string) TypeCounts {
	tc := TypeCounts{
		Total:  int64(len(rows)),
		ByType: make(map[string]int64, len(vocabulary)),
	}
	for _, v := range vocabulary {
		tc.ByType[v] = 0
	}
	for _, r := range rows {
		raw := PickString(r, "hospital_type", "Hospital Type")
		if raw == nil {
			continue
		}
		t := strings.ToLower(*raw)
		for _, v := range vocabulary {
			if t == strings.ToLower(v) {
				tc.ByType[v]++
			}
		}
		if strings.Contains(t, "children") {
			tc.Childrens++
		}
	}
	return tc
}

// CountHospitalTypes is CountTypes against the fixed hospital vocabulary.
func CountHospitalTypes(rows []Row) TypeCounts {
	return CountTypes(rows, model.HospitalTypeVocabulary)
}
