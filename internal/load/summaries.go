package load

import (
	"sort"

	"github.com/kentontilford/hfsrb-final/internal/aggregate"
	"github.com/kentontilford/hfsrb-final/internal/detect"
	"github.com/kentontilford/hfsrb-final/internal/model"
)

// Detections holds the per-batch column classifications, computed once over
// the union of every parsed row's keys so a column present in only some files
// still counts for the whole batch.
type Detections struct {
	Race      *detect.Detection
	Ethnicity *detect.Detection
	Payer     *detect.Detection
}

// DetectColumns classifies the batch's column names under the configured
// rule sets.
func DetectColumns(rows []aggregate.Row, race, ethnicity, payer detect.RuleSet) Detections {
	names := columnUnion(rows)
	return Detections{
		Race:      detect.Detect(names, race),
		Ethnicity: detect.Detect(names, ethnicity),
		Payer:     detect.Detect(names, payer),
	}
}

func columnUnion(rows []aggregate.Row) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, r := range rows {
		for k := range r {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

// BuildRegionSummaries partitions hospital rows by HSA and then by HPA and
// aggregates each group. Rows without a region code for a grouping are left
// out of that grouping only. Output is ordered HSA before HPA, codes
// ascending within each.
func BuildRegionSummaries(rows []aggregate.Row, year int, det Detections) []model.RegionSummary {
	var out []model.RegionSummary
	for _, rt := range []struct {
		typ     model.RegionType
		aliases []string
	}{
		{model.RegionHSA, []string{"hsa", "HSA"}},
		{model.RegionHPA, []string{"hpa", "HPA"}},
	} {
		groups := partition(rows, rt.aliases)
		codes := make([]string, 0, len(groups))
		for c := range groups {
			codes = append(codes, c)
		}
		sort.Strings(codes)
		for _, code := range codes {
			out = append(out, buildSummary(rt.typ, code, year, groups[code], det))
		}
	}
	return out
}

func partition(rows []aggregate.Row, aliases []string) map[string][]aggregate.Row {
	groups := make(map[string][]aggregate.Row)
	for _, r := range rows {
		code := aggregate.PickString(r, aliases...)
		if code == nil {
			continue
		}
		groups[*code] = append(groups[*code], r)
	}
	return groups
}

func buildSummary(rt model.RegionType, code string, year int, rows []aggregate.Row, det Detections) model.RegionSummary {
	tc := aggregate.CountHospitalTypes(rows)
	race := aggregate.CategoryShares(rows, det.Race, aggregate.LegacyRaceFields)
	eth := aggregate.CategoryShares(rows, det.Ethnicity, aggregate.LegacyEthnicityFields)
	payer := aggregate.CategoryShares(rows, det.Payer, nil)

	return model.RegionSummary{
		RegionType: rt,
		RegionCode: code,
		Year:       year,

		TotalFacilities: tc.Total,
		CriticalAccess:  tc.ByType["Critical Access Hospital"],
		AcuteLTC:        tc.ByType["Acute LTC Hospital"],
		General:         tc.ByType["General Hospital"],
		Psychiatric:     tc.ByType["Psychiatric Hospital"],
		Rehabilitation:  tc.ByType["Rehabilitation Hospital"],
		Childrens:       tc.Childrens,

		MSCon:    sumAliases(rows, "ms_con"),
		ICUCon:   sumAliases(rows, "icu_con"),
		PedCon:   sumAliases(rows, "ped_con"),
		ObgynCon: sumAliases(rows, "obgyn_con"),
		LTCCon:   sumAliases(rows, "ltc_con"),

		MSAdmissions:      sumAliases(rows, "ms_admissions"),
		MSPatientDays:     sumAliases(rows, "ms_patient_days"),
		MSObservationDays: sumAliases(rows, "ms_observation_days"),

		RaceWhite:           race["white"],
		RaceBlack:           race["black"],
		RaceNativeAmerican:  race["native"],
		RaceAsian:           race["asian"],
		RacePacificIslander: race["pacific"],
		RaceUnknown:         race["unknown"],

		EthnicityHispanic:    eth["hispanic"],
		EthnicityNonHispanic: eth["nonHispanic"],
		EthnicityUnknown:     eth["ethUnknown"],

		PayerMedicare:    payer["medicare"],
		PayerMedicaid:    payer["medicaid"],
		PayerPrivate:     payer["private"],
		PayerOtherPublic: payer["otherPublic"],
		PayerPrivatePay:  payer["privatePay"],
		PayerCharity:     payer["charity"],
	}
}

func sumAliases(rows []aggregate.Row, field string) float64 {
	var s float64
	for _, r := range rows {
		if n := hospitalField(r, field); n != nil {
			s += *n
		}
	}
	return s
}
