// Package export writes loaded facility and region data to Parquet for
// downstream analysis tools that would rather not talk to Postgres.
package export

import (
	"context"
	"fmt"
	"io"

	goparquet "github.com/parquet-go/parquet-go"

	"github.com/kentontilford/hfsrb-final/internal/model"
	"github.com/kentontilford/hfsrb-final/internal/store"
)

// FacilityRow is the Parquet schema for one facility.
type FacilityRow struct {
	ID     string   `parquet:"facility_id"`
	Type   string   `parquet:"type"`
	Name   string   `parquet:"name"`
	County *string  `parquet:"county,optional"`
	HSA    *string  `parquet:"hsa,optional"`
	HPA    *string  `parquet:"hpa,optional"`
	Lat    *float64 `parquet:"lat,optional"`
	Lng    *float64 `parquet:"lng,optional"`
}

// RegionSummaryRow is the Parquet schema for one region-year aggregate.
type RegionSummaryRow struct {
	RegionType string `parquet:"region_type"`
	RegionCode string `parquet:"region_code"`
	Year       int32  `parquet:"year"`

	TotalFacilities int64 `parquet:"total_facilities"`
	CriticalAccess  int64 `parquet:"critical_access"`
	AcuteLTC        int64 `parquet:"acute_ltc"`
	General         int64 `parquet:"general"`
	Psychiatric     int64 `parquet:"psychiatric"`
	Rehabilitation  int64 `parquet:"rehabilitation"`
	Childrens       int64 `parquet:"childrens"`

	MSCon    float64 `parquet:"ms_con"`
	ICUCon   float64 `parquet:"icu_con"`
	PedCon   float64 `parquet:"ped_con"`
	ObgynCon float64 `parquet:"obgyn_con"`
	LTCCon   float64 `parquet:"ltc_con"`

	MSAdmissions      float64 `parquet:"ms_admissions"`
	MSPatientDays     float64 `parquet:"ms_patient_days"`
	MSObservationDays float64 `parquet:"ms_observation_days"`

	RaceWhite           *float64 `parquet:"race_white,optional"`
	RaceBlack           *float64 `parquet:"race_black,optional"`
	RaceNativeAmerican  *float64 `parquet:"race_native_american,optional"`
	RaceAsian           *float64 `parquet:"race_asian,optional"`
	RacePacificIslander *float64 `parquet:"race_pacific_islander,optional"`
	RaceUnknown         *float64 `parquet:"race_unknown,optional"`

	EthnicityHispanic    *float64 `parquet:"ethnicity_hispanic,optional"`
	EthnicityNonHispanic *float64 `parquet:"ethnicity_non_hispanic,optional"`
	EthnicityUnknown     *float64 `parquet:"ethnicity_unknown,optional"`

	PayerMedicare    *float64 `parquet:"payer_medicare,optional"`
	PayerMedicaid    *float64 `parquet:"payer_medicaid,optional"`
	PayerPrivate     *float64 `parquet:"payer_private,optional"`
	PayerOtherPublic *float64 `parquet:"payer_other_public,optional"`
	PayerPrivatePay  *float64 `parquet:"payer_private_pay,optional"`
	PayerCharity     *float64 `parquet:"payer_charity,optional"`
}

// Facilities writes every active facility matching filter as Parquet and
// returns the row count.
func Facilities(ctx context.Context, st *store.Store, w io.Writer, filter store.FacilityFilter) (int, error) {
	facilities, err := st.ListFacilities(ctx, filter)
	if err != nil {
		return 0, err
	}
	rows := make([]FacilityRow, len(facilities))
	for i, f := range facilities {
		rows[i] = FacilityRow{
			ID:     f.ID,
			Type:   string(f.Type),
			Name:   f.Name,
			County: f.County,
			HSA:    f.HSA,
			HPA:    f.HPA,
			Lat:    f.Lat,
			Lng:    f.Lng,
		}
	}
	return writeRows(w, rows)
}

// RegionSummaries writes every region summary for year as Parquet and
// returns the row count.
func RegionSummaries(ctx context.Context, st *store.Store, w io.Writer, year int) (int, error) {
	summaries, err := st.ListRegionSummaries(ctx, year)
	if err != nil {
		return 0, err
	}
	rows := make([]RegionSummaryRow, len(summaries))
	for i := range summaries {
		rows[i] = summaryRow(&summaries[i])
	}
	return writeRows(w, rows)
}

func summaryRow(r *model.RegionSummary) RegionSummaryRow {
	return RegionSummaryRow{
		RegionType: string(r.RegionType),
		RegionCode: r.RegionCode,
		Year:       int32(r.Year),

		TotalFacilities: r.TotalFacilities,
		CriticalAccess:  r.CriticalAccess,
		AcuteLTC:        r.AcuteLTC,
		General:         r.General,
		Psychiatric:     r.Psychiatric,
		Rehabilitation:  r.Rehabilitation,
		Childrens:       r.Childrens,

		MSCon:    r.MSCon,
		ICUCon:   r.ICUCon,
		PedCon:   r.PedCon,
		ObgynCon: r.ObgynCon,
		LTCCon:   r.LTCCon,

		MSAdmissions:      r.MSAdmissions,
		MSPatientDays:     r.MSPatientDays,
		MSObservationDays: r.MSObservationDays,

		RaceWhite:           r.RaceWhite,
		RaceBlack:           r.RaceBlack,
		RaceNativeAmerican:  r.RaceNativeAmerican,
		RaceAsian:           r.RaceAsian,
		RacePacificIslander: r.RacePacificIslander,
		RaceUnknown:         r.RaceUnknown,

		EthnicityHispanic:    r.EthnicityHispanic,
		EthnicityNonHispanic: r.EthnicityNonHispanic,
		EthnicityUnknown:     r.EthnicityUnknown,

		PayerMedicare:    r.PayerMedicare,
		PayerMedicaid:    r.PayerMedicaid,
		PayerPrivate:     r.PayerPrivate,
		PayerOtherPublic: r.PayerOtherPublic,
		PayerPrivatePay:  r.PayerPrivatePay,
		PayerCharity:     r.PayerCharity,
	}
}

func writeRows[T any](w io.Writer, rows []T) (int, error) {
	pw := goparquet.NewGenericWriter[T](w)
	if len(rows) > 0 {
		if _, err := pw.Write(rows); err != nil {
			return 0, fmt.Errorf("write parquet rows: %w", err)
		}
	}
	if err := pw.Close(); err != nil {
		return 0, fmt.Errorf("close parquet writer: %w", err)
	}
	return len(rows), nil
}
