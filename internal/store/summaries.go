package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kentontilford/hfsrb-final/internal/model"
	embedsql "github.com/kentontilford/hfsrb-final/internal/sql"
)

// UpsertRegionSummary fully replaces the (region, year) rollup row.
func (s *Store) UpsertRegionSummary(ctx context.Context, r *model.RegionSummary) error {
	_, err := s.pool.Exec(ctx, embedsql.UpsertRegionSummary,
		string(r.RegionType), r.RegionCode, r.Year,
		r.TotalFacilities, r.CriticalAccess, r.AcuteLTC, r.General, r.Psychiatric, r.Rehabilitation, r.Childrens,
		r.MSCon, r.ICUCon, r.PedCon, r.ObgynCon, r.LTCCon,
		r.MSAdmissions, r.MSPatientDays, r.MSObservationDays,
		r.RaceWhite, r.RaceBlack, r.RaceNativeAmerican, r.RaceAsian, r.RacePacificIslander, r.RaceUnknown,
		r.EthnicityHispanic, r.EthnicityNonHispanic, r.EthnicityUnknown,
		r.PayerMedicare, r.PayerMedicaid, r.PayerPrivate, r.PayerOtherPublic, r.PayerPrivatePay, r.PayerCharity,
	)
	if err != nil {
		return fmt.Errorf("upsert %s summary %s/%d: %w", r.RegionType, r.RegionCode, r.Year, err)
	}
	return nil
}

// GetRegionSummary returns one region rollup, or nil when absent.
func (s *Store) GetRegionSummary(ctx context.Context, regionType model.RegionType, code string, year int) (*model.RegionSummary, error) {
	r, err := scanRegionSummary(s.pool.QueryRow(ctx, embedsql.GetRegionSummary, string(regionType), code, year))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s summary %s/%d: %w", regionType, code, year, err)
	}
	return r, nil
}

// ListRegionSummaries returns all rollups for one year, ordered by region
// type then code, for reports and export.
func (s *Store) ListRegionSummaries(ctx context.Context, year int) ([]model.RegionSummary, error) {
	rows, err := s.pool.Query(ctx, embedsql.ListRegionSummaries, year)
	if err != nil {
		return nil, fmt.Errorf("list region summaries: %w", err)
	}
	defer rows.Close()

	var out []model.RegionSummary
	for rows.Next() {
		r, err := scanRegionSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan region summary: %w", err)
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func scanRegionSummary(row pgx.Row) (*model.RegionSummary, error) {
	var (
		r       model.RegionSummary
		typeStr string
	)
	err := row.Scan(
		&typeStr, &r.RegionCode, &r.Year,
		&r.TotalFacilities, &r.CriticalAccess, &r.AcuteLTC, &r.General, &r.Psychiatric, &r.Rehabilitation, &r.Childrens,
		&r.MSCon, &r.ICUCon, &r.PedCon, &r.ObgynCon, &r.LTCCon,
		&r.MSAdmissions, &r.MSPatientDays, &r.MSObservationDays,
		&r.RaceWhite, &r.RaceBlack, &r.RaceNativeAmerican, &r.RaceAsian, &r.RacePacificIslander, &r.RaceUnknown,
		&r.EthnicityHispanic, &r.EthnicityNonHispanic, &r.EthnicityUnknown,
		&r.PayerMedicare, &r.PayerMedicaid, &r.PayerPrivate, &r.PayerOtherPublic, &r.PayerPrivatePay, &r.PayerCharity,
	)
	if err != nil {
		return nil, err
	}
	r.RegionType = model.RegionType(typeStr)
	return &r, nil
}
