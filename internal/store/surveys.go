package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kentontilford/hfsrb-final/internal/model"
	embedsql "github.com/kentontilford/hfsrb-final/internal/sql"
)

// UpsertHospitalSurvey fully replaces the (facility, year) hospital profile.
func (s *Store) UpsertHospitalSurvey(ctx context.Context, r *model.HospitalSurvey) error {
	_, err := s.pool.Exec(ctx, embedsql.UpsertHospitalSurvey,
		r.FacilityID, r.Year, r.HospitalType,
		r.MSCon, r.ICUCon, r.PedCon, r.ObgynCon, r.LTCCon,
		r.MSAdmissions, r.MSPatientDays, r.MSObservationDays,
		r.RaceWhite, r.RaceBlack, r.RaceNativeAmerican, r.RaceAsian, r.RacePacificIslander, r.RaceUnknown,
		r.EthnicityHispanic, r.EthnicityNonHispanic, r.EthnicityUnknown,
		r.PayerMedicare, r.PayerMedicaid, r.PayerPrivate, r.PayerOtherPublic, r.PayerPrivatePay, r.PayerCharity,
	)
	if err != nil {
		return fmt.Errorf("upsert hospital survey %s/%d: %w", r.FacilityID, r.Year, err)
	}
	return nil
}

// UpsertESRDSurvey fully replaces the (facility, year) dialysis survey.
func (s *Store) UpsertESRDSurvey(ctx context.Context, r *model.ESRDSurvey) error {
	_, err := s.pool.Exec(ctx, embedsql.UpsertESRDSurvey,
		r.FacilityID, r.Year, r.Stations, r.Shifts, r.PatientsTotal, r.IncenterTreatments, r.FTETotal,
		r.PayerMedicare, r.PayerMedicaid, r.PayerPrivate, r.RevenueTotal,
		r.RaceWhite, r.RaceBlack, r.RaceAsian, r.EthHispanic,
	)
	if err != nil {
		return fmt.Errorf("upsert esrd survey %s/%d: %w", r.FacilityID, r.Year, err)
	}
	return nil
}

// UpsertASTCSurvey fully replaces the (facility, year) surgical center survey.
func (s *Store) UpsertASTCSurvey(ctx context.Context, r *model.ASTCSurvey) error {
	_, err := s.pool.Exec(ctx, embedsql.UpsertASTCSurvey,
		r.FacilityID, r.Year, r.TreatmentRooms, r.SurgicalCases, r.PatientsTotal,
		r.PayerMedicare, r.PayerMedicaid, r.PayerPrivate, r.RevenueTotal,
	)
	if err != nil {
		return fmt.Errorf("upsert astc survey %s/%d: %w", r.FacilityID, r.Year, err)
	}
	return nil
}

// UpsertLTCSurvey fully replaces the (facility, year) long-term care survey.
func (s *Store) UpsertLTCSurvey(ctx context.Context, r *model.LTCSurvey) error {
	_, err := s.pool.Exec(ctx, embedsql.UpsertLTCSurvey,
		r.FacilityID, r.Year, r.LicensedBeds, r.ResidentsTotal, r.PatientDays, r.Admissions,
		r.PayerMedicare, r.PayerMedicaid, r.PayerPrivate,
	)
	if err != nil {
		return fmt.Errorf("upsert ltc survey %s/%d: %w", r.FacilityID, r.Year, err)
	}
	return nil
}

// LatestHospitalSurvey returns the most recent hospital profile for a
// facility, or nil when none exists.
func (s *Store) LatestHospitalSurvey(ctx context.Context, facilityID string) (*model.HospitalSurvey, error) {
	var r model.HospitalSurvey
	err := s.pool.QueryRow(ctx, embedsql.GetHospitalSurveyLatest, facilityID).Scan(
		&r.FacilityID, &r.Year, &r.HospitalType,
		&r.MSCon, &r.ICUCon, &r.PedCon, &r.ObgynCon, &r.LTCCon,
		&r.MSAdmissions, &r.MSPatientDays, &r.MSObservationDays,
		&r.RaceWhite, &r.RaceBlack, &r.RaceNativeAmerican, &r.RaceAsian, &r.RacePacificIslander, &r.RaceUnknown,
		&r.EthnicityHispanic, &r.EthnicityNonHispanic, &r.EthnicityUnknown,
		&r.PayerMedicare, &r.PayerMedicaid, &r.PayerPrivate, &r.PayerOtherPublic, &r.PayerPrivatePay, &r.PayerCharity,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest hospital survey %s: %w", facilityID, err)
	}
	return &r, nil
}
