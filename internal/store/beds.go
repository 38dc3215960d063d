package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/kentontilford/hfsrb-final/internal/model"
	embedsql "github.com/kentontilford/hfsrb-final/internal/sql"
)

// ErrFutureEffectiveDate rejects bed entries dated past today.
var ErrFutureEffectiveDate = fmt.Errorf("effective date cannot be in the future")

// AddBedEntry appends one authorized-bed record. The inventory is an
// append-only log: corrections are new entries, never updates.
func (s *Store) AddBedEntry(ctx context.Context, e *model.BedEntry) error {
	// Compare on dates, not instants: an entry effective today is valid
	// regardless of time zone offsets within the day.
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if e.EffectiveDate.UTC().Truncate(24 * time.Hour).After(today) {
		return ErrFutureEffectiveDate
	}
	_, err := s.pool.Exec(ctx, embedsql.InsertBedEntry,
		e.FacilityID, e.BedType, e.AuthorizedBeds, e.EffectiveDate)
	if err != nil {
		return fmt.Errorf("add bed entry %s/%s: %w", e.FacilityID, e.BedType, err)
	}
	return nil
}

// LatestBeds returns the most recent entry per bed type for a facility,
// most recent by effective date then by submission time.
func (s *Store) LatestBeds(ctx context.Context, facilityID string) ([]model.BedEntry, error) {
	rows, err := s.pool.Query(ctx, embedsql.LatestBeds, facilityID)
	if err != nil {
		return nil, fmt.Errorf("latest beds %s: %w", facilityID, err)
	}
	defer rows.Close()
	return scanBedEntries(rows)
}

// BedHistory returns the full inventory log for a facility, optionally
// narrowed to one bed type, ordered by effective date then submission time
// descending.
func (s *Store) BedHistory(ctx context.Context, facilityID, bedType string) ([]model.BedEntry, error) {
	b := sq.Select("facility_id", "bed_type", "authorized_beds", "effective_date", "entered_at").
		From("bed_inventory").
		Where(sq.Eq{"facility_id": facilityID}).
		OrderBy("bed_type", "effective_date DESC", "entered_at DESC").
		PlaceholderFormat(sq.Dollar)
	if bedType != "" {
		b = b.Where(sq.Eq{"bed_type": bedType})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build bed history query: %w", err)
	}
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("bed history %s: %w", facilityID, err)
	}
	defer rows.Close()
	return scanBedEntries(rows)
}

type bedRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanBedEntries(rows bedRows) ([]model.BedEntry, error) {
	var out []model.BedEntry
	for rows.Next() {
		var e model.BedEntry
		if err := rows.Scan(&e.FacilityID, &e.BedType, &e.AuthorizedBeds, &e.EffectiveDate, &e.EnteredAt); err != nil {
			return nil, fmt.Errorf("scan bed entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
