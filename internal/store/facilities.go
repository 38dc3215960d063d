package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/kentontilford/hfsrb-final/internal/model"
	"github.com/kentontilford/hfsrb-final/internal/normalize"
	embedsql "github.com/kentontilford/hfsrb-final/internal/sql"
)

// UpsertFacility creates or fully refreshes a facility row keyed by its
// state-assigned identifier. Coordinates are not touched here; they are
// populated asynchronously by the geocoder.
func (s *Store) UpsertFacility(ctx context.Context, f *model.Facility) error {
	var addr []byte
	if f.Address != nil {
		var err error
		addr, err = json.Marshal(f.Address)
		if err != nil {
			return fmt.Errorf("marshal address: %w", err)
		}
	}
	nameNorm := f.NameNorm
	if nameNorm == nil {
		nameNorm = normalize.NormalizeName(f.Name)
	}
	_, err := s.pool.Exec(ctx, embedsql.UpsertFacility,
		f.ID, string(f.Type), f.Name, nameNorm, f.County, f.HSA, f.HPA, addr)
	if err != nil {
		return fmt.Errorf("upsert facility %s: %w", f.ID, err)
	}
	return nil
}

// GetFacility returns the facility row for id, or nil when absent.
func (s *Store) GetFacility(ctx context.Context, id string) (*model.Facility, error) {
	var (
		f        model.Facility
		typeStr  string
		addrJSON []byte
	)
	err := s.pool.QueryRow(ctx, embedsql.GetFacility, id).Scan(
		&f.ID, &typeStr, &f.Name, &f.County, &f.HSA, &f.HPA, &addrJSON, &f.Lat, &f.Lng, &f.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get facility %s: %w", id, err)
	}
	f.Type = model.FacilityType(typeStr)
	if len(addrJSON) > 0 {
		var a model.Address
		if err := json.Unmarshal(addrJSON, &a); err == nil {
			f.Address = &a
		}
	}
	return &f, nil
}

// FacilityFilter narrows ListFacilities. Zero-value fields are ignored.
type FacilityFilter struct {
	Type string
	HSA  string
	HPA  string
	Name string // substring match against the normalized name
}

// ListFacilities returns active facilities matching the filter, by name.
func (s *Store) ListFacilities(ctx context.Context, filter FacilityFilter) ([]model.Facility, error) {
	b := sq.Select("id", "type", "name", "county", "hsa", "hpa", "lat", "lng").
		From("facility").
		Where(sq.Eq{"active": true}).
		OrderBy("name").
		PlaceholderFormat(sq.Dollar)

	if filter.Type != "" {
		b = b.Where(sq.Eq{"type": filter.Type})
	}
	if filter.HSA != "" {
		b = b.Where(sq.Eq{"hsa": filter.HSA})
	}
	if filter.HPA != "" {
		b = b.Where(sq.Eq{"hpa": filter.HPA})
	}
	if filter.Name != "" {
		if norm := normalize.NormalizeName(filter.Name); norm != nil {
			b = b.Where(sq.Like{"name_norm": "%" + *norm + "%"})
		}
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build facility query: %w", err)
	}
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list facilities: %w", err)
	}
	defer rows.Close()

	var out []model.Facility
	for rows.Next() {
		var (
			f       model.Facility
			typeStr string
		)
		if err := rows.Scan(&f.ID, &typeStr, &f.Name, &f.County, &f.HSA, &f.HPA, &f.Lat, &f.Lng); err != nil {
			return nil, fmt.Errorf("scan facility: %w", err)
		}
		f.Type = model.FacilityType(typeStr)
		f.Active = true
		out = append(out, f)
	}
	return out, rows.Err()
}

// UngeocodedFacility is a facility still missing coordinates.
type UngeocodedFacility struct {
	ID      string
	Name    string
	County  *string
	Address *model.Address
}

// FacilitiesMissingGeo returns up to limit active facilities without
// coordinates, in id order.
func (s *Store) FacilitiesMissingGeo(ctx context.Context, limit int) ([]UngeocodedFacility, error) {
	rows, err := s.pool.Query(ctx, embedsql.FacilitiesMissingGeo, limit)
	if err != nil {
		return nil, fmt.Errorf("facilities missing geo: %w", err)
	}
	defer rows.Close()

	var out []UngeocodedFacility
	for rows.Next() {
		var (
			f        UngeocodedFacility
			addrJSON []byte
		)
		if err := rows.Scan(&f.ID, &f.Name, &f.County, &addrJSON); err != nil {
			return nil, fmt.Errorf("scan ungeocoded facility: %w", err)
		}
		if len(addrJSON) > 0 {
			var a model.Address
			if err := json.Unmarshal(addrJSON, &a); err == nil {
				f.Address = &a
			}
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// SetFacilityGeo stores resolved coordinates for a facility.
func (s *Store) SetFacilityGeo(ctx context.Context, id string, lat, lng float64) error {
	_, err := s.pool.Exec(ctx, embedsql.UpdateFacilityGeo, id, lat, lng)
	if err != nil {
		return fmt.Errorf("set facility geo %s: %w", id, err)
	}
	return nil
}
