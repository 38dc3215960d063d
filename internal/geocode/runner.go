package geocode

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/kentontilford/hfsrb-final/internal/store"
)

// Summary reports one geocoding run.
type Summary struct {
	Candidates int
	Updated    int
	NotFound   int
	Failed     int
}

// Run resolves coordinates for up to limit facilities that are still missing
// them. Failures are per-facility: an unresolvable address is logged and
// skipped, and the run keeps going. A context cancellation stops the run and
// returns what was done so far.
func Run(ctx context.Context, st *store.Store, c *Client, log zerolog.Logger, limit int) (*Summary, error) {
	facilities, err := st.FacilitiesMissingGeo(ctx, limit)
	if err != nil {
		return nil, err
	}

	sum := &Summary{Candidates: len(facilities)}
	for _, f := range facilities {
		if f.Address == nil {
			log.Warn().Str("facility_id", f.ID).Msg("no address on file, skipping")
			sum.Failed++
			continue
		}
		res, err := c.Geocode(ctx, f.Address.Street, f.Address.City, f.Address.State, f.Address.Zip)
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return sum, err
		case errors.Is(err, ErrNotFound):
			log.Warn().Str("facility_id", f.ID).Str("name", f.Name).Msg("address not found")
			sum.NotFound++
			continue
		case err != nil:
			log.Error().Err(err).Str("facility_id", f.ID).Msg("geocode failed")
			sum.Failed++
			continue
		}

		if err := st.SetFacilityGeo(ctx, f.ID, res.Lat, res.Lng); err != nil {
			log.Error().Err(err).Str("facility_id", f.ID).Msg("saving coordinates failed")
			sum.Failed++
			continue
		}
		log.Info().
			Str("facility_id", f.ID).
			Float64("lat", res.Lat).
			Float64("lng", res.Lng).
			Msg("facility geocoded")
		sum.Updated++
	}
	return sum, nil
}
