package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kentontilford/hfsrb-final/internal/model"
	embedsql "github.com/kentontilford/hfsrb-final/internal/sql"
)

// RecordLoadRun books one finished batch run for auditability.
func (s *Store) RecordLoadRun(ctx context.Context, runID uuid.UUID, sum *model.LoadSummary, startedAt time.Time) error {
	_, err := s.pool.Exec(ctx, embedsql.RecordLoadRun,
		runID, sum.Year, string(sum.FacilityType),
		sum.OK, sum.Bad, sum.HSASummaries, sum.HPASummaries, startedAt)
	if err != nil {
		return fmt.Errorf("record load run %s: %w", runID, err)
	}
	return nil
}
