package load

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kentontilford/hfsrb-final/internal/aggregate"
	"github.com/kentontilford/hfsrb-final/internal/config"
	"github.com/kentontilford/hfsrb-final/internal/detect"
	"github.com/kentontilford/hfsrb-final/internal/model"
	"github.com/kentontilford/hfsrb-final/internal/store"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes the full batch load: discover → parse → detect → upsert →
// summarize → record. A malformed or rejected record is counted and skipped,
// never fatal; the caller decides what a nonzero Bad count means for the
// process exit code. Region summaries are only computed for hospital batches
// and only over records that loaded cleanly.
func Run(ctx context.Context, st *store.Store, log zerolog.Logger, cfg *config.Config) (*model.LoadSummary, error) {
	totalStart := time.Now()
	runID := uuid.New()

	ft, ok := model.ParseFacilityType(cfg.FacilityType)
	if !ok {
		return nil, &PipelineError{Phase: "discover", Err: fmt.Errorf("unknown facility type %q", cfg.FacilityType)}
	}

	// Phase 1: Discover
	log.Info().Str("data_dir", cfg.DataDir).Int("year", cfg.Year).Str("type", string(ft)).Msg("discovering survey documents")
	files, err := Discover(cfg.DataDir, cfg.Year, string(ft))
	if err != nil {
		return nil, &PipelineError{Phase: "discover", Err: err}
	}
	log.Info().Int("files", len(files)).Msg("discovery complete")

	sum := &model.LoadSummary{
		RunID:        runID.String(),
		Year:         cfg.Year,
		FacilityType: ft,
		FilesFound:   len(files),
	}

	// Phase 2: Parse. Every file is read up front so column detection sees
	// the whole batch before the first write.
	recordsStart := time.Now()
	var rows []aggregate.Row
	var sources []string
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("source", path).Msg("record rejected")
			sum.Bad++
			continue
		}
		row, err := ParseDocument(data)
		if err == nil {
			err = ValidateRow(row)
		}
		if err != nil {
			log.Warn().Err(err).Str("source", path).Msg("record rejected")
			sum.Bad++
			continue
		}
		rows = append(rows, row)
		sources = append(sources, path)
	}

	// Phase 3: Detect, once per batch.
	det := DetectColumns(rows, cfg.Rules.Race, cfg.Rules.Ethnicity, cfg.Rules.Payer)
	logDetection(log, det)

	// Phase 4: Upsert, fail-soft per record.
	var loaded []aggregate.Row
	for i, row := range rows {
		if err := upsertRecord(ctx, st, cfg, ft, row, det); err != nil {
			log.Error().Err(err).Str("source", sources[i]).Msg("record failed")
			sum.Bad++
			continue
		}
		loaded = append(loaded, row)
		sum.OK++
	}
	sum.DurationRecords = time.Since(recordsStart)

	// Phase 5: Summaries, hospital batches only.
	if ft == model.Hospital {
		summariesStart := time.Now()
		regions := BuildRegionSummaries(loaded, cfg.Year, det)
		for i := range regions {
			r := &regions[i]
			if !cfg.DryRun {
				if err := st.UpsertRegionSummary(ctx, r); err != nil {
					return nil, &PipelineError{Phase: "summaries", Err: fmt.Errorf("region %s %s: %w", r.RegionType, r.RegionCode, err)}
				}
			}
			switch r.RegionType {
			case model.RegionHSA:
				sum.HSASummaries++
			case model.RegionHPA:
				sum.HPASummaries++
			}
		}
		sum.DurationSummaries = time.Since(summariesStart)
	}

	sum.DurationTotal = time.Since(totalStart)

	// Phase 6: Record the run. Failing to write the audit row does not undo
	// a load that already happened.
	if !cfg.DryRun {
		if err := st.RecordLoadRun(ctx, runID, sum, totalStart); err != nil {
			log.Warn().Err(err).Msg("recording load run failed (non-fatal)")
		}
	}

	log.Info().
		Str("run_id", sum.RunID).
		Int("files", sum.FilesFound).
		Int("ok", sum.OK).
		Int("bad", sum.Bad).
		Int("hsa_summaries", sum.HSASummaries).
		Int("hpa_summaries", sum.HPASummaries).
		Str("total_duration", sum.DurationTotal.String()).
		Msg("batch load complete")

	return sum, nil
}

// upsertRecord writes one facility and its type-specific survey row. The
// facility row goes first so the survey's foreign key always resolves.
func upsertRecord(ctx context.Context, st *store.Store, cfg *config.Config, ft model.FacilityType, row aggregate.Row, det Detections) error {
	fac := BuildFacility(row, ft)
	if cfg.DryRun {
		return nil
	}
	if err := st.UpsertFacility(ctx, fac); err != nil {
		return fmt.Errorf("facility %s: %w", fac.ID, err)
	}

	switch ft {
	case model.Hospital:
		rec := BuildHospitalSurvey(row, cfg.Year, aggregate.RowShare(row, det.Payer))
		if err := st.UpsertHospitalSurvey(ctx, rec); err != nil {
			return fmt.Errorf("hospital survey %s: %w", fac.ID, err)
		}
	case model.ESRD:
		rec := BuildESRDSurvey(row, cfg.Year)
		if err := st.UpsertESRDSurvey(ctx, rec); err != nil {
			return fmt.Errorf("esrd survey %s: %w", fac.ID, err)
		}
	case model.ASTC:
		rec := BuildASTCSurvey(row, cfg.Year)
		if err := st.UpsertASTCSurvey(ctx, rec); err != nil {
			return fmt.Errorf("astc survey %s: %w", fac.ID, err)
		}
	case model.LTC:
		rec := BuildLTCSurvey(row, cfg.Year)
		if err := st.UpsertLTCSurvey(ctx, rec); err != nil {
			return fmt.Errorf("ltc survey %s: %w", fac.ID, err)
		}
	}
	return nil
}

func logDetection(log zerolog.Logger, det Detections) {
	for name, d := range map[string]int{
		"race":      countDetected(det.Race),
		"ethnicity": countDetected(det.Ethnicity),
		"payer":     countDetected(det.Payer),
	} {
		log.Debug().Str("rule_set", name).Int("columns", d).Msg("column detection")
	}
}

func countDetected(d *detect.Detection) int {
	var n int
	for _, byCat := range d.ByBasis {
		for _, cols := range byCat {
			n += len(cols)
		}
	}
	return n
}
