package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kentontilford/hfsrb-final/internal/config"
	"github.com/kentontilford/hfsrb-final/internal/db"
	"github.com/kentontilford/hfsrb-final/internal/exitcode"
	"github.com/kentontilford/hfsrb-final/internal/load"
	"github.com/kentontilford/hfsrb-final/internal/logging"
	"github.com/kentontilford/hfsrb-final/internal/store"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load one year of survey documents for one facility type",
	RunE:  runLoad,
}

func init() {
	f := loadCmd.Flags()
	f.StringVar(&cfg.DataDir, "data-dir", os.Getenv("SURVEY_DATA_DIR"), "Survey export root directory (or set SURVEY_DATA_DIR)")
	f.IntVar(&cfg.Year, "year", 0, "Survey year (required)")
	f.StringVar(&cfg.FacilityType, "type", "", "Facility type: Hospital, ESRD, ASTC, or LTC (required)")
	f.StringVar(&cfg.RulesFile, "rules", "", "YAML column-detection rules (defaults to built-in tables)")
	f.BoolVar(&cfg.DryRun, "dry-run", false, "Parse and validate without writing")
	_ = loadCmd.MarkFlagRequired("year")
	_ = loadCmd.MarkFlagRequired("type")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if cfg.DryRun {
		if err := cfg.Validate(); err != nil {
			log.Error().Err(err).Msg("config validation failed")
			os.Exit(exitcode.UsageError)
		}
	} else if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	cfg.Rules = config.DefaultRules()
	if cfg.RulesFile != "" {
		if err := cfg.LoadRulesFromFile(cfg.RulesFile); err != nil {
			log.Error().Err(err).Str("rules", cfg.RulesFile).Msg("loading detection rules failed")
			os.Exit(exitcode.UsageError)
		}
	}

	var st *store.Store
	if !cfg.DryRun {
		pool, err := db.NewPool(ctx, cfg.DSN)
		if err != nil {
			log.Error().Err(err).Msg("database connection failed")
			os.Exit(exitcode.DBConnError)
		}
		defer pool.Close()
		st = store.New(pool)
	}

	summary, err := load.Run(ctx, st, log, &cfg)
	if err != nil {
		if pe, ok := err.(*load.PipelineError); ok {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("load failed")
			switch pe.Phase {
			case "discover":
				os.Exit(exitcode.ValidationError)
			case "summaries":
				os.Exit(exitcode.SummaryError)
			default:
				os.Exit(exitcode.LoadError)
			}
		}
		log.Error().Err(err).Msg("load failed")
		os.Exit(exitcode.LoadError)
	}

	fmt.Printf("OK=%d BAD=%d\n", summary.OK, summary.Bad)

	if summary.Bad > 0 {
		if summary.OK == 0 {
			os.Exit(exitcode.LoadError)
		}
		os.Exit(exitcode.PartialFailure)
	}
	return nil
}
