package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kentontilford/hfsrb-final/internal/db"
	"github.com/kentontilford/hfsrb-final/internal/exitcode"
	"github.com/kentontilford/hfsrb-final/internal/export"
	"github.com/kentontilford/hfsrb-final/internal/logging"
	"github.com/kentontilford/hfsrb-final/internal/store"
)

var (
	exportOut  string
	exportType string
	exportYear int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export loaded data as Parquet",
}

var exportFacilitiesCmd = &cobra.Command{
	Use:   "facilities",
	Short: "Export active facilities",
	RunE:  runExportFacilities,
}

var exportSummariesCmd = &cobra.Command{
	Use:   "summaries",
	Short: "Export region summaries for a year",
	RunE:  runExportSummaries,
}

func init() {
	ff := exportFacilitiesCmd.Flags()
	ff.StringVar(&exportOut, "out", "", "Output parquet path (required)")
	ff.StringVar(&exportType, "type", "", "Limit to one facility type")
	_ = exportFacilitiesCmd.MarkFlagRequired("out")

	sf := exportSummariesCmd.Flags()
	sf.StringVar(&exportOut, "out", "", "Output parquet path (required)")
	sf.IntVar(&exportYear, "year", 0, "Survey year (required)")
	_ = exportSummariesCmd.MarkFlagRequired("out")
	_ = exportSummariesCmd.MarkFlagRequired("year")

	exportCmd.AddCommand(exportFacilitiesCmd, exportSummariesCmd)
	rootCmd.AddCommand(exportCmd)
}

func runExportFacilities(cmd *cobra.Command, args []string) error {
	return runExport(func(ctx context.Context, st *store.Store, f *os.File) (int, error) {
		return export.Facilities(ctx, st, f, store.FacilityFilter{Type: exportType})
	})
}

func runExportSummaries(cmd *cobra.Command, args []string) error {
	return runExport(func(ctx context.Context, st *store.Store, f *os.File) (int, error) {
		return export.RegionSummaries(ctx, st, f, exportYear)
	})
}

func runExport(write func(context.Context, *store.Store, *os.File) (int, error)) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if cfg.DSN == "" {
		log.Error().Msg("--dsn or DATABASE_URL is required")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	f, err := os.Create(exportOut)
	if err != nil {
		log.Error().Err(err).Msg("creating output file failed")
		os.Exit(exitcode.UsageError)
	}
	defer f.Close()

	n, err := write(ctx, store.New(pool), f)
	if err != nil {
		log.Error().Err(err).Msg("export failed")
		os.Exit(exitcode.LoadError)
	}

	fmt.Printf("Wrote %d rows to %s\n", n, exportOut)
	return nil
}
