package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/kentontilford/hfsrb-final/internal/db"
	"github.com/kentontilford/hfsrb-final/internal/exitcode"
	"github.com/kentontilford/hfsrb-final/internal/logging"
	"github.com/kentontilford/hfsrb-final/internal/store"
)

var reportYear int
var reportRegionType string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the region summaries for a survey year",
	RunE:  runReport,
}

func init() {
	f := reportCmd.Flags()
	f.IntVar(&reportYear, "year", 0, "Survey year (required)")
	f.StringVar(&reportRegionType, "region-type", "", "Limit to HSA or HPA")
	_ = reportCmd.MarkFlagRequired("year")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
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

	summaries, err := store.New(pool).ListRegionSummaries(ctx, reportYear)
	if err != nil {
		log.Error().Err(err).Msg("listing region summaries failed")
		os.Exit(exitcode.SummaryError)
	}

	bold := color.New(color.Bold).SprintFunc()
	fmt.Printf("%s %d\n\n", bold("Region summaries,"), reportYear)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"Region", "Code", "Facilities", "MS Beds", "ICU Beds", "MS Admissions",
		"Medicare", "Medicaid", "Private",
	})
	var printed int
	for i := range summaries {
		r := &summaries[i]
		if reportRegionType != "" && string(r.RegionType) != reportRegionType {
			continue
		}
		table.Append([]string{
			string(r.RegionType),
			r.RegionCode,
			fmt.Sprintf("%d", r.TotalFacilities),
			fmt.Sprintf("%.0f", r.MSCon),
			fmt.Sprintf("%.0f", r.ICUCon),
			fmt.Sprintf("%.0f", r.MSAdmissions),
			pct(r.PayerMedicare),
			pct(r.PayerMedicaid),
			pct(r.PayerPrivate),
		})
		printed++
	}
	if printed == 0 {
		fmt.Println(color.YellowString("no summaries for this year"))
		return nil
	}
	table.Render()
	return nil
}

// pct renders a proportion as a percentage, distinguishing "not reported"
// from a true zero share.
func pct(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", *v*100)
}
