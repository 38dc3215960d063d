package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/kentontilford/hfsrb-final/internal/db"
	"github.com/kentontilford/hfsrb-final/internal/exitcode"
	"github.com/kentontilford/hfsrb-final/internal/logging"
	"github.com/kentontilford/hfsrb-final/internal/model"
	"github.com/kentontilford/hfsrb-final/internal/normalize"
	"github.com/kentontilford/hfsrb-final/internal/store"
)

var (
	bedsFacility  string
	bedsType      string
	bedsCount     int64
	bedsEffective string
)

var bedsCmd = &cobra.Command{
	Use:   "beds",
	Short: "Manage the authorized-bed inventory",
}

var bedsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append one authorized-bed record",
	RunE:  runBedsAdd,
}

var bedsLatestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show the current authorized beds per type for a facility",
	RunE:  runBedsLatest,
}

var bedsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the full bed inventory log for a facility",
	RunE:  runBedsHistory,
}

func init() {
	af := bedsAddCmd.Flags()
	af.StringVar(&bedsFacility, "facility", "", "Facility id (required)")
	af.StringVar(&bedsType, "bed-type", "", "Bed type, e.g. MS, ICU, PED (required)")
	af.Int64Var(&bedsCount, "count", -1, "Authorized bed count (required)")
	af.StringVar(&bedsEffective, "effective", "", "Effective date, YYYY-MM-DD (default today)")
	_ = bedsAddCmd.MarkFlagRequired("facility")
	_ = bedsAddCmd.MarkFlagRequired("bed-type")
	_ = bedsAddCmd.MarkFlagRequired("count")

	bedsLatestCmd.Flags().StringVar(&bedsFacility, "facility", "", "Facility id (required)")
	_ = bedsLatestCmd.MarkFlagRequired("facility")

	hf := bedsHistoryCmd.Flags()
	hf.StringVar(&bedsFacility, "facility", "", "Facility id (required)")
	hf.StringVar(&bedsType, "bed-type", "", "Limit to one bed type")
	_ = bedsHistoryCmd.MarkFlagRequired("facility")

	bedsCmd.AddCommand(bedsAddCmd, bedsLatestCmd, bedsHistoryCmd)
	rootCmd.AddCommand(bedsCmd)
}

func bedsStore(ctx context.Context) *store.Store {
	log := logging.Setup(cfg.LogFormat)
	if cfg.DSN == "" {
		log.Error().Msg("--dsn or DATABASE_URL is required")
		os.Exit(exitcode.UsageError)
	}
	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	return store.New(pool)
}

func runBedsAdd(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	effective := time.Now().UTC()
	if bedsEffective != "" {
		parsed := normalize.ParseDate(bedsEffective)
		if parsed == nil {
			log.Error().Str("effective", bedsEffective).Msg("invalid --effective date")
			os.Exit(exitcode.UsageError)
		}
		effective = *parsed
	}
	if bedsCount < 0 {
		log.Error().Msg("--count must be zero or positive")
		os.Exit(exitcode.UsageError)
	}

	st := bedsStore(ctx)
	err := st.AddBedEntry(ctx, &model.BedEntry{
		FacilityID:     bedsFacility,
		BedType:        bedsType,
		AuthorizedBeds: bedsCount,
		EffectiveDate:  effective,
	})
	if errors.Is(err, store.ErrFutureEffectiveDate) {
		log.Error().Err(err).Msg("rejected")
		os.Exit(exitcode.ValidationError)
	}
	if err != nil {
		log.Error().Err(err).Msg("adding bed entry failed")
		os.Exit(exitcode.LoadError)
	}

	fmt.Printf("Recorded %d %s beds for %s effective %s\n",
		bedsCount, bedsType, bedsFacility, effective.Format("2006-01-02"))
	return nil
}

func runBedsLatest(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	st := bedsStore(ctx)
	entries, err := st.LatestBeds(ctx, bedsFacility)
	if err != nil {
		log.Error().Err(err).Msg("reading bed inventory failed")
		os.Exit(exitcode.LoadError)
	}
	printBedEntries(entries)
	return nil
}

func runBedsHistory(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	st := bedsStore(ctx)
	entries, err := st.BedHistory(ctx, bedsFacility, bedsType)
	if err != nil {
		log.Error().Err(err).Msg("reading bed history failed")
		os.Exit(exitcode.LoadError)
	}
	printBedEntries(entries)
	return nil
}

func printBedEntries(entries []model.BedEntry) {
	if len(entries) == 0 {
		fmt.Println("no bed records")
		return
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Bed Type", "Authorized", "Effective", "Entered"})
	for _, e := range entries {
		table.Append([]string{
			e.BedType,
			fmt.Sprintf("%d", e.AuthorizedBeds),
			e.EffectiveDate.Format("2006-01-02"),
			e.EnteredAt.Format(time.RFC3339),
		})
	}
	table.Render()
}
