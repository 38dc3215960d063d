package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/kentontilford/hfsrb-final/internal/aggregate"
	"github.com/kentontilford/hfsrb-final/internal/config"
	"github.com/kentontilford/hfsrb-final/internal/detect"
	"github.com/kentontilford/hfsrb-final/internal/exitcode"
	"github.com/kentontilford/hfsrb-final/internal/load"
	"github.com/kentontilford/hfsrb-final/internal/logging"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Show which columns the detection rules would claim (no writes)",
	RunE:  runDetect,
}

func init() {
	f := detectCmd.Flags()
	f.StringVar(&cfg.DataDir, "data-dir", os.Getenv("SURVEY_DATA_DIR"), "Survey export root directory (or set SURVEY_DATA_DIR)")
	f.IntVar(&cfg.Year, "year", 0, "Survey year (required)")
	f.StringVar(&cfg.FacilityType, "type", "", "Facility type: Hospital, ESRD, ASTC, or LTC (required)")
	f.StringVar(&cfg.RulesFile, "rules", "", "YAML column-detection rules (defaults to built-in tables)")
	_ = detectCmd.MarkFlagRequired("year")
	_ = detectCmd.MarkFlagRequired("type")
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
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

	files, err := load.Discover(cfg.DataDir, cfg.Year, cfg.FacilityType)
	if err != nil {
		log.Error().Err(err).Msg("discovery failed")
		os.Exit(exitcode.ValidationError)
	}

	var rows []aggregate.Row
	var bad int
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err == nil {
			var row aggregate.Row
			if row, err = load.ParseDocument(data); err == nil {
				rows = append(rows, row)
				continue
			}
		}
		log.Warn().Err(err).Str("source", path).Msg("document skipped")
		bad++
	}

	det := load.DetectColumns(rows, cfg.Rules.Race, cfg.Rules.Ethnicity, cfg.Rules.Payer)
	fmt.Printf("Scanned %d documents (%d unreadable)\n\n", len(files), bad)
	for _, d := range []*detect.Detection{det.Race, det.Ethnicity, det.Payer} {
		printDetection(d)
	}
	return nil
}

func printDetection(d *detect.Detection) {
	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	if !d.HasAny() {
		fmt.Printf("%s: %s\n\n", bold(d.Rules.Name), yellow("no columns detected"))
		return
	}

	basis, _ := d.Preferred()
	fmt.Printf("%s (preferred basis: %s)\n", bold(d.Rules.Name), green(string(basis)))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Basis", "Category", "Columns"})
	for _, b := range detect.AllBases {
		byCat := d.ByBasis[b]
		for _, cat := range d.Rules.CategoryNames() {
			cols := byCat[cat]
			if len(cols) == 0 {
				continue
			}
			table.Append([]string{string(b), cat, strings.Join(cols, ", ")})
		}
	}
	table.Render()
	fmt.Println()
}
