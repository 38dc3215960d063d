package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kentontilford/hfsrb-final/internal/config"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "surveyload",
	Short: "Facility survey JSON → Postgres batch loader",
	Long:  "Loads annual facility survey exports into Postgres, computes HSA/HPA region summaries, and maintains facility reference data.",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("DATABASE_URL"), "Postgres connection string (or set DATABASE_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
}
