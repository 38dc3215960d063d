package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/kentontilford/hfsrb-final/internal/db"
	"github.com/kentontilford/hfsrb-final/internal/exitcode"
	"github.com/kentontilford/hfsrb-final/internal/geocode"
	"github.com/kentontilford/hfsrb-final/internal/logging"
	"github.com/kentontilford/hfsrb-final/internal/store"
)

var geocodeCmd = &cobra.Command{
	Use:   "geocode",
	Short: "Resolve coordinates for facilities that are missing them",
	RunE:  runGeocode,
}

func init() {
	f := geocodeCmd.Flags()
	f.StringVar(&cfg.GeocoderUserAgent, "user-agent", os.Getenv("GEOCODER_USER_AGENT"), "Identifying User-Agent for Nominatim (required)")
	f.StringVar(&cfg.GeocoderEmail, "email", os.Getenv("GEOCODER_EMAIL"), "Contact email forwarded to Nominatim")
	f.IntVar(&cfg.GeocoderRateMS, "rate-ms", envInt("GEOCODER_RATE_MS"), "Minimum milliseconds between requests (default 1200)")
	f.IntVar(&cfg.GeocoderLimit, "limit", 100, "Maximum facilities to geocode this run")
	rootCmd.AddCommand(geocodeCmd)
}

func envInt(name string) int {
	n, err := strconv.Atoi(os.Getenv(name))
	if err != nil {
		return 0
	}
	return n
}

func runGeocode(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if cfg.DSN == "" {
		log.Error().Msg("--dsn or DATABASE_URL is required")
		os.Exit(exitcode.UsageError)
	}

	client, err := geocode.NewClient(cfg.GeocoderUserAgent, cfg.GeocoderEmail,
		time.Duration(cfg.GeocoderRateMS)*time.Millisecond)
	if err != nil {
		log.Error().Err(err).Msg("geocoder configuration invalid")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	sum, err := geocode.Run(ctx, store.New(pool), client, log, cfg.GeocoderLimit)
	if err != nil {
		log.Error().Err(err).Msg("geocoding run failed")
		os.Exit(exitcode.LoadError)
	}

	fmt.Printf("Geocoded %d of %d facilities (%d not found, %d failed)\n",
		sum.Updated, sum.Candidates, sum.NotFound, sum.Failed)
	if sum.Failed > 0 {
		os.Exit(exitcode.PartialFailure)
	}
	return nil
}
