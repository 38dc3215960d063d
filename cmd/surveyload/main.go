// surveyload loads annual facility survey exports into Postgres and
// maintains the derived region summaries.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/kentontilford/hfsrb-final/internal/exitcode"
)

func main() {
	// Local development keeps DATABASE_URL in a .env file; absence is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitcode.UsageError)
	}
}
