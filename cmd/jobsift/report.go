package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"jobsift/internal/report"
	"jobsift/internal/store"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Tally keyword mentions across stored descriptions",
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	db, err := store.Open(filepath.Join(cfg.App.DataDir, "listings.db"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	listings, err := db.SelectAll(cmd.Context())
	if err != nil {
		return err
	}

	counts := report.Tally(listings, cfg.Report.Keywords)
	return report.Write(os.Stdout, counts)
}
