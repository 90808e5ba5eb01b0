package main

import (
	"os"

	"github.com/spf13/cobra"

	"jobsift/internal/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "jobsift",
	Short: "Scrape job listings, deduplicate them, and tally in-demand skills",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBSIFT_CONFIG env var or ./config.yaml)")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit flag > JOBSIFT_CONFIG env var > "./config.yaml"
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		if env := os.Getenv("JOBSIFT_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}
