package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"jobsift/internal/fetch"
	"jobsift/internal/pipeline"
	"jobsift/internal/retry"
	"jobsift/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one crawl-dedupe-enrich-sync run",
	RunE:  runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.App.DataDir, 0o755); err != nil {
		return err
	}

	// Two runs must never sync concurrently against one database; the
	// lock file next to the db is the external mutual exclusion.
	lock := flock.New(filepath.Join(cfg.App.DataDir, "jobsift.lock"))
	held, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !held {
		return fmt.Errorf("another run holds %s", lock.Path())
	}
	defer lock.Unlock()

	db, err := store.Open(filepath.Join(cfg.App.DataDir, "listings.db"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := fetch.NewClient(cfg.Timeout(), cfg.Fetch.ReqPerSec)
	p := &pipeline.Pipeline{
		Fetcher: retry.New(client, cfg.Fetch.MaxRetries, cfg.RetryBase()),
		DB:      db,
		Cfg:     cfg,
	}

	stats, err := p.Run(ctx)
	if err != nil {
		return err
	}

	log.Printf("[run] %s", stats)
	fmt.Println(stats)
	return nil
}
