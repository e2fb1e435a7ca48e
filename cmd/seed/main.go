// Command seed loads a dashboard dataset dump into the archive database.
// Duplicate headlines are skipped, re-running on the same dump is safe.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/umputun/inteldash/pkg/domain"
	"github.com/umputun/inteldash/pkg/repository"
)

// Opts with all CLI options
type Opts struct {
	File string `short:"f" long:"file" env:"FILE" default:"data/data.json" description:"dataset dump to load"`
	DSN  string `short:"d" long:"dsn" env:"DSN" default:"file:inteldash.db?cache=shared&mode=rwc" description:"database connection string"`
}

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if err := run(context.Background(), opts); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts Opts) error {
	data, err := os.ReadFile(opts.File) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return fmt.Errorf("read dataset: %w", err)
	}

	var records []domain.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parse dataset: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("dataset %s has no records", opts.File)
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{DSN: opts.DSN})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer repos.Close()

	added, err := repos.Record.AddRecords(ctx, records)
	if err != nil {
		return fmt.Errorf("store records: %w", err)
	}

	log.Printf("[INFO] seeded %d of %d records from %s", added, len(records), opts.File)
	return nil
}
