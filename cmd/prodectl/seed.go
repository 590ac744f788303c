package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/prode/internal/adapters/repository"
	"github.com/okian/prode/internal/testdata"
)

var seedValue int64

// seedCmd fills a fresh SQLite database with generated demo data.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill a database with generated demo data",
	Long: `Generate a deterministic two-edition fixture and write it into the
SQLite database at --db. The same --seed always produces the same pool.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().Int64Var(&seedValue, "seed", 42, "generation seed")
}

func runSeed(cmd *cobra.Command, args []string) error {
	if dbPath == "" {
		return fmt.Errorf("--db is required for seed")
	}
	db, err := repository.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	fixture := testdata.Generate(testdata.DefaultConfig(seedValue))
	for _, u := range fixture.Users {
		if err := db.InsertUser(ctx, u); err != nil {
			return err
		}
	}
	for _, ed := range fixture.Editions {
		if err := db.InsertEdition(ctx, ed); err != nil {
			return err
		}
	}
	for _, m := range fixture.Matches {
		if err := db.InsertMatch(ctx, m); err != nil {
			return err
		}
	}
	for _, r := range fixture.Revisions {
		if err := db.InsertRevision(ctx, r); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stdout, "seeded %s: %d users, %d editions, %d matches, %d revisions\n",
		dbPath, len(fixture.Users), len(fixture.Editions), len(fixture.Matches), len(fixture.Revisions))
	return nil
}
