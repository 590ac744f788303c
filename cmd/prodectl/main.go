// Command prodectl inspects a prediction pool database from the terminal:
// rankings, streaks, replay tables and the behavioral listings, without
// running the HTTP service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/okian/prode/internal/adapters/repository"
	engine "github.com/okian/prode/internal/app"
	"github.com/okian/prode/internal/domain/model"
	"github.com/okian/prode/internal/testdata"
)

var (
	dbPath      string
	editionFlag int64
	yearFlag    int
)

var rootCmd = &cobra.Command{
	Use:   "prodectl",
	Short: "Prediction pool inspection tool",
	Long:  "Compute rankings, streaks, replays and behavioral listings from a pool database.",
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite pool database (empty runs on generated demo data)")
	rootCmd.PersistentFlags().Int64Var(&editionFlag, "edition", 0, "restrict to one edition id")
	rootCmd.PersistentFlags().IntVar(&yearFlag, "year", 0, "restrict to the editions of one year")

	rootCmd.AddCommand(rankingCmd)
	rootCmd.AddCommand(streaksCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(optimismCmd)
	rootCmd.AddCommand(firmnessCmd)
	rootCmd.AddCommand(mufaCmd)
	rootCmd.AddCommand(prophetCmd)
	rootCmd.AddCommand(trophiesCmd)
	rootCmd.AddCommand(seedCmd)
}

// openEngine builds an Engine over the configured store.
func openEngine() (*engine.Engine, func(), error) {
	store, closeStore, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	return engine.New(engine.WithStore(store)), closeStore, nil
}

func openStore() (repository.Store, func(), error) {
	if dbPath == "" {
		fixture := testdata.Generate(testdata.DefaultConfig(42))
		return fixture.Store(), func() {}, nil
	}
	db, err := repository.OpenSQLite(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return db, func() { _ = db.Close() }, nil
}

func scopeFromFlags() (model.Scope, error) {
	if editionFlag != 0 && yearFlag != 0 {
		return model.Scope{}, fmt.Errorf("--edition and --year are mutually exclusive")
	}
	if editionFlag != 0 {
		return model.ForEdition(model.EditionID(editionFlag)), nil
	}
	if yearFlag != 0 {
		return model.ForYear(yearFlag), nil
	}
	return model.AllTime(), nil
}
