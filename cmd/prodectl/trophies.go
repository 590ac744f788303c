package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// trophiesCmd prints title counts over concluded editions.
var trophiesCmd = &cobra.Command{
	Use:   "trophies",
	Short: "Show titles won per user",
	Long: `Count edition titles per user. Only editions with every result loaded
award a trophy; an exact aggregate tie at the top crowns every tied user.
--year restricts the editions counted; --edition does not apply.`,
	Args: cobra.NoArgs,
	RunE: runTrophies,
}

func runTrophies(cmd *cobra.Command, args []string) error {
	if editionFlag != 0 {
		return fmt.Errorf("--edition does not apply to trophies")
	}
	eng, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	rows, err := eng.ComputeTrophies(cmd.Context(), yearFlag)
	if err != nil {
		return fmt.Errorf("compute trophies: %w", err)
	}
	table := newTable()
	table.Header("NAME", "TROPHIES")
	for _, row := range rows {
		table.Append(row.User.Name, strconv.Itoa(row.Trophies))
	}
	table.Render()
	return nil
}
