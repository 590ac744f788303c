package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// optimismCmd prints the optimism index listing.
var optimismCmd = &cobra.Command{
	Use:   "optimism",
	Short: "Show the optimism index per user",
	Long: `Classify users by the mean gap between their predicted goal difference
and the actual one. Positive index means the user expects better results
than the team delivers.`,
	Args: cobra.NoArgs,
	RunE: runOptimism,
}

func runOptimism(cmd *cobra.Command, args []string) error {
	scope, err := scopeFromFlags()
	if err != nil {
		return err
	}
	eng, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	rows, err := eng.ComputeOptimismIndex(cmd.Context(), scope)
	if err != nil {
		return fmt.Errorf("compute optimism: %w", err)
	}
	table := newTable()
	table.Header("NAME", "INDEX", "BAND", "MATCHES")
	for _, row := range rows {
		table.Append(row.User.Name, fmt.Sprintf("%+.2f", row.Index), string(row.Band), strconv.Itoa(row.Matches))
	}
	table.Render()
	return nil
}

// firmnessCmd prints the revision-count distribution per user.
var firmnessCmd = &cobra.Command{
	Use:   "firmness",
	Short: "Show how often users change their mind",
	Args:  cobra.NoArgs,
	RunE:  runFirmness,
}

func runFirmness(cmd *cobra.Command, args []string) error {
	scope, err := scopeFromFlags()
	if err != nil {
		return err
	}
	eng, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	rows, err := eng.ComputeFirmness(cmd.Context(), scope)
	if err != nil {
		return fmt.Errorf("compute firmness: %w", err)
	}
	table := newTable()
	table.Header("NAME", "MATCHES", "FIRM%", "HESITANT%", "VOLATILE%", "ABSENT%", "DOMINANT")
	for _, row := range rows {
		table.Append(
			row.User.Name,
			strconv.Itoa(row.Matches),
			fmt.Sprintf("%.1f", row.Percents["firm"]),
			fmt.Sprintf("%.1f", row.Percents["hesitant"]),
			fmt.Sprintf("%.1f", row.Percents["volatile"]),
			fmt.Sprintf("%.1f", row.Percents["non_participating"]),
			string(row.Dominant),
		)
	}
	table.Render()
	return nil
}

// mufaCmd prints the predicted-loss-came-true listing.
var mufaCmd = &cobra.Command{
	Use:   "mufa",
	Short: "Show whose predicted defeats come true",
	Args:  cobra.NoArgs,
	RunE:  runMufa,
}

func runMufa(cmd *cobra.Command, args []string) error {
	return runConditional(cmd, true)
}

// prophetCmd prints the predicted-win-that-missed listing.
var prophetCmd = &cobra.Command{
	Use:   "prophet",
	Short: "Show whose predicted wins fall through",
	Args:  cobra.NoArgs,
	RunE:  runProphet,
}

func runProphet(cmd *cobra.Command, args []string) error {
	return runConditional(cmd, false)
}

func runConditional(cmd *cobra.Command, mufa bool) error {
	scope, err := scopeFromFlags()
	if err != nil {
		return err
	}
	eng, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	compute := eng.ComputeFalseProphet
	if mufa {
		compute = eng.ComputeMufa
	}
	rows, err := compute(cmd.Context(), scope)
	if err != nil {
		return fmt.Errorf("compute listing: %w", err)
	}
	table := newTable()
	table.Header("NAME", "PICKS", "HITS", "PCT")
	for _, row := range rows {
		table.Append(row.User.Name, strconv.Itoa(row.Picks), strconv.Itoa(row.Hits), fmt.Sprintf("%.2f%%", row.Pct))
	}
	table.Render()
	return nil
}
