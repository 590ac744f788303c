package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

// rankingCmd prints the leaderboard for the selected scope.
var rankingCmd = &cobra.Command{
	Use:   "ranking",
	Short: "Show the leaderboard",
	Long: `Compute the leaderboard for the selected scope. Users are ordered by
total points, then matches counted, then average goal error, then average
anticipation. Users with the same aggregate share a position.`,
	Args: cobra.NoArgs,
	RunE: runRanking,
}

func runRanking(cmd *cobra.Command, args []string) error {
	scope, err := scopeFromFlags()
	if err != nil {
		return err
	}
	eng, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	rows, warnings, err := eng.ComputeRanking(cmd.Context(), scope)
	if err != nil {
		return fmt.Errorf("compute ranking: %w", err)
	}

	table := newTable()
	table.Header("POS", "NAME", "PTS", "MATCHES", "EXACT", "AVG_ERR", "AVG_ANT_H", "EFF%")
	for _, row := range rows {
		avgErr := "—"
		if v, ok := row.Totals.AvgError(); ok {
			avgErr = fmt.Sprintf("%.2f", v)
		}
		avgAnt := "—"
		if v, ok := row.Totals.AvgAnticipationSeconds(); ok {
			avgAnt = fmt.Sprintf("%.1f", v/3600)
		}
		eff := "—"
		if v, ok := row.Totals.Effectiveness(); ok {
			eff = fmt.Sprintf("%.2f", v)
		}
		table.Append(
			strconv.Itoa(row.Rank),
			row.User.Name,
			strconv.Itoa(row.Totals.Points),
			strconv.Itoa(row.Totals.Matches),
			strconv.Itoa(row.Totals.Exact),
			avgErr,
			avgAnt,
			eff,
		)
	}
	table.Render()

	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	return nil
}

// newTable builds a right-aligned table on stdout.
func newTable() *tablewriter.Table {
	return tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}
