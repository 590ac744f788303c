package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/okian/prode/internal/domain/model"
)

var replayUsers []int64

// replayCmd prints the rank evolution of an edition, one row per match.
var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Show how ranks evolved over one edition",
	Long: `Re-run the edition match by match and print each user's position after
every finished match. Requires --edition; --users narrows the columns.`,
	Args: cobra.NoArgs,
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().Int64SliceVar(&replayUsers, "users", nil, "user ids to chart (default all)")
}

func runReplay(cmd *cobra.Command, args []string) error {
	if editionFlag == 0 {
		return fmt.Errorf("--edition is required for replay")
	}
	if yearFlag != 0 {
		return fmt.Errorf("--year does not apply to replay")
	}
	eng, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	subset := make([]model.UserID, 0, len(replayUsers))
	for _, id := range replayUsers {
		subset = append(subset, model.UserID(id))
	}
	res, err := eng.ReplayEvolution(cmd.Context(), model.EditionID(editionFlag), subset)
	if err != nil {
		return fmt.Errorf("replay edition %d: %w", editionFlag, err)
	}

	ids := make([]model.UserID, 0, len(res.Series))
	for id := range res.Series {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	header := []any{"MATCH"}
	for _, id := range ids {
		header = append(header, fmt.Sprintf("U%d", id))
	}
	table := newTable()
	table.Header(header...)
	for step := 0; step < res.Steps; step++ {
		row := []any{strconv.Itoa(step + 1)}
		for _, id := range ids {
			snap := res.Series[id][step]
			row = append(row, fmt.Sprintf("#%d (%dp)", snap.Rank, snap.Points))
		}
		table.Append(row...)
	}
	table.Render()
	return nil
}
