package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var recordStreaks bool

// streaksCmd prints current or record scoring streaks.
var streaksCmd = &cobra.Command{
	Use:   "streaks",
	Short: "Show scoring streaks",
	Long: `List consecutive scoring runs per user. By default the current streak
(ending at the most recent finished match); --record shows the longest run
anywhere in the scope's history.`,
	Args: cobra.NoArgs,
	RunE: runStreaks,
}

func init() {
	streaksCmd.Flags().BoolVar(&recordStreaks, "record", false, "show record streaks instead of current")
}

func runStreaks(cmd *cobra.Command, args []string) error {
	scope, err := scopeFromFlags()
	if err != nil {
		return err
	}
	eng, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	compute := eng.ComputeCurrentStreaks
	label := "CURRENT"
	if recordStreaks {
		compute = eng.ComputeRecordStreaks
		label = "RECORD"
	}
	rows, err := compute(cmd.Context(), scope)
	if err != nil {
		return fmt.Errorf("compute streaks: %w", err)
	}

	table := newTable()
	table.Header("NAME", label)
	for _, row := range rows {
		table.Append(row.User.Name, strconv.Itoa(row.Length))
	}
	table.Render()
	return nil
}
