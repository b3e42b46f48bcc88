package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lifecourse/careergen/internal/config"
	"github.com/lifecourse/careergen/internal/dataset"
	"github.com/spf13/cobra"
)

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize an exported dataset",
		Long: `Summarize an exported dataset.

Reloads a CSV dataset (zstd-compressed if the path ends in .zst) and
prints the same summary block the generate command emits: record and
individual counts, year and age ranges, person-years per state, and
employment income statistics.

Examples:
  careergen summary --input careers.csv
  careergen summary --input careers.csv.zst --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			envCfg, err := config.LoadEnv()
			if err != nil {
				return err
			}
			inputPath := stringFlag(cmd, "input", envCfg.Out)
			jsonOut, _ := cmd.Flags().GetBool("json")

			if inputPath == "" {
				return fmt.Errorf("no dataset given (use --input or CAREERGEN_OUT)")
			}

			ds, err := dataset.ReadFile(inputPath)
			if err != nil {
				return err
			}

			summary := ds.Summarize()
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(summary)
			}

			printSummary(summary)
			return nil
		},
	}

	cmd.Flags().String("input", "", "Dataset path, .zst for compressed (default $CAREERGEN_OUT)")

	return cmd
}
