package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lifecourse/careergen/internal/career"
	"github.com/lifecourse/careergen/internal/config"
	"github.com/spf13/cobra"
)

func newMatrixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Print the transition matrix implied by a parameter file",
		Long: `Print the transition matrix implied by a parameter file.

The matrix is the row-stochastic view of the configured transition rows
before age-dependent mortality is applied: rows with positive mass are
renormalized to sum to 1, and the deceased row is the fixed absorbing
row.

Examples:
  careergen matrix --params params.yaml
  careergen matrix --params params.yaml --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			envCfg, err := config.LoadEnv()
			if err != nil {
				return err
			}
			paramsPath := stringFlag(cmd, "params", envCfg.Params)
			jsonOut, _ := cmd.Flags().GetBool("json")

			if paramsPath == "" {
				return fmt.Errorf("no parameter file given (use --params or CAREERGEN_PARAMS)")
			}

			params, err := config.Load(paramsPath)
			if err != nil {
				return err
			}

			m := config.TransitionMatrix(params)

			if jsonOut {
				out := make(map[string]map[string]float64, len(m))
				for i, row := range m {
					rowOut := make(map[string]float64, len(row))
					for j, p := range row {
						rowOut[career.State(j).Name()] = p
					}
					out[career.State(i).Name()] = rowOut
				}
				return json.NewEncoder(os.Stdout).Encode(out)
			}

			fmt.Printf("Transition Matrix\n")
			fmt.Printf("=================\n\n")
			fmt.Printf("%-10s", "")
			for j := 0; j < career.StateCount; j++ {
				fmt.Printf(" %10s", career.State(j).Name())
			}
			fmt.Printf("\n")
			for i, row := range m {
				fmt.Printf("%-10s", career.State(i).Name())
				for _, p := range row {
					fmt.Printf(" %10.4f", p)
				}
				fmt.Printf("\n")
			}
			return nil
		},
	}

	cmd.Flags().String("params", "", "Parameter YAML file (default $CAREERGEN_PARAMS)")

	return cmd
}
