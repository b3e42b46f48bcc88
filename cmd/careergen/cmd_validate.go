package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lifecourse/careergen/internal/config"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a parameter file without generating anything",
		Long: `Validate a parameter file without generating anything.

Parses the YAML document and checks every section: probabilities in
[0, 1], strictly positive rates, finite values, and a consistent age
range. The first violation fails the command with the offending field
named in dotted form.

Examples:
  careergen validate --params params.yaml
  careergen validate --params params.yaml --json`,
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

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
					"valid":   true,
					"params":  paramsPath,
					"min_age": params.Ages.MinAge,
					"max_age": params.Ages.DeathAge,
				})
			}

			fmt.Printf("✓ %s is valid (ages %d-%d)\n", paramsPath, params.Ages.MinAge, params.Ages.DeathAge)
			return nil
		},
	}

	cmd.Flags().String("params", "", "Parameter YAML file (default $CAREERGEN_PARAMS)")

	return cmd
}
