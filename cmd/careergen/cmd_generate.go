package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lifecourse/careergen/internal/career"
	"github.com/lifecourse/careergen/internal/config"
	"github.com/lifecourse/careergen/internal/constants"
	"github.com/lifecourse/careergen/internal/dataset"
	"github.com/lifecourse/careergen/internal/logging"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic career trajectory dataset",
		Long: `Generate a synthetic career trajectory dataset.

Loads and validates model parameters from a YAML document, simulates one
career per individual over the configured age range, and writes the
population as a CSV dataset. A path ending in .zst is zstd-compressed.

Examples:
  careergen generate --params params.yaml --individuals 1000
  careergen generate --params params.yaml --out careers.csv.zst
  careergen generate --params params.yaml --compress --report report.json
  careergen generate --params params.yaml --seed 0   # time-derived seed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			envCfg, err := config.LoadEnv()
			if err != nil {
				return err
			}

			paramsPath := stringFlag(cmd, "params", envCfg.Params)
			outPath := stringFlag(cmd, "out", envCfg.Out)
			logLevel := stringFlag(cmd, "log-level", envCfg.LogLevel)
			individuals, _ := cmd.Flags().GetInt("individuals")
			compress, _ := cmd.Flags().GetBool("compress")
			reportPath, _ := cmd.Flags().GetString("report")
			progressEvery, _ := cmd.Flags().GetInt("progress-every")
			jsonOut, _ := cmd.Flags().GetBool("json")

			seed, _ := cmd.Flags().GetInt64("seed")
			if !cmd.Flags().Changed("seed") {
				seed = envCfg.Seed
			}

			if paramsPath == "" {
				return fmt.Errorf("no parameter file given (use --params or CAREERGEN_PARAMS)")
			}
			if outPath == "" {
				outPath = "careers.csv"
			}
			if compress && !strings.HasSuffix(outPath, ".zst") {
				outPath += ".zst"
			}

			logger := logging.NewLogger(logLevel, os.Stderr)

			if seed == 0 {
				seed = time.Now().UnixNano()
				logger.Info("derived seed from clock", "seed", seed)
			}

			params, err := config.Load(paramsPath)
			if err != nil {
				return err
			}

			trace := logging.NewTraceLogger(filepath.Dir(outPath), logLevel)
			defer trace.Close()

			gen := career.New(params, seed)
			ds, err := dataset.Generate(context.Background(), gen, individuals, dataset.Options{
				Logger:        logger,
				Trace:         trace,
				ProgressEvery: progressEvery,
			})
			if err != nil {
				return err
			}

			if err := ds.WriteFile(outPath); err != nil {
				return err
			}

			if reportPath != "" {
				report := dataset.BuildReport(ds, params)
				if err := report.WriteFile(reportPath); err != nil {
					return err
				}
			}

			summary := ds.Summarize()
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
					"out":     outPath,
					"seed":    seed,
					"summary": summary,
				})
			}

			printSummary(summary)
			fmt.Printf("\nWrote %s (seed %d)\n", outPath, seed)
			return nil
		},
	}

	cmd.Flags().String("params", "", "Parameter YAML file (default $CAREERGEN_PARAMS)")
	cmd.Flags().String("out", "", "Output dataset path (default $CAREERGEN_OUT or careers.csv)")
	cmd.Flags().Int("individuals", 1000, "Number of individuals to simulate")
	cmd.Flags().Int64("seed", constants.DefaultSeed, "Random seed, 0 derives one from the clock (default $CAREERGEN_SEED)")
	cmd.Flags().Bool("compress", false, "zstd-compress the dataset, appending .zst when absent")
	cmd.Flags().String("report", "", "Write the empirical validation report JSON to this path")
	cmd.Flags().Int("progress-every", constants.DefaultProgressEvery, "Individuals between progress log lines")

	return cmd
}
