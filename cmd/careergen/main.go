package main

import (
	"fmt"
	"os"

	"github.com/lifecourse/careergen/internal/career"
	"github.com/lifecourse/careergen/internal/dataset"
	"github.com/spf13/cobra"
)

// Set via -ldflags at release time.
var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "careergen",
		Short: "Synthetic career trajectory generator",
		Long: `careergen generates synthetic career trajectory datasets.

Each individual walks a yearly absorbing Markov chain over the states
inactive, employed, retired and deceased, with age-dependent mortality
and log-normal employment income. The population is exported as a CSV
dataset ordered by (person_id, age), optionally zstd-compressed.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for machine consumption)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: error, warn, info, debug, or trace (default $CAREERGEN_LOG_LEVEL or info)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newGenerateCmd(),
		newValidateCmd(),
		newMatrixCmd(),
		newSummaryCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// stringFlag resolves a string flag against its environment fallback. An
// explicitly set flag wins over the environment.
func stringFlag(cmd *cobra.Command, name, envValue string) string {
	val, _ := cmd.Flags().GetString(name)
	if !cmd.Flags().Changed(name) && envValue != "" {
		return envValue
	}
	return val
}

// printSummary writes the human-readable summary block shared by the
// generate and summary commands.
func printSummary(s dataset.Summary) {
	fmt.Printf("Dataset Summary\n")
	fmt.Printf("===============\n\n")
	fmt.Printf("  Individuals: %d\n", s.Individuals)
	fmt.Printf("  Records:     %d\n", s.TotalRecords)
	fmt.Printf("  Years:       %d-%d\n", s.YearMin, s.YearMax)
	fmt.Printf("  Ages:        %d-%d\n", s.AgeMin, s.AgeMax)
	fmt.Printf("\n")

	fmt.Printf("State person-years:\n")
	for i := 0; i < career.StateCount; i++ {
		name := career.State(i).Name()
		fmt.Printf("  %-9s %d\n", name+":", s.StateCounts[name])
	}
	fmt.Printf("\n")

	fmt.Printf("Employment income:\n")
	fmt.Printf("  Median: %.2f\n", s.Income.Median)
	fmt.Printf("  Mean:   %.2f\n", s.Income.Mean)
	fmt.Printf("  Std:    %.2f\n", s.Income.Std)
}
