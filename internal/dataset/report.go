package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/lifecourse/careergen/internal/career"
	"github.com/lifecourse/careergen/internal/config"
)

// Report compares a generated dataset against the parameters that
// produced it. It is diagnostic output for eyeballing a population, not
// part of generation.
type Report struct {
	Transitions map[string]TransitionReport `json:"empirical_transition_rates"`
	Income      IncomeReport                `json:"income"`
	Coverage    map[string]int              `json:"state_person_years"`
}

// TransitionReport holds empirical next-state rates out of one source
// state alongside the configured base row. The configured row excludes
// the age-dependent mortality adjustment, so empirical deceased rates
// sit above their configured base.
type TransitionReport struct {
	Observed   int                `json:"observed_transitions"`
	Empirical  map[string]float64 `json:"empirical"`
	Configured map[string]float64 `json:"configured"`
}

// IncomeReport compares observed employed income against the configured
// log-normal distribution.
type IncomeReport struct {
	Empirical      IncomeSummary `json:"empirical"`
	ExpectedMedian float64       `json:"expected_median"`
	Distribution   string        `json:"distribution"`
}

// BuildReport computes the diagnostic report for a dataset generated
// under params. Empirical transition rates count consecutive-age pairs
// within each individual, so the dataset must be sorted.
func BuildReport(d *Dataset, params *config.Parameters) *Report {
	var counts [career.StateCount][career.StateCount]int
	for i := 1; i < len(d.Records); i++ {
		prev, cur := d.Records[i-1], d.Records[i]
		if prev.PersonID != cur.PersonID || cur.Age != prev.Age+1 {
			continue
		}
		counts[prev.State][cur.State]++
	}

	transitions := make(map[string]TransitionReport, 3)
	for src := career.StateInactive; src < career.StateDeceased; src++ {
		total := 0
		for _, c := range counts[src] {
			total += c
		}

		tr := TransitionReport{
			Observed:   total,
			Empirical:  make(map[string]float64, career.StateCount),
			Configured: make(map[string]float64, career.StateCount),
		}
		base := baseRow(params, src)
		for tgt := career.State(0); tgt < career.StateCount; tgt++ {
			rate := 0.0
			if total > 0 {
				rate = float64(counts[src][tgt]) / float64(total)
			}
			tr.Empirical[tgt.Name()] = rate
			tr.Configured[tgt.Name()] = base[tgt]
		}
		transitions[src.Name()] = tr
	}

	summary := d.Summarize()
	return &Report{
		Transitions: transitions,
		Income: IncomeReport{
			Empirical:      summary.Income,
			ExpectedMedian: math.Exp(params.Income.LognormalMean),
			Distribution:   "log-normal",
		},
		Coverage: summary.StateCounts,
	}
}

// WriteFile writes the report as indented JSON, creating parent
// directories as needed.
func (r *Report) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}

// baseRow returns the configured transition row for a non-absorbing
// source state.
func baseRow(params *config.Parameters, src career.State) [career.StateCount]float64 {
	switch src {
	case career.StateInactive:
		return params.TransitionFromInactive.Vector()
	case career.StateEmployed:
		return params.TransitionFromEmployed.Vector()
	case career.StateRetired:
		return params.TransitionFromRetired.Vector()
	default:
		return [career.StateCount]float64{career.StateDeceased: 1}
	}
}
