package simulation

import (
	"context"
	"testing"

	"github.com/lifecourse/careergen/internal/career"
	"github.com/lifecourse/careergen/internal/config"
	"github.com/lifecourse/careergen/internal/dataset"
)

// Runner executes population scenarios against the real generator and
// dataset pipeline.
type Runner struct {
	t *testing.T
}

// NewRunner creates a simulation runner bound to the test.
func NewRunner(t *testing.T) *Runner {
	t.Helper()
	return &Runner{t: t}
}

// Run generates the scenario's population and returns the tallied result.
func (r *Runner) Run(scenario Scenario) SimulationResult {
	r.t.Helper()

	params := scenario.Params
	if params == nil {
		params = ReferenceParams()
	}
	if scenario.MutateParams != nil {
		scenario.MutateParams(params)
	}

	gen := career.New(params, scenario.Seed)
	ds, err := dataset.Generate(context.Background(), gen, scenario.Individuals, dataset.Options{})
	if err != nil {
		r.t.Fatalf("Run(%s): %v", scenario.Name, err)
	}

	return tally(scenario.Name, params, ds)
}

// tally walks the sorted dataset once and aggregates the counts the
// assertions consume.
func tally(name string, params *config.Parameters, ds *dataset.Dataset) SimulationResult {
	result := SimulationResult{
		Name:        name,
		Params:      params,
		Dataset:     ds,
		StateCounts: make(map[int][career.StateCount]float64),
		DeathsByAge: make(map[int]int),
	}

	lastPerson := -1
	died := false
	for _, rec := range ds.Records {
		if rec.PersonID != lastPerson {
			lastPerson = rec.PersonID
			// Starting in the absorbing state is an initial placement,
			// not a death.
			died = rec.State == career.StateDeceased
			result.InitialCounts[rec.State]++
		}

		counts := result.StateCounts[rec.Age]
		counts[rec.State]++
		result.StateCounts[rec.Age] = counts

		if rec.State == career.StateDeceased && !died {
			died = true
			result.DeathsByAge[rec.Age]++
		}
		if rec.State == career.StateEmployed {
			result.EmployedIncomes = append(result.EmployedIncomes, rec.Income)
		}
	}
	return result
}
