package simulation

import (
	"math"

	"github.com/lifecourse/careergen/internal/career"
	"github.com/lifecourse/careergen/internal/config"
	"github.com/lifecourse/careergen/internal/dataset"
)

// Scenario defines a complete population experiment.
type Scenario struct {
	Name        string
	Seed        int64
	Individuals int

	// Params is the parameter set for the run. Nil uses ReferenceParams.
	Params *config.Parameters

	// MutateParams, when non-nil, adjusts the parameter set before the
	// generator is built. Use it to derive variants from the reference
	// fixture without spelling out a full parameter set.
	MutateParams func(*config.Parameters)
}

// SimulationResult aggregates one generated population with the tallies
// the assertions work from.
type SimulationResult struct {
	Name    string
	Params  *config.Parameters
	Dataset *dataset.Dataset

	// InitialCounts tallies the state at the first simulated age, indexed
	// by state code. Counts are float64 so they feed chi-squared
	// comparisons directly.
	InitialCounts [career.StateCount]float64

	// StateCounts maps age to per-state person-year counts.
	StateCounts map[int][career.StateCount]float64

	// DeathsByAge maps age to the number of individuals whose first
	// deceased record falls at that age. Individuals seeded in the
	// absorbing state never died and are not counted.
	DeathsByAge map[int]int

	// EmployedIncomes collects every employed person-year income in
	// dataset order.
	EmployedIncomes []float64
}

// ReferenceParams returns the standard working-age fixture used by the
// property scenarios: ages 25 to 95, a mostly employed starting
// population, and a median income of 50000 at the anchor age. Each call
// returns a fresh value safe to mutate.
func ReferenceParams() *config.Parameters {
	return &config.Parameters{
		InitialStateProbs:      config.StateProbs{Inactive: 0.2, Employed: 0.7, Retired: 0.1, Deceased: 0.0},
		TransitionFromInactive: config.TransitionRow{ToInactive: 0.75, ToEmployed: 0.2, ToRetired: 0.04, ToDeceased: 0.01},
		TransitionFromEmployed: config.TransitionRow{ToInactive: 0.05, ToEmployed: 0.9, ToRetired: 0.04, ToDeceased: 0.01},
		TransitionFromRetired:  config.TransitionRow{ToInactive: 0.02, ToEmployed: 0.02, ToRetired: 0.95, ToDeceased: 0.01},
		Mortality:              config.MortalityParams{BaseMortality: 0.0005, AgeExponent: 0.08},
		Income:                 config.IncomeParams{LognormalMean: math.Log(50000), LognormalStd: 0.5, CareerProgression: 0.025},
		Ages:                   config.AgeParams{MinAge: 25, DeathAge: 95},
	}
}
