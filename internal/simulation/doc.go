// Package simulation provides a population-level test harness for
// validating the statistical behavior of trajectory generation.
//
// The simulation exercises the real generator and dataset pipeline, no
// mocks. Scenarios describe a parameter set, a seed, and a population
// size; the runner generates the population and tallies initial states,
// per-age state counts, deaths, and employed incomes for property-based
// assertions, including chi-squared comparisons against the configured
// distributions.
//
// Usage:
//
//	func TestInitialDistribution(t *testing.T) {
//	    r := simulation.NewRunner(t)
//	    result := r.Run(simulation.Scenario{
//	        Name:        "initial-distribution",
//	        Seed:        42,
//	        Individuals: 1000,
//	    })
//	    simulation.AssertInitialDistribution(t, result, 0.005)
//	}
package simulation
