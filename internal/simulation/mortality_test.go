package simulation_test

import (
	"testing"

	"github.com/lifecourse/careergen/internal/config"
	"github.com/lifecourse/careergen/internal/simulation"
)

// TestMortalityRisesWithAge validates the Gompertz mortality curve at the
// population level. The excess hazard grows as base * e^(exponent * years),
// so the empirical death rate per person-year alive over ages 70-80 must
// exceed the rate over ages 30-40 by a wide margin. With the reference
// parameters the old band runs roughly four times the young band.
func TestMortalityRisesWithAge(t *testing.T) {
	r := simulation.NewRunner(t)

	result := r.Run(simulation.Scenario{
		Name:        "mortality-curve",
		Seed:        3,
		Individuals: 1000,
	})

	simulation.AssertHazardRises(t, result, 30, 40, 70, 80)

	young := simulation.Hazard(result, 30, 40)
	old := simulation.Hazard(result, 70, 80)
	if young <= 0 {
		t.Errorf("expected some deaths in ages 30-40, hazard %v", young)
	}
	if old < 2*young {
		t.Errorf("expected hazard at 70-80 to dominate 30-40, got %.5f vs %.5f", old, young)
	}
}

// TestMortality_HighBase cranks the base mortality until survival to the
// horizon is impossible. Everybody dies and the trajectory shape still
// holds, with the remaining years bulk-filled as deceased.
func TestMortality_HighBase(t *testing.T) {
	r := simulation.NewRunner(t)

	result := r.Run(simulation.Scenario{
		Name:        "lethal-mortality",
		Seed:        6,
		Individuals: 200,
		MutateParams: func(p *config.Parameters) {
			p.Mortality.BaseMortality = 1.0
			p.Mortality.AgeExponent = 0.2
		},
	})

	simulation.AssertAbsorption(t, result)
	simulation.AssertTrajectoryShape(t, result)

	if alive := simulation.AliveAt(result, result.Params.Ages.DeathAge); alive != 0 {
		t.Errorf("expected no survivors under lethal mortality, got %d", alive)
	}
	if deaths := simulation.TotalDeaths(result); deaths != 200 {
		t.Errorf("expected all 200 individuals to die, got %d", deaths)
	}
}

// TestMortality_NearZero keeps only the fixed per-row death probability and
// shrinks the excess term to nothing. Most of the population survives the
// full horizon.
func TestMortality_NearZero(t *testing.T) {
	r := simulation.NewRunner(t)

	result := r.Run(simulation.Scenario{
		Name:        "minimal-mortality",
		Seed:        8,
		Individuals: 300,
		MutateParams: func(p *config.Parameters) {
			p.Mortality.BaseMortality = 1e-9
			p.Mortality.AgeExponent = 0.01
		},
	})

	simulation.AssertAbsorption(t, result)

	// Survival over 70 transitions at roughly 1% death per year is about
	// half the population.
	if alive := simulation.AliveAt(result, result.Params.Ages.DeathAge); alive < 60 {
		t.Errorf("expected most of 300 individuals to survive minimal mortality, got %d alive", alive)
	}
}
