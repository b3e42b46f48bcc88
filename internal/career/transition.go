package career

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/lifecourse/careergen/internal/constants"
)

// ErrSampling indicates a probability vector violated its normalization
// invariant even after exact-sum correction. It is never expected during
// normal operation and points at a math bug or poisoned parameters.
var ErrSampling = errors.New("sampling invariant violated")

// deceasedRow is the fixed transition distribution out of the absorbing
// state: certainty of staying deceased, exact zeros elsewhere.
var deceasedRow = [StateCount]float64{StateDeceased: 1}

// mortalityMultipliers scale the age-dependent excess mortality per source
// state: employed individuals die less, retirees die more. The deceased
// entry is never read; the absorbing row is exempt from adjustment.
var mortalityMultipliers = [StateCount]float64{
	StateInactive: 1.0,
	StateEmployed: 0.8,
	StateRetired:  1.5,
}

// TransitionProbs computes the one-step transition distribution out of
// state at the given age:
//
//  1. The deceased row is returned fixed, without adjustment.
//  2. Otherwise the configured base row is taken and the Gompertz excess
//     mortality, scaled by the state multiplier, is added raw to the
//     deceased component. The component may exceed its configured base
//     value; no cap is applied.
//  3. The 4-vector is re-normalized so it sums to exactly 1.0 (see
//     normalizeExact). A zeroed base row falls back to a uniform
//     distribution instead of failing.
func (g *Generator) TransitionProbs(state State, age int) ([StateCount]float64, error) {
	if !state.Valid() {
		return [StateCount]float64{}, fmt.Errorf("invalid state code %d", int(state))
	}
	if state == StateDeceased {
		return deceasedRow, nil
	}

	probs := g.baseRows[state]
	probs[StateDeceased] += mortalityMultipliers[state] * g.excessMortality(age)

	if err := normalizeExact(&probs); err != nil {
		return [StateCount]float64{}, fmt.Errorf("transition from %s at age %d: %w", state, age, err)
	}
	return probs, nil
}

// excessMortality evaluates the Gompertz curve at the given age:
// base_mortality * exp(age_exponent * (age - anchor)), anchored at
// CareerStartAge.
func (g *Generator) excessMortality(age int) float64 {
	m := g.params.Mortality
	return m.BaseMortality * math.Exp(m.AgeExponent*float64(age-constants.CareerStartAge))
}

// normalizeExact rescales probs in place so its components sum to exactly
// 1.0 in float64:
//
//   - A zero-sum vector is replaced by the uniform distribution (degenerate
//     rows are recovered locally, never surfaced as fatal).
//   - After division, any residual deviation beyond ResidualTolerance is
//     folded into the deceased component, which is reassigned to
//     1 - sum(others). Categorical sampling downstream requires the exact
//     sum; a single division pass does not guarantee it.
//   - A deviation beyond NormTolerance that survives correction returns
//     ErrSampling. A NaN sum counts as a deviation at both stages, so an
//     overflowed mortality term collapses to the absorbing row instead of
//     leaking NaN into sampling.
func normalizeExact(probs *[StateCount]float64) error {
	var total float64
	for _, p := range probs {
		total += p
	}
	if total == 0 {
		for i := range probs {
			probs[i] = 1.0 / StateCount
		}
		return nil
	}

	for i := range probs {
		probs[i] /= total
	}

	var sum float64
	for _, p := range probs {
		sum += p
	}
	if diff := sum - 1; math.IsNaN(diff) || diff > constants.ResidualTolerance || diff < -constants.ResidualTolerance {
		var others float64
		for i, p := range probs {
			if State(i) != StateDeceased {
				others += p
			}
		}
		probs[StateDeceased] = 1 - others
	}

	sum = 0
	for _, p := range probs {
		sum += p
	}
	if math.IsNaN(sum) || math.Abs(sum-1) > constants.NormTolerance {
		return fmt.Errorf("%w: distribution sums to %v after correction", ErrSampling, sum)
	}
	return nil
}

// sampleState draws a state from a normalized distribution using a single
// uniform draw and a cumulative scan. The final bucket absorbs whatever
// residual float error survives normalization, which normalizeExact bounds
// by ResidualTolerance.
func sampleState(rng *rand.Rand, probs [StateCount]float64) State {
	u := rng.Float64()
	var cum float64
	for i := 0; i < StateCount-1; i++ {
		cum += probs[i]
		if u < cum {
			return State(i)
		}
	}
	return StateDeceased
}
