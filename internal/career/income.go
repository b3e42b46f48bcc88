package career

import (
	"math"

	"github.com/lifecourse/careergen/internal/constants"
)

// sampleIncome draws income for one person-year. States other than
// employed earn exactly 0.0 and consume no randomness. Employed income is
// log-normal: one draw from the underlying normal whose mean carries a
// linear career-progression bonus for every year past CareerStartAge, then
// exponentiated. The result is floored at 0.0 to guard numeric edge cases;
// log-normal support is already non-negative.
func (g *Generator) sampleIncome(age int, state State) float64 {
	if state != StateEmployed {
		return 0.0
	}

	inc := g.params.Income
	mean := inc.LognormalMean
	if years := age - constants.CareerStartAge; years > 0 {
		mean += inc.CareerProgression * float64(years)
	}

	income := math.Exp(g.rng.NormFloat64()*inc.LognormalStd + mean)
	if income < 0 {
		income = 0
	}
	return income
}
