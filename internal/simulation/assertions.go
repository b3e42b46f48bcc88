package simulation

import (
	"math"
	"testing"

	"github.com/lifecourse/careergen/internal/career"
	"github.com/lifecourse/careergen/internal/stats"
)

// AssertInitialDistribution asserts that the tallied initial states are
// consistent with the configured initial distribution, using a
// chi-squared goodness-of-fit comparison at significance level alpha.
func AssertInitialDistribution(t *testing.T, result SimulationResult, alpha float64) {
	t.Helper()

	probs := result.Params.InitialStateProbs.Vector()
	var total float64
	for _, p := range probs {
		total += p
	}
	if total <= 0 {
		t.Fatal("AssertInitialDistribution: initial distribution has no mass")
	}

	var n float64
	for _, c := range result.InitialCounts {
		n += c
	}

	observed := make([]float64, career.StateCount)
	expected := make([]float64, career.StateCount)
	for i := range probs {
		observed[i] = result.InitialCounts[i]
		expected[i] = probs[i] / total * n
	}

	// Zero-probability states must not occur at all; ChiSquare excludes
	// them from the cells.
	for i, e := range expected {
		if e == 0 && observed[i] > 0 {
			t.Errorf("AssertInitialDistribution: state %s observed %v times despite zero probability",
				career.State(i), observed[i])
		}
	}

	stat, df := stats.ChiSquare(observed, expected)
	if df < 1 {
		// A single-cell distribution leaves nothing to test beyond the
		// zero-probability check above.
		return
	}
	if stats.ChiSquareExceeds(stat, df, alpha) {
		t.Errorf("AssertInitialDistribution: chi-squared %.3f (df=%d) rejects the configured distribution at alpha=%v",
			stat, df, alpha)
	}
}

// AssertAbsorption asserts that no individual leaves the deceased state
// and that deceased person-years carry exactly zero income.
func AssertAbsorption(t *testing.T, result SimulationResult) {
	t.Helper()

	lastPerson := -1
	died := false
	for _, rec := range result.Dataset.Records {
		if rec.PersonID != lastPerson {
			lastPerson = rec.PersonID
			died = false
		}
		if died && rec.State != career.StateDeceased {
			t.Errorf("AssertAbsorption: person %d is %s at age %d after death",
				rec.PersonID, rec.State, rec.Age)
		}
		if rec.State == career.StateDeceased {
			died = true
			if rec.Income != 0.0 {
				t.Errorf("AssertAbsorption: person %d has income %v while deceased at age %d",
					rec.PersonID, rec.Income, rec.Age)
			}
		}
	}
}

// AssertIncomeMatchesState asserts that income is exactly 0.0 outside
// employment and strictly positive during it.
func AssertIncomeMatchesState(t *testing.T, result SimulationResult) {
	t.Helper()

	for _, rec := range result.Dataset.Records {
		switch {
		case rec.State == career.StateEmployed:
			if rec.Income <= 0 {
				t.Errorf("AssertIncomeMatchesState: person %d employed at age %d with income %v",
					rec.PersonID, rec.Age, rec.Income)
			}
		case rec.Income != 0.0:
			t.Errorf("AssertIncomeMatchesState: person %d is %s at age %d with income %v",
				rec.PersonID, rec.State, rec.Age, rec.Income)
		}
	}
}

// AssertTrajectoryShape asserts that every individual covers each age of
// the configured range exactly once, in order.
func AssertTrajectoryShape(t *testing.T, result SimulationResult) {
	t.Helper()

	ages := result.Params.Ages
	span := ages.DeathAge - ages.MinAge + 1

	perPerson := make(map[int]int)
	lastPerson := -1
	nextAge := 0
	for _, rec := range result.Dataset.Records {
		if rec.PersonID != lastPerson {
			lastPerson = rec.PersonID
			nextAge = ages.MinAge
		}
		if rec.Age != nextAge {
			t.Fatalf("AssertTrajectoryShape: person %d: expected age %d, found %d",
				rec.PersonID, nextAge, rec.Age)
		}
		nextAge++
		perPerson[rec.PersonID]++
	}
	for id, n := range perPerson {
		if n != span {
			t.Errorf("AssertTrajectoryShape: person %d has %d records, want %d", id, n, span)
		}
	}
}

// AssertHazardRises asserts that the empirical death hazard over the old
// age band exceeds the hazard over the young band.
func AssertHazardRises(t *testing.T, result SimulationResult, youngLo, youngHi, oldLo, oldHi int) {
	t.Helper()

	young := Hazard(result, youngLo, youngHi)
	old := Hazard(result, oldLo, oldHi)
	if old <= young {
		t.Errorf("AssertHazardRises: hazard did not rise: ages %d-%d %.5f vs ages %d-%d %.5f",
			youngLo, youngHi, young, oldLo, oldHi, old)
	}
}

// AssertMedianIncomeNear asserts that the median employed income at one
// age is within relTol of want.
func AssertMedianIncomeNear(t *testing.T, result SimulationResult, age int, want, relTol float64) {
	t.Helper()

	got := MedianIncomeAtAge(result, age)
	if math.Abs(got-want) > relTol*want {
		t.Errorf("AssertMedianIncomeNear: median income at age %d is %.0f, want within %.0f%% of %.0f",
			age, got, relTol*100, want)
	}
}

// Hazard computes deaths per person-year alive over an inclusive age
// band. Individuals whose first deceased record falls at an age were
// alive entering it and count toward the denominator.
func Hazard(result SimulationResult, lo, hi int) float64 {
	var deaths, alive float64
	for age := lo; age <= hi; age++ {
		died := float64(result.DeathsByAge[age])
		deaths += died

		counts := result.StateCounts[age]
		for s := career.State(0); s < career.StateDeceased; s++ {
			alive += counts[s]
		}
		alive += died
	}
	if alive == 0 {
		return 0
	}
	return deaths / alive
}

// MedianIncomeAtAge returns the median employed income at one age.
func MedianIncomeAtAge(result SimulationResult, age int) float64 {
	var incomes []float64
	for _, rec := range result.Dataset.Records {
		if rec.Age == age && rec.State == career.StateEmployed {
			incomes = append(incomes, rec.Income)
		}
	}
	return stats.Median(incomes)
}

// AliveAt returns how many individuals hold a non-deceased state at age.
func AliveAt(result SimulationResult, age int) int {
	counts := result.StateCounts[age]
	var total float64
	for s := career.State(0); s < career.StateDeceased; s++ {
		total += counts[s]
	}
	return int(total)
}

// TotalDeaths returns the number of individuals who died during the run.
func TotalDeaths(result SimulationResult) int {
	total := 0
	for _, n := range result.DeathsByAge {
		total += n
	}
	return total
}
