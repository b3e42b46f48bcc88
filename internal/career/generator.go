// Package career implements the per-individual trajectory state machine: a
// discrete-time absorbing Markov chain over 4 life-course states with
// age-dependent, state-dependent transition probabilities, coupled to a
// conditional log-normal income sampler.
//
// A Generator is constructed once from validated parameters and an explicit
// random source, then invoked per individual. Trajectories depend only on
// the immutable parameters and the random stream, so individuals are
// independent; with a single shared stream, reproducibility under a fixed
// seed is generation-order-dependent.
package career

import (
	"fmt"
	"math/rand"

	"github.com/lifecourse/careergen/internal/config"
	"github.com/lifecourse/careergen/internal/constants"
)

// Record is one row of a trajectory: the state and income of one person at
// one age. Year is derived from age against the fixed epoch. Income is
// exactly 0.0 whenever State != StateEmployed.
type Record struct {
	PersonID int
	Year     int
	Age      int
	State    State
	Income   float64
}

// Generator produces life trajectories from an immutable parameter set and
// a single random stream. It holds no cross-individual mutable state, but
// it is not safe for concurrent use: the stream is shared.
type Generator struct {
	params  *config.Parameters
	rng     *rand.Rand
	initial [StateCount]float64

	// baseRows is the fixed-size base transition table indexed by source
	// state code; the deceased row is pinned to certain self-transition.
	baseRows [StateCount][StateCount]float64
}

// New creates a Generator seeded with the given seed. The seed is used as
// given; callers wanting a time-derived seed resolve it themselves so the
// chosen value can be reported.
func New(params *config.Parameters, seed int64) *Generator {
	return NewWithRand(params, rand.New(rand.NewSource(seed)))
}

// NewWithRand creates a Generator that draws from the provided source.
func NewWithRand(params *config.Parameters, rng *rand.Rand) *Generator {
	return &Generator{
		params:  params,
		rng:     rng,
		initial: params.InitialStateProbs.Vector(),
		baseRows: [StateCount][StateCount]float64{
			StateInactive: params.TransitionFromInactive.Vector(),
			StateEmployed: params.TransitionFromEmployed.Vector(),
			StateRetired:  params.TransitionFromRetired.Vector(),
			StateDeceased: deceasedRow,
		},
	}
}

// Params returns the parameter set the generator was built from.
func (g *Generator) Params() *config.Parameters {
	return g.params
}

// GenerateCareer simulates one full life trajectory. The result always
// holds exactly death_age-min_age+1 records with consecutive strictly
// increasing ages, each age exactly once. Once the individual transitions
// to deceased, every remaining age is emitted as deceased with income 0.0.
func (g *Generator) GenerateCareer(personID int) ([]Record, error) {
	ages := g.params.Ages
	records := make([]Record, 0, ages.DeathAge-ages.MinAge+1)

	state, err := g.initialState()
	if err != nil {
		return nil, fmt.Errorf("person %d: %w", personID, err)
	}

	for age := ages.MinAge; age <= ages.DeathAge; age++ {
		records = append(records, g.record(personID, age, state))
		if age == ages.DeathAge {
			break
		}
		if state == StateDeceased {
			continue
		}

		probs, err := g.TransitionProbs(state, age)
		if err != nil {
			return nil, fmt.Errorf("person %d: %w", personID, err)
		}
		next := sampleState(g.rng, probs)
		if next == StateDeceased {
			// Filling the remaining ages in one pass is equivalent to
			// looping with the state pinned at deceased: neither path
			// consumes randomness for an absorbed individual.
			for a := age + 1; a <= ages.DeathAge; a++ {
				records = append(records, g.record(personID, a, StateDeceased))
			}
			break
		}
		state = next
	}
	return records, nil
}

// initialState samples the state at min_age from the configured initial
// distribution. The distribution runs through the same exact-sum
// normalization as transition rows, so it need not pre-sum to 1; an
// all-zero distribution falls back to uniform.
func (g *Generator) initialState() (State, error) {
	probs := g.initial
	if err := normalizeExact(&probs); err != nil {
		return 0, fmt.Errorf("initial state distribution: %w", err)
	}
	return sampleState(g.rng, probs), nil
}

// record emits the row for one person-year, sampling income for the
// current state.
func (g *Generator) record(personID, age int, state State) Record {
	return Record{
		PersonID: personID,
		Year:     constants.EpochYear + age - g.params.Ages.MinAge,
		Age:      age,
		State:    state,
		Income:   g.sampleIncome(age, state),
	}
}
