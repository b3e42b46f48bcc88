package career

import "fmt"

// State is one of the 4 mutually exclusive life-course states. The integer
// codes are part of the dataset format and must not be reordered.
type State int

const (
	StateInactive State = iota // 0: not employed, not retired
	StateEmployed              // 1: actively employed, earns income
	StateRetired               // 2: exited the labor force
	StateDeceased              // 3: absorbing terminal state
)

// StateCount is the number of states. Transition distributions are fixed
// [StateCount]float64 vectors indexed by state code.
const StateCount = 4

var stateNames = [StateCount]string{"inactive", "employed", "retired", "deceased"}

// Name returns the lowercase label used for the dataset's state_name column.
func (s State) Name() string {
	if s < 0 || s >= StateCount {
		return fmt.Sprintf("unknown(%d)", int(s))
	}
	return stateNames[s]
}

// String implements fmt.Stringer.
func (s State) String() string {
	return s.Name()
}

// Valid reports whether s is one of the 4 defined state codes.
func (s State) Valid() bool {
	return s >= 0 && s < StateCount
}

// ParseState maps a state_name label back to its State code.
func ParseState(name string) (State, error) {
	for i, n := range stateNames {
		if n == name {
			return State(i), nil
		}
	}
	return 0, fmt.Errorf("unknown state name %q", name)
}
