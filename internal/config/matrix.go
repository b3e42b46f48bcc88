package config

// TransitionMatrix assembles the 4x4 row-stochastic base transition matrix
// from the parameter rows, one row per source state in code order with the
// deceased row fixed to certain self-transition. Rows with a positive sum
// are normalized by it; rows summing to 0 are left as given and callers
// must not rely on them being meaningful.
//
// This is an analysis view. The generator's own per-step sampling does not
// use it; it recomputes distributions contextually with age-dependent
// mortality applied.
func TransitionMatrix(params *Parameters) [4][4]float64 {
	m := [4][4]float64{
		params.TransitionFromInactive.Vector(),
		params.TransitionFromEmployed.Vector(),
		params.TransitionFromRetired.Vector(),
		{0, 0, 0, 1},
	}
	for i := range m {
		var sum float64
		for _, v := range m[i] {
			sum += v
		}
		if sum > 0 {
			for j := range m[i] {
				m[i][j] /= sum
			}
		}
	}
	return m
}
