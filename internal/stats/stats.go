// Package stats provides the small set of numeric helpers shared by the
// dataset summary, the validation report, and the statistical tests:
// mean, median, standard deviation, and an upper-tail chi-squared
// comparison against a fixed critical-value table.
package stats

import (
	"fmt"
	"math"
	"sort"
)

// Mean returns the arithmetic mean of vals, or 0 for an empty slice.
func Mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// Median returns the middle value of vals, averaging the two middle values
// for even lengths. Returns 0 for an empty slice. vals is not mutated.
func Median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// StdDev returns the sample standard deviation of vals (n-1 denominator),
// or 0 when fewer than two values are present.
func StdDev(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	mean := Mean(vals)
	var sum float64
	for _, v := range vals {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(vals)-1))
}

// ChiSquare returns the chi-squared statistic between observed and
// expected counts along with the degrees of freedom. Cells with
// non-positive expectation are skipped and excluded from the degrees of
// freedom, matching the usual convention for structurally empty
// categories.
func ChiSquare(observed, expected []float64) (stat float64, df int) {
	n := len(observed)
	if len(expected) < n {
		n = len(expected)
	}
	cells := 0
	for i := 0; i < n; i++ {
		if expected[i] <= 0 {
			continue
		}
		d := observed[i] - expected[i]
		stat += d * d / expected[i]
		cells++
	}
	if cells > 0 {
		df = cells - 1
	}
	return stat, df
}

// chiSquareCritical holds upper-tail critical values of the chi-squared
// distribution, indexed by degrees of freedom then significance level.
var chiSquareCritical = map[int]map[float64]float64{
	1: {0.05: 3.841, 0.01: 6.635, 0.005: 7.879},
	2: {0.05: 5.991, 0.01: 9.210, 0.005: 10.597},
	3: {0.05: 7.815, 0.01: 11.345, 0.005: 12.838},
	4: {0.05: 9.488, 0.01: 13.277, 0.005: 14.860},
	5: {0.05: 11.070, 0.01: 15.086, 0.005: 16.750},
	6: {0.05: 12.592, 0.01: 16.812, 0.005: 18.548},
}

// ChiSquareExceeds reports whether stat exceeds the upper-tail critical
// value at significance level alpha for df degrees of freedom, i.e. the
// observed counts differ from the expected ones with p < alpha. Supported
// levels are 0.05, 0.01, and 0.005 for df 1 through 6; anything else
// panics, since the table is a test-support surface and a miss is a
// programming error.
func ChiSquareExceeds(stat float64, df int, alpha float64) bool {
	crit, ok := chiSquareCritical[df][alpha]
	if !ok {
		panic(fmt.Sprintf("stats: no chi-squared critical value for df=%d alpha=%v", df, alpha))
	}
	return stat > crit
}
