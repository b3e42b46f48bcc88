package dataset

import (
	"github.com/lifecourse/careergen/internal/career"
	"github.com/lifecourse/careergen/internal/stats"
)

// Summary describes a generated dataset: row and person counts, the
// year and age ranges covered, person-year counts per state, and income
// statistics over employed rows. Computing a Summary never modifies the
// dataset.
type Summary struct {
	TotalRecords int            `json:"total_records"`
	Individuals  int            `json:"individuals"`
	YearMin      int            `json:"year_min"`
	YearMax      int            `json:"year_max"`
	AgeMin       int            `json:"age_min"`
	AgeMax       int            `json:"age_max"`
	StateCounts  map[string]int `json:"state_counts"`
	Income       IncomeSummary  `json:"employment_income"`
}

// IncomeSummary holds income statistics restricted to employed
// person-years. All fields are zero when no one is employed.
type IncomeSummary struct {
	Median float64 `json:"median"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
}

// Summarize computes the dataset summary. State counts always contain
// all four states, so callers can rely on the keys being present even
// when a state never occurs.
func (d *Dataset) Summarize() Summary {
	s := Summary{
		TotalRecords: d.Len(),
		Individuals:  d.Persons(),
		StateCounts:  make(map[string]int, career.StateCount),
	}
	for state := career.State(0); state < career.StateCount; state++ {
		s.StateCounts[state.Name()] = 0
	}
	if len(d.Records) == 0 {
		return s
	}

	s.YearMin, s.YearMax = d.Records[0].Year, d.Records[0].Year
	s.AgeMin, s.AgeMax = d.Records[0].Age, d.Records[0].Age

	var incomes []float64
	for _, r := range d.Records {
		if r.Year < s.YearMin {
			s.YearMin = r.Year
		}
		if r.Year > s.YearMax {
			s.YearMax = r.Year
		}
		if r.Age < s.AgeMin {
			s.AgeMin = r.Age
		}
		if r.Age > s.AgeMax {
			s.AgeMax = r.Age
		}
		s.StateCounts[r.State.Name()]++
		if r.State == career.StateEmployed {
			incomes = append(incomes, r.Income)
		}
	}

	s.Income = IncomeSummary{
		Median: stats.Median(incomes),
		Mean:   stats.Mean(incomes),
		Std:    stats.StdDev(incomes),
	}
	return s
}
