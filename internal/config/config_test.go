package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const validYAML = `initial_state_probs:
  inactive: 0.2
  employed: 0.7
  retired: 0.1
  deceased: 0.0

transition_from_inactive:
  to_inactive: 0.75
  to_employed: 0.2
  to_retired: 0.04
  to_deceased: 0.01

transition_from_employed:
  to_inactive: 0.05
  to_employed: 0.9
  to_retired: 0.04
  to_deceased: 0.01

transition_from_retired:
  to_inactive: 0.02
  to_employed: 0.02
  to_retired: 0.95
  to_deceased: 0.01

mortality_params:
  base_mortality: 0.0005
  age_exponent: 0.08

income_params:
  lognormal_mean: 10.82
  lognormal_std: 0.5
  career_progression: 0.025

age_params:
  min_age: 25
  death_age: 95
`

func writeParams(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "params.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test params: %v", err)
	}
	return path
}

func validParams() *Parameters {
	return &Parameters{
		InitialStateProbs:      StateProbs{Inactive: 0.2, Employed: 0.7, Retired: 0.1, Deceased: 0.0},
		TransitionFromInactive: TransitionRow{ToInactive: 0.75, ToEmployed: 0.2, ToRetired: 0.04, ToDeceased: 0.01},
		TransitionFromEmployed: TransitionRow{ToInactive: 0.05, ToEmployed: 0.9, ToRetired: 0.04, ToDeceased: 0.01},
		TransitionFromRetired:  TransitionRow{ToInactive: 0.02, ToEmployed: 0.02, ToRetired: 0.95, ToDeceased: 0.01},
		Mortality:              MortalityParams{BaseMortality: 0.0005, AgeExponent: 0.08},
		Income:                 IncomeParams{LognormalMean: 10.82, LognormalStd: 0.5, CareerProgression: 0.025},
		Ages:                   AgeParams{MinAge: 25, DeathAge: 95},
	}
}

func TestLoad(t *testing.T) {
	params, err := Load(writeParams(t, validYAML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if params.InitialStateProbs.Employed != 0.7 {
		t.Errorf("expected initial employed 0.7, got %v", params.InitialStateProbs.Employed)
	}
	if params.TransitionFromInactive.ToInactive != 0.75 {
		t.Errorf("expected inactive self-transition 0.75, got %v", params.TransitionFromInactive.ToInactive)
	}
	if params.TransitionFromRetired.ToRetired != 0.95 {
		t.Errorf("expected retired self-transition 0.95, got %v", params.TransitionFromRetired.ToRetired)
	}
	if params.Mortality.BaseMortality != 0.0005 {
		t.Errorf("expected base mortality 0.0005, got %v", params.Mortality.BaseMortality)
	}
	if params.Mortality.AgeExponent != 0.08 {
		t.Errorf("expected age exponent 0.08, got %v", params.Mortality.AgeExponent)
	}
	if params.Income.LognormalMean != 10.82 {
		t.Errorf("expected lognormal mean 10.82, got %v", params.Income.LognormalMean)
	}
	if params.Ages.MinAge != 25 || params.Ages.DeathAge != 95 {
		t.Errorf("expected age range [25, 95], got [%d, %d]", params.Ages.MinAge, params.Ages.DeathAge)
	}
}

func TestLoad_SingleYearHorizon(t *testing.T) {
	p := validParams()
	p.Ages = AgeParams{MinAge: 30, DeathAge: 30}
	data, err := yaml.Marshal(p)
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}

	params, err := Load(writeParams(t, string(data)))
	if err != nil {
		t.Fatalf("Load failed for death_age == min_age: %v", err)
	}
	if params.Ages.MinAge != 30 || params.Ages.DeathAge != 30 {
		t.Errorf("expected age range [30, 30], got [%d, %d]", params.Ages.MinAge, params.Ages.DeathAge)
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := writeParams(t, "initial_state_probs: [not, a, mapping")
	_, err := Load(path)

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.Path != path {
		t.Errorf("expected path %q in error, got %q", path, parseErr.Path)
	}
	if parseErr.Unwrap() == nil {
		t.Error("expected ParseError to wrap the decoder error")
	}
}

func TestLoad_TypeMismatch(t *testing.T) {
	content := strings.Replace(validYAML, "base_mortality: 0.0005", "base_mortality: very high", 1)
	_, err := Load(writeParams(t, content))

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError for non-numeric scalar, got %v", err)
	}
}

func TestLoad_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		remove string
		field  string
		reason string
	}{
		{
			name:   "missing age_exponent",
			remove: "  age_exponent: 0.08\n",
			field:  "mortality_params.age_exponent",
			reason: "required field is missing",
		},
		{
			name:   "missing mortality section",
			remove: "mortality_params:\n  base_mortality: 0.0005\n  age_exponent: 0.08\n",
			field:  "mortality_params",
			reason: "required section is missing",
		},
		{
			name:   "missing initial inactive probability",
			remove: "  inactive: 0.2\n",
			field:  "initial_state_probs.inactive",
			reason: "required field is missing",
		},
		{
			name:   "missing retired transition row",
			remove: "transition_from_retired:\n  to_inactive: 0.02\n  to_employed: 0.02\n  to_retired: 0.95\n  to_deceased: 0.01\n",
			field:  "transition_from_retired",
			reason: "required section is missing",
		},
		{
			name:   "missing death_age",
			remove: "  death_age: 95\n",
			field:  "age_params.death_age",
			reason: "required field is missing",
		},
		{
			name:   "missing career_progression",
			remove: "  career_progression: 0.025\n",
			field:  "income_params.career_progression",
			reason: "required field is missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := strings.Replace(validYAML, tt.remove, "", 1)
			if content == validYAML {
				t.Fatalf("removal target not found in document: %q", tt.remove)
			}

			params, err := Load(writeParams(t, content))
			if params != nil {
				t.Error("expected nil parameters on validation failure")
			}
			assertValidationError(t, err, tt.field, tt.reason)
		})
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Parameters)
		field  string
		reason string
	}{
		{
			name:   "probability above one",
			mutate: func(p *Parameters) { p.InitialStateProbs.Employed = 1.5 },
			field:  "initial_state_probs.employed",
			reason: "probability must be in [0, 1]",
		},
		{
			name:   "negative probability",
			mutate: func(p *Parameters) { p.TransitionFromEmployed.ToDeceased = -0.1 },
			field:  "transition_from_employed.to_deceased",
			reason: "probability must be in [0, 1]",
		},
		{
			name:   "base mortality above one",
			mutate: func(p *Parameters) { p.Mortality.BaseMortality = 1.2 },
			field:  "mortality_params.base_mortality",
			reason: "probability must be in [0, 1]",
		},
		{
			name:   "base mortality not a number",
			mutate: func(p *Parameters) { p.Mortality.BaseMortality = math.NaN() },
			field:  "mortality_params.base_mortality",
			reason: "probability must be in [0, 1]",
		},
		{
			name:   "zero age exponent",
			mutate: func(p *Parameters) { p.Mortality.AgeExponent = 0 },
			field:  "mortality_params.age_exponent",
			reason: "must be strictly positive",
		},
		{
			name:   "negative age exponent",
			mutate: func(p *Parameters) { p.Mortality.AgeExponent = -0.08 },
			field:  "mortality_params.age_exponent",
			reason: "must be strictly positive",
		},
		{
			name:   "zero income spread",
			mutate: func(p *Parameters) { p.Income.LognormalStd = 0 },
			field:  "income_params.lognormal_std",
			reason: "must be strictly positive",
		},
		{
			name:   "negative min_age",
			mutate: func(p *Parameters) { p.Ages.MinAge = -5 },
			field:  "age_params.min_age",
			reason: "must be a non-negative integer",
		},
		{
			name:   "zero death_age",
			mutate: func(p *Parameters) { p.Ages.DeathAge = 0 },
			field:  "age_params.death_age",
			reason: "must be a positive integer",
		},
		{
			name:   "death_age below min_age",
			mutate: func(p *Parameters) { p.Ages.MinAge = 40; p.Ages.DeathAge = 30 },
			field:  "age_params.death_age",
			reason: "must be at least min_age (40)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(p)
			data, err := yaml.Marshal(p)
			if err != nil {
				t.Fatalf("failed to marshal params: %v", err)
			}

			params, err := Load(writeParams(t, string(data)))
			if params != nil {
				t.Error("expected nil parameters on validation failure")
			}
			assertValidationError(t, err, tt.field, tt.reason)
		})
	}
}

func assertValidationError(t *testing.T, err error, field, reason string) {
	t.Helper()

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.Field != field {
		t.Errorf("expected field %q, got %q", field, vErr.Field)
	}
	if !strings.Contains(vErr.Reason, reason) {
		t.Errorf("expected reason containing %q, got %q", reason, vErr.Reason)
	}
	if !strings.Contains(vErr.Error(), field) {
		t.Errorf("expected error message to name the field, got %q", vErr.Error())
	}
}

func TestVector_StateCodeOrder(t *testing.T) {
	probs := StateProbs{Inactive: 0.1, Employed: 0.2, Retired: 0.3, Deceased: 0.4}
	if got := probs.Vector(); got != [4]float64{0.1, 0.2, 0.3, 0.4} {
		t.Errorf("unexpected state probs vector: %v", got)
	}

	row := TransitionRow{ToInactive: 0.4, ToEmployed: 0.3, ToRetired: 0.2, ToDeceased: 0.1}
	if got := row.Vector(); got != [4]float64{0.4, 0.3, 0.2, 0.1} {
		t.Errorf("unexpected transition row vector: %v", got)
	}
}

func TestTransitionMatrix(t *testing.T) {
	p := validParams()
	// Rows need not pre-sum to 1; the matrix view normalizes them.
	p.TransitionFromInactive = TransitionRow{ToInactive: 0.2, ToEmployed: 0.2, ToRetired: 0, ToDeceased: 0}

	m := TransitionMatrix(p)

	if m[0] != [4]float64{0.5, 0.5, 0, 0} {
		t.Errorf("expected normalized inactive row [0.5 0.5 0 0], got %v", m[0])
	}
	if m[3] != [4]float64{0, 0, 0, 1} {
		t.Errorf("expected absorbing deceased row [0 0 0 1], got %v", m[3])
	}
	for i := 0; i < 3; i++ {
		var sum float64
		for _, v := range m[i] {
			sum += v
		}
		if math.Abs(sum-1) > 1e-12 {
			t.Errorf("row %d sums to %v after normalization", i, sum)
		}
	}
}

func TestTransitionMatrix_ZeroRow(t *testing.T) {
	p := validParams()
	p.TransitionFromRetired = TransitionRow{}

	m := TransitionMatrix(p)
	if m[2] != [4]float64{} {
		t.Errorf("expected zero retired row to stay zero, got %v", m[2])
	}
}
