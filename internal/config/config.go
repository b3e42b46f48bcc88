// Package config loads and validates the parameter document that drives
// trajectory generation. Validation is all-or-nothing: a Parameters value
// is only ever returned fully checked, never partially populated, and
// failures carry a typed kind (ErrNotFound, ParseError, ValidationError)
// so callers can tell a missing file from a malformed or invalid one.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// StateProbs is a probability mapping over the 4 states, keyed by state
// label in the document.
type StateProbs struct {
	Inactive float64 `yaml:"inactive"`
	Employed float64 `yaml:"employed"`
	Retired  float64 `yaml:"retired"`
	Deceased float64 `yaml:"deceased"`
}

// Vector returns the probabilities indexed by state code.
func (p StateProbs) Vector() [4]float64 {
	return [4]float64{p.Inactive, p.Employed, p.Retired, p.Deceased}
}

// TransitionRow holds the base transition probabilities out of one source
// state, before any mortality adjustment.
type TransitionRow struct {
	ToInactive float64 `yaml:"to_inactive"`
	ToEmployed float64 `yaml:"to_employed"`
	ToRetired  float64 `yaml:"to_retired"`
	ToDeceased float64 `yaml:"to_deceased"`
}

// Vector returns the row indexed by target state code.
func (r TransitionRow) Vector() [4]float64 {
	return [4]float64{r.ToInactive, r.ToEmployed, r.ToRetired, r.ToDeceased}
}

// MortalityParams are the Gompertz law coefficients.
type MortalityParams struct {
	// BaseMortality is the excess mortality at the anchor age. Must be in [0, 1].
	BaseMortality float64 `yaml:"base_mortality"`

	// AgeExponent is the exponential growth rate of mortality per year of
	// age. Must be strictly positive.
	AgeExponent float64 `yaml:"age_exponent"`
}

// IncomeParams parameterize the conditional log-normal income model.
type IncomeParams struct {
	// LognormalMean is the mean of the underlying normal at the anchor age.
	LognormalMean float64 `yaml:"lognormal_mean"`

	// LognormalStd is the standard deviation of the underlying normal.
	// Must be strictly positive.
	LognormalStd float64 `yaml:"lognormal_std"`

	// CareerProgression is the additive per-year bonus applied to the
	// underlying normal mean for every year past the anchor age.
	CareerProgression float64 `yaml:"career_progression"`
}

// AgeParams bound the inclusive simulation horizon.
type AgeParams struct {
	// MinAge is the first simulated age. Must be a non-negative integer.
	MinAge int `yaml:"min_age"`

	// DeathAge is the last simulated age. Must be a positive integer and
	// at least MinAge.
	DeathAge int `yaml:"death_age"`
}

// Parameters is the validated parameter set, immutable for the lifetime of
// a generator and consumed read-only.
type Parameters struct {
	InitialStateProbs      StateProbs      `yaml:"initial_state_probs"`
	TransitionFromInactive TransitionRow   `yaml:"transition_from_inactive"`
	TransitionFromEmployed TransitionRow   `yaml:"transition_from_employed"`
	TransitionFromRetired  TransitionRow   `yaml:"transition_from_retired"`
	Mortality              MortalityParams `yaml:"mortality_params"`
	Income                 IncomeParams    `yaml:"income_params"`
	Ages                   AgeParams       `yaml:"age_params"`
}

// Load reads, parses, and validates the parameter document at path.
// Failures are typed: a missing file wraps ErrNotFound, undecodable YAML
// yields a *ParseError, and a semantic violation yields a *ValidationError
// naming the offending field.
func Load(path string) (*Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read parameter file: %w", err)
	}

	var raw rawParameters
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	if err := raw.validate(); err != nil {
		return nil, err
	}
	return raw.build(), nil
}

// rawParameters mirrors Parameters with pointer fields so an absent key can
// be told apart from an explicit zero. Every required field missing from
// the document is a validation error, never a silent default.
type rawParameters struct {
	InitialStateProbs      *rawStateProbs      `yaml:"initial_state_probs"`
	TransitionFromInactive *rawTransitionRow   `yaml:"transition_from_inactive"`
	TransitionFromEmployed *rawTransitionRow   `yaml:"transition_from_employed"`
	TransitionFromRetired  *rawTransitionRow   `yaml:"transition_from_retired"`
	Mortality              *rawMortalityParams `yaml:"mortality_params"`
	Income                 *rawIncomeParams    `yaml:"income_params"`
	Ages                   *rawAgeParams       `yaml:"age_params"`
}

type rawStateProbs struct {
	Inactive *float64 `yaml:"inactive"`
	Employed *float64 `yaml:"employed"`
	Retired  *float64 `yaml:"retired"`
	Deceased *float64 `yaml:"deceased"`
}

type rawTransitionRow struct {
	ToInactive *float64 `yaml:"to_inactive"`
	ToEmployed *float64 `yaml:"to_employed"`
	ToRetired  *float64 `yaml:"to_retired"`
	ToDeceased *float64 `yaml:"to_deceased"`
}

type rawMortalityParams struct {
	BaseMortality *float64 `yaml:"base_mortality"`
	AgeExponent   *float64 `yaml:"age_exponent"`
}

type rawIncomeParams struct {
	LognormalMean     *float64 `yaml:"lognormal_mean"`
	LognormalStd      *float64 `yaml:"lognormal_std"`
	CareerProgression *float64 `yaml:"career_progression"`
}

type rawAgeParams struct {
	MinAge   *int `yaml:"min_age"`
	DeathAge *int `yaml:"death_age"`
}

// validate runs every semantic check and stops at the first violation.
func (r *rawParameters) validate() error {
	if err := validateStateProbs("initial_state_probs", r.InitialStateProbs); err != nil {
		return err
	}

	rows := []struct {
		field string
		row   *rawTransitionRow
	}{
		{"transition_from_inactive", r.TransitionFromInactive},
		{"transition_from_employed", r.TransitionFromEmployed},
		{"transition_from_retired", r.TransitionFromRetired},
	}
	for _, tr := range rows {
		if err := validateTransitionRow(tr.field, tr.row); err != nil {
			return err
		}
	}

	if err := r.validateMortality(); err != nil {
		return err
	}
	if err := r.validateIncome(); err != nil {
		return err
	}
	return r.validateAges()
}

func validateStateProbs(field string, p *rawStateProbs) error {
	if p == nil {
		return &ValidationError{Field: field, Reason: "required section is missing"}
	}
	probs := []struct {
		name string
		v    *float64
	}{
		{"inactive", p.Inactive},
		{"employed", p.Employed},
		{"retired", p.Retired},
		{"deceased", p.Deceased},
	}
	for _, pr := range probs {
		if err := validateProb(field+"."+pr.name, pr.v); err != nil {
			return err
		}
	}
	return nil
}

func validateTransitionRow(field string, r *rawTransitionRow) error {
	if r == nil {
		return &ValidationError{Field: field, Reason: "required section is missing"}
	}
	probs := []struct {
		name string
		v    *float64
	}{
		{"to_inactive", r.ToInactive},
		{"to_employed", r.ToEmployed},
		{"to_retired", r.ToRetired},
		{"to_deceased", r.ToDeceased},
	}
	for _, pr := range probs {
		if err := validateProb(field+"."+pr.name, pr.v); err != nil {
			return err
		}
	}
	return nil
}

func (r *rawParameters) validateMortality() error {
	m := r.Mortality
	if m == nil {
		return &ValidationError{Field: "mortality_params", Reason: "required section is missing"}
	}
	if err := validateProb("mortality_params.base_mortality", m.BaseMortality); err != nil {
		return err
	}
	if m.AgeExponent == nil {
		return &ValidationError{Field: "mortality_params.age_exponent", Reason: "required field is missing"}
	}
	if !isFinite(*m.AgeExponent) || *m.AgeExponent <= 0 {
		return &ValidationError{
			Field:  "mortality_params.age_exponent",
			Reason: fmt.Sprintf("must be strictly positive, got %v", *m.AgeExponent),
		}
	}
	return nil
}

func (r *rawParameters) validateIncome() error {
	i := r.Income
	if i == nil {
		return &ValidationError{Field: "income_params", Reason: "required section is missing"}
	}
	if i.LognormalMean == nil {
		return &ValidationError{Field: "income_params.lognormal_mean", Reason: "required field is missing"}
	}
	if !isFinite(*i.LognormalMean) {
		return &ValidationError{
			Field:  "income_params.lognormal_mean",
			Reason: fmt.Sprintf("must be a finite number, got %v", *i.LognormalMean),
		}
	}
	if i.LognormalStd == nil {
		return &ValidationError{Field: "income_params.lognormal_std", Reason: "required field is missing"}
	}
	if !isFinite(*i.LognormalStd) || *i.LognormalStd <= 0 {
		return &ValidationError{
			Field:  "income_params.lognormal_std",
			Reason: fmt.Sprintf("must be strictly positive, got %v", *i.LognormalStd),
		}
	}
	if i.CareerProgression == nil {
		return &ValidationError{Field: "income_params.career_progression", Reason: "required field is missing"}
	}
	if !isFinite(*i.CareerProgression) {
		return &ValidationError{
			Field:  "income_params.career_progression",
			Reason: fmt.Sprintf("must be a finite number, got %v", *i.CareerProgression),
		}
	}
	return nil
}

func (r *rawParameters) validateAges() error {
	a := r.Ages
	if a == nil {
		return &ValidationError{Field: "age_params", Reason: "required section is missing"}
	}
	if a.MinAge == nil {
		return &ValidationError{Field: "age_params.min_age", Reason: "required field is missing"}
	}
	if *a.MinAge < 0 {
		return &ValidationError{
			Field:  "age_params.min_age",
			Reason: fmt.Sprintf("must be a non-negative integer, got %d", *a.MinAge),
		}
	}
	if a.DeathAge == nil {
		return &ValidationError{Field: "age_params.death_age", Reason: "required field is missing"}
	}
	if *a.DeathAge <= 0 {
		return &ValidationError{
			Field:  "age_params.death_age",
			Reason: fmt.Sprintf("must be a positive integer, got %d", *a.DeathAge),
		}
	}
	if *a.DeathAge < *a.MinAge {
		return &ValidationError{
			Field:  "age_params.death_age",
			Reason: fmt.Sprintf("must be at least min_age (%d), got %d", *a.MinAge, *a.DeathAge),
		}
	}
	return nil
}

// validateProb checks one probability value: present, numeric, in [0, 1].
func validateProb(field string, v *float64) error {
	if v == nil {
		return &ValidationError{Field: field, Reason: "required field is missing"}
	}
	if !isFinite(*v) || *v < 0 || *v > 1 {
		return &ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("probability must be in [0, 1], got %v", *v),
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// build copies the raw document into a plain Parameters value. Only called
// after validate, when every pointer is known non-nil.
func (r *rawParameters) build() *Parameters {
	return &Parameters{
		InitialStateProbs: StateProbs{
			Inactive: *r.InitialStateProbs.Inactive,
			Employed: *r.InitialStateProbs.Employed,
			Retired:  *r.InitialStateProbs.Retired,
			Deceased: *r.InitialStateProbs.Deceased,
		},
		TransitionFromInactive: r.TransitionFromInactive.build(),
		TransitionFromEmployed: r.TransitionFromEmployed.build(),
		TransitionFromRetired:  r.TransitionFromRetired.build(),
		Mortality: MortalityParams{
			BaseMortality: *r.Mortality.BaseMortality,
			AgeExponent:   *r.Mortality.AgeExponent,
		},
		Income: IncomeParams{
			LognormalMean:     *r.Income.LognormalMean,
			LognormalStd:      *r.Income.LognormalStd,
			CareerProgression: *r.Income.CareerProgression,
		},
		Ages: AgeParams{
			MinAge:   *r.Ages.MinAge,
			DeathAge: *r.Ages.DeathAge,
		},
	}
}

func (r *rawTransitionRow) build() TransitionRow {
	return TransitionRow{
		ToInactive: *r.ToInactive,
		ToEmployed: *r.ToEmployed,
		ToRetired:  *r.ToRetired,
		ToDeceased: *r.ToDeceased,
	}
}
