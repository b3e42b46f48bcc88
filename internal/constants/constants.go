// Package constants provides named constants used throughout the careergen codebase.
// This centralizes magic numbers for better maintainability and documentation.
package constants

// Model anchors fixed by the trajectory model. These are properties of the
// model itself, not tunable parameters, and are never read from configuration.
const (
	// EpochYear is the calendar year assigned to a record at the minimum age.
	// year = EpochYear + (age - min_age).
	EpochYear = 2020

	// CareerStartAge is the reference age for both the Gompertz mortality
	// curve and the career-progression income bonus. It matches typical
	// labor-market-entry age.
	CareerStartAge = 25
)

// Numeric tolerances for transition-distribution normalization.
const (
	// NormTolerance is the maximum deviation from 1.0 a normalized
	// distribution may show. A larger deviation after correction is a
	// sampling invariant violation.
	NormTolerance = 1e-6

	// ResidualTolerance is the deviation past which the distribution's
	// deceased component is reassigned to 1 - sum(others) so the vector
	// sums to exactly 1.0.
	ResidualTolerance = 1e-7
)

// Generation defaults used by the CLI and dataset loop.
const (
	// DefaultProgressEvery is the number of individuals between progress
	// log lines during dataset generation.
	DefaultProgressEvery = 1000

	// DefaultSeed seeds the random stream when neither flag nor
	// environment supplies one. Seed 0 requests a time-derived seed.
	DefaultSeed = 42
)
