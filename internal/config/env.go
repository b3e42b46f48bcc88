package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env is the process-environment surface for the CLI. Values here provide
// flag defaults only; the model parameters themselves never come from the
// environment and never default.
type Env struct {
	// Params is the parameter file path (CAREERGEN_PARAMS).
	Params string `env:"CAREERGEN_PARAMS"`

	// Out is the dataset output path (CAREERGEN_OUT).
	Out string `env:"CAREERGEN_OUT"`

	// Seed seeds the random stream (CAREERGEN_SEED). 0 means time-derived.
	Seed int64 `env:"CAREERGEN_SEED" envDefault:"42"`

	// LogLevel sets log verbosity (CAREERGEN_LOG_LEVEL): error, warn,
	// info, debug, or trace.
	LogLevel string `env:"CAREERGEN_LOG_LEVEL" envDefault:"info"`
}

// LoadEnv parses the CAREERGEN_* environment variables.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return e, nil
}
