package app

import "errors"

// Run modes.
const (
	// ModeExecute performs the scenario's actions directly.
	ModeExecute = "execute"

	// ModeTranslate emits a standalone program equivalent to the scenario.
	ModeTranslate = "translate"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ScenarioPath string
	Mode         string

	// OutputPath is where translate mode writes the generated program.
	// Empty means standard output.
	OutputPath string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ScenarioPath == "" {
		return nil, errors.New("ScenarioPath is a required configuration field and cannot be empty")
	}
	if cfg.Mode != ModeExecute && cfg.Mode != ModeTranslate {
		return nil, errors.New("Mode must be either execute or translate")
	}
	return &cfg, nil
}
