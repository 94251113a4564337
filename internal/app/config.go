package app

import "fmt"

// Config holds everything an App instance needs to run one command.
type Config struct {
	// Command is one of "setup", "run" or "wrapup".
	Command string

	OptFile      string // pipeline option file, required by setup
	SnapshotPath string // persisted pipeline snapshot; derived from options when empty
	StageID      string // stage group id for run (A/B/C)
	Selection    string // selection expression for run
	ExePath      string // the standalone compute application

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config. Missing required fields are configuration
// errors and surface immediately.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.Command {
	case "setup":
		if cfg.OptFile == "" {
			return nil, fmt.Errorf("setup: --opt is required")
		}
	case "run":
		if cfg.SnapshotPath == "" {
			return nil, fmt.Errorf("run: --snapshot is required")
		}
		if cfg.StageID == "" {
			return nil, fmt.Errorf("run: --stage is required")
		}
	case "wrapup":
		if cfg.SnapshotPath == "" {
			return nil, fmt.Errorf("wrapup: --snapshot is required")
		}
	default:
		return nil, fmt.Errorf("unknown command %q: expected setup, run or wrapup", cfg.Command)
	}
	return &cfg, nil
}
