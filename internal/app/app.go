package app

import (
	"io"
	"log/slog"

	"github.com/vk/sparkpipego/internal/registry"
)

// App encapsulates the engine's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	errW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	cfg      *Config
}

// New is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and registry.
func New(outW, errW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)

	reg := registry.New()
	if cfg.ExePath != "" {
		// The SPARK standalone application serves all three stages.
		if err := reg.RegisterAll(registry.Executable{Path: cfg.ExePath}); err != nil {
			return nil, err
		}
	} else {
		logger.Warn("no compute application configured; downstream stages will be truncated at build time.")
	}

	return &App{
		outW:     outW,
		errW:     errW,
		logger:   logger,
		registry: reg,
		cfg:      cfg,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
