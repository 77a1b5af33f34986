package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/caseforge/caseforge/internal/ctxlog"
	"github.com/caseforge/caseforge/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	config   *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and module catalog.
// Program output (the generated source in translate mode) goes to outW; logs
// go to logW.
func NewApp(outW, logW io.Writer, cfg *Config, packages ...*registry.Package) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(packages) == 0 {
		packages = corePackages
	}
	reg := registry.New(ctx, packages...)
	logger.Debug("Module catalog registered.", "packages", len(packages))

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		config:   cfg,
	}
}

// Registry returns the application's registry. This is primarily for
// testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
