package app

import (
	"context"
	"fmt"
	"os"

	"github.com/caseforge/caseforge/internal/ctxlog"
	"github.com/caseforge/caseforge/internal/engine"
	"github.com/caseforge/caseforge/internal/model"
	"github.com/caseforge/caseforge/internal/scenario"
)

// Run loads the configured scenario and runs it in the configured mode.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	sc, err := scenario.Load(ctx, a.config.ScenarioPath)
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	a.logger.Info("Scenario loaded.",
		"name", sc.Name,
		"author", sc.Author,
		"actions", len(sc.Actions))

	if err := a.registry.BuildCache(ctx, sc.Libraries); err != nil {
		return fmt.Errorf("failed to resolve scenario libraries: %w", err)
	}
	a.logger.Debug("Module cache built.", "entries", a.registry.CachedNames())

	eng := engine.New(a.registry)

	switch a.config.Mode {
	case ModeTranslate:
		return a.translate(ctx, eng, sc)
	default:
		a.logger.Info("Executing scenario.", "name", sc.Name)
		if err := eng.Execute(ctx, sc); err != nil {
			return fmt.Errorf("execution failed: %w", err)
		}
		a.logger.Info("Scenario finished.")
		return nil
	}
}

// translate generates the standalone program and writes it only after the
// whole generation pass succeeded, so a failed translation never leaves a
// partial file behind.
func (a *App) translate(ctx context.Context, eng *engine.Engine, sc *model.Scenario) error {
	a.logger.Info("Translating scenario.", "name", sc.Name)
	source, err := eng.Generate(ctx, sc)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	if a.config.OutputPath == "" {
		_, err := fmt.Fprint(a.outW, source)
		return err
	}
	if err := os.WriteFile(a.config.OutputPath, []byte(source), 0o644); err != nil {
		return fmt.Errorf("failed to write generated program: %w", err)
	}
	a.logger.Info("Generated program written.", "path", a.config.OutputPath)
	return nil
}
