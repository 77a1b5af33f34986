package engine

import (
	"context"
	"fmt"

	"github.com/caseforge/caseforge/internal/ctxlog"
	"github.com/caseforge/caseforge/internal/model"
	"github.com/caseforge/caseforge/internal/seed"
	"github.com/caseforge/caseforge/internal/state"
)

// Execute runs the scenario's actions in declared order. The first failure
// of any kind aborts the remaining scenario; side effects already performed
// are not rolled back.
func (e *Engine) Execute(ctx context.Context, sc *model.Scenario) error {
	logger := ctxlog.FromContext(ctx)

	bound, err := e.bindActions(ctx, sc)
	if err != nil {
		return err
	}

	bag := state.New()
	if sc.Seed != "" {
		// The seeded source goes in before the first action so every module
		// that draws randomness is reproducible for this scenario and seed.
		bag.Set(KeyRand, seed.NewRand(sc.Seed))
		logger.Debug("Installed deterministic random source.", "seed", sc.Seed)
	}

	for _, ba := range bound {
		args, config, err := e.validate(ba.action, ba.module, sc.Config)
		if err != nil {
			return err
		}

		logger.Info("Executing action.", "action", ba.action.Name, "module", ba.action.Module)
		if err := ba.module.Execute(ctx, args, config, bag); err != nil {
			return fmt.Errorf("action %q: %w", ba.action.Name, err)
		}
	}

	logger.Info("Scenario execution finished.", "actions", len(bound))
	return nil
}
