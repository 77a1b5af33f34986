package engine

import (
	"context"
	"errors"

	"github.com/zclconf/go-cty/cty"

	"github.com/caseforge/caseforge/internal/ctxlog"
	"github.com/caseforge/caseforge/internal/model"
	"github.com/caseforge/caseforge/internal/registry"
)

// Engine drives a scenario through one of its two modes. It is stateless
// between passes; every pass gets a fresh state bag.
type Engine struct {
	reg *registry.Registry
}

// New returns an Engine resolving modules through reg.
func New(reg *registry.Registry) *Engine {
	return &Engine{reg: reg}
}

// boundAction pairs an action with its resolved module.
type boundAction struct {
	action *model.Action
	module registry.Module
}

// bindActions resolves every action's module reference before either mode
// runs, so resolution errors surface ahead of any side effect.
func (e *Engine) bindActions(ctx context.Context, sc *model.Scenario) ([]boundAction, error) {
	logger := ctxlog.FromContext(ctx)
	bound := make([]boundAction, 0, len(sc.Actions))
	for _, action := range sc.Actions {
		mod, err := e.reg.Resolve(ctx, action.Module)
		if err != nil {
			return nil, err
		}
		logger.Debug("Resolved action module.", "action", action.Name, "module", action.Module)
		bound = append(bound, boundAction{action: action, module: mod})
	}
	return bound, nil
}

// validate decodes an action's raw args and its merged config into the
// module's typed schema structs.
func (e *Engine) validate(action *model.Action, mod registry.Module, global map[string]cty.Value) (args, config any, err error) {
	args = mod.NewArgs()
	if err := decodeInto(args, action.Args); err != nil {
		return nil, nil, asValidationError(action.Name, err)
	}

	config = mod.NewConfig()
	if err := decodeInto(config, mergeConfig(global, action.Config)); err != nil {
		return nil, nil, asValidationError(action.Name, err)
	}
	return args, config, nil
}

func asValidationError(action string, err error) error {
	var fe *fieldError
	if errors.As(err, &fe) {
		return &ValidationError{Action: action, Field: fe.field, Detail: fe.detail}
	}
	return &ValidationError{Action: action, Field: "?", Detail: err.Error()}
}

// mergeConfig combines scenario-level defaults with action-level overrides.
// The merge is a shallow top-level override: action keys win whole, nested
// mappings are not merged.
func mergeConfig(global, local map[string]cty.Value) map[string]cty.Value {
	merged := make(map[string]cty.Value, len(global)+len(local))
	for k, v := range global {
		merged[k] = v
	}
	for k, v := range local {
		merged[k] = v
	}
	return merged
}
