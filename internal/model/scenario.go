package model

import "github.com/zclconf/go-cty/cty"

// Action is one named step of a scenario, bound to exactly one module.
// Args and Config are heterogeneous mappings validated lazily against the
// resolved module's schemas.
type Action struct {
	// Name is the human-readable name for this action. It becomes a comment
	// line above the action's fragment in generated programs.
	Name string

	// Module is the module reference: either a qualified name
	// ("caseforge.modules.sample.Sample") or a registered alias ("sample").
	Module string

	// Args holds the raw arguments for the module.
	Args map[string]cty.Value

	// Config holds action-level configuration overrides. On key collision
	// these take precedence over the scenario-level configuration.
	Config map[string]cty.Value
}

// Scenario is a parsed scenario document. The action order is the execution
// and generation order; there is no reordering and no dependency graph.
type Scenario struct {
	Name        string
	Description string
	Author      string

	// Seed, when non-empty, makes any module that relies on the provided
	// randomness facility reproducible across runs.
	Seed string

	// Config holds scenario-level configuration defaults passed to every
	// module. Modules may ignore keys they do not recognize.
	Config map[string]cty.Value

	// Libraries lists the module libraries to preload into the registry
	// cache, in declaration order. Earlier libraries win name conflicts.
	Libraries []string

	// Actions is the ordered list of steps to execute or translate.
	Actions []*Action
}
