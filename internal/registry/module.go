package registry

import (
	"context"

	"github.com/caseforge/caseforge/internal/state"
)

// Module is the contract every scenario-invocable capability implements.
//
// A module has one canonical qualified name, formed from its package path and
// Name, plus zero or more aliases. Its argument and configuration schemas are
// the struct types returned by NewArgs and NewConfig; fields are matched to
// document keys through `cf:"<key>[,optional]"` tags, and the returned values
// carry the defaults.
//
// GenerateCode and Execute must stay referentially consistent: any variable
// name a fragment emits must correspond to a handle Execute would have stored
// in the state bag under the parallel "<namespace>.<purpose>_var" convention.
type Module interface {
	// Name is the module's identifier within its package, e.g. "Sample".
	Name() string

	// Aliases lists short names usable in place of the qualified name.
	Aliases() []string

	// NewArgs returns a pointer to a fresh arguments struct with defaults
	// applied. The engine decodes the action's raw args into it.
	NewArgs() any

	// NewConfig returns a pointer to a fresh configuration struct with
	// defaults applied.
	NewConfig() any

	// Dependencies lists the import paths a generated standalone program
	// needs for this module's fragments, independent of what the module
	// itself imports.
	Dependencies() []string

	// GenerateCode produces a source fragment equivalent in effect to
	// Execute. It must be idempotent for identical inputs and end with a
	// newline. It may read and write the state bag to coordinate formatting
	// and variable naming with other modules.
	GenerateCode(args, config any, bag *state.Bag) (string, error)

	// Execute performs the actual action. It may read and write the state
	// bag to pass live handles to later actions.
	Execute(ctx context.Context, args, config any, bag *state.Bag) error
}

// Package groups the modules defined under one dotted library path, e.g.
// "caseforge.modules.vbox". It is the unit of registration: the host program
// hands the full catalog of packages to New at startup.
type Package struct {
	// Path is the dotted namespace the package's modules live under.
	Path string

	// Modules lists the package's module implementations.
	Modules []Module
}
