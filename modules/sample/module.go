// Package sample holds the demonstration module used by the bundled example
// scenarios and by tests exercising the dual-mode module contract.
package sample

import (
	"context"
	"fmt"

	"github.com/caseforge/caseforge/internal/ctxlog"
	"github.com/caseforge/caseforge/internal/engine"
	"github.com/caseforge/caseforge/internal/registry"
	"github.com/caseforge/caseforge/internal/state"
)

// Path is the dotted library path scenarios import this package under.
const Path = "caseforge.modules.sample"

// Package returns this package's module catalog entry.
func Package() *registry.Package {
	return &registry.Package{
		Path:    Path,
		Modules: []registry.Module{&Sample{}},
	}
}

// Sample picks one of two options at random and announces the choice. It
// exists to demonstrate argument decoding, configuration defaults, and the
// execute/generate duality in the smallest possible module.
type Sample struct{}

// Args are the two options to choose between.
type Args struct {
	Arg1 string `cf:"arg1"`
	Arg2 string `cf:"arg2"`
}

// Config tunes the module. Config1 is unused by the behavior itself and
// exists to exercise configuration merging.
type Config struct {
	Config1 string `cf:"config1,optional"`
}

func (m *Sample) Name() string      { return "Sample" }
func (m *Sample) Aliases() []string { return []string{"sample"} }

func (m *Sample) NewArgs() any { return new(Args) }

func (m *Sample) NewConfig() any {
	return &Config{Config1: "default"}
}

func (m *Sample) Dependencies() []string {
	return []string{"fmt", "math/rand"}
}

// Execute picks one of the two options and prints it.
func (m *Sample) Execute(ctx context.Context, args, config any, bag *state.Bag) error {
	a := args.(*Args)
	cfg := config.(*Config)

	ctxlog.FromContext(ctx).Debug("Running sample module.", "config1", cfg.Config1)

	options := [2]string{a.Arg1, a.Arg2}
	fmt.Printf("I choose %s\n", options[engine.RandFrom(bag).Intn(2)])
	return nil
}

// GenerateCode emits a fragment with the same coin flip inlined.
func (m *Sample) GenerateCode(args, config any, bag *state.Bag) (string, error) {
	a := args.(*Args)

	draw := "rand.Intn(2)"
	if v := engine.RandVar(bag); v != "" {
		draw = v + ".Intn(2)"
	}

	fragment := fmt.Sprintf(`
		options := [2]string{%q, %q}
		fmt.Printf("I choose %%s\n", options[%s])
	`, a.Arg1, a.Arg2, draw)
	return engine.AutoFormat(fragment, bag), nil
}
