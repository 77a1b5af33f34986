package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/caseforge/caseforge/internal/ctxlog"
	"github.com/caseforge/caseforge/internal/model"
	"github.com/caseforge/caseforge/internal/seed"
	"github.com/caseforge/caseforge/internal/state"
)

// generatedRandVar is the name of the seeded random source in generated
// programs. Execute stores the equivalent handle under KeyRand.
const generatedRandVar = "rng"

// baselineDeps are always imported by generated programs for the fixed
// logging-setup block.
var baselineDeps = []string{"log/slog", "os"}

// loggingBlock is the fixed logging setup emitted into every generated
// program, one indentation level inside main.
const loggingBlock = "\tslog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{\n" +
	"\t\tLevel: slog.LevelInfo,\n" +
	"\t})))\n"

// Generate translates the scenario into one self-contained, runnable Go
// program. Output is deterministic: identical scenario and module set yield
// byte-identical text.
func (e *Engine) Generate(ctx context.Context, sc *model.Scenario) (string, error) {
	logger := ctxlog.FromContext(ctx)

	bound, err := e.bindActions(ctx, sc)
	if err != nil {
		return "", err
	}

	// Generation state persists across the whole pass so later fragments can
	// react to earlier ones: indentation level, declared variable names,
	// whether a handle already exists in scope.
	bag := state.New()
	bag.Set(KeyIndent, 1)
	if sc.Seed != "" {
		bag.Set(KeyRandVar, generatedRandVar)
	}

	deps := make(map[string]struct{}, len(baselineDeps)+len(bound))
	for _, d := range baselineDeps {
		deps[d] = struct{}{}
	}
	if sc.Seed != "" {
		deps["math/rand"] = struct{}{}
	}
	for _, ba := range bound {
		for _, d := range ba.module.Dependencies() {
			deps[d] = struct{}{}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated by caseforge from scenario %q.\n", sc.Name)
	b.WriteString("// Review the generated program before running it.\n\n")
	b.WriteString("package main\n\n")
	b.WriteString(renderImports(deps))
	b.WriteString("\nfunc main() {\n")
	b.WriteString(loggingBlock)

	if sc.Seed != "" {
		fmt.Fprintf(&b, "\n\t%s := rand.New(rand.NewSource(%d)) // seed %q\n", generatedRandVar, seed.Source(sc.Seed), sc.Seed)
		fmt.Fprintf(&b, "\t_ = %s\n", generatedRandVar)
	}

	var body strings.Builder
	for _, ba := range bound {
		args, config, err := e.validate(ba.action, ba.module, sc.Config)
		if err != nil {
			return "", err
		}

		fragment, err := ba.module.GenerateCode(args, config, bag)
		if err != nil {
			return "", fmt.Errorf("action %q: %w", ba.action.Name, err)
		}
		logger.Debug("Generated action fragment.", "action", ba.action.Name, "module", ba.action.Module)

		level, _ := state.Value[int](bag, KeyIndent)
		body.WriteString("\n")
		body.WriteString(strings.Repeat("\t", level))
		body.WriteString("// ")
		body.WriteString(ba.action.Name)
		body.WriteString("\n")
		body.WriteString(strings.TrimRight(fragment, "\n"))
		body.WriteString("\n")
	}

	b.WriteString(body.String())
	b.WriteString("}\n")
	return b.String(), nil
}

// renderImports renders the deduplicated dependency union as one sorted
// import block. Every dependency is an import path and appears exactly once.
func renderImports(deps map[string]struct{}) string {
	paths := make([]string, 0, len(deps))
	for p := range deps {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var b strings.Builder
	b.WriteString("import (\n")
	for _, p := range paths {
		fmt.Fprintf(&b, "\t%q\n", p)
	}
	b.WriteString(")\n")
	return b.String()
}
