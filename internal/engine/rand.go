package engine

import (
	"math/rand"
	"time"

	"github.com/caseforge/caseforge/internal/state"
)

// Engine-reserved state keys. Modules read these through the helpers below
// and never write them.
const (
	// KeyIndent is the current indentation level of the generation pass.
	KeyIndent = "engine.indent"

	// KeyRand holds the explicit *rand.Rand executing modules draw from.
	KeyRand = "engine.rand"

	// KeyRandVar holds the name of the seeded random-source variable in
	// generated programs. Unset when the scenario has no seed.
	KeyRandVar = "engine.rand_var"
)

// RandFrom returns the run's random source. When the scenario declared a
// seed the engine installed a deterministic source before the first action;
// otherwise a time-seeded source is created on first use and reused for the
// rest of the run.
func RandFrom(bag *state.Bag) *rand.Rand {
	if r, ok := state.Value[*rand.Rand](bag, KeyRand); ok {
		return r
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	bag.Set(KeyRand, r)
	return r
}

// RandVar returns the generated program's random-source variable name, or ""
// when the scenario has no seed and fragments should fall back to the global
// source.
func RandVar(bag *state.Bag) string {
	name, _ := state.Value[string](bag, KeyRandVar)
	return name
}
