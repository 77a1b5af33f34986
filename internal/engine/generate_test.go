package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/caseforge/caseforge/internal/model"
)

func TestGenerateGoldenOutput(t *testing.T) {
	t.Parallel()

	// Arrange
	rec := &recorder{deps: []string{"math/rand"}}
	eng, _ := newTestEngine(t, rec)
	sc := &model.Scenario{
		Name: "flip",
		Seed: "42",
		Actions: []*model.Action{
			action("pick", "recorder", map[string]cty.Value{"label": cty.StringVal("x")}),
		},
	}

	// Act
	source, err := eng.Generate(context.Background(), sc)

	// Assert
	require.NoError(t, err)
	expected := `// Code generated by caseforge from scenario "flip".
// Review the generated program before running it.

package main

import (
	"log/slog"
	"math/rand"
	"os"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	rng := rand.New(rand.NewSource(42)) // seed "42"
	_ = rng

	// pick
	doSomething()
}
`
	assert.Empty(t, cmp.Diff(expected, source))
}

func TestGenerateIsByteDeterministic(t *testing.T) {
	t.Parallel()

	generate := func() string {
		rec := &recorder{deps: []string{"path/filepath", "math/rand"}}
		eng, _ := newTestEngine(t, rec)
		sc := &model.Scenario{
			Name: "det",
			Seed: "case-007",
			Actions: []*model.Action{
				action("one", "recorder", map[string]cty.Value{"label": cty.StringVal("a")}),
				action("two", "recorder", map[string]cty.Value{"label": cty.StringVal("b")}),
			},
		}
		source, err := eng.Generate(context.Background(), sc)
		require.NoError(t, err)
		return source
	}

	assert.Empty(t, cmp.Diff(generate(), generate()))
}

func TestGenerateAggregatesDependencies(t *testing.T) {
	t.Parallel()

	// Arrange: both actions use the same module, whose deps overlap with the
	// seed dep. Every import must appear exactly once, sorted.
	rec := &recorder{deps: []string{"path/filepath", "math/rand"}}
	eng, _ := newTestEngine(t, rec)
	sc := &model.Scenario{
		Name: "deps",
		Seed: "1",
		Actions: []*model.Action{
			action("one", "recorder", map[string]cty.Value{"label": cty.StringVal("a")}),
			action("two", "recorder", map[string]cty.Value{"label": cty.StringVal("b")}),
		},
	}

	// Act
	source, err := eng.Generate(context.Background(), sc)

	// Assert
	require.NoError(t, err)
	importBlock := source[strings.Index(source, "import ("):strings.Index(source, ")\n")]
	assert.Equal(t, 1, strings.Count(importBlock, `"math/rand"`))
	assert.Equal(t, 1, strings.Count(importBlock, `"path/filepath"`))
	assert.Equal(t, 1, strings.Count(importBlock, `"log/slog"`))
	assert.Equal(t, 1, strings.Count(importBlock, `"os"`))
	assert.Less(t,
		strings.Index(importBlock, `"log/slog"`),
		strings.Index(importBlock, `"math/rand"`))
	assert.Less(t,
		strings.Index(importBlock, `"math/rand"`),
		strings.Index(importBlock, `"os"`))
}

func TestGenerateWithoutSeedOmitsRandSetup(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	eng, _ := newTestEngine(t, rec)
	sc := &model.Scenario{
		Name: "unseeded",
		Actions: []*model.Action{
			action("pick", "recorder", map[string]cty.Value{"label": cty.StringVal("x")}),
		},
	}

	source, err := eng.Generate(context.Background(), sc)
	require.NoError(t, err)
	assert.NotContains(t, source, "rand.NewSource")
	assert.NotContains(t, source, `"math/rand"`)
}

func TestGenerateValidationFailure(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	eng, _ := newTestEngine(t, rec)
	sc := &model.Scenario{
		Name: "invalid",
		Actions: []*model.Action{
			action("broken", "recorder", nil),
		},
	}

	_, err := eng.Generate(context.Background(), sc)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "broken", valErr.Action)
}
