package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseforge/caseforge/internal/app"
)

func TestParseExecuteMode(t *testing.T) {
	t.Parallel()

	// Act
	cfg, shouldExit, err := Parse([]string{"--execute", "scenario.hcl"}, &bytes.Buffer{})

	// Assert
	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "scenario.hcl", cfg.ScenarioPath)
	assert.Equal(t, app.ModeExecute, cfg.Mode)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParseTranslateModeWithOutput(t *testing.T) {
	t.Parallel()

	cfg, shouldExit, err := Parse([]string{"--translate", "-o", "prog.go", "scenario.yaml"}, &bytes.Buffer{})

	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, app.ModeTranslate, cfg.Mode)
	assert.Equal(t, "prog.go", cfg.OutputPath)
}

func TestParseModeFlagsAreExclusive(t *testing.T) {
	t.Parallel()

	for name, args := range map[string][]string{
		"both":    {"--execute", "--translate", "scenario.hcl"},
		"neither": {"scenario.hcl"},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, _, err := Parse(args, &bytes.Buffer{})

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, "exactly one of")
		})
	}
}

func TestParseOutputRequiresTranslate(t *testing.T) {
	t.Parallel()

	_, _, err := Parse([]string{"--execute", "-o", "prog.go", "scenario.hcl"}, &bytes.Buffer{})

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Contains(t, exitErr.Message, "--translate")
}

func TestParseNoPathPrintsUsage(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	_, shouldExit, err := Parse([]string{"--execute"}, out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParseInvalidLogSettings(t *testing.T) {
	t.Parallel()

	_, _, err := Parse([]string{"--execute", "--log-format", "xml", "scenario.hcl"}, &bytes.Buffer{})
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Contains(t, exitErr.Message, "log-format")

	_, _, err = Parse([]string{"--execute", "--log-level", "verbose", "scenario.hcl"}, &bytes.Buffer{})
	require.ErrorAs(t, err, &exitErr)
	assert.Contains(t, exitErr.Message, "log-level")
}

func TestParseUnknownFlag(t *testing.T) {
	t.Parallel()

	_, _, err := Parse([]string{"--no-such-flag"}, &bytes.Buffer{})

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}
