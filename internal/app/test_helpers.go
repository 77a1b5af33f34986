package app

import (
	"bytes"
	"os"
	"testing"

	"github.com/caseforge/caseforge/internal/registry"
	"github.com/caseforge/caseforge/internal/testlog"
)

// SetupAppTest creates a new app instance for system testing, capturing
// program output and logs separately.
func SetupAppTest(t *testing.T, cfg *Config, packages ...*registry.Package) (*App, *bytes.Buffer, *testlog.SafeBuffer) {
	t.Helper()

	out := &bytes.Buffer{}
	logBuffer := &testlog.SafeBuffer{}
	cfg.LogLevel = "debug"
	testApp := NewApp(out, logBuffer, cfg, packages...)

	t.Cleanup(func() {
		if os.Getenv("CASEFORGE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, out, logBuffer
}
