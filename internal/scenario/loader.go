package scenario

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/caseforge/caseforge/internal/ctxlog"
	"github.com/caseforge/caseforge/internal/model"
)

// DocumentError reports a scenario document that could not be parsed or is
// missing required fields. It is always fatal and always precedes module
// resolution.
type DocumentError struct {
	Path   string
	Reason string
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("invalid scenario document %s: %s", e.Path, e.Reason)
}

// Load parses the scenario document at path, choosing the parser from the
// file extension: .hcl is the native format, .yaml/.yml the compatibility
// format.
func Load(ctx context.Context, path string) (*model.Scenario, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading scenario document.", "path", path)

	var (
		sc  *model.Scenario
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".hcl":
		sc, err = loadHCL(path)
	case ".yaml", ".yml":
		sc, err = loadYAML(path)
	default:
		return nil, &DocumentError{Path: path, Reason: fmt.Sprintf("unsupported document extension %q", ext)}
	}
	if err != nil {
		return nil, err
	}

	if err := checkRequired(path, sc); err != nil {
		return nil, err
	}

	logger.Info("Scenario loaded.", "name", sc.Name, "actions", len(sc.Actions), "libraries", len(sc.Libraries))
	return sc, nil
}

// checkRequired enforces the document contract shared by both formats:
// name, description, and author must be present, and every action needs a
// name and a module reference.
func checkRequired(path string, sc *model.Scenario) error {
	switch {
	case sc.Name == "":
		return &DocumentError{Path: path, Reason: "missing required field \"name\""}
	case sc.Description == "":
		return &DocumentError{Path: path, Reason: "missing required field \"description\""}
	case sc.Author == "":
		return &DocumentError{Path: path, Reason: "missing required field \"author\""}
	}
	for i, action := range sc.Actions {
		if action.Name == "" {
			return &DocumentError{Path: path, Reason: fmt.Sprintf("action %d is missing required field \"name\"", i)}
		}
		if action.Module == "" {
			return &DocumentError{Path: path, Reason: fmt.Sprintf("action %q is missing required field \"module\"", action.Name)}
		}
	}
	return nil
}
