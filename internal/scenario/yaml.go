package scenario

import (
	"bytes"
	"fmt"
	"os"

	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"

	"github.com/caseforge/caseforge/internal/ctyutil"
	"github.com/caseforge/caseforge/internal/model"
)

// yamlAction mirrors the original declarative format: name and module are
// required, args and config default to empty mappings.
type yamlAction struct {
	Name   string         `yaml:"name"`
	Module string         `yaml:"module"`
	Args   map[string]any `yaml:"args"`
	Config map[string]any `yaml:"config"`
}

type yamlScenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Author      string         `yaml:"author"`
	Seed        string         `yaml:"seed"`
	Config      map[string]any `yaml:"config"`
	Libraries   []string       `yaml:"libraries"`
	Actions     []yamlAction   `yaml:"actions"`
}

// loadYAML parses a YAML scenario document and normalizes its mappings into
// the same cty representation the HCL loader produces.
func loadYAML(path string) (*model.Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &DocumentError{Path: path, Reason: err.Error()}
	}

	var doc yamlScenario
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, &DocumentError{Path: path, Reason: err.Error()}
	}

	sc := &model.Scenario{
		Name:        doc.Name,
		Description: doc.Description,
		Author:      doc.Author,
		Seed:        doc.Seed,
		Libraries:   doc.Libraries,
	}
	if sc.Config, err = mappingValues(path, "config", doc.Config); err != nil {
		return nil, err
	}

	for _, rawAction := range doc.Actions {
		action := &model.Action{
			Name:   rawAction.Name,
			Module: rawAction.Module,
		}
		if action.Args, err = mappingValues(path, "args", rawAction.Args); err != nil {
			return nil, err
		}
		if action.Config, err = mappingValues(path, "config", rawAction.Config); err != nil {
			return nil, err
		}
		sc.Actions = append(sc.Actions, action)
	}
	return sc, nil
}

func mappingValues(path, kind string, m map[string]any) (map[string]cty.Value, error) {
	values := make(map[string]cty.Value, len(m))
	for name, raw := range m {
		val, err := ctyutil.NativeToCty(raw)
		if err != nil {
			return nil, &DocumentError{Path: path, Reason: fmt.Sprintf("%s key %q: %s", kind, name, err)}
		}
		values[name] = val
	}
	return values, nil
}
