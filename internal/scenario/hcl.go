package scenario

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/caseforge/caseforge/internal/model"
	"github.com/caseforge/caseforge/internal/schema"
)

// loadHCL parses and decodes a single HCL scenario document.
func loadHCL(path string) (*model.Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, &DocumentError{Path: path, Reason: diags.Error()}
	}

	var doc schema.Scenario
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, &DocumentError{Path: path, Reason: diags.Error()}
	}

	sc := &model.Scenario{
		Name:        doc.Name,
		Description: doc.Description,
		Author:      doc.Author,
		Libraries:   doc.Libraries,
	}
	if doc.Seed != nil {
		sc.Seed = *doc.Seed
	}

	var err error
	if sc.Config, err = blockValues(path, "config", bodyOf(doc.Config)); err != nil {
		return nil, err
	}

	for _, rawAction := range doc.Actions {
		action := &model.Action{
			Name:   rawAction.Name,
			Module: rawAction.Module,
		}
		if action.Args, err = blockValues(path, "args", argsBodyOf(rawAction.Args)); err != nil {
			return nil, err
		}
		if action.Config, err = blockValues(path, "config", bodyOf(rawAction.Config)); err != nil {
			return nil, err
		}
		sc.Actions = append(sc.Actions, action)
	}
	return sc, nil
}

func bodyOf(block *schema.ConfigBlock) hcl.Body {
	if block == nil {
		return nil
	}
	return block.Body
}

func argsBodyOf(block *schema.ArgsBlock) hcl.Body {
	if block == nil {
		return nil
	}
	return block.Body
}

// blockValues evaluates every attribute of an open block into a cty value.
// Scenario documents carry literal values only; there is no expression
// context to evaluate against.
func blockValues(path, kind string, body hcl.Body) (map[string]cty.Value, error) {
	values := make(map[string]cty.Value)
	if body == nil {
		return values, nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, &DocumentError{Path: path, Reason: diags.Error()}
	}
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, &DocumentError{Path: path, Reason: fmt.Sprintf("%s attribute %q: %s", kind, name, diags.Error())}
		}
		values[name] = val
	}
	return values, nil
}
