// Package schema declares the HCL shapes of a scenario document. The loader
// decodes these with gohcl and normalizes them into the model package.
package schema

import "github.com/hashicorp/hcl/v2"

// ConfigBlock carries an open set of attributes; the loader evaluates them
// into cty values without imposing a shape.
type ConfigBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// ArgsBlock carries the raw, module-schema-dependent arguments of an action.
type ArgsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// Action represents an `action "<name>" {}` block.
type Action struct {
	Name   string       `hcl:"name,label"`
	Module string       `hcl:"module"`
	Config *ConfigBlock `hcl:"config,block"`
	Args   *ArgsBlock   `hcl:"args,block"`
}

// Scenario represents the top level of a scenario document.
type Scenario struct {
	Name        string       `hcl:"name"`
	Description string       `hcl:"description"`
	Author      string       `hcl:"author"`
	Seed        *string      `hcl:"seed,optional"`
	Libraries   []string     `hcl:"libraries,optional"`
	Config      *ConfigBlock `hcl:"config,block"`
	Actions     []*Action    `hcl:"action,block"`
}
