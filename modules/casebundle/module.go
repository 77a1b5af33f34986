// Package casebundle lets scenarios accumulate forensic objects into a
// bundle, render the bundle into documents, and persist it.
package casebundle

import (
	"context"
	"fmt"

	"github.com/caseforge/caseforge/internal/ctxlog"
	"github.com/caseforge/caseforge/internal/engine"
	"github.com/caseforge/caseforge/internal/registry"
	"github.com/caseforge/caseforge/internal/state"
	"github.com/caseforge/caseforge/rendering"
)

// Path is the dotted library path scenarios import this package under.
const Path = "caseforge.modules.casebundle"

// State keys this package owns.
const (
	// KeyBundle holds the live *rendering.Bundle during execution.
	KeyBundle = "case.bundle"

	// KeyVar holds the bundle variable name in generated programs.
	KeyVar = "case.bundle_var"
)

const generatedVar = "bundle"

const renderingImport = "github.com/caseforge/caseforge/rendering"

// Package returns this package's module catalog entry.
func Package() *registry.Package {
	return &registry.Package{
		Path: Path,
		Modules: []registry.Module{
			&Create{},
			&Render{},
			&Write{},
		},
	}
}

func liveBundle(bag *state.Bag) (*rendering.Bundle, error) {
	b, ok := state.Value[*rendering.Bundle](bag, KeyBundle)
	if !ok {
		return nil, fmt.Errorf("no bundle in state under %q, run a CaseBundle action first", KeyBundle)
	}
	return b, nil
}

func generatedBundle(bag *state.Bag) (string, error) {
	name, ok := state.Value[string](bag, KeyVar)
	if !ok {
		return "", fmt.Errorf("no bundle variable in state under %q, run a CaseBundle action first", KeyVar)
	}
	return name, nil
}

// Create opens a fresh named bundle and stores it for later actions.
type Create struct{}

// CreateArgs name the bundle.
type CreateArgs struct {
	Name string `cf:"name"`
}

func (m *Create) Name() string           { return "CaseBundle" }
func (m *Create) Aliases() []string      { return []string{"case_bundle"} }
func (m *Create) NewArgs() any           { return new(CreateArgs) }
func (m *Create) NewConfig() any         { return new(struct{}) }
func (m *Create) Dependencies() []string { return []string{renderingImport} }

func (m *Create) Execute(ctx context.Context, args, config any, bag *state.Bag) error {
	a := args.(*CreateArgs)
	logger := ctxlog.FromContext(ctx)

	if _, exists := state.Value[*rendering.Bundle](bag, KeyBundle); exists {
		logger.Warn("Replacing existing bundle.", "name", a.Name)
	}

	logger.Info("Opening case bundle.", "name", a.Name)
	bag.Set(KeyBundle, rendering.NewBundle(a.Name))
	bag.Set(KeyVar, generatedVar)
	return nil
}

func (m *Create) GenerateCode(args, config any, bag *state.Bag) (string, error) {
	a := args.(*CreateArgs)

	if _, exists := state.Value[string](bag, KeyVar); exists {
		return "", fmt.Errorf("bundle variable %q already emitted, one bundle per scenario", generatedVar)
	}
	bag.Set(KeyVar, generatedVar)

	fragment := fmt.Sprintf(`
		%s := rendering.NewBundle(%q)
	`, generatedVar, a.Name)
	return engine.AutoFormat(fragment, bag), nil
}

// Render runs the named renderers over the open bundle.
type Render struct{}

// RenderArgs select the renderers and the destination directory.
type RenderArgs struct {
	Renderers []string `cf:"renderers"`
	OutputDir string   `cf:"output_dir"`
}

func (m *Render) Name() string           { return "RenderBundle" }
func (m *Render) Aliases() []string      { return []string{"render_bundle"} }
func (m *Render) NewArgs() any           { return new(RenderArgs) }
func (m *Render) NewConfig() any         { return new(struct{}) }
func (m *Render) Dependencies() []string { return []string{renderingImport} }

func (m *Render) Execute(ctx context.Context, args, config any, bag *state.Bag) error {
	a := args.(*RenderArgs)
	b, err := liveBundle(bag)
	if err != nil {
		return err
	}

	logger := ctxlog.FromContext(ctx)
	logger.Info("Rendering bundle.", "renderers", a.Renderers, "output_dir", a.OutputDir)
	written, err := rendering.Render(b, a.Renderers, a.OutputDir)
	if err != nil {
		return err
	}
	logger.Info("Bundle rendered.", "documents", written)
	return nil
}

func (m *Render) GenerateCode(args, config any, bag *state.Bag) (string, error) {
	a := args.(*RenderArgs)
	name, err := generatedBundle(bag)
	if err != nil {
		return "", err
	}

	fragment := fmt.Sprintf(`
		if _, err := rendering.Render(%s, %#v, %q); err != nil {
			slog.Error("failed to render bundle", "error", err)
			os.Exit(1)
		}
	`, name, a.Renderers, a.OutputDir)
	return engine.AutoFormat(fragment, bag), nil
}

// Write persists the open bundle as YAML.
type Write struct{}

// WriteArgs name the destination file.
type WriteArgs struct {
	Path string `cf:"path"`
}

func (m *Write) Name() string           { return "WriteBundle" }
func (m *Write) Aliases() []string      { return []string{"write_bundle"} }
func (m *Write) NewArgs() any           { return new(WriteArgs) }
func (m *Write) NewConfig() any         { return new(struct{}) }
func (m *Write) Dependencies() []string { return []string{renderingImport} }

func (m *Write) Execute(ctx context.Context, args, config any, bag *state.Bag) error {
	a := args.(*WriteArgs)
	b, err := liveBundle(bag)
	if err != nil {
		return err
	}

	ctxlog.FromContext(ctx).Info("Writing bundle.", "path", a.Path)
	return b.WriteYAML(a.Path)
}

func (m *Write) GenerateCode(args, config any, bag *state.Bag) (string, error) {
	a := args.(*WriteArgs)
	name, err := generatedBundle(bag)
	if err != nil {
		return "", err
	}

	fragment := fmt.Sprintf(`
		if err := %s.WriteYAML(%q); err != nil {
			slog.Error("failed to write bundle", "error", err)
			os.Exit(1)
		}
	`, name, a.Path)
	return engine.AutoFormat(fragment, bag), nil
}
