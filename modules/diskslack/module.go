// Package diskslack exposes file slack space analysis and payload placement
// to scenarios.
package diskslack

import (
	"context"
	"fmt"

	"github.com/caseforge/caseforge/internal/ctxlog"
	"github.com/caseforge/caseforge/internal/engine"
	"github.com/caseforge/caseforge/internal/registry"
	"github.com/caseforge/caseforge/internal/state"
	"github.com/caseforge/caseforge/slackspace"
)

// Path is the dotted library path scenarios import this package under.
const Path = "caseforge.modules.diskslack"

// State keys this package owns.
const (
	// KeyMeta holds the *slackspace.Meta of the last analyzed file.
	KeyMeta = "slack.meta"

	// KeyVar holds the metadata variable name in generated programs.
	KeyVar = "slack.meta_var"
)

const generatedVar = "meta"

// DefaultClusterSize matches NTFS's common 4 KiB cluster.
const DefaultClusterSize = 4096

const slackspaceImport = "github.com/caseforge/caseforge/slackspace"

// Package returns this package's module catalog entry.
func Package() *registry.Package {
	return &registry.Package{
		Path: Path,
		Modules: []registry.Module{
			&Analyze{},
			&Write{},
		},
	}
}

// Analyze computes slack metadata for a file and stores it for a later
// write.
type Analyze struct{}

// AnalyzeArgs name the file to measure.
type AnalyzeArgs struct {
	Path        string `cf:"path"`
	ClusterSize int64  `cf:"cluster_size,optional"`
}

func (m *Analyze) Name() string           { return "SlackAnalyze" }
func (m *Analyze) Aliases() []string      { return []string{"slack_analyze"} }
func (m *Analyze) NewConfig() any         { return new(struct{}) }
func (m *Analyze) Dependencies() []string { return []string{slackspaceImport} }

func (m *Analyze) NewArgs() any {
	return &AnalyzeArgs{ClusterSize: DefaultClusterSize}
}

func (m *Analyze) Execute(ctx context.Context, args, config any, bag *state.Bag) error {
	a := args.(*AnalyzeArgs)
	logger := ctxlog.FromContext(ctx)

	meta, err := slackspace.AnalyzeFile(a.Path, a.ClusterSize)
	if err != nil {
		return err
	}
	logger.Info("Analyzed slack space.",
		"path", a.Path,
		"slack_space", meta.SlackSpace,
		"slack_offset", meta.SlackOffset)

	bag.Set(KeyMeta, meta)
	bag.Set(KeyVar, generatedVar)
	return nil
}

func (m *Analyze) GenerateCode(args, config any, bag *state.Bag) (string, error) {
	a := args.(*AnalyzeArgs)

	if _, exists := state.Value[string](bag, KeyVar); exists {
		return "", fmt.Errorf("slack metadata variable %q already emitted", generatedVar)
	}
	bag.Set(KeyVar, generatedVar)

	fragment := fmt.Sprintf(`
		%s, err := slackspace.AnalyzeFile(%q, %d)
		if err != nil {
			slog.Error("failed to analyze slack space", "error", err)
			os.Exit(1)
		}
	`, generatedVar, a.Path, a.ClusterSize)
	return engine.AutoFormat(fragment, bag), nil
}

// Write places a payload into the slack space measured by the last analyze
// action.
type Write struct{}

// WriteArgs carry the image and the payload.
type WriteArgs struct {
	ImagePath string `cf:"image_path"`
	Data      string `cf:"data"`
}

func (m *Write) Name() string           { return "SlackWrite" }
func (m *Write) Aliases() []string      { return []string{"slack_write"} }
func (m *Write) NewArgs() any           { return new(WriteArgs) }
func (m *Write) NewConfig() any         { return new(struct{}) }
func (m *Write) Dependencies() []string { return []string{slackspaceImport} }

func (m *Write) Execute(ctx context.Context, args, config any, bag *state.Bag) error {
	a := args.(*WriteArgs)
	meta, ok := state.Value[*slackspace.Meta](bag, KeyMeta)
	if !ok {
		return fmt.Errorf("no slack metadata in state under %q, run a SlackAnalyze action first", KeyMeta)
	}

	ctxlog.FromContext(ctx).Info("Writing slack payload.",
		"image_path", a.ImagePath, "bytes", len(a.Data))
	return slackspace.Write(a.ImagePath, meta, []byte(a.Data))
}

func (m *Write) GenerateCode(args, config any, bag *state.Bag) (string, error) {
	a := args.(*WriteArgs)
	name, ok := state.Value[string](bag, KeyVar)
	if !ok {
		return "", fmt.Errorf("no slack metadata variable in state under %q, run a SlackAnalyze action first", KeyVar)
	}

	fragment := fmt.Sprintf(`
		if err := slackspace.Write(%q, %s, []byte(%q)); err != nil {
			slog.Error("failed to write slack payload", "error", err)
			os.Exit(1)
		}
	`, a.ImagePath, name, a.Data)
	return engine.AutoFormat(fragment, bag), nil
}
