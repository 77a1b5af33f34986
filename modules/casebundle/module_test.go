package casebundle

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseforge/caseforge/internal/engine"
	"github.com/caseforge/caseforge/internal/state"
	"github.com/caseforge/caseforge/rendering"
)

func TestCreateRenderWrite(t *testing.T) {
	t.Parallel()

	// Arrange
	bag := state.New()
	ctx := context.Background()
	outDir := t.TempDir()

	create := &Create{}
	require.NoError(t, create.Execute(ctx, &CreateArgs{Name: "case-007"}, create.NewConfig(), bag))

	b, ok := state.Value[*rendering.Bundle](bag, KeyBundle)
	require.True(t, ok)
	b.AddObject(&rendering.Object{
		Type:       rendering.TypeURLVisit,
		Properties: map[string]any{"url": "https://example.com", "title": "Example", "browser": "edge"},
	})

	// Act
	render := &Render{}
	renderArgs := &RenderArgs{Renderers: []string{"urlhistory"}, OutputDir: outDir}
	require.NoError(t, render.Execute(ctx, renderArgs, render.NewConfig(), bag))

	write := &Write{}
	bundlePath := filepath.Join(outDir, "bundle.yaml")
	require.NoError(t, write.Execute(ctx, &WriteArgs{Path: bundlePath}, write.NewConfig(), bag))

	// Assert
	assert.FileExists(t, filepath.Join(outDir, "urlhistory.md"))
	assert.FileExists(t, bundlePath)
}

func TestActionsRequireBundle(t *testing.T) {
	t.Parallel()

	bag := state.New()
	ctx := context.Background()

	render := &Render{}
	err := render.Execute(ctx, &RenderArgs{Renderers: []string{"urlhistory"}, OutputDir: t.TempDir()}, nil, bag)
	require.ErrorContains(t, err, "CaseBundle")

	write := &Write{}
	err = write.Execute(ctx, &WriteArgs{Path: "x.yaml"}, nil, bag)
	require.ErrorContains(t, err, "CaseBundle")

	_, err = render.GenerateCode(&RenderArgs{}, nil, bag)
	require.ErrorContains(t, err, "CaseBundle")
}

func TestGeneratedFragments(t *testing.T) {
	t.Parallel()

	// Arrange
	bag := state.New()
	bag.Set(engine.KeyIndent, 1)

	// Act
	create, err := (&Create{}).GenerateCode(&CreateArgs{Name: "case-007"}, nil, bag)
	require.NoError(t, err)

	write, err := (&Write{}).GenerateCode(&WriteArgs{Path: "out/bundle.yaml"}, nil, bag)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, "\tbundle := rendering.NewBundle(\"case-007\")\n", create)
	assert.Equal(t,
		"\tif err := bundle.WriteYAML(\"out/bundle.yaml\"); err != nil {\n"+
			"\t\tslog.Error(\"failed to write bundle\", \"error\", err)\n"+
			"\t\tos.Exit(1)\n"+
			"\t}\n",
		write)
}
