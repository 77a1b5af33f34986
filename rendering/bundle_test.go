package rendering

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func visit(url, title, browser string) *Object {
	return &Object{
		Type:       TypeURLVisit,
		Properties: map[string]any{"url": url, "title": title, "browser": browser},
	}
}

func TestBundleIndex(t *testing.T) {
	t.Parallel()

	b := NewBundle("case-001")
	require.NotEmpty(t, b.ID)

	b.AddObject(visit("https://example.com", "Example", "edge"))
	b.AddObject(&Object{Type: TypePrefetch, Properties: map[string]any{"executable": "CMD.EXE", "run_count": 3}})
	b.AddObject(visit("https://example.org", "Other", "edge"))

	assert.Len(t, b.ObjectsOfType(TypeURLVisit), 2)
	assert.Len(t, b.ObjectsOfType(TypePrefetch), 1)
	assert.Empty(t, b.ObjectsOfType("registry_key"))
	assert.Equal(t, []string{TypePrefetch, TypeURLVisit}, b.Types())

	// Every object got an identity.
	for _, obj := range b.Objects {
		assert.NotEmpty(t, obj.ID)
	}
}

func TestRenderSelectedRenderers(t *testing.T) {
	t.Parallel()

	b := NewBundle("case-002")
	b.AddObject(visit("https://example.com", "Example", "edge"))

	outDir := t.TempDir()
	written, err := Render(b, []string{"urlhistory", "prefetch"}, outDir)
	require.NoError(t, err)

	// prefetch had no input and produced nothing.
	require.Len(t, written, 1)
	assert.Equal(t, filepath.Join(outDir, "urlhistory.md"), written[0])

	body, err := os.ReadFile(written[0])
	require.NoError(t, err)
	assert.Contains(t, string(body), "URL History: case-002")
	assert.Contains(t, string(body), "https://example.com")
}

func TestRenderUnknownRenderer(t *testing.T) {
	t.Parallel()

	_, err := Render(NewBundle("x"), []string{"registry"}, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown renderer")
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	b := NewBundle("case-003")
	b.AddObject(visit("https://example.com", "Example", "chromium"))

	path := filepath.Join(t.TempDir(), "bundle.yaml")
	require.NoError(t, b.WriteYAML(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Bundle
	require.NoError(t, yaml.Unmarshal(raw, &decoded))
	assert.Equal(t, b.ID, decoded.ID)
	assert.Equal(t, "case-003", decoded.Name)
	require.Len(t, decoded.Objects, 1)
	assert.Equal(t, TypeURLVisit, decoded.Objects[0].Type)
}
