package scenario

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/caseforge/caseforge/internal/model"
)

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const hclDoc = `
name        = "coin flip"
description = "Flip a coin once."
author      = "caseforge"
seed        = "42"
libraries   = ["caseforge.modules.sample"]

config {
  verbosity = "high"
}

action "pick" {
  module = "sample"

  config {
    config1 = "override"
  }

  args {
    arg1 = "heads"
    arg2 = "tails"
  }
}
`

const yamlDoc = `
name: coin flip
description: Flip a coin once.
author: caseforge
seed: "42"
libraries:
  - caseforge.modules.sample
config:
  verbosity: high
actions:
  - name: pick
    module: sample
    config:
      config1: override
    args:
      arg1: heads
      arg2: tails
`

func TestLoadBothFormatsAgree(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fromHCL, err := Load(ctx, writeDoc(t, "flip.hcl", hclDoc))
	require.NoError(t, err)
	fromYAML, err := Load(ctx, writeDoc(t, "flip.yaml", yamlDoc))
	require.NoError(t, err)

	for label, sc := range map[string]*model.Scenario{"hcl": fromHCL, "yaml": fromYAML} {
		assert.Equal(t, "coin flip", sc.Name, label)
		assert.Equal(t, "Flip a coin once.", sc.Description, label)
		assert.Equal(t, "caseforge", sc.Author, label)
		assert.Equal(t, "42", sc.Seed, label)
		assert.Equal(t, []string{"caseforge.modules.sample"}, sc.Libraries, label)
		require.Len(t, sc.Actions, 1, label)

		action := sc.Actions[0]
		assert.Equal(t, "pick", action.Name, label)
		assert.Equal(t, "sample", action.Module, label)
		assert.Equal(t, cty.StringVal("heads"), action.Args["arg1"], label)
		assert.Equal(t, cty.StringVal("tails"), action.Args["arg2"], label)
		assert.Equal(t, cty.StringVal("override"), action.Config["config1"], label)
		assert.Equal(t, cty.StringVal("high"), sc.Config["verbosity"], label)
	}
}

func TestLoadMissingRequiredField(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, "bad.yaml", "name: x\ndescription: y\n")
	_, err := Load(context.Background(), path)
	require.Error(t, err)

	var docErr *DocumentError
	require.ErrorAs(t, err, &docErr)
	assert.Contains(t, docErr.Reason, "author")
}

func TestLoadActionWithoutModule(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, "bad.yaml", `
name: x
description: y
author: z
actions:
  - name: orphan
`)
	_, err := Load(context.Background(), path)
	var docErr *DocumentError
	require.ErrorAs(t, err, &docErr)
	assert.Contains(t, docErr.Reason, "orphan")
}

func TestLoadMalformedHCL(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, "broken.hcl", "name = \"x\"\naction \"a\" {\n")
	_, err := Load(context.Background(), path)
	var docErr *DocumentError
	require.ErrorAs(t, err, &docErr)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, "doc.toml", "name = 'x'")
	_, err := Load(context.Background(), path)
	var docErr *DocumentError
	require.ErrorAs(t, err, &docErr)
	assert.Contains(t, docErr.Reason, "unsupported")
}
