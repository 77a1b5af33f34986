package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

type innerSchema struct {
	Host string `cf:"host"`
	Port int64  `cf:"port,optional"`
}

type outerSchema struct {
	Name     string         `cf:"name"`
	Count    int64          `cf:"count,optional"`
	Enabled  bool           `cf:"enabled,optional"`
	Tags     []string       `cf:"tags,optional"`
	Settings map[string]any `cf:"settings,optional"`
	Inner    innerSchema    `cf:"inner,optional"`
	Raw      cty.Value      `cf:"raw,optional"`
	ignored  string
}

func TestDecodeIntoFullSchema(t *testing.T) {
	t.Parallel()

	// Arrange
	target := &outerSchema{Count: 7}
	values := map[string]cty.Value{
		"name":    cty.StringVal("demo"),
		"enabled": cty.True,
		"tags":    cty.TupleVal([]cty.Value{cty.StringVal("a"), cty.StringVal("b")}),
		"settings": cty.ObjectVal(map[string]cty.Value{
			"depth": cty.NumberIntVal(3),
		}),
		"inner": cty.ObjectVal(map[string]cty.Value{
			"host": cty.StringVal("localhost"),
			"port": cty.NumberIntVal(8080),
		}),
		"raw": cty.NumberIntVal(99),
	}

	// Act
	err := decodeInto(target, values)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "demo", target.Name)
	assert.Equal(t, int64(7), target.Count, "absent optional field keeps its default")
	assert.True(t, target.Enabled)
	assert.Equal(t, []string{"a", "b"}, target.Tags)
	assert.Equal(t, map[string]any{"depth": int64(3)}, target.Settings)
	assert.Equal(t, innerSchema{Host: "localhost", Port: 8080}, target.Inner)
	assert.Equal(t, cty.NumberIntVal(99), target.Raw)
	assert.Empty(t, target.ignored)
}

func TestDecodeIntoMissingRequired(t *testing.T) {
	t.Parallel()

	err := decodeInto(&outerSchema{}, map[string]cty.Value{})

	var fe *fieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "name", fe.field)
	assert.Equal(t, "missing required field", fe.detail)
}

func TestDecodeIntoNullRequiredCountsAsMissing(t *testing.T) {
	t.Parallel()

	err := decodeInto(&outerSchema{}, map[string]cty.Value{
		"name": cty.NullVal(cty.String),
	})

	var fe *fieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "name", fe.field)
}

func TestDecodeIntoIgnoresUnknownKeys(t *testing.T) {
	t.Parallel()

	target := &outerSchema{}
	err := decodeInto(target, map[string]cty.Value{
		"name":      cty.StringVal("demo"),
		"leftovers": cty.StringVal("not in the schema"),
	})

	require.NoError(t, err)
	assert.Equal(t, "demo", target.Name)
}

func TestDecodeIntoTypeMismatch(t *testing.T) {
	t.Parallel()

	err := decodeInto(&outerSchema{}, map[string]cty.Value{
		"name":  cty.StringVal("demo"),
		"count": cty.StringVal("not a number"),
	})

	var fe *fieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "count", fe.field)
}

func TestDecodeIntoConvertsNumberLikeStrings(t *testing.T) {
	t.Parallel()

	// cty conversion rules allow "8080" where a number is expected.
	target := &outerSchema{}
	err := decodeInto(target, map[string]cty.Value{
		"name":  cty.StringVal("demo"),
		"count": cty.StringVal("8080"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(8080), target.Count)
}

func TestDecodeIntoRejectsNonPointer(t *testing.T) {
	t.Parallel()

	err := decodeInto(outerSchema{}, nil)
	require.Error(t, err)
}
