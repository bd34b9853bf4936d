package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/hcl/v2/hcldec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/firmgen/internal/codegen"
	"github.com/specialistvlad/firmgen/internal/errors"
)

var dhtSpec = hcldec.ObjectSpec{
	"pin":    &hcldec.AttrSpec{Name: "pin", Type: cty.Number, Required: true},
	"model":  &hcldec.AttrSpec{Name: "model", Type: cty.String},
	"lambda": &hcldec.AttrSpec{Name: "lambda", Type: cty.String},
}

func TestHCLLoader_LoadSource(t *testing.T) {
	t.Parallel()
	// Arrange
	src := `
component "i2c" {
  id  = "bus_a"
}

component "sensor.dht" {
  id    = "living_room"
  pin   = 4
  model = "DHT22"
}
`

	// Act
	blocks, err := NewHCLLoader().LoadSource([]byte(src), "main.hcl")

	// Assert
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, "i2c", blocks[0].Kind)
	assert.Equal(t, "bus_a", blocks[0].ID)
	assert.Equal(t, "sensor.dht", blocks[1].Kind)
	assert.Equal(t, "living_room", blocks[1].ID)
	assert.Equal(t, 6, blocks[1].Range.Start.Line)

	val, _, err := blocks[1].Decode(dhtSpec)
	require.NoError(t, err)
	pin, _ := val.GetAttr("pin").AsBigFloat().Int64()
	assert.Equal(t, int64(4), pin)
	assert.Equal(t, "DHT22", val.GetAttr("model").AsString())
	assert.True(t, val.GetAttr("lambda").IsNull())
}

func TestHCLLoader_Errors(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name string
		src  string
		want string
	}{
		{name: "syntax", src: `component "x" {`, want: "failed to parse HCL file"},
		{name: "unknown top-level block", src: `step "x" {}`, want: "failed to decode HCL file"},
		{name: "id is not a string", src: `component "x" { id = 3 }`, want: `attribute "id" must be a string`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewHCLLoader().LoadSource([]byte(tc.src), "bad.hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestYAMLLoader_LoadSource(t *testing.T) {
	t.Parallel()
	// Arrange
	src := `
logger:
i2c:
  id: bus_a
sensor:
  - platform: dht
    id: living_room
    pin: 4
    model: DHT22
  - platform: template
    id: doubled
    pin: 0
    lambda: !lambda |-
      return id(living_room).state * 2;
`

	// Act
	blocks, err := NewYAMLLoader().LoadSource([]byte(src), "main.yaml")

	// Assert
	require.NoError(t, err)
	require.Len(t, blocks, 4)
	kinds := []string{blocks[0].Kind, blocks[1].Kind, blocks[2].Kind, blocks[3].Kind}
	assert.Equal(t, []string{"logger", "i2c", "sensor.dht", "sensor.template"}, kinds)
	assert.Equal(t, "", blocks[0].ID)
	assert.Equal(t, "bus_a", blocks[1].ID)
	assert.Equal(t, "living_room", blocks[2].ID)
	assert.Equal(t, 6, blocks[2].Range.Start.Line)

	val, _, err := blocks[2].Decode(dhtSpec)
	require.NoError(t, err)
	assert.Equal(t, "DHT22", val.GetAttr("model").AsString())

	val, _, err = blocks[3].Decode(dhtSpec)
	require.NoError(t, err)
	lambda := val.GetAttr("lambda").AsString()
	assert.True(t, codegen.IsLambda(lambda))
	assert.Equal(t, "return id(living_room).state * 2;", codegen.LambdaSource(lambda))
}

func TestYAMLLoader_Errors(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name string
		src  string
		want string
	}{
		{name: "syntax", src: "sensor: [", want: "failed to parse YAML file"},
		{name: "top level list", src: "- a\n- b\n", want: "top level must be a mapping"},
		{name: "scalar entry", src: "wifi: yes\n", want: "wifi entry must be a mapping"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewYAMLLoader().LoadSource([]byte(tc.src), "bad.yaml")
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestBlock_DecodeReportsInvalidConfig(t *testing.T) {
	t.Parallel()
	// Arrange
	blocks, err := NewHCLLoader().LoadSource([]byte(`component "sensor.dht" { model = "DHT11" }`), "main.hcl")
	require.NoError(t, err)

	// Act
	_, diags, err := blocks[0].Decode(dhtSpec)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidConfig)
	assert.True(t, diags.HasErrors())
	assert.Contains(t, err.Error(), "sensor.dht")
}

func TestLoad_Directory(t *testing.T) {
	t.Parallel()
	// Arrange
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), []byte(`component "logger" {}`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.yaml"), []byte("i2c:\n  id: bus\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	// Act
	blocks, err := Load(context.Background(), dir, filepath.Join(dir, "a.hcl"))

	// Assert
	require.NoError(t, err)
	require.Len(t, blocks, 2, "a file named twice is loaded once")
	assert.Equal(t, "logger", blocks[0].Kind)
	assert.Equal(t, "i2c", blocks[1].Kind)
}

func TestResolvePaths_Errors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o644))

	_, err := ResolvePaths(context.Background(), filepath.Join(dir, "missing.hcl"))
	assert.ErrorIs(t, err, errors.ErrInvalidConfig)

	_, err = ResolvePaths(context.Background(), txt)
	require.ErrorIs(t, err, errors.ErrInvalidConfig)
	assert.Contains(t, errors.FlattenHints(err), ".hcl, .yaml or .yml")

	_, err = Load(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, errors.ErrInvalidConfig)
}
