package engine

import (
	"context"
	"testing"

	"github.com/hashicorp/hcl/v2/hcldec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/firmgen/internal/codegen"
	"github.com/specialistvlad/firmgen/internal/config"
	"github.com/specialistvlad/firmgen/internal/cpp"
	"github.com/specialistvlad/firmgen/internal/errors"
	"github.com/specialistvlad/firmgen/internal/registry"
	"github.com/specialistvlad/firmgen/internal/scheduler"
)

var (
	demoNS  = cpp.Global.Namespace("demo")
	busType = demoNS.Class("Bus", cpp.Component)
	devType = demoNS.Class("Device", cpp.Component)
)

type deviceConfig struct {
	Bus string `cty:"bus"`
}

type linkConfig struct {
	Peer string `cty:"peer"`
}

type libConfig struct {
	Version string `cty:"version"`
}

func declareComponent(gen *codegen.Context, args ...any) error {
	h, err := gen.NewPvariable(gen.ID(), args...)
	if err != nil {
		return err
	}
	return gen.RegisterComponent(h, codegen.ComponentOptions{})
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	reg := registry.New("test")
	reg.MustRegister(&registry.Entry{
		Key:    "bus",
		Schema: hcldec.ObjectSpec{},
		Type:   busType,
		Generate: func(ctx context.Context, gen *codegen.Context, cfg cty.Value) error {
			return declareComponent(gen)
		},
	})
	reg.MustRegister(&registry.Entry{
		Key:    "device",
		Schema: hcldec.ObjectSpec{"bus": &hcldec.AttrSpec{Name: "bus", Type: cty.String, Required: true}},
		Type:   devType,
		Config: deviceConfig{},
		Generate: registry.Typed(func(ctx context.Context, gen *codegen.Context, cfg *deviceConfig) error {
			bus, err := gen.Get(ctx, cfg.Bus, busType)
			if err != nil {
				return err
			}
			return declareComponent(gen, bus)
		}),
	})
	reg.MustRegister(&registry.Entry{
		Key:    "link",
		Schema: hcldec.ObjectSpec{"peer": &hcldec.AttrSpec{Name: "peer", Type: cty.String, Required: true}},
		Type:   busType,
		Config: linkConfig{},
		Generate: registry.Typed(func(ctx context.Context, gen *codegen.Context, cfg *linkConfig) error {
			if _, err := gen.Get(ctx, cfg.Peer, nil); err != nil {
				return err
			}
			return declareComponent(gen)
		}),
	})
	reg.MustRegister(&registry.Entry{
		Key:    "lib",
		Schema: hcldec.ObjectSpec{"version": &hcldec.AttrSpec{Name: "version", Type: cty.String, Required: true}},
		Config: libConfig{},
		Generate: registry.Typed(func(ctx context.Context, gen *codegen.Context, cfg *libConfig) error {
			return gen.AddLibrary("json", cfg.Version, "")
		}),
	})
	reg.MustRegister(&registry.Entry{
		Key:    "broken",
		Schema: hcldec.ObjectSpec{},
		Type:   busType,
		Generate: func(ctx context.Context, gen *codegen.Context, cfg cty.Value) error {
			return gen.Add(cpp.Call(cpp.Raw("configure"), cpp.Lit(struct{}{})))
		},
	})
	require.NoError(t, reg.Validate(context.Background()))
	return New(reg)
}

func load(t *testing.T, src string) []*config.Block {
	t.Helper()
	blocks, err := config.NewHCLLoader().LoadSource([]byte(src), "main.hcl")
	require.NoError(t, err)
	return blocks
}

func statementTexts(out *Output) []string {
	var texts []string
	for _, s := range out.Statements {
		texts = append(texts, s.Text)
	}
	return texts
}

func TestGenerate_NoReferencesKeepsBlockOrder(t *testing.T) {
	t.Parallel()
	// Arrange
	e := newTestEngine(t)
	blocks := load(t, `
component "bus" { id = "bus_a" }
component "bus" { id = "bus_b" }
`)

	// Act
	out, err := e.Generate(context.Background(), blocks)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{
		"bus_a = new demo::Bus();",
		"App.register_component(bus_a);",
		"bus_b = new demo::Bus();",
		"App.register_component(bus_b);",
	}, statementTexts(out))
	assert.Equal(t, []string{"demo::Bus *bus_a;", "demo::Bus *bus_b;"}, out.Globals.Declarations)
	assert.NotEmpty(t, out.PassID)
}

func TestGenerate_ForwardReference(t *testing.T) {
	t.Parallel()
	// Arrange: the device is declared before the bus it sits on.
	e := newTestEngine(t)
	blocks := load(t, `
component "device" {
  id  = "dev"
  bus = "bus_a"
}
component "bus" { id = "bus_a" }
`)

	// Act
	out, err := e.Generate(context.Background(), blocks)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{
		"bus_a = new demo::Bus();",
		"App.register_component(bus_a);",
		"dev = new demo::Device(bus_a);",
		"App.register_component(dev);",
	}, statementTexts(out))
	assert.Equal(t, "bus:bus_a", out.Statements[0].Block)
	assert.Equal(t, "device:dev", out.Statements[2].Block)
}

func TestGenerate_IsDeterministic(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	src := `
component "device" {
  id  = "dev"
  bus = "bus_a"
}
component "bus" { id = "bus_a" }
component "bus" {}
component "lib" { version = "6.21.3" }
`

	first, err := e.Generate(context.Background(), load(t, src))
	require.NoError(t, err)
	second, err := e.Generate(context.Background(), load(t, src))
	require.NoError(t, err)

	assert.NotEqual(t, first.PassID, second.PassID)
	assert.Equal(t, first.Statements, second.Statements)
	assert.Equal(t, first.Globals, second.Globals)
}

func TestGenerate_CycleIsDeadlock(t *testing.T) {
	t.Parallel()
	// Arrange
	e := newTestEngine(t)
	blocks := load(t, `
component "link" {
  id   = "a"
  peer = "b"
}
component "link" {
  id   = "b"
  peer = "a"
}
`)

	// Act
	out, err := e.Generate(context.Background(), blocks)

	// Assert
	require.Error(t, err)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, errors.ErrDependencyDeadlock)

	var depErr *scheduler.DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, []string{"a", "b"}, depErr.IDs())

	var passErr *PassError
	require.ErrorAs(t, err, &passErr)
	assert.Len(t, passErr.Fatal, 1)
	assert.Empty(t, passErr.Blocks)
}

func TestGenerate_MissingIDIsUnresolved(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	blocks := load(t, `
component "device" {
  id  = "dev"
  bus = "ghost"
}
`)

	_, err := e.Generate(context.Background(), blocks)

	assert.ErrorIs(t, err, errors.ErrUnresolvedReference)
	assert.Contains(t, err.Error(), `"ghost"`)
}

func TestGenerate_LibraryConflict(t *testing.T) {
	t.Parallel()
	// Arrange
	e := newTestEngine(t)
	blocks := load(t, `
component "lib" { version = "6.18.5" }
component "lib" { version = "7.0.0" }
component "bus" { id = "after" }
`)

	// Act
	_, err := e.Generate(context.Background(), blocks)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrConflictingGlobalDefinition)
	assert.Contains(t, err.Error(), "json")

	var passErr *PassError
	require.ErrorAs(t, err, &passErr)
	assert.Len(t, passErr.Fatal, 1)
	assert.Empty(t, passErr.Blocks, "the conflicting block is reported once, as the fatal error")
}

func TestGenerate_SameLibraryTwiceIsDeduplicated(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	blocks := load(t, `
component "lib" { version = "6.18.5" }
component "lib" { version = "6.18.5" }
`)

	out, err := e.Generate(context.Background(), blocks)

	require.NoError(t, err)
	require.Len(t, out.Globals.Libraries, 1)
	assert.Equal(t, "json", out.Globals.Libraries[0].Name)
}

func TestGenerate_UnknownKindsAreReportedTogether(t *testing.T) {
	t.Parallel()
	// Arrange
	e := newTestEngine(t)
	blocks := load(t, `
component "sensor.unknown_kind" {}
component "bus" { id = "bus_a" }
component "display.nope" {}
`)

	// Act
	_, err := e.Generate(context.Background(), blocks)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnknownDiscriminator)
	var passErr *PassError
	require.ErrorAs(t, err, &passErr)
	require.Len(t, passErr.Fatal, 2)
	assert.Contains(t, err.Error(), "sensor.unknown_kind")
	assert.Contains(t, err.Error(), "display.nope")
}

func TestGenerate_BlockFailureSkipsDependants(t *testing.T) {
	t.Parallel()
	// Arrange
	e := newTestEngine(t)
	blocks := load(t, `
component "device" {
  id  = "dev"
  bus = "bad_bus"
}
component "broken" { id = "bad_bus" }
component "bus" { id = "fine" }
`)

	// Act
	_, err := e.Generate(context.Background(), blocks)

	// Assert
	require.Error(t, err)
	var passErr *PassError
	require.ErrorAs(t, err, &passErr)
	assert.Empty(t, passErr.Fatal)
	require.Len(t, passErr.Blocks, 1)
	assert.Equal(t, "broken:bad_bus", passErr.Blocks[0].Block)
	assert.ErrorIs(t, passErr.Blocks[0], errors.ErrUnrenderableValue)
	require.Len(t, passErr.Skipped, 1)
	assert.Equal(t, "device:dev", passErr.Skipped[0].Block)
	assert.Equal(t, 2, passErr.Skipped[0].Range.Start.Line)
	assert.ErrorIs(t, err, errors.ErrUnrenderableValue)
}

func TestGenerate_InvalidConfigFailsTheBlock(t *testing.T) {
	t.Parallel()
	// Arrange: the bus has an attribute its schema does not know.
	e := newTestEngine(t)
	blocks := load(t, `
component "bus" {
  id    = "bus_a"
  speed = 400
}
component "device" {
  id  = "dev"
  bus = "bus_a"
}
`)

	// Act
	_, err := e.Generate(context.Background(), blocks)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidConfig)
	var passErr *PassError
	require.ErrorAs(t, err, &passErr)
	assert.True(t, passErr.Diagnostics.HasErrors())
	require.Len(t, passErr.Blocks, 1)
	require.Len(t, passErr.Skipped, 1)
	assert.Equal(t, "device:dev", passErr.Skipped[0].Block)
}

func TestGenerate_IDs(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name    string
		src     string
		want    []string
		wantErr error
	}{
		{
			name: "auto ids are derived from the type",
			src:  `component "bus" {}` + "\n" + `component "bus" {}`,
			want: []string{"demo_bus_id", "demo_bus_id_2"},
		},
		{
			name: "auto ids avoid manual ids declared later",
			src:  `component "bus" {}` + "\n" + `component "bus" { id = "demo_bus_id" }`,
			want: []string{"demo_bus_id_2", "demo_bus_id"},
		},
		{
			name:    "duplicate manual ids",
			src:     `component "bus" { id = "x" }` + "\n" + `component "bus" { id = "x" }`,
			wantErr: errors.ErrDuplicateID,
		},
		{
			name:    "keyword id",
			src:     `component "bus" { id = "class" }`,
			wantErr: errors.ErrInvalidConfig,
		},
		{
			name:    "malformed id",
			src:     `component "bus" { id = "9lives" }`,
			wantErr: errors.ErrInvalidConfig,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			// Arrange
			e := newTestEngine(t)

			// Act
			out, err := e.Generate(context.Background(), load(t, tc.src))

			// Assert
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			var want []string
			for _, name := range tc.want {
				want = append(want, "demo::Bus *"+name+";")
			}
			assert.Equal(t, want, out.Globals.Declarations)
		})
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := newTestEngine(t)

	_, err := e.Generate(ctx, load(t, `component "bus" {}`))

	assert.ErrorIs(t, err, context.Canceled)
}
