package integration_tests

import (
	"context"
	"testing"

	"github.com/hashicorp/hcl/v2/hcldec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/firmgen/internal/app"
	"github.com/specialistvlad/firmgen/internal/codegen"
	"github.com/specialistvlad/firmgen/internal/cpp"
	"github.com/specialistvlad/firmgen/internal/errors"
	"github.com/specialistvlad/firmgen/internal/registry"
	"github.com/specialistvlad/firmgen/internal/schema"
	"github.com/specialistvlad/firmgen/internal/testutil"
	"github.com/specialistvlad/firmgen/modules/logger"
)

var blinkType = cpp.Global.Namespace("blink").Class("Blink", cpp.PollingComponent)

type blinkConfig struct {
	Pin            int      `cty:"pin"`
	UpdateInterval *string  `cty:"update_interval"`
	SetupPriority  *float64 `cty:"setup_priority"`
}

// projectLayer is what a project would register on top of the built-in
// kinds: a new platform and a replacement logger.
func projectLayer(t *testing.T) *registry.Registry {
	t.Helper()
	base := registry.New("builtin")
	base.Install(app.BuiltinModules()...)
	require.NoError(t, base.Validate(context.Background()))
	base.Freeze()

	layer := base.Derive("project")
	layer.MustRegister(&registry.Entry{
		Key:    "output.blink",
		Schema: schema.Object(schema.Polling, hcldec.ObjectSpec{"pin": schema.Required("pin", cty.Number)}),
		Type:   blinkType,
		Config: blinkConfig{},
		Generate: registry.Typed(func(ctx context.Context, gen *codegen.Context, cfg *blinkConfig) error {
			opts, err := schema.Options(cfg.SetupPriority, cfg.UpdateInterval)
			if err != nil {
				return err
			}
			h, err := gen.NewPvariable(gen.ID(), cfg.Pin)
			if err != nil {
				return err
			}
			return gen.RegisterComponent(h, opts)
		}),
	})
	layer.MustRegister(&registry.Entry{
		Key:    "logger",
		Schema: hcldec.ObjectSpec{},
		Generate: func(ctx context.Context, gen *codegen.Context, cfg cty.Value) error {
			return gen.AddStatement(cpp.Comment("logging disabled for this project"))
		},
	})
	require.NoError(t, layer.Validate(context.Background()))
	layer.Freeze()
	return layer
}

func TestModuleContract_ProjectLayerShadowsBuiltins(t *testing.T) {
	t.Parallel()
	// Arrange
	src := `
logger:
output:
  - platform: blink
    id: led
    pin: 2
    update_interval: 500ms
`

	// Act
	res := testutil.RunRegistry(context.Background(), t, projectLayer(t), map[string]string{"main.yaml": src})

	// Assert
	require.NoError(t, res.Err)
	assert.Equal(t, []string{
		"// logging disabled for this project",
		"led = new blink::Blink(2);",
		"App.register_component(led);",
		"led->set_update_interval(500);",
	}, res.Statements())
	assert.Empty(t, res.Output.Globals.Defines, "the built-in logger did not run")
}

func TestModuleContract_BaseLayerIsUnchanged(t *testing.T) {
	t.Parallel()
	// Arrange
	layer := projectLayer(t)
	base := registry.New("builtin")
	base.Install(&logger.Module{})

	// Act
	fromLayer, err := layer.Lookup("logger")
	require.NoError(t, err)
	fromBase, err := base.Lookup("logger")
	require.NoError(t, err)
	_, err = base.Lookup("output.blink")

	// Assert
	assert.NotEqual(t, fromLayer.Description, fromBase.Description)
	assert.Equal(t, logger.Logger, fromBase.Type)
	assert.ErrorIs(t, err, errors.ErrUnknownDiscriminator)
}

func TestModuleContract_UnknownPlatformHintsSiblings(t *testing.T) {
	t.Parallel()
	// Act
	res := testutil.RunRegistry(context.Background(), t, projectLayer(t), map[string]string{
		"main.yaml": "output:\n  platform: pwm\n  pin: 2\n",
	})

	// Assert
	require.ErrorIs(t, res.Err, errors.ErrUnknownDiscriminator)
	var hints []string
	for _, e := range res.Err.(interface{ Unwrap() []error }).Unwrap() {
		hints = append(hints, errors.GetAllHints(e)...)
	}
	assert.Equal(t, []string{`known kinds in "output": output.blink`}, hints)
}
