package sensor

import (
	"context"

	"github.com/hashicorp/hcl/v2/hcldec"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/firmgen/internal/codegen"
	"github.com/specialistvlad/firmgen/internal/cpp"
	"github.com/specialistvlad/firmgen/internal/schema"
)

var (
	templateNS = cpp.EsphomeNS.Namespace("template_")
	// TemplateSensor is the C++ class declared for `sensor.template` blocks.
	TemplateSensor = templateNS.Class("TemplateSensor", Sensor, cpp.PollingComponent)
)

// TemplateConfig is the decoded `sensor.template` block.
type TemplateConfig struct {
	Name             string   `cty:"name"`
	Unit             *string  `cty:"unit_of_measurement"`
	AccuracyDecimals *int     `cty:"accuracy_decimals"`
	Internal         bool     `cty:"internal"`
	Lambda           *string  `cty:"lambda"`
	UpdateInterval   *string  `cty:"update_interval"`
	SetupPriority    *float64 `cty:"setup_priority"`
}

var templateSpec = schema.Object(schema.Polling, entitySpec, hcldec.ObjectSpec{
	"lambda": schema.Optional("lambda", cty.String),
})

// GenerateTemplate emits a template sensor. The lambda may read other
// components through id(...), which waits for them to be declared.
func GenerateTemplate(ctx context.Context, gen *codegen.Context, cfg *TemplateConfig) error {
	opts, err := schema.Options(cfg.SetupPriority, cfg.UpdateInterval)
	if err != nil {
		return err
	}

	s, err := gen.NewPvariable(gen.ID())
	if err != nil {
		return err
	}
	if err := gen.RegisterComponent(s, opts); err != nil {
		return err
	}
	if err := registerSensor(gen, s, entity{
		Name:             cfg.Name,
		Unit:             cfg.Unit,
		AccuracyDecimals: cfg.AccuracyDecimals,
		Internal:         cfg.Internal,
	}); err != nil {
		return err
	}
	if cfg.Lambda == nil {
		return nil
	}
	fn, err := gen.ProcessLambda(ctx, *cfg.Lambda, nil, "=", cpp.Optional(cpp.Float))
	if err != nil {
		return err
	}
	return gen.Add(s.Call("set_template", fn))
}
