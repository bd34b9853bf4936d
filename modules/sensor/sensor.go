// Package sensor provides the sensor platforms: `sensor.dht`,
// `sensor.bme280` and `sensor.template`.
package sensor

import (
	"github.com/hashicorp/hcl/v2/hcldec"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/firmgen/internal/cfgid"
	"github.com/specialistvlad/firmgen/internal/codegen"
	"github.com/specialistvlad/firmgen/internal/cpp"
	"github.com/specialistvlad/firmgen/internal/registry"
	"github.com/specialistvlad/firmgen/internal/schema"
)

var (
	sensorNS = cpp.EsphomeNS.Namespace("sensor")
	// Sensor is the base class of every sensor entity.
	Sensor = sensorNS.Class("Sensor", cpp.EntityBase)
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// entitySpec holds the attributes of a block that is itself a sensor.
var entitySpec = hcldec.ObjectSpec{
	"name":                schema.Required("name", cty.String),
	"unit_of_measurement": schema.Optional("unit_of_measurement", cty.String),
	"accuracy_decimals":   schema.Optional("accuracy_decimals", cty.Number),
	"internal":            schema.Default("internal", cty.False),
}

// entity holds the decoded entitySpec attributes.
type entity struct {
	Name             string
	Unit             *string
	AccuracyDecimals *int
	Internal         bool
}

// registerSensor registers s with the application and applies the entity
// options.
func registerSensor(gen *codegen.Context, s *cpp.Handle, e entity) error {
	if err := gen.Add(cpp.App.Member("register_sensor").Call(s)); err != nil {
		return err
	}
	calls := []cpp.Expression{s.Call("set_name", e.Name)}
	if e.Unit != nil {
		calls = append(calls, s.Call("set_unit_of_measurement", *e.Unit))
	}
	if e.AccuracyDecimals != nil {
		if err := schema.Range("accuracy_decimals", *e.AccuracyDecimals, -3, 6); err != nil {
			return err
		}
		calls = append(calls, s.Call("set_accuracy_decimals", int8(*e.AccuracyDecimals)))
	}
	if e.Internal {
		calls = append(calls, s.Call("set_internal", true))
	}
	for _, c := range calls {
		if err := gen.Add(c); err != nil {
			return err
		}
	}
	return gen.AddDefine("USE_SENSOR", nil)
}

// subSensor declares a child sensor of parent, named after the block id and
// suffix, and hands it to parent through setter.
func subSensor(gen *codegen.Context, parent *cpp.Handle, suffix, setter string, name *string, unit string) error {
	if name == nil {
		return nil
	}
	s, err := gen.NewPvariable(cfgid.Auto(gen.ID().Name+"_"+suffix, Sensor))
	if err != nil {
		return err
	}
	if err := registerSensor(gen, s, entity{Name: *name, Unit: &unit}); err != nil {
		return err
	}
	return gen.Add(parent.Call(setter, s))
}

// childIDs lists the ids subSensor may declare under a parent block.
func childIDs(suffixes ...string) func(id string) []string {
	return func(id string) []string {
		ids := make([]string, len(suffixes))
		for i, s := range suffixes {
			ids[i] = id + "_" + s
		}
		return ids
	}
}

// Register registers every sensor platform.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(&registry.Entry{
		Key:         "sensor.dht",
		Description: "DHT11/DHT22 temperature and humidity sensor.",
		Schema:      dhtSpec,
		Type:        DHT,
		Config:      DHTConfig{},
		Generate:    registry.Typed(GenerateDHT),
		Provides:    childIDs("temperature", "humidity"),
	})
	r.MustRegister(&registry.Entry{
		Key:         "sensor.bme280",
		Description: "BME280 environmental sensor on I2C.",
		Schema:      bme280Spec,
		Type:        BME280,
		Config:      BME280Config{},
		Generate:    registry.Typed(GenerateBME280),
		Provides:    childIDs("temperature", "pressure", "humidity"),
	})
	r.MustRegister(&registry.Entry{
		Key:         "sensor.template",
		Description: "Sensor whose state is computed by a lambda.",
		Schema:      templateSpec,
		Type:        TemplateSensor,
		Config:      TemplateConfig{},
		Generate:    registry.Typed(GenerateTemplate),
	})
}
