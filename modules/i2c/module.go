// Package i2c provides the `i2c` bus kind and the helper devices on the bus
// use to attach to it.
package i2c

import (
	"context"

	"github.com/hashicorp/hcl/v2/hcldec"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/firmgen/internal/codegen"
	"github.com/specialistvlad/firmgen/internal/cpp"
	"github.com/specialistvlad/firmgen/internal/registry"
	"github.com/specialistvlad/firmgen/internal/schema"
)

var (
	i2cNS = cpp.EsphomeNS.Namespace("i2c")
	// I2CBus is the interface every bus implementation provides.
	I2CBus = i2cNS.Class("I2CBus")
	// ArduinoI2CBus is the bus class declared for `i2c` blocks.
	ArduinoI2CBus = i2cNS.Class("ArduinoI2CBus", I2CBus, cpp.Component)
	// I2CDevice is the base class of devices on a bus.
	I2CDevice = i2cNS.Class("I2CDevice")
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Config is the decoded `i2c` block.
type Config struct {
	SDA           int      `cty:"sda"`
	SCL           int      `cty:"scl"`
	Frequency     int      `cty:"frequency"`
	Scan          bool     `cty:"scan"`
	SetupPriority *float64 `cty:"setup_priority"`
}

var spec = schema.Object(schema.Component, hcldec.ObjectSpec{
	"sda":       schema.Default("sda", cty.NumberIntVal(21)),
	"scl":       schema.Default("scl", cty.NumberIntVal(22)),
	"frequency": schema.Default("frequency", cty.NumberIntVal(50000)),
	"scan":      schema.Default("scan", cty.True),
})

// DeviceSpec holds the attributes every device on the bus accepts.
var DeviceSpec = hcldec.ObjectSpec{
	"i2c_id":  schema.Required("i2c_id", cty.String),
	"address": schema.Required("address", cty.Number),
}

// Generate emits the bus.
func Generate(ctx context.Context, gen *codegen.Context, cfg *Config) error {
	if err := schema.Range("frequency", cfg.Frequency, 10000, 5000000); err != nil {
		return err
	}
	opts, err := schema.Options(cfg.SetupPriority, nil)
	if err != nil {
		return err
	}

	bus, err := gen.NewPvariable(gen.ID())
	if err != nil {
		return err
	}
	if err := gen.RegisterComponent(bus, opts); err != nil {
		return err
	}
	for _, c := range []cpp.Expression{
		bus.Call("set_sda_pin", cfg.SDA),
		bus.Call("set_scl_pin", cfg.SCL),
		bus.Call("set_frequency", cfg.Frequency),
		bus.Call("set_scan", cfg.Scan),
	} {
		if err := gen.Add(c); err != nil {
			return err
		}
	}
	return gen.AddDefine("USE_I2C", nil)
}

// RegisterDevice attaches dev to the bus busID at address. It waits for the
// bus to be declared.
func RegisterDevice(ctx context.Context, gen *codegen.Context, dev *cpp.Handle, busID string, address int) error {
	if err := schema.Range("address", address, 0x08, 0x77); err != nil {
		return err
	}
	bus, err := gen.Get(ctx, busID, I2CBus)
	if err != nil {
		return err
	}
	if err := gen.Add(dev.Call("set_i2c_bus", bus)); err != nil {
		return err
	}
	return gen.Add(dev.Call("set_i2c_address", cpp.Hex(uint64(address))))
}

// Register registers the i2c kind.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(&registry.Entry{
		Key:         "i2c",
		Description: "I2C bus.",
		Schema:      spec,
		Type:        ArduinoI2CBus,
		Config:      Config{},
		Generate:    registry.Typed(Generate),
	})
}
