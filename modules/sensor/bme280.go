package sensor

import (
	"context"

	"github.com/hashicorp/hcl/v2/hcldec"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/firmgen/internal/codegen"
	"github.com/specialistvlad/firmgen/internal/cpp"
	"github.com/specialistvlad/firmgen/internal/schema"
	"github.com/specialistvlad/firmgen/modules/i2c"
)

var (
	bme280NS = cpp.EsphomeNS.Namespace("bme280")
	// BME280 is the C++ class declared for `sensor.bme280` blocks.
	BME280       = bme280NS.Class("BME280I2CComponent", cpp.PollingComponent, i2c.I2CDevice)
	oversampling = bme280NS.Enum("BME280Oversampling", false)
	iirFilter    = bme280NS.Enum("BME280IIRFilter", false)
)

var (
	oversamplings = []string{"NONE", "1X", "2X", "4X", "8X", "16X"}
	iirFilters    = []string{"OFF", "2X", "4X", "8X", "16X"}
)

// BME280Config is the decoded `sensor.bme280` block.
type BME280Config struct {
	I2CID           string   `cty:"i2c_id"`
	Address         int      `cty:"address"`
	TemperatureName *string  `cty:"temperature_name"`
	PressureName    *string  `cty:"pressure_name"`
	HumidityName    *string  `cty:"humidity_name"`
	Oversampling    string   `cty:"oversampling"`
	IIRFilter       string   `cty:"iir_filter"`
	UpdateInterval  *string  `cty:"update_interval"`
	SetupPriority   *float64 `cty:"setup_priority"`
}

var bme280Spec = schema.Object(schema.Polling, i2c.DeviceSpec, hcldec.ObjectSpec{
	"address":          schema.Default("address", cty.NumberIntVal(0x77)),
	"temperature_name": schema.Optional("temperature_name", cty.String),
	"pressure_name":    schema.Optional("pressure_name", cty.String),
	"humidity_name":    schema.Optional("humidity_name", cty.String),
	"oversampling":     schema.Default("oversampling", cty.StringVal("16X")),
	"iir_filter":       schema.Default("iir_filter", cty.StringVal("OFF")),
})

// GenerateBME280 emits a BME280 attached to its I2C bus.
func GenerateBME280(ctx context.Context, gen *codegen.Context, cfg *BME280Config) error {
	ovs, err := schema.OneOf("oversampling", cfg.Oversampling, oversamplings...)
	if err != nil {
		return err
	}
	iir, err := schema.OneOf("iir_filter", cfg.IIRFilter, iirFilters...)
	if err != nil {
		return err
	}
	opts, err := schema.Options(cfg.SetupPriority, cfg.UpdateInterval)
	if err != nil {
		return err
	}

	dev, err := gen.NewPvariable(gen.ID())
	if err != nil {
		return err
	}
	if err := gen.RegisterComponent(dev, opts); err != nil {
		return err
	}
	if err := i2c.RegisterDevice(ctx, gen, dev, cfg.I2CID, cfg.Address); err != nil {
		return err
	}

	children := []struct {
		suffix string
		name   *string
		unit   string
	}{
		{"temperature", cfg.TemperatureName, "°C"},
		{"pressure", cfg.PressureName, "hPa"},
		{"humidity", cfg.HumidityName, "%"},
	}
	for _, c := range children {
		if err := subSensor(gen, dev, c.suffix, "set_"+c.suffix+"_sensor", c.name, c.unit); err != nil {
			return err
		}
		if c.name == nil {
			continue
		}
		if err := gen.Add(dev.Call("set_"+c.suffix+"_oversampling", oversampling.Value("BME280_OVERSAMPLING_"+ovs))); err != nil {
			return err
		}
	}
	return gen.Add(dev.Call("set_iir_filter", iirFilter.Value("BME280_IIR_FILTER_"+iir)))
}
